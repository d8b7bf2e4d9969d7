// Package fuzztests houses Go fuzz harnesses for the sharpc front half:
// unit dump decoding, lowering, partial merging and C emission. The goal is
// to catch panics and broken name invariants on arbitrary dumps.
//
// Назначение: прогонять байты через analyzer.Decode, lower.Unit, registry и
// эмиттер C.
//
// Не делает: запись файлов, выполнение CLI, генерацию корпусов на диск.
//
// Зависимости: internal/analyzer, internal/lower, internal/registry,
// internal/backend/c, internal/testkit.
package fuzztests
