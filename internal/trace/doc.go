// Package trace is the logging and tracing layer of sharpc.
//
// Every pipeline phase (config, load, lower, merge, emit, write) opens a span,
// and per-unit work opens a child span, so a hang or a slow unit can be
// located from the trace alone.
//
// # Usage
//
//	sharpc build --trace=- --trace-level=unit App.toml
//
// # Levels
//
//   - LevelOff: No tracing
//   - LevelPhase: Driver and phase boundaries
//   - LevelUnit: Per-unit events
//   - LevelDebug: Everything including per-declaration merge events
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePhase, "lower", parentID)
//	defer span.End("")
package trace
