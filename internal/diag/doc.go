// Package diag defines the diagnostic model shared by all pipeline phases.
//
// # Purpose
//
//   - Provide deterministic, serialisable records for findings produced by the
//     configuration checks, the name resolver, the partial-merge registry, the
//     lowerer, and the C emitter.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or formatting layers.
//
// # Scope
//
// Package diag does not perform any formatting beyond the golden single-line
// form used by tests. Rendering lives in internal/diagfmt, orchestration in
// internal/driver.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages for additional context, e.g.
//     the other full name of a flattening collision or the first fragment of a
//     duplicated member.
//
// Every failure of the pipeline is an error: nothing is downgraded to a
// warning. Warnings exist for informational output of tooling only.
//
// # Emitting diagnostics
//
// Phases use a diag.Reporter to decouple emission from storage. A
// ReportBuilder (NewReportBuilder, ReportError) accumulates notes before Emit.
// BagReporter aggregates diagnostics into a Bag, which supports sorting,
// deduplication, and merging of per-unit bags.
package diag
