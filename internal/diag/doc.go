// Package diag defines the diagnostic model shared by the lexer, the literal
// decoder and the driver.
//
// # Purpose
//
//   - Provide deterministic, serialisable records for findings produced while
//     scanning C source.
//   - Offer light-weight sinks (Reporter, Bag) so producers emit diagnostics
//     without knowing how they are stored or rendered.
//
// Package diag does no formatting and no IO. Rendering lives in
// internal/diagfmt, orchestration in internal/driver.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error (severity.go).
//   - Code – numeric identifier with a stable string form such as LEX1006.
//   - Message – short, actionable text.
//   - Primary – the byte span the finding points at.
//   - Notes – optional secondary spans, used sparingly.
//   - Fixes – optional text edits (closing quote, removal of a stray byte).
//
// # Emitting
//
// The lexer reports through a Reporter and keeps going: a finding never stops
// the scan. Use ReportError/ReportWarning to build a diagnostic with notes and
// fixes, or call Reporter.Report directly. BagReporter collects into a Bag that
// supports sorting, deduplication and filtering; DedupReporter and
// MultiReporter compose sinks.
package diag
