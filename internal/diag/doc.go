// Package diag defines the diagnostic model shared by the input-parsing and
// reporting layers.
//
// # Purpose
//
//   - Provide deterministic, serialisable records for problems found while
//     reading peak lists and manifests (bad lines, bad numbers, bad model
//     parameters).
//   - Offer light-weight utilities (Reporter, Bag) so producers can emit
//     diagnostics without coupling to storage or formatting.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – file, line and column of the issue.
//   - Notes – optional secondary spans/messages for additional context.
//
// Notes should be used sparingly: each note must add new context (e.g. "value
// defined here") rather than repeating the diagnostic message.
//
// Rendering lives in internal/diagfmt; collection policy (skip the line or
// fail the run) lives with the callers.
package diag
