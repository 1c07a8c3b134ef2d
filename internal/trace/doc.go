// Package trace provides a lightweight tracing subsystem for shiftscan.
//
// Tracing records span and point events while a command runs so that slow
// batch jobs and stuck runs can be diagnosed after the fact.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	shiftscan batch --trace=- --trace-level=phase titration.txt
//
// # Architecture
//
// The package provides several tracer implementations:
//
//   - nopTracer: zero-overhead no-op tracer when disabled
//   - StreamTracer: immediate write to output (file/stderr)
//   - RingTracer: circular buffer for crash dumps
//   - MultiTracer: fans out to several tracers
//
// # Levels
//
// Tracing verbosity is controlled by levels:
//
//   - LevelOff: no tracing
//   - LevelError: only crash dumps
//   - LevelPhase: run and config boundaries
//   - LevelDetail: per-peak and cache events
//   - LevelDebug: everything including per-row CSP arithmetic
//
// # Scopes
//
// Events are categorized by scope:
//
//   - ScopeBatch: top-level command runs
//   - ScopeConfig: manifest discovery and option resolution
//   - ScopeCache: result cache lookups and stores
//   - ScopeClassify: per-peak probability scoring
//   - ScopeCSP: per-row shift perturbation arithmetic
//
// # Context Propagation
//
// Tracers travel through the processing pipeline via context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeClassify, "score", parentID)
//	defer span.End("")
package trace
