// Package services defines shared utilities consumed by the pipeline and the
// external editor integration.
//
// Key responsibilities:
//   - Context helpers that stamp clip names, track selectors, and correlation
//     identifiers for logging and tracing.
//   - Structured error markers plus the Wrap helper that distinguish fatal
//     configuration problems from recoverable per-clip failures.
//
// Use these helpers when wiring new pipeline logic so operational behaviour
// (error handling, observability) stays uniform across the system.
package services
