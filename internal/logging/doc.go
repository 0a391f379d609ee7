// Package logging assembles structured slog loggers and formatting helpers used
// across glottisdale.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so pipeline stages automatically
// tag log lines with run identifiers, stages, and sources. Per-clip failures
// that the pipeline recovers from are reported through WarnWithContext so each
// warning carries an event type, a hint, and its impact on the output.
//
// Prefer these constructors over hand-rolled slog setup so new components emit
// data with the same shape as the rest of the system.
package logging
