// Package logging builds slog loggers for lyrasync.
//
// Two output formats are supported: a compact console format for interactive
// use and JSON for machine consumption. Component loggers attach a
// standardized component attribute so pipeline stages are distinguishable in
// shared output.
package logging
