// Package logging assembles structured slog loggers and formatting helpers
// used across cubby.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so organizer code can
// automatically tag log lines with run IDs, modes, and file names. The package
// also provides a no-op logger for tests and wiring code that cannot fail.
package logging
