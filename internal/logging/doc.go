// Package logging assembles structured slog loggers and formatting helpers used
// across filerename.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing (including size-rotated log files), and exposes helpers so every
// component tags its lines with a component name and the run they belong to.
// The package also provides a no-op logger for tests and wiring code that
// cannot fail.
package logging
