// Package logging assembles structured slog loggers and attribute helpers
// used across riplogcheck.
//
// It owns the console and JSON handlers, level parsing, and output fan-out
// to stdout plus an optional log file. Components tag their lines through
// NewComponentLogger and the Field* keys so console and JSON output share
// one shape. NewNop supplies a discarding logger for tests and for wiring
// code that runs without configuration.
package logging
