// Package logging assembles the structured slog loggers used across parrot.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes small attr helpers so pipeline code tags log lines
// with component names and run correlation IDs in a uniform shape. A no-op
// logger is provided for tests and wiring code that cannot fail.
package logging
