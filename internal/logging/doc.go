// Package logging assembles structured slog loggers and formatting helpers
// used across mcjob.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so workflow code can tag log
// lines with the stage and the job's client request token. Diagnostics go to
// stderr so stdout stays reserved for command results.
package logging
