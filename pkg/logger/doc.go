// Package logger builds the service's structured logger on top of log/slog,
// choosing JSON output in production and text output elsewhere.
package logger
