// Package logger sets up the process-wide JSON slog logger and carries
// request-scoped loggers, tagged with the request ID, through a context.
// GetTestLogger and FindEntry let tests assert on emitted entries.
package logger
