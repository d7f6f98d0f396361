// Package logger configures the process-wide JSON slog logger from the server
// config and carries request-scoped loggers and request IDs through a context.
package logger
