// Package logging threads request scoped slog loggers through contexts so
// the tracker's service operations annotate the same log entry the HTTP
// middleware opened, request id and all.
package logging

import (
	"context"
	"log/slog"
)

// loggerKey is unexported so only this package reads or writes the slot.
type loggerKey struct{}

// ContextWithLogger derives a context carrying logger. A nil logger returns
// ctx unchanged so callers can chain without guarding.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	if ctx == nil || logger == nil {
		return ctx
	}
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger attached to ctx, or nil when the request
// carries none. Callers are expected to fall back to their own logger.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return nil
	}
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return logger
	}
	return nil
}
