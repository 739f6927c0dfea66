package utils

import (
	"context"

	"go.uber.org/zap"
)

type contextKey string

const LoggerKey contextKey = "logger"

// WithLogger stores a request scoped logger in the context.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// LoggerFromContext returns the request logger, or fallback when none was set.
func LoggerFromContext(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	if logger, ok := ctx.Value(LoggerKey).(*zap.Logger); ok && logger != nil {
		return logger
	}
	return fallback
}
