package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey struct{}

// ContextWithLogger stores a logger in the context.
func ContextWithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext extracts a logger from the context.
// Returns zap.NewNop() if no logger is found.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}

// WithOperation tags the context logger with an orchestration name and its output id,
// so resolver and gateway lines logged under ctx can be joined to the result.
func WithOperation(ctx context.Context, operation, id string) (context.Context, *zap.Logger) {
	l := FromContext(ctx).With(zap.String("operation", operation), zap.String("operation_id", id))
	return ContextWithLogger(ctx, l), l
}
