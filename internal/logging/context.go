package logging

import "context"

type contextKey string

const (
	loggerKey  contextKey = "logger"
	traceIDKey contextKey = "trace_id"
)

// WithLogger attaches a logger to ctx, for handlers that thread a context
// through a call chain instead of passing a *Logger explicitly.
func WithLogger(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the logger attached to ctx, falling back to Global.
func FromContext(ctx context.Context) *Logger {
	if logger, ok := ctx.Value(loggerKey).(*Logger); ok {
		return logger
	}
	return global
}

// WithTraceID attaches a correlation ID, used to tie together the log
// lines from one rotation or one distributed-lock acquisition across
// goroutines.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

func contextFields(ctx context.Context) []interface{} {
	if traceID, ok := ctx.Value(traceIDKey).(string); ok && traceID != "" {
		return []interface{}{"trace_id", traceID}
	}
	return nil
}
