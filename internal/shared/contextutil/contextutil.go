// Package contextutil carries request-scoped values (request id, logger)
// through context.Context so services never depend on gin.
package contextutil

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey struct{ name string }

var (
	requestIDKey = ctxKey{"request_id"}
	loggerKey    = ctxKey{"logger"}
)

func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

// GetRequestID returns "" outside a request (worker, consumer, tests).
func GetRequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	rid, _ := ctx.Value(requestIDKey).(string)
	return rid
}

func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLogger prefers the request logger, then fallback, then a no-op logger.
func GetLogger(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	if ctx != nil {
		if l, _ := ctx.Value(loggerKey).(*zap.Logger); l != nil {
			return l
		}
	}
	if fallback == nil {
		return zap.NewNop()
	}
	return fallback
}
