package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey int

const (
	requestIDKey ctxKey = iota
	userIDKey
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithUserID marks ctx as acting for an authenticated user.
func WithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func UserIDFrom(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(userIDKey).(uint)
	return id, ok
}

// FromCtx returns the process logger carrying request_id and user_id when
// ctx has them.
func FromCtx(ctx context.Context) *zap.Logger {
	var fields []zap.Field
	if id := RequestIDFrom(ctx); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	if uid, ok := UserIDFrom(ctx); ok {
		fields = append(fields, zap.Uint("user_id", uid))
	}

	if len(fields) == 0 {
		return L()
	}
	return L().With(fields...)
}
