package utils

import "context"

type contextKey string

// SetUserContext stores the resolved principal (called by middleware)
func SetUserContext(ctx context.Context, id uint, email string, isAdmin bool) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, id)
	ctx = context.WithValue(ctx, UserEmailKey, email)
	ctx = context.WithValue(ctx, UserAdminKey, isAdmin)
	return ctx
}

// GetUserIDFromContext retrieves userID safely
func GetUserIDFromContext(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(UserIDKey).(uint)
	return id, ok && id != 0
}

func GetUserEmailFromContext(ctx context.Context) string {
	email, _ := ctx.Value(UserEmailKey).(string)
	return email
}

func IsAdminFromContext(ctx context.Context) bool {
	admin, _ := ctx.Value(UserAdminKey).(bool)
	return admin
}
