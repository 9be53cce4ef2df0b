package utils

const (
	UserIDKey    contextKey = "user_id"
	UserEmailKey contextKey = "email"
	UserAdminKey contextKey = "is_admin"
)
