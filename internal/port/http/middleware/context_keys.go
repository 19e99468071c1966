package middleware

import "context"

// ContextKey is a private key type so request-context values cannot collide
// with keys set by other packages.
type ContextKey string

const (
	// UserIDCtxKey holds the authenticated user's id (hex ObjectID).
	UserIDCtxKey = ContextKey("user_id")

	// UserRoleCtxKey holds the authenticated user's role.
	UserRoleCtxKey = ContextKey("user_role")
)

func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok && userID != ""
}

func UserRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(UserRoleCtxKey).(string)
	return role, ok && role != ""
}
