package middleware

import "context"

// ContextKey is the type of request context keys set by this package.
type ContextKey string

const (
	UserIDCtxKey    = ContextKey("user_id")
	UserRoleCtxKey  = ContextKey("user_role")
	RequestIDCtxKey = ContextKey("request_id")
)

const (
	RoleUser   = "user"
	RoleDealer = "dealer"
	RoleAdmin  = "admin"
)

// UserIDFromContext returns the authenticated user id, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserIDCtxKey).(string)
	return id, ok && id != ""
}

func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(UserRoleCtxKey).(string)
	return role
}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDCtxKey).(string)
	return id
}

// WithUser returns ctx carrying the given identity.
func WithUser(ctx context.Context, userID, role string) context.Context {
	ctx = context.WithValue(ctx, UserIDCtxKey, userID)
	return context.WithValue(ctx, UserRoleCtxKey, role)
}
