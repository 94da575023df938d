package handlers

import "context"

type contextKey string

const adminContextKey contextKey = "admin"

// SetAdminInContext marks the request as carrying a validated admin session.
func SetAdminInContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, adminContextKey, true)
}

func IsAdminContext(ctx context.Context) bool {
	admin, _ := ctx.Value(adminContextKey).(bool)
	return admin
}
