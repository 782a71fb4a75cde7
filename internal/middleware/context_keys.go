package middleware

import (
	"context"

	"github.com/borport/borport_backend/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// contextKey is a private type for request context keys. Using a custom type prevents collisions.
type contextKey string

const (
	userIDKey    = contextKey("userID")
	roleKey      = contextKey("role")
	loggerCtxKey = contextKey("logger")
)

// WithSession returns a copy of ctx carrying the authenticated user and role.
func WithSession(ctx context.Context, userID string, role domain.Role) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, roleKey, role)
}

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(userIDKey)); exists {
		userID, ok := v.(string)
		return userID, ok && userID != ""
	}
	return UserIDFromCtx(c.Request.Context())
}

// UserIDFromCtx retrieves the authenticated user ID from a standard context.
func UserIDFromCtx(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// GetRoleFromContext retrieves the authenticated user's role from the Gin context.
func GetRoleFromContext(c *gin.Context) (domain.Role, bool) {
	if v, exists := c.Get(string(roleKey)); exists {
		role, ok := v.(domain.Role)
		return role, ok
	}
	role, ok := c.Request.Context().Value(roleKey).(domain.Role)
	return role, ok
}
