package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"

	"github.com/borport/borport_backend/internal/core/domain"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware creates a Gin middleware handler that requires a valid session for API routes.
func AuthMiddleware(resolver *SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		session, err := resolver.Resolve(c.Request)
		if err != nil {
			msg := "Invalid token"
			switch {
			case errors.Is(err, ErrNoSession):
				msg = "Authentication required"
			case errors.Is(err, jwt.ErrTokenExpired):
				msg = "Token has expired"
			case errors.Is(err, jwt.ErrTokenNotValidYet):
				msg = "Token not valid yet"
			}
			logger.Warn("Session rejected", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		role, ok := domain.ParseRole(session.Role)
		if !ok {
			logger.Warn("Session carries unknown role", slog.String("user_id", session.UserID), slog.String("role", session.Role))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		enrichedLogger := logger.With(slog.String("user_id", session.UserID), slog.String("role", string(role)))
		ctx := WithLogger(WithSession(c.Request.Context(), session.UserID, role), enrichedLogger)
		c.Request = c.Request.WithContext(ctx)
		c.Set(string(userIDKey), session.UserID)
		c.Set(string(roleKey), role)

		c.Next()
	}
}

// RequireRole answers 403 unless the authenticated user has one of roles.
// It must run after AuthMiddleware.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetRoleFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		if !slices.Contains(roles, role) {
			GetLoggerFromCtx(c.Request.Context()).Warn("Role not permitted for route",
				slog.String("role", string(role)), slog.String("route", c.FullPath()))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Next()
	}
}
