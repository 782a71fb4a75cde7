package middleware

import (
	"log/slog"
	"net/http"

	"github.com/borport/borport_backend/internal/authz"
	"github.com/gin-gonic/gin"
)

// RouteGate enforces the role policy on page requests. It must run before any page handler.
// API and public paths pass straight through; API authorization is done by AuthMiddleware.
func RouteGate(resolver *SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if authz.IsPublic(path) {
			c.Next()
			return
		}

		hasSession := false
		role := ""
		if session, err := resolver.Resolve(c.Request); err == nil {
			hasSession = true
			role = session.Role
		}

		decision := authz.Decide(path, hasSession, role)
		if decision.Action == authz.Pass {
			c.Next()
			return
		}

		GetLoggerFromCtx(c.Request.Context()).Info("Route gate redirect",
			slog.String("decision", decision.Action.String()),
			slog.String("location", decision.Location),
		)
		c.Redirect(http.StatusTemporaryRedirect, decision.Location)
		c.Abort()
	}
}
