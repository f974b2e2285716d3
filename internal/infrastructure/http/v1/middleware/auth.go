package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"storekeeper/internal/core/appctx"
	"storekeeper/internal/core/apperror"
)

// TokenValidator validates bearer tokens and resolves the session.
// Authentication itself lives outside this service; the API only
// verifies tokens issued by it.
type TokenValidator interface {
	ValidateToken(tokenString string) (*appctx.Session, error)
}

// Auth middleware validates JWT tokens and populates the session context.
func Auth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Extract token from Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		// Check Bearer prefix
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			abortUnauthorized(c, "invalid authorization header format")
			return
		}

		session, err := validator.ValidateToken(parts[1])
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}

		// Attach session to request context for the domain layer
		ctx := appctx.WithSession(c.Request.Context(), session)
		c.Request = c.Request.WithContext(ctx)

		// Store in gin context for easy access
		c.Set("user_id", session.UserID)

		c.Next()
	}
}

// RequireRole middleware checks if user has any of the required roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := appctx.GetSession(c.Request.Context())
		if session == nil {
			abortUnauthorized(c, "authentication required")
			return
		}

		if session.IsAdmin {
			c.Next()
			return
		}

		for _, required := range roles {
			for _, userRole := range session.Roles {
				if userRole == required {
					c.Next()
					return
				}
			}
		}

		_ = c.Error(
			apperror.NewForbidden("insufficient permissions").
				WithDetail("required_roles", roles),
		)
		c.Abort()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	_ = c.Error(apperror.NewUnauthorized(message))
	c.Abort()
}
