package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-screener/internal/shared/auth"
	"resume-screener/internal/shared/server/respond"
)

const (
	userIDKey   = "userId"
	userRoleKey = "userRole"
)

// Auth validates the bearer token and stores identity in context.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		if token == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		claims, err := auth.VerifyJWT(token)
		if err != nil {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		c.Set(userIDKey, claims.Subject)
		c.Set(userRoleKey, claims.Role)
		c.Next()
	}
}

// RequireRoles aborts with 403 unless the caller holds one of the given roles.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		if _, ok := allowed[UserRoleFromContext(c)]; !ok {
			respond.Error(c, http.StatusForbidden, "forbidden", "insufficient role", nil)
			return
		}
		c.Next()
	}
}

// UserIDFromContext fetches the user ID set by the auth middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

// UserRoleFromContext fetches the role set by the auth middleware.
func UserRoleFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userRoleKey)
	if role, ok := val.(string); ok {
		return role
	}
	return ""
}
