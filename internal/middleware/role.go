package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobfair/internal/domain"
	"jobfair/internal/pkg/response"
)

// RequireRole ensures the authenticated caller carries the given role.
func RequireRole(requiredRole domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			c.Abort()
			return
		}

		if domain.UserRole(role.(string)) != requiredRole {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

// AdminOnly restricts a route group to admin callers.
func AdminOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin)
}
