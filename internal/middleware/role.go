package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campusbook/internal/domain"
	"campusbook/internal/pkg/response"
)

// RequireRole ensures the authenticated user carries the given role.
func RequireRole(required domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			c.Abort()
			return
		}

		if role.(string) != string(required) {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

// AdminOnly gates the approval and resource-management endpoints.
func AdminOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin)
}
