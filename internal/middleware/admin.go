package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rentgrid/car-rental-api/internal/models"
)

// RequireAdmin gates admin-only routes. Runs after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if Role(c) != models.RoleClientAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin_role_required"})
			return
		}
		c.Next()
	}
}
