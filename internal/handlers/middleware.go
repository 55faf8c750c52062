package handlers

import (
	"net/http"
	"strings"

	"agromarket/internal/services"

	"github.com/gin-gonic/gin"
)

// AuthRequired validates the bearer token and puts the acting user's id and
// role on the request context.
func AuthRequired(authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			c.Abort()
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		claims, err := authService.Validate(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// FarmerRequired must run after AuthRequired.
func FarmerRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != "farmer" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Farmer account required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentUserID(c *gin.Context) (uint, bool) {
	val, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := val.(uint)
	return id, ok
}
