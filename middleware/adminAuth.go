package middleware

import (
	"net/http"
	"strings"

	"deskhive/utils"

	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware guards the catalog management endpoints. Tokens are
// issued by the admin login handler.
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		email, err := utils.ExtractIDFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized admin access"})
			return
		}

		c.Set("adminEmail", email)
		c.Set("isAdmin", true)
		c.Next()
	}
}
