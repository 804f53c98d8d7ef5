package middleware

import (
	"net/http"

	"jarvis-app/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// RequireAdminToken guards the operator surface. The expected token is stored
// only as a bcrypt hash; with no hash configured every request is refused.
func RequireAdminToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		hash := config.ADMIN_TOKEN_HASH
		if hash == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error": "Admin access not configured",
			})
			return
		}

		token := c.GetHeader("X-Admin-Token")
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Admin token missing",
			})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid admin token",
			})
			return
		}

		c.Next()
	}
}
