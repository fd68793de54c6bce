package middlewares

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminSecret only lets through requests carrying the ADMIN_SECRET header.
// An empty configured secret closes the route entirely.
func AdminSecret(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		given := c.GetHeader("ADMIN_SECRET")
		if secret == "" || subtle.ConstantTimeCompare([]byte(given), []byte(secret)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
			return
		}
		c.Next()
	}
}
