package api

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

const apiKeyHeader = "X-API-Key"

// APIKeyMiddleware rejects requests whose X-API-Key header does not match the
// configured token. An empty token leaves the surface open, which suits a
// local benchmark box.
func APIKeyMiddleware(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}

		provided := c.GetHeader(apiKeyHeader)
		if provided == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized: missing API key"})
			c.Abort()
			return
		}
		if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized: invalid API key"})
			c.Abort()
			return
		}
		c.Next()
	}
}
