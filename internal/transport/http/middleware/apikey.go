package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	"hr-assistant/internal/transport/http/response"
)

// APIKey gates the public API when a service key is configured. The key is
// accepted as X-API-Key or as a bearer token. An empty configured key
// disables the check.
func APIKey(serviceKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if serviceKey == "" {
			c.Next()
			return
		}

		provided := strings.TrimSpace(c.GetHeader("X-API-Key"))
		if provided == "" {
			authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
			const prefix = "Bearer "
			if strings.HasPrefix(authHeader, prefix) {
				provided = strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
			}
		}

		if subtle.ConstantTimeCompare([]byte(provided), []byte(serviceKey)) != 1 {
			response.Error(c, 401, response.CodeUnauthorized, "invalid api key")
			c.Abort()
			return
		}
		c.Next()
	}
}
