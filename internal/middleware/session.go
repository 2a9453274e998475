package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"qalib/internal/service"
)

const ContextKeySessionID = "session_id"

// SessionMiddleware returns Gin middleware that validates session bearer
// tokens and injects the session ID into the request context.
func SessionMiddleware(sessionService service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "SESSION_INVALID", "message": "missing or invalid authorization header"},
			})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		sess, err := sessionService.Resolve(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "SESSION_INVALID", "message": "session token is invalid or expired"},
			})
			return
		}

		c.Set(ContextKeySessionID, sess.ID)
		c.Next()
	}
}

// GetSessionID extracts the session ID from the Gin context.
func GetSessionID(c *gin.Context) (string, bool) {
	val, exists := c.Get(ContextKeySessionID)
	if !exists {
		return "", false
	}
	id, ok := val.(string)
	return id, ok && id != ""
}
