package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"

// RequestID propagates the caller's X-Request-ID, minting one when absent.
// The ID is stored in the gin context for error logging and echoed back on
// the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()[:8]
		}
		c.Set(requestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// Logger writes one access line per request. Health check endpoints are
// not logged.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.Request.URL.Path
		if path == "/healthz" || path == "/readyz" {
			return
		}

		id := c.GetString(requestIDKey)
		log.Printf("http: %s %s %s status=%d bytes=%d in %s",
			id,
			c.Request.Method,
			path,
			c.Writer.Status(),
			c.Writer.Size(),
			time.Since(start).Round(time.Microsecond),
		)
	}
}

// Recovery converts handler panics into 500 responses.
func Recovery() gin.HandlerFunc {
	return gin.Recovery()
}
