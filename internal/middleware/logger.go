package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID injects an X-Request-ID header into the request and response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// Logger logs each request once it finishes. Errors collected on the gin
// context are appended so a failed upload can be traced from the request
// id alone.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()

		requestID := c.GetString("request_id")
		if len(c.Errors) > 0 {
			log.Printf("req=%s %s %s -> %d in %s errors=%s",
				requestID, c.Request.Method, path, c.Writer.Status(),
				time.Since(start), c.Errors.String())
			return
		}
		log.Printf("req=%s %s %s -> %d in %s",
			requestID, c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}

// Recovery recovers from panics and returns a 500 error.
func Recovery() gin.HandlerFunc {
	return gin.Recovery()
}
