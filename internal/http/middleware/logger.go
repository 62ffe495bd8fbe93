package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// quietPaths are polled by infrastructure and not worth an access line.
var quietPaths = map[string]bool{
	"/metrics":    true,
	"/api/health": true,
}

// Logger prints one access line per request with request_id, the
// authenticated user and the response size (PDFs can be large).
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		if quietPaths[c.Request.URL.Path] && status < 400 {
			return
		}

		log.Printf("[HTTP] request_id=%s method=%s path=%s status=%d bytes=%d user_id=%d latency_ms=%.3f ip=%s",
			GetRequestID(c),
			c.Request.Method,
			c.Request.URL.Path,
			status,
			c.Writer.Size(),
			GetUserID(c),
			float64(time.Since(start).Microseconds())/1000.0,
			c.ClientIP(),
		)
	}
}
