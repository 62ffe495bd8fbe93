package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit rejects requests with 429 once limiter has no tokens left.
// A nil limiter lets everything through.
func RateLimit(limiter *rate.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter != nil && !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":      "terlalu banyak permintaan, coba lagi nanti",
				"request_id": GetRequestID(c),
			})
			return
		}
		c.Next()
	}
}

// PerMinute builds a limiter allowing n requests per minute with a burst of n.
// n <= 0 disables limiting.
func PerMinute(n int) *rate.Limiter {
	if n <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(float64(n)/60), n)
}
