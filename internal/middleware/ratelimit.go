package middleware

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"smartblog/pkg/ratelimiter"
)

// RateLimit enforces a fixed-window quota on one route. Authenticated
// callers are counted per user, anonymous ones per client IP. Counter
// store failures let the request through rather than taking the route
// down with the store.
func RateLimit(limiter *ratelimiter.Limiter, route string, max int64, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := c.ClientIP()
		if userID, exists := c.Get("user_id"); exists {
			if id, ok := userID.(string); ok && id != "" {
				caller = id
			}
		}

		err := limiter.Allow(c.Request.Context(), route, caller, max, window)
		if err == nil {
			c.Next()
			return
		}

		var rle *ratelimiter.RateLimitError
		if errors.As(err, &rle) {
			c.Header("Retry-After", strconv.FormatInt(int64(rle.RetryAfter.Seconds()), 10))
			c.JSON(http.StatusTooManyRequests, gin.H{"error": rle.Message})
			c.Abort()
			return
		}

		log.Printf("rate limiter unavailable for %s: %v", route, err)
		c.Next()
	}
}
