package ratelimiter

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	jwtmw "github.com/rishikesh-suvarna/keyzy/internal/platform/jwt"
)

// Middleware returns a gin middleware enforcing the limiter. The caller key
// is the resolved user id when the auth middleware ran first, the client IP
// otherwise. Limiter errors fail open: losing redis must not take the API
// down with it.
func Middleware(limiter Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if userID, ok := jwtmw.UserIDFromContext(c); ok && userID != uuid.Nil {
			key = userID.String()
		}

		allowed, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			slog.Warn("rate limiter unavailable", "error", err)
			c.Next()
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
