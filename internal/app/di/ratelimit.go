package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rishikesh-suvarna/keyzy/internal/shared/ratelimiter"
)

const (
	rateLimitRequests = 120
	rateLimitWindow   = time.Minute
)

// NewLimiter creates the API rate limiter. If Redis is available, the
// budget is shared across replicas; otherwise each replica counts locally.
func NewLimiter(rdb *redis.Client) ratelimiter.Limiter {
	if rdb != nil {
		return ratelimiter.NewRedisLimiter(rdb, rateLimitRequests, rateLimitWindow)
	}
	return ratelimiter.NewMemoryLimiter(rateLimitRequests, rateLimitWindow)
}
