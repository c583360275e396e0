// Package ratelimiter limits how often a single caller can hit the API.
// The window is fixed, counted per resolved user (falling back to client
// IP before authentication).
package ratelimiter

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter decides whether a caller may proceed.
type Limiter interface {
	// Allow reports whether the caller identified by key is within its
	// budget for the current window.
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisLimiter counts requests in redis with a fixed window, so the budget
// holds across replicas.
type RedisLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	prefix string
}

// NewRedisLimiter creates a RedisLimiter allowing limit requests per window.
func NewRedisLimiter(rdb *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		rdb:    rdb,
		limit:  limit,
		window: window,
		prefix: "ratelimit",
	}
}

// Allow increments the caller's counter and sets the window expiry on first
// hit. INCR and EXPIRE NX keep the window consistent under concurrency.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := fmt.Sprintf("%s:%s", l.prefix, key)

	count, err := l.rdb.Incr(ctx, k).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := l.rdb.Expire(ctx, k, l.window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(l.limit), nil
}

// MemoryLimiter is the in-process fallback used when redis is unavailable.
// Budgets are per replica, which is acceptable for a degraded mode.
type MemoryLimiter struct {
	mu        sync.Mutex
	limit     int
	window    time.Duration
	counts    map[string]*windowCount
	nextSweep time.Time
}

type windowCount struct {
	count   int
	resetAt time.Time
}

// NewMemoryLimiter creates a MemoryLimiter allowing limit requests per window.
func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		limit:  limit,
		window: window,
		counts: make(map[string]*windowCount),
	}
}

// Allow counts the request against the caller's current window.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.sweep(now)

	wc, ok := l.counts[key]
	if !ok || now.After(wc.resetAt) {
		l.counts[key] = &windowCount{count: 1, resetAt: now.Add(l.window)}
		return true, nil
	}
	wc.count++
	return wc.count <= l.limit, nil
}

// sweep drops expired windows at most once per window, so the map does not
// grow with the number of distinct callers ever seen. Called with mu held.
func (l *MemoryLimiter) sweep(now time.Time) {
	if now.Before(l.nextSweep) {
		return
	}
	for key, wc := range l.counts {
		if now.After(wc.resetAt) {
			delete(l.counts, key)
		}
	}
	l.nextSweep = now.Add(l.window)
}
