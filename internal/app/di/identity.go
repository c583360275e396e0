// Package di provides dependency injection factories for creating
// application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "github.com/rishikesh-suvarna/keyzy/internal/feature/auth/adapters"
	"github.com/rishikesh-suvarna/keyzy/internal/feature/auth/usecase"
	"github.com/rishikesh-suvarna/keyzy/internal/platform/cache"
)

// identityCacheTTL bounds how stale a cached subject resolution can be.
const identityCacheTTL = 5 * time.Minute

// NewUserRepository creates the UserRepository used for identity
// resolution. With Redis available, the postgres repository is wrapped in
// the caching decorator so the per-request subject lookup stays off the
// database; otherwise lookups go straight to postgres.
func NewUserRepository(rdb *redis.Client, db *gorm.DB) usecase.UserRepository {
	inner := authadapters.NewUserPostgres(db)
	if rdb == nil {
		return inner
	}
	return cache.NewCachingUserRepository(rdb, identityCacheTTL, inner, "identity")
}
