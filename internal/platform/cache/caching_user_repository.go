// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/rishikesh-suvarna/keyzy/internal/feature/auth/domain/entity"
	"github.com/rishikesh-suvarna/keyzy/internal/feature/auth/usecase"
)

// CachingUserRepository decorates a UserRepository with Redis caching of
// the subject lookup, which runs on every authenticated request. It caches
// identity rows only; credential data never passes through this package.
type CachingUserRepository struct {
	inner     usecase.UserRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// Compile-time check that CachingUserRepository implements UserRepository.
var _ usecase.UserRepository = (*CachingUserRepository)(nil)

// NewCachingUserRepository decorates a UserRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses
// "identity".
func NewCachingUserRepository(rdb *redis.Client, ttl time.Duration, inner usecase.UserRepository, namespace string) *CachingUserRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "identity"
	}
	return &CachingUserRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// subjectKey returns the cache key for a subject lookup.
func (c *CachingUserRepository) subjectKey(subjectID string) string {
	return fmt.Sprintf("%s:subject:%s", c.namespace, subjectID)
}

// Create inserts through to the inner repository and primes the cache.
// Cache writes are best effort: a failed SET never fails the insert.
func (c *CachingUserRepository) Create(ctx context.Context, u *entity.User) error {
	if err := c.inner.Create(ctx, u); err != nil {
		return err
	}
	if c.rdb == nil {
		return nil
	}
	if data, err := json.Marshal(u); err == nil {
		_ = c.rdb.Set(ctx, c.subjectKey(u.SubjectID), data, c.ttl).Err()
	}
	return nil
}

// FindBySubject checks the cache first and falls back to the inner
// repository, populating the cache on miss. A redis failure degrades to a
// direct lookup.
func (c *CachingUserRepository) FindBySubject(ctx context.Context, subjectID string) (*entity.User, error) {
	if c.rdb == nil {
		return c.inner.FindBySubject(ctx, subjectID)
	}

	key := c.subjectKey(subjectID)
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var u entity.User
		if err := json.Unmarshal(b, &u); err == nil {
			return &u, nil
		}
		// Corrupt entry: drop it and fall through to the database.
		_ = c.rdb.Del(ctx, key).Err()
	}

	u, err := c.inner.FindBySubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(u); err == nil {
		_ = c.rdb.Set(ctx, key, data, c.ttl).Err()
	}
	return u, nil
}

// FindByID passes through. The by-id path only serves the profile endpoint,
// which is not hot enough to be worth a second key space.
func (c *CachingUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return c.inner.FindByID(ctx, id)
}
