package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned when a key is not found in cache.
var ErrCacheMiss = errors.New("cache miss")

// Cache is the lookup cache behind the role directory. Roles are written once
// at sign-up and never change, so cached entries only need a TTL to bound
// memory, not for correctness.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// RoleKey builds the cache key for a user's role lookup.
func RoleKey(userID string) string {
	return "role:" + userID
}
