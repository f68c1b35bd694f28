package mongodb

import (
	"context"
	"time"
)

// CacheService is the subset of the redis cache the repositories use for
// read-through caching of hot records. A nil CacheService disables caching.
type CacheService interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, keys ...string) error
}
