// Package cache defines the port interface for caching.
package cache

import (
	"context"
	"time"
)

// Cache is the port interface for key-value caching.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Enumerator is an optional capability of a Cache backend: listing keys by
// glob-style pattern (e.g. "list:vehicles:d-1:*"). Tenant-scoped
// invalidation needs it on the shared tier; backends without it (such as
// the in-process tier) simply don't implement the interface, and
// invalidation degrades to TTL-bounded staleness.
type Enumerator interface {
	Keys(ctx context.Context, pattern string) ([]string, error)
}
