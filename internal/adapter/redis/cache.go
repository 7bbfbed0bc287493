// Package redis implements the cache port using Redis as the shared L2
// tier. It is the only backend that supports key enumeration, which
// tenant-scoped invalidation depends on.
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// scanBatch is the COUNT hint passed to SCAN.
const scanBatch = 200

// Cache wraps a go-redis client as a shared L2 cache.
type Cache struct {
	client *redis.Client
}

// New creates a Redis-backed cache around an existing client.
func New(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Connect dials Redis and verifies the connection.
func Connect(ctx context.Context, addr string, poolSize int) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		PoolSize: poolSize,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &Cache{client: client}, nil
}

// Get retrieves a value from Redis.
func (c *Cache) Get(ctx context.Context, key string) (data []byte, ok bool, err error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return val, true, nil
}

// Set stores a value in Redis with the given TTL.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Delete removes a value from Redis. Deleting an absent key is not an error.
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// Keys enumerates keys matching a glob-style pattern using cursor SCAN, so
// large keyspaces are walked without blocking the server the way KEYS does.
func (c *Cache) Keys(ctx context.Context, pattern string) ([]string, error) {
	var (
		keys   []string
		cursor uint64
	)
	for {
		batch, next, err := c.client.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return nil, err
		}
		keys = append(keys, batch...)
		if next == 0 {
			return keys, nil
		}
		cursor = next
	}
}

// Close shuts down the underlying client.
func (c *Cache) Close() error {
	return c.client.Close()
}
