// Package listcache is the cache-aside layer for tenant-scoped list
// queries: a two-tier read cache keyed by canonicalized query parameters,
// invalidated in bulk per tenant after every mutation.
//
// The cache never owns authoritative data. Every failure of a cache backend
// is logged and absorbed: reads fall open to the store, purge failures
// leave staleness bounded by the entry TTL.
package listcache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/dealerdesk/dealerdesk/internal/port/cache"
)

// DefaultTTL bounds how stale a list page may get if an invalidation is
// missed. Short enough to cap staleness, long enough to absorb read bursts.
const DefaultTTL = 60 * time.Second

// Page is the cached value: one page of rows plus the total row count for
// the query.
type Page[T any] struct {
	Rows  []T `json:"rows"`
	Total int `json:"total"`
}

// ListCache serves list pages through the tiered cache.
type ListCache[T any] struct {
	tiers cache.Cache
	ttl   time.Duration
	m     *Metrics
}

// NewListCache creates a cache-aside front for one entity's list queries.
// tiers is the combined L1+L2 cache; ttl of zero means DefaultTTL.
func NewListCache[T any](tiers cache.Cache, ttl time.Duration, m *Metrics) *ListCache[T] {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &ListCache[T]{tiers: tiers, ttl: ttl, m: m}
}

// Get returns the cached page for key, if any. Backend errors and undecodable
// entries are treated as misses (fail open) and logged.
func (c *ListCache[T]) Get(ctx context.Context, key string) (Page[T], bool) {
	var page Page[T]

	data, found, err := c.tiers.Get(ctx, key)
	if err != nil {
		slog.WarnContext(ctx, "list cache read failed, falling through to store", "key", key, "error", err)
		c.m.miss(ctx)
		return page, false
	}
	if !found {
		c.m.miss(ctx)
		return page, false
	}
	if err := json.Unmarshal(data, &page); err != nil {
		slog.WarnContext(ctx, "list cache entry undecodable, treating as miss", "key", key, "error", err)
		c.m.miss(ctx)
		return page, false
	}
	c.m.hit(ctx)
	return page, true
}

// Set stores a page under key in both tiers with the configured TTL.
// Failures are logged and absorbed; the caller already has the page.
func (c *ListCache[T]) Set(ctx context.Context, key string, page Page[T]) {
	data, err := json.Marshal(page)
	if err != nil {
		slog.WarnContext(ctx, "list cache encode failed", "key", key, "error", err)
		return
	}
	if err := c.tiers.Set(ctx, key, data, c.ttl); err != nil {
		slog.WarnContext(ctx, "list cache write failed", "key", key, "error", err)
	}
}

// TTL reports the configured entry lifetime.
func (c *ListCache[T]) TTL() time.Duration { return c.ttl }
