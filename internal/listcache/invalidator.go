package listcache

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/dealerdesk/dealerdesk/internal/port/cache"
)

// purgeParallelism bounds concurrent key deletions during a purge.
const purgeParallelism = 8

// Invalidator removes every cached list page belonging to a tenant from
// both cache tiers. Point deletion is impossible because keys embed
// arbitrary query parameters, so one mutation purges the tenant's whole
// list namespace.
//
// The purge runs after the store write has committed. A read racing into
// that gap can repopulate pre-mutation data; the entry TTL bounds how long
// it survives.
type Invalidator struct {
	l1   cache.Cache
	l2   cache.Cache
	enum cache.Enumerator // nil when l2 cannot enumerate keys
	m    *Metrics
}

// NewInvalidator wires an invalidator over the two cache tiers. When the
// shared tier does not support key enumeration, invalidation degrades to
// TTL-only staleness bounds; that is a deployment decision worth a loud
// startup log, not a silent fallback.
func NewInvalidator(l1, l2 cache.Cache, m *Metrics) *Invalidator {
	inv := &Invalidator{l1: l1, l2: l2, m: m}
	if e, ok := l2.(cache.Enumerator); ok {
		inv.enum = e
	} else {
		slog.Warn("shared cache tier does not support key enumeration; " +
			"list invalidation is TTL-only and mutations may serve stale pages until expiry")
	}
	return inv
}

// Purge deletes every cached list page for the tenant's entity namespace
// from both tiers. It is called synchronously after each successful
// mutation and never returns an error to the caller: the write has already
// committed, and a missed purge degrades to stale reads bounded by the TTL.
func (inv *Invalidator) Purge(ctx context.Context, entity, tenant string) {
	if inv.enum == nil {
		return
	}

	pattern := TenantPattern(entity, tenant)
	keys, err := inv.enum.Keys(ctx, pattern)
	if err != nil {
		slog.ErrorContext(ctx, "cache purge scan failed; stale pages persist until TTL expiry",
			"pattern", pattern, "error", err)
		inv.m.purgeFailure(ctx)
		return
	}
	if len(keys) == 0 {
		inv.m.purge(ctx)
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(purgeParallelism)
	for _, key := range keys {
		g.Go(func() error {
			// Both tiers are attempted per key; a failed shared-tier
			// delete must not leave the local tier serving the entry.
			err1 := inv.l1.Delete(gctx, key)
			err2 := inv.l2.Delete(gctx, key)
			if err1 != nil {
				return err1
			}
			return err2
		})
	}
	if err := g.Wait(); err != nil {
		slog.ErrorContext(ctx, "cache purge incomplete; stale pages persist until TTL expiry",
			"pattern", pattern, "keys", len(keys), "error", err)
		inv.m.purgeFailure(ctx)
		return
	}

	slog.DebugContext(ctx, "cache purged", "pattern", pattern, "keys", len(keys))
	inv.m.purge(ctx)
}
