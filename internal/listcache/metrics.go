package listcache

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "dealerdesk.listcache"

// Metrics holds the cache instruments. A nil *Metrics is valid and records
// nothing, which keeps tests and tools free of metric plumbing.
type Metrics struct {
	Hits          metric.Int64Counter
	Misses        metric.Int64Counter
	Purges        metric.Int64Counter
	PurgeFailures metric.Int64Counter
}

// NewMetrics creates the cache metric instruments on the global meter.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.Hits, err = meter.Int64Counter("dealerdesk.listcache.hits",
		metric.WithDescription("List-query cache hits"))
	if err != nil {
		return nil, err
	}

	m.Misses, err = meter.Int64Counter("dealerdesk.listcache.misses",
		metric.WithDescription("List-query cache misses, including fail-open reads"))
	if err != nil {
		return nil, err
	}

	m.Purges, err = meter.Int64Counter("dealerdesk.listcache.purges",
		metric.WithDescription("Tenant-scoped cache purges completed"))
	if err != nil {
		return nil, err
	}

	m.PurgeFailures, err = meter.Int64Counter("dealerdesk.listcache.purge_failures",
		metric.WithDescription("Tenant-scoped cache purges that failed (staleness bounded by TTL)"))
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Metrics) hit(ctx context.Context) {
	if m != nil {
		m.Hits.Add(ctx, 1)
	}
}

func (m *Metrics) miss(ctx context.Context) {
	if m != nil {
		m.Misses.Add(ctx, 1)
	}
}

func (m *Metrics) purge(ctx context.Context) {
	if m != nil {
		m.Purges.Add(ctx, 1)
	}
}

func (m *Metrics) purgeFailure(ctx context.Context) {
	if m != nil {
		m.PurgeFailures.Add(ctx, 1)
	}
}
