package tiered_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dealerdesk/dealerdesk/internal/adapter/tiered"
)

// memCache is a simple in-memory cache for testing.
type memCache struct {
	data   map[string][]byte
	getErr error
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (m *memCache) Get(_ context.Context, key string) (data []byte, ok bool, err error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func TestTiered_L1Hit(t *testing.T) {
	l1 := newMemCache()
	l2 := newMemCache()
	c := tiered.New(l1, l2, 5*time.Minute)
	ctx := context.Background()

	l1.data["key1"] = []byte("val1")

	val, found, err := c.Get(ctx, "key1")
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Fatal("expected L1 hit")
	}
	if string(val) != "val1" {
		t.Fatalf("expected val1, got %s", val)
	}
}

func TestTiered_L2HitWithBackfill(t *testing.T) {
	l1 := newMemCache()
	l2 := newMemCache()
	c := tiered.New(l1, l2, 5*time.Minute)
	ctx := context.Background()

	l2.data["key2"] = []byte("val2")

	val, found, err := c.Get(ctx, "key2")
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Fatal("expected L2 hit")
	}
	if string(val) != "val2" {
		t.Fatalf("expected val2, got %s", val)
	}

	if _, ok := l1.data["key2"]; !ok {
		t.Fatal("expected L1 backfill")
	}
}

func TestTiered_MissInBoth(t *testing.T) {
	c := tiered.New(newMemCache(), newMemCache(), 5*time.Minute)

	_, found, err := c.Get(context.Background(), "absent")
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Fatal("expected overall miss")
	}
}

func TestTiered_L1ErrorDoesNotMaskL2Hit(t *testing.T) {
	l1 := newMemCache()
	l1.getErr = errors.New("l1 broken")
	l2 := newMemCache()
	l2.data["key3"] = []byte("val3")
	c := tiered.New(l1, l2, 5*time.Minute)

	val, found, err := c.Get(context.Background(), "key3")
	if err != nil {
		t.Fatal(err)
	}
	if !found || string(val) != "val3" {
		t.Fatalf("expected L2 hit despite L1 error, got found=%v val=%s", found, val)
	}
}

func TestTiered_SetAndDeleteBothLevels(t *testing.T) {
	l1 := newMemCache()
	l2 := newMemCache()
	c := tiered.New(l1, l2, 5*time.Minute)
	ctx := context.Background()

	if err := c.Set(ctx, "key4", []byte("val4"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if _, ok := l1.data["key4"]; !ok {
		t.Fatal("expected Set in L1")
	}
	if _, ok := l2.data["key4"]; !ok {
		t.Fatal("expected Set in L2")
	}

	if err := c.Delete(ctx, "key4"); err != nil {
		t.Fatal(err)
	}
	if _, ok := l1.data["key4"]; ok {
		t.Fatal("expected Delete from L1")
	}
	if _, ok := l2.data["key4"]; ok {
		t.Fatal("expected Delete from L2")
	}
}
