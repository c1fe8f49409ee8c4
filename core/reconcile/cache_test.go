package reconcile

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"catalog-insights/core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingLister returns a fixed catalog and counts loads.
type countingLister struct {
	calls atomic.Int32
	items []models.CatalogItem
	err   error
}

func (l *countingLister) ListCatalogItems(ctx context.Context) ([]models.CatalogItem, error) {
	l.calls.Add(1)
	if l.err != nil {
		return nil, l.err
	}
	return l.items, nil
}

func TestRegistry_CachesWithinTTL(t *testing.T) {
	lister := &countingLister{items: []models.CatalogItem{{ID: "c1", Name: "Ubuntu"}}}
	reg := NewRegistry(lister, 5*time.Minute)

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	reg.now = func() time.Time { return now }

	first, err := reg.Get(context.Background())
	require.NoError(t, err)
	second, err := reg.Get(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), lister.calls.Load())
	require.NotNil(t, reg.Snapshot())
	assert.Equal(t, now, reg.Snapshot().Built)

	// Expire the snapshot
	now = now.Add(6 * time.Minute)
	third, err := reg.Get(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, int32(2), lister.calls.Load())
}

func TestRegistry_Invalidate(t *testing.T) {
	lister := &countingLister{items: []models.CatalogItem{{ID: "c1"}}}
	reg := NewRegistry(lister, time.Hour)

	_, err := reg.Get(context.Background())
	require.NoError(t, err)

	reg.Invalidate()
	assert.Nil(t, reg.Snapshot())

	_, err = reg.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), lister.calls.Load())
}

func TestRegistry_ZeroTTLAlwaysRebuilds(t *testing.T) {
	lister := &countingLister{}
	reg := NewRegistry(lister, 0)

	for i := 0; i < 3; i++ {
		idx, err := reg.Get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, idx.Len())
	}
	assert.Equal(t, int32(3), lister.calls.Load())
	assert.Nil(t, reg.Snapshot())
}

func TestRegistry_LoadError(t *testing.T) {
	lister := &countingLister{err: fmt.Errorf("catalog unavailable")}
	reg := NewRegistry(lister, time.Minute)

	idx, err := reg.Get(context.Background())
	assert.Nil(t, idx)
	assert.ErrorContains(t, err, "catalog unavailable")
	assert.Nil(t, reg.Snapshot())
}

func TestRegistry_ConcurrentGet(t *testing.T) {
	lister := &countingLister{items: []models.CatalogItem{{ID: "c1"}}}
	reg := NewRegistry(lister, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			idx, err := reg.Get(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, 1, idx.Len())
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), lister.calls.Load())
}

func TestIsolatedRegistries(t *testing.T) {
	a := NewRegistry(CatalogListerFunc(func(ctx context.Context) ([]models.CatalogItem, error) {
		return []models.CatalogItem{{ID: "a"}}, nil
	}), time.Minute)
	b := NewRegistry(CatalogListerFunc(func(ctx context.Context) ([]models.CatalogItem, error) {
		return []models.CatalogItem{{ID: "b1"}, {ID: "b2"}}, nil
	}), time.Minute)

	ia, err := a.Get(context.Background())
	require.NoError(t, err)
	ib, err := b.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, ia.Len())
	assert.Equal(t, 2, ib.Len())
}
