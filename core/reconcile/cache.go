package reconcile

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Snapshot is a built index plus the time it was built.
type Snapshot struct {
	// Index is the immutable catalog index.
	Index *Index

	// Built is the timestamp when this snapshot was built.
	Built time.Time

	// TTL is the time-to-live for this snapshot.
	TTL time.Duration
}

// IsExpired returns true if this snapshot has expired based on its TTL.
func (s *Snapshot) IsExpired(now time.Time) bool {
	if s.TTL == 0 {
		return true // No caching
	}
	return now.Sub(s.Built) > s.TTL
}

// Registry owns the catalog index snapshot of one service. It replaces any
// process-wide cache: each Registry instance is independent, so tests and
// concurrent services never share index state implicitly.
type Registry struct {
	lister CatalogLister
	ttl    time.Duration
	now    func() time.Time

	mu       sync.RWMutex
	snapshot *Snapshot
	sf       singleflight.Group
}

// NewRegistry creates a registry that loads catalog items from lister.
// A zero ttl disables caching and every Get builds a fresh index.
func NewRegistry(lister CatalogLister, ttl time.Duration) *Registry {
	return &Registry{lister: lister, ttl: ttl, now: time.Now}
}

// Get returns the current index, building a new one if none exists or it has expired.
// Uses singleflight so concurrent callers trigger a single catalog load.
func (r *Registry) Get(ctx context.Context) (*Index, error) {
	// Fast path: check if snapshot exists and is fresh
	r.mu.RLock()
	snap := r.snapshot
	r.mu.RUnlock()

	if snap != nil && !snap.IsExpired(r.now()) {
		return snap.Index, nil
	}

	result, err, _ := r.sf.Do("catalog", func() (interface{}, error) {
		// Double-check after acquiring singleflight lock
		r.mu.RLock()
		snap := r.snapshot
		r.mu.RUnlock()

		if snap != nil && !snap.IsExpired(r.now()) {
			return snap.Index, nil
		}

		items, err := r.lister.ListCatalogItems(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog items: %w", err)
		}

		idx := NewIndex(items)
		if r.ttl > 0 {
			r.mu.Lock()
			r.snapshot = &Snapshot{Index: idx, Built: r.now(), TTL: r.ttl}
			r.mu.Unlock()
		}
		return idx, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*Index), nil
}

// Invalidate drops the cached snapshot so the next Get reloads the catalog.
func (r *Registry) Invalidate() {
	r.mu.Lock()
	r.snapshot = nil
	r.mu.Unlock()
}

// Snapshot returns the cached snapshot, or nil when none is held.
func (r *Registry) Snapshot() *Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot
}
