// Package cache memoizes fetch results by call signature for a fixed
// time-to-live. An entry is reused until now - fetchedAt exceeds the
// TTL; after that the next caller recomputes it. Errors are never
// cached.
package cache

import (
	"sync"
	"time"

	"twiga-dash/internal/metrics"
)

type entry struct {
	value     any
	fetchedAt time.Time
}

type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time // overridable in tests
	entries map[string]entry
}

func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

// Do returns the cached value for operation+key when its entry is still
// within the TTL, otherwise calls fn and stores the result. The lock is
// held across fn, so at most one refresh runs at a time per cache.
func Do[T any](c *Cache, operation, key string, fn func() (T, error)) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := operation + "|" + key

	if e, ok := c.entries[k]; ok && c.now().Sub(e.fetchedAt) <= c.ttl {
		metrics.CacheHits.WithLabelValues(operation).Inc()
		return e.value.(T), nil
	}

	metrics.CacheMisses.WithLabelValues(operation).Inc()

	v, err := fn()
	if err != nil {
		var zero T
		return zero, err
	}

	c.entries[k] = entry{value: v, fetchedAt: c.now()}
	return v, nil
}

// SetClock replaces the cache's time source. Tests only.
func (c *Cache) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}
