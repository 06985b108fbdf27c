package cache

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// TTLCache is a string-keyed in-memory cache with per-entry expiry. There is
// no eviction beyond time-based expiry: the dataset is small and
// single-tenant, so LRU bookkeeping buys nothing. Concurrent miss-and-populate
// races are collapsed by GetOrLoad's single-flight group; plain Set is
// last-writer-wins.
type TTLCache[V any] struct {
	mu      sync.RWMutex
	entries map[string]entry[V]
	group   singleflight.Group
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// New creates an empty cache.
func New[V any]() *TTLCache[V] {
	return &TTLCache[V]{
		entries: make(map[string]entry[V]),
	}
}

// Get returns the cached value for key, or false if absent or expired.
func (c *TTLCache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(e.expiresAt) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key for ttl.
func (c *TTLCache[V]) Set(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = entry[V]{value: value, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
}

// Invalidate drops the entry for key before its expiry.
func (c *TTLCache[V]) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// GetOrLoad returns the cached value for key, loading and caching it via
// load on a miss. Concurrent misses for the same key share one load call;
// the lock is never held across it. A load error is returned without
// caching anything.
func (c *TTLCache[V]) GetOrLoad(key string, ttl time.Duration, load func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		// Double check: another flight may have populated the entry
		// between our miss and acquiring the flight.
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		v, err := load()
		if err != nil {
			return nil, err
		}
		c.Set(key, v, ttl)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return v.(V), nil
}
