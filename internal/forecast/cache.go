package forecast

import (
	"sync"
	"time"
)

// Cache is a concurrency-safe TTL cache of raw forecasts keyed by
// (coordinate, hour count). Entries older than the freshness window are
// treated as misses and swept by the janitor.
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]cacheEntry

	now func() time.Time
}

type cacheEntry struct {
	payload  Payload
	storedAt time.Time
}

// NewCache creates a Cache with the given freshness window.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Get returns the cached payload for key if it is still fresh.
func (c *Cache) Get(key string) (Payload, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || c.now().Sub(e.storedAt) > c.ttl {
		return nil, false
	}
	return e.payload, true
}

// Put stores a payload under key, replacing any previous entry.
func (c *Cache) Put(key string, payload Payload) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{payload: payload, storedAt: c.now()}
}

// Prune removes expired entries and returns how many were dropped.
func (c *Cache) Prune() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	dropped := 0
	cutoff := c.now().Add(-c.ttl)
	for key, e := range c.entries {
		if e.storedAt.Before(cutoff) {
			delete(c.entries, key)
			dropped++
		}
	}
	return dropped
}

// Len returns the number of stored entries, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
