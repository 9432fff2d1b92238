// Package derived caches summarizer and advisory results. Entries are keyed
// by the tuple of causally relevant inputs, never by the raw forecast
// payload, whose identity churns on every fetch and would thrash the cache.
// A superseding input change simply produces a new key; stale entries age
// out and are swept by the janitor.
package derived

import (
	"context"
	"fmt"
	"sync"
	"time"

	"familyweather/internal/dayparts"
)

// Key identifies one derived result. HasCoords distinguishes "no location"
// from coordinate (0, 0). Family is empty for summarizer results, so editing
// the family context leaves them untouched.
type Key struct {
	Kind      string
	DayPart   dayparts.Part
	HasCoords bool
	Lat       float64
	Lng       float64
	Timezone  string
	Family    string
}

// String renders the canonical cache key. Coordinates are rounded so GPS
// jitter between refreshes maps to the same entry.
func (k Key) String() string {
	coords := "none"
	if k.HasCoords {
		coords = fmt.Sprintf("%.3f:%.3f", k.Lat, k.Lng)
	}
	return fmt.Sprintf("%s|%s|%s|%s|%s", k.Kind, k.DayPart, coords, k.Timezone, k.Family)
}

// Cache is a TTL cache with in-flight deduplication: concurrent requests for
// the same key share a single computation.
type Cache struct {
	mu       sync.Mutex
	ttl      time.Duration
	entries  map[string]entry
	inflight map[string]*call

	now func() time.Time
}

type entry struct {
	value    any
	storedAt time.Time
}

type call struct {
	done chan struct{}
	val  any
	err  error
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:      ttl,
		entries:  make(map[string]entry),
		inflight: make(map[string]*call),
		now:      time.Now,
	}
}

// Do returns the cached value for key or computes it via fn. The boolean
// reports a cache hit. Failed computations are not cached.
func (c *Cache) Do(ctx context.Context, key string, fn func() (any, error)) (any, bool, error) {
	c.mu.Lock()

	if e, ok := c.entries[key]; ok && c.now().Sub(e.storedAt) <= c.ttl {
		c.mu.Unlock()
		return e.value, true, nil
	}

	if cl, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		select {
		case <-cl.done:
			return cl.val, false, cl.err
		case <-ctx.Done():
			return nil, false, ctx.Err()
		}
	}

	cl := &call{done: make(chan struct{})}
	c.inflight[key] = cl
	c.mu.Unlock()

	cl.val, cl.err = fn()
	close(cl.done)

	c.mu.Lock()
	delete(c.inflight, key)
	if cl.err == nil {
		c.entries[key] = entry{value: cl.val, storedAt: c.now()}
	}
	c.mu.Unlock()

	return cl.val, false, cl.err
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
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
