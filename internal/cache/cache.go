// Package cache provides a small in-memory TTL cache for proxied upstream
// responses, so repeated lookups for the same symbol inside the TTL window
// cost one upstream round-trip.
package cache

import (
	"strings"
	"sync"
	"time"
)

// CachedResponse holds one cached upstream response.
type CachedResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// entry wraps a cached response with expiry and insertion order tracking.
type entry struct {
	resp      *CachedResponse
	expiry    time.Time
	insertIdx int64
}

// ResponseCache caches proxied API responses keyed by endpoint and symbol.
// Expiry is lazy; eviction at capacity removes the oldest insertion.
// Thread-safe with sync.RWMutex.
type ResponseCache struct {
	mu         sync.RWMutex
	items      map[string]entry
	ttl        time.Duration
	maxEntries int
	nextIdx    int64
}

// New creates a ResponseCache with the given TTL and max entry count.
func New(ttl time.Duration, maxEntries int) *ResponseCache {
	return &ResponseCache{
		items:      make(map[string]entry),
		ttl:        ttl,
		maxEntries: maxEntries,
	}
}

// MakeKey builds a cache key from the upstream endpoint and the symbol.
func MakeKey(endpoint, symbol string) string {
	return endpoint + ":" + symbol
}

// Get returns a cached response if found and not expired.
func (c *ResponseCache) Get(key string) (*CachedResponse, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if time.Now().After(e.expiry) {
		// Expired: remove lazily
		c.mu.Lock()
		if e2, ok2 := c.items[key]; ok2 && time.Now().After(e2.expiry) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return nil, false
	}

	return e.resp, true
}

// Set stores a response in the cache. Evicts the oldest entry if at capacity.
func (c *ResponseCache) Set(key string, resp *CachedResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := entry{
		resp:      resp,
		expiry:    time.Now().Add(c.ttl),
		insertIdx: c.nextIdx,
	}
	c.nextIdx++

	// If key already exists, update in place (no capacity change)
	if _, exists := c.items[key]; exists {
		c.items[key] = e
		return
	}

	// Evict oldest if at capacity
	if len(c.items) >= c.maxEntries {
		c.evictOldest()
	}

	c.items[key] = e
}

// InvalidatePrefix removes all entries for the given endpoint prefix.
func (c *ResponseCache) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.items {
		if strings.HasPrefix(key, prefix) {
			delete(c.items, key)
		}
	}
}

// Len returns the current number of cached entries.
func (c *ResponseCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// evictOldest removes the entry with the lowest insertIdx. Must be called with mu held.
func (c *ResponseCache) evictOldest() {
	var oldestKey string
	var oldestIdx int64 = -1

	for key, e := range c.items {
		if oldestIdx == -1 || e.insertIdx < oldestIdx {
			oldestIdx = e.insertIdx
			oldestKey = key
		}
	}

	if oldestKey != "" {
		delete(c.items, oldestKey)
	}
}
