package currency

import (
	"fmt"
	"sync"
	"time"
)

// rateCacheEntry is one cached pair rate. Entries expire TTL after creation
// and are evicted lazily on the next lookup for that key.
type rateCacheEntry struct {
	rate      float64
	timestamp time.Time
	expiresAt time.Time
}

// RateCache is a mutex-guarded TTL cache for exchange-rate pairs, keyed by
// "{from}_{to}". The clock is injectable for deterministic tests.
type RateCache struct {
	mu      sync.Mutex
	entries map[string]rateCacheEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewRateCache creates a cache with the given TTL.
func NewRateCache(ttl time.Duration) *RateCache {
	return &RateCache{
		entries: make(map[string]rateCacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// SetClock overrides the cache clock. Intended for tests.
func (c *RateCache) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

func cacheKey(from, to string) string {
	return fmt.Sprintf("%s_%s", from, to)
}

// Get returns the cached rate for a pair, evicting it first if expired.
func (c *RateCache) Get(from, to string) (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(from, to)
	entry, ok := c.entries[key]
	if !ok {
		return 0, false
	}
	if c.now().After(entry.expiresAt) {
		delete(c.entries, key)
		return 0, false
	}
	return entry.rate, true
}

// Put stores a pair rate with the cache TTL.
func (c *RateCache) Put(from, to string, rate float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.entries[cacheKey(from, to)] = rateCacheEntry{
		rate:      rate,
		timestamp: now,
		expiresAt: now.Add(c.ttl),
	}
}

// Len returns the number of cached entries, expired or not.
func (c *RateCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
