package geo

import (
	"context"
	"sync"
	"time"
)

// Cache defaults. Lookups repeat heavily across a batch (many candidates
// against the same job locations), so a small bounded cache removes most
// service calls.
const (
	DefaultCacheCapacity = 1000
	DefaultCacheTTL      = time.Hour
)

// cacheEntry is one cached distance result with its insertion time.
type cacheEntry struct {
	result   Result
	storedAt time.Time
}

// CachedDistancer wraps a Distancer with a bounded in-memory TTL cache.
// When the cache is full the oldest entry is evicted.
type CachedDistancer struct {
	inner    Distancer
	capacity int
	ttl      time.Duration

	mu      sync.RWMutex
	entries map[string]cacheEntry
}

// CacheConfig holds cache tuning knobs. Zero values use the defaults.
type CacheConfig struct {
	Capacity int
	TTL      time.Duration
}

// NewCachedDistancer wraps inner with a cache.
func NewCachedDistancer(inner Distancer, cfg CacheConfig) *CachedDistancer {
	capacity := cfg.Capacity
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedDistancer{
		inner:    inner,
		capacity: capacity,
		ttl:      ttl,
		entries:  make(map[string]cacheEntry, capacity),
	}
}

// Distance returns a cached result when fresh, otherwise delegates to the
// wrapped Distancer and caches the answer. Errors are never cached.
func (c *CachedDistancer) Distance(ctx context.Context, a, b Point, mode Mode) (Result, error) {
	key := cacheKey(a, b, mode)

	c.mu.RLock()
	entry, found := c.entries[key]
	c.mu.RUnlock()
	if found && time.Since(entry.storedAt) < c.ttl {
		return entry.result, nil
	}

	result, err := c.inner.Distance(ctx, a, b, mode)
	if err != nil {
		return Result{}, err
	}

	c.mu.Lock()
	if len(c.entries) >= c.capacity {
		c.evictOldest()
	}
	c.entries[key] = cacheEntry{result: result, storedAt: time.Now()}
	c.mu.Unlock()

	return result, nil
}

// Len reports the current number of cached entries.
func (c *CachedDistancer) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// evictOldest removes the entry with the earliest insertion time.
// Caller holds the write lock.
func (c *CachedDistancer) evictOldest() {
	var oldestKey string
	var oldestTime time.Time
	for key, entry := range c.entries {
		if oldestKey == "" || entry.storedAt.Before(oldestTime) {
			oldestKey = key
			oldestTime = entry.storedAt
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

func cacheKey(a, b Point, mode Mode) string {
	return formatPoint(a) + "|" + formatPoint(b) + "|" + string(mode)
}
