package resolution

import (
	"context"
	"sync"
	"time"
)

// Entry is a cached lookup outcome. A nil Tenant records a negative result
// so that repeated lookups for nonexistent tenants are absorbed within the
// TTL window.
type Entry struct {
	Tenant *Tenant
}

// Negative reports whether the entry records "not found".
func (e Entry) Negative() bool { return e.Tenant == nil }

// Cache stores lookup outcomes keyed by slug or custom domain. Entries
// expire after the cache's TTL; expiry is checked lazily on Get rather than
// by background sweep, so a stale entry is simply ignored and overwritten by
// the next Set.
//
// The cache provides best-effort de-duplication only: concurrent misses for
// the same key may each query the provider and each Set the result. That is
// acceptable because lookups are idempotent.
type Cache interface {
	// Get returns the cached entry for key, if present and fresh.
	Get(ctx context.Context, key string) (Entry, bool)

	// Set stores an entry (positive or negative) for key.
	Set(ctx context.Context, key string, entry Entry)

	// Invalidate drops the entry for key. Admin flows call this when a
	// tenant record changes so routing does not serve stale data for a
	// full TTL window.
	Invalidate(ctx context.Context, key string)

	// Close releases any resources held by the cache.
	Close() error
}

// DefaultCacheTTL bounds how long a lookup outcome may be reused.
const DefaultCacheTTL = 5 * time.Minute

// DefaultCacheSize bounds the in-memory cache to protect against hostile
// hostnames inflating the key space.
const DefaultCacheSize = 10000

type memoryCache struct {
	mu      sync.RWMutex
	items   map[string]memoryEntry
	order   []string // insertion order, used for eviction when full
	ttl     time.Duration
	maxSize int
	now     func() time.Time
}

type memoryEntry struct {
	entry      Entry
	insertedAt time.Time
}

// NewMemoryCache creates an in-memory cache with the given TTL. Non-positive
// TTL falls back to DefaultCacheTTL.
func NewMemoryCache(ttl time.Duration) Cache {
	return newMemoryCache(ttl, DefaultCacheSize, time.Now)
}

func newMemoryCache(ttl time.Duration, maxSize int, now func() time.Time) *memoryCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}
	return &memoryCache{
		items:   make(map[string]memoryEntry),
		ttl:     ttl,
		maxSize: maxSize,
		now:     now,
	}
}

func (c *memoryCache) Get(ctx context.Context, key string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, ok := c.items[key]
	if !ok {
		return Entry{}, false
	}
	if c.now().Sub(item.insertedAt) > c.ttl {
		// Expired entries stay in place until the next Set overwrites them.
		return Entry{}, false
	}
	return item.entry, true
}

func (c *memoryCache) Set(ctx context.Context, key string, entry Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[key]; !exists {
		if len(c.items) >= c.maxSize && len(c.order) > 0 {
			evict := c.order[0]
			c.order = c.order[1:]
			delete(c.items, evict)
		}
		c.order = append(c.order, key)
	}
	c.items[key] = memoryEntry{entry: entry, insertedAt: c.now()}
}

func (c *memoryCache) Invalidate(ctx context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[key]; !ok {
		return
	}
	delete(c.items, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *memoryCache) Close() error { return nil }

// noOpCache disables caching; every Get is a miss. Useful in tests.
type noOpCache struct{}

// NewNoOpCache creates a cache that doesn't cache.
func NewNoOpCache() Cache { return &noOpCache{} }

func (noOpCache) Get(ctx context.Context, key string) (Entry, bool) { return Entry{}, false }
func (noOpCache) Set(ctx context.Context, key string, entry Entry)  {}
func (noOpCache) Invalidate(ctx context.Context, key string)        {}
func (noOpCache) Close() error                                      { return nil }
