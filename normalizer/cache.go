package normalizer

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/erraggy/oasnorm/oaserrors"
)

// Cache defaults. Entries are bounded three ways: count, approximate
// memory, and age.
const (
	defaultMaxEntries = 1000
	defaultMaxMemory  = 50 << 20 // 50 MiB
	defaultTTL        = 30 * time.Minute

	// fallbackEntrySize is charged when a cached value cannot be
	// serialized for measurement.
	fallbackEntrySize = 64
)

// Key addresses one cached transformation result by content: the
// structural hash of the input schema, the document version, the hash of
// the transformation-relevant options, and the transform kind.
type Key struct {
	SchemaHash  uint64
	Version     string
	OptionsHash uint64
	Kind        TransformKind
}

type cacheEntry struct {
	value    any
	storedAt time.Time
	// lastAccess is the cache's logical clock at the most recent hit;
	// the entry with the smallest value is the eviction victim.
	lastAccess uint64
	size       int
}

// Cache is a bounded, content-addressed store for transformation
// results. Eviction is least-recently-used by a monotonic access
// counter; expiry is checked lazily on read. Safe for concurrent use.
type Cache struct {
	mu         sync.Mutex
	entries    map[Key]*cacheEntry
	maxEntries int
	maxBytes   int
	ttl        time.Duration
	bytes      int
	hits       uint64
	misses     uint64
	clock      uint64
}

// CacheOption configures a Cache.
type CacheOption func(*Cache) error

// WithMaxEntries bounds the number of cached results.
func WithMaxEntries(n int) CacheOption {
	return func(c *Cache) error {
		if n <= 0 {
			return &oaserrors.ConfigError{
				Option:  "maxEntries",
				Value:   n,
				Message: "must be positive",
			}
		}
		c.maxEntries = n
		return nil
	}
}

// WithMaxMemory bounds the approximate total size of cached results in
// bytes.
func WithMaxMemory(bytes int) CacheOption {
	return func(c *Cache) error {
		if bytes <= 0 {
			return &oaserrors.ConfigError{
				Option:  "maxMemoryBytes",
				Value:   bytes,
				Message: "must be positive",
			}
		}
		c.maxBytes = bytes
		return nil
	}
}

// WithTTL bounds the age of cached results. Zero disables expiry.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *Cache) error {
		if ttl < 0 {
			return &oaserrors.ConfigError{
				Option:  "ttl",
				Value:   ttl,
				Message: "must not be negative",
			}
		}
		c.ttl = ttl
		return nil
	}
}

// NewCache creates a Cache with the default bounds, adjusted by the
// given options.
func NewCache(opts ...CacheOption) (*Cache, error) {
	c := &Cache{
		entries:    make(map[Key]*cacheEntry),
		maxEntries: defaultMaxEntries,
		maxBytes:   defaultMaxMemory,
		ttl:        defaultTTL,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

var (
	defaultCacheOnce sync.Once
	defaultCache     *Cache
)

// DefaultCache returns the process-wide cache used when no explicit
// cache is configured.
func DefaultCache() *Cache {
	defaultCacheOnce.Do(func() {
		defaultCache, _ = NewCache()
	})
	return defaultCache
}

// Get returns the cached value for key, if present and not expired.
// Hits refresh the entry's recency.
func (c *Cache) Get(key Key) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if ok && c.expired(e) {
		c.remove(key, e)
		ok = false
	}
	if !ok {
		c.misses++
		return nil, false
	}
	c.hits++
	c.clock++
	e.lastAccess = c.clock
	return e.value, true
}

// Set stores value under key, evicting least-recently-used entries as
// needed to stay within the count and memory bounds.
func (c *Cache) Set(key Key, value any) {
	size := approxSize(value)

	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.entries[key]; ok {
		c.remove(key, old)
	}
	for len(c.entries) > 0 && (len(c.entries) >= c.maxEntries || c.bytes+size > c.maxBytes) {
		c.evictOldest()
	}

	c.clock++
	c.entries[key] = &cacheEntry{
		value:      value,
		storedAt:   time.Now(),
		lastAccess: c.clock,
		size:       size,
	}
	c.bytes += size
}

// Has reports whether key is present and unexpired, without counting
// toward hit/miss statistics or refreshing recency.
func (c *Cache) Has(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return false
	}
	if c.expired(e) {
		c.remove(key, e)
		return false
	}
	return true
}

// Clear removes all entries and resets statistics.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[Key]*cacheEntry)
	c.bytes = 0
	c.hits = 0
	c.misses = 0
	c.clock = 0
}

// CacheStats is a point-in-time snapshot of cache effectiveness.
type CacheStats struct {
	// Hits is the number of successful lookups
	Hits uint64
	// Misses is the number of failed lookups
	Misses uint64
	// HitRate is hits as a percentage of all lookups (0 when none)
	HitRate float64
	// Entries is the current entry count
	Entries int
	// MemoryBytes is the approximate total size of cached values
	MemoryBytes int
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := CacheStats{
		Hits:        c.hits,
		Misses:      c.misses,
		Entries:     len(c.entries),
		MemoryBytes: c.bytes,
	}
	if total := c.hits + c.misses; total > 0 {
		stats.HitRate = float64(c.hits) / float64(total) * 100
	}
	return stats
}

// expired reports whether the entry has outlived the TTL. Callers hold
// the mutex.
func (c *Cache) expired(e *cacheEntry) bool {
	return c.ttl > 0 && time.Since(e.storedAt) > c.ttl
}

// remove deletes an entry and releases its memory accounting. Callers
// hold the mutex.
func (c *Cache) remove(key Key, e *cacheEntry) {
	delete(c.entries, key)
	c.bytes -= e.size
}

// evictOldest drops the entry with the smallest last-access stamp.
// Callers hold the mutex.
func (c *Cache) evictOldest() {
	var victim Key
	var victimEntry *cacheEntry
	for key, e := range c.entries {
		if victimEntry == nil || e.lastAccess < victimEntry.lastAccess {
			victim = key
			victimEntry = e
		}
	}
	if victimEntry != nil {
		c.remove(victim, victimEntry)
	}
}

// approxSize estimates the serialized size of a cached value.
func approxSize(v any) int {
	data, err := json.Marshal(v)
	if err != nil || len(data) == 0 {
		return fallbackEntrySize
	}
	return len(data)
}
