package darkcss

import (
	"sync"
	"time"

	"github.com/zeebo/xxh3"
)

// CacheKey identifies a Render input: a hash of the markup plus the flags
// that change the verdict.
type CacheKey struct {
	Hash  uint64
	Flags uint8
}

const (
	flagNewsletter uint8 = 1 << iota
	flagPlainText
	flagForceOff
)

// KeyFor derives the cache key of in.
func KeyFor(in Input) CacheKey {
	var flags uint8
	if in.IsNewsletter {
		flags |= flagNewsletter
	}
	if in.IsPlainText {
		flags |= flagPlainText
	}
	if in.Preference == ForceOff {
		flags |= flagForceOff
	}
	return CacheKey{Hash: xxh3.HashString(in.HTML), Flags: flags}
}

// Cache memoizes Render results. Implementations must be safe for concurrent use.
type Cache interface {
	Get(key CacheKey) (Output, bool)
	Put(key CacheKey, out Output)
}

type cacheEntry struct {
	out     Output
	created time.Time
}

// MemoryCache is a bounded in-process Cache. When full, the oldest entry is
// evicted; entries older than the TTL are treated as misses.
type MemoryCache struct {
	mu         sync.RWMutex
	now        func() time.Time
	maxEntries int
	ttl        time.Duration
	data       map[CacheKey]cacheEntry
}

// NewMemoryCache returns a cache holding at most maxEntries results
// (unbounded when <= 0). A ttl <= 0 never expires entries. now may be nil.
func NewMemoryCache(maxEntries int, ttl time.Duration, now func() time.Time) *MemoryCache {
	if now == nil {
		now = time.Now
	}
	return &MemoryCache{
		now:        now,
		maxEntries: maxEntries,
		ttl:        ttl,
		data:       make(map[CacheKey]cacheEntry),
	}
}

func (c *MemoryCache) Get(key CacheKey) (Output, bool) {
	c.mu.RLock()
	entry, ok := c.data[key]
	c.mu.RUnlock()
	if !ok {
		return Output{}, false
	}
	if c.expired(entry) {
		c.mu.Lock()
		if cur, still := c.data[key]; still && c.expired(cur) {
			delete(c.data, key)
		}
		c.mu.Unlock()
		return Output{}, false
	}
	return entry.out, true
}

func (c *MemoryCache) Put(key CacheKey, out Output) {
	entry := cacheEntry{out: out, created: c.now()}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.data[key]; !exists && c.maxEntries > 0 {
		for len(c.data) >= c.maxEntries {
			c.evictOldestLocked()
		}
	}
	c.data[key] = entry
}

// Len reports the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

func (c *MemoryCache) expired(entry cacheEntry) bool {
	return c.ttl > 0 && c.now().Sub(entry.created) > c.ttl
}

func (c *MemoryCache) evictOldestLocked() {
	var (
		oldestKey CacheKey
		oldest    time.Time
		found     bool
	)
	for k, e := range c.data {
		if !found || e.created.Before(oldest) {
			oldestKey, oldest, found = k, e.created, true
		}
	}
	if found {
		delete(c.data, oldestKey)
	}
}
