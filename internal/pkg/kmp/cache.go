package kmp

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/endorses/kmpcat/internal/pkg/logger"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of compiled matchers a Cache keeps when
// NewCache is given a non-positive size.
const DefaultCacheSize = 128

// cacheKey identifies a compiled matcher: the raw pattern plus its options.
type cacheKey struct {
	pattern string
	cfg     config
}

// Cache keeps recently used compiled matchers so repeated searches for the same
// pattern skip rebuilding the failure function. Matchers are immutable, so a
// cached Matcher can be handed to any number of goroutines.
//
// Cache is safe for concurrent use.
type Cache struct {
	matchers *lru.Cache[cacheKey, *Matcher]

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64

	// lastCompileDuration is the time the most recent miss spent in Compile.
	lastCompileDuration atomic.Int64
}

// NewCache creates a Cache holding at most size matchers.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}

	c := &Cache{}
	matchers, err := lru.NewWithEvict(size, func(key cacheKey, _ *Matcher) {
		c.evictions.Add(1)
		logger.Debug("Evicted compiled pattern", "pattern_len", len(key.pattern))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create matcher cache: %w", err)
	}
	c.matchers = matchers

	return c, nil
}

// Get returns the compiled matcher for pattern and opts, compiling it on a miss.
func (c *Cache) Get(pattern string, opts ...Option) *Matcher {
	key := cacheKey{pattern: pattern, cfg: newConfig(opts)}

	if m, ok := c.matchers.Get(key); ok {
		c.hits.Add(1)
		return m
	}
	c.misses.Add(1)

	startTime := time.Now()
	m := Compile(pattern, opts...)
	c.lastCompileDuration.Store(int64(time.Since(startTime)))

	// Two goroutines may race to compile the same key; both results are equivalent
	c.matchers.Add(key, m)
	return m
}

// Len returns the number of cached matchers.
func (c *Cache) Len() int {
	return c.matchers.Len()
}

// Purge drops every cached matcher.
func (c *Cache) Purge() {
	c.matchers.Purge()
}

// CacheStats reports cache effectiveness.
type CacheStats struct {
	Size                int
	Hits                uint64
	Misses              uint64
	Evictions           uint64
	LastCompileDuration time.Duration
}

// Stats returns current statistics.
func (c *Cache) Stats() CacheStats {
	return CacheStats{
		Size:                c.matchers.Len(),
		Hits:                c.hits.Load(),
		Misses:              c.misses.Load(),
		Evictions:           c.evictions.Load(),
		LastCompileDuration: time.Duration(c.lastCompileDuration.Load()),
	}
}
