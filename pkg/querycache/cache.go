// Package querycache decorates a built slimfilter.SlimFilter with an
// LRU of recent Contains results, for workloads that probe a hot set
// of keys repeatedly. It is an optional, additive wrapper: the
// underlying filter's Contains path stays allocation-free regardless
// of whether a caller reaches for this decorator.
package querycache

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/xflash-panda/slimfilter/pkg/slimfilter"
)

// DefaultCacheSize is the default number of recent queries remembered.
const DefaultCacheSize = 1024

// CachedFilter wraps a *slimfilter.SlimFilter with an LRU cache of
// recent Contains results.
type CachedFilter struct {
	filter *slimfilter.SlimFilter
	cache  *lru.Cache[uint64, bool]
	mu     sync.RWMutex
}

// NewCachedFilter creates a cached wrapper with the default cache size.
func NewCachedFilter(filter *slimfilter.SlimFilter) (*CachedFilter, error) {
	return NewCachedFilterWithSize(filter, DefaultCacheSize)
}

// NewCachedFilterWithSize creates a cached wrapper with a custom cache
// size.
func NewCachedFilterWithSize(filter *slimfilter.SlimFilter, cacheSize int) (*CachedFilter, error) {
	cache, err := lru.New[uint64, bool](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create LRU cache: %w", err)
	}
	return &CachedFilter{
		filter: filter,
		cache:  cache,
	}, nil
}

// Contains reports whether key might be a member, consulting the cache
// before falling back to the underlying filter.
func (c *CachedFilter) Contains(key uint64) bool {
	c.mu.RLock()
	if present, ok := c.cache.Get(key); ok {
		c.mu.RUnlock()
		return present
	}
	c.mu.RUnlock()

	present := c.filter.Contains(key)

	c.mu.Lock()
	c.cache.Add(key, present)
	c.mu.Unlock()

	return present
}

// ClearCache discards all cached results without touching the
// underlying filter.
func (c *CachedFilter) ClearCache() {
	c.mu.Lock()
	c.cache.Purge()
	c.mu.Unlock()
}

// CacheLen returns the number of entries currently cached.
func (c *CachedFilter) CacheLen() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cache.Len()
}
