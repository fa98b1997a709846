package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/factgraph/factgraph/internal/model"
)

// MemoryCache implements in-memory row caching with TTL expiry.
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a new memory cache.
func NewMemoryCache(defaultTTL time.Duration, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a cached connection.
func (c *MemoryCache) Get(id string) (model.Connection, bool) {
	if val, found := c.cache.Get(id); found {
		return val.(model.Connection), true
	}
	return model.Connection{}, false
}

// Set stores a connection with the given TTL. A zero TTL uses the default.
func (c *MemoryCache) Set(id string, conn model.Connection, ttl time.Duration) {
	c.cache.Set(id, conn, ttl)
}

// Delete removes a connection from the cache.
func (c *MemoryCache) Delete(id string) {
	c.cache.Delete(id)
}

// Clear removes all cached connections.
func (c *MemoryCache) Clear() {
	c.cache.Flush()
}
