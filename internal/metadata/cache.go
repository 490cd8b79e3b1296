package metadata

import (
	"sync"
	"time"

	"github.com/nyanbar/nyanbar/internal/metadata/anilist"
)

// Cache provides in-memory caching with TTL for catalog results.
// It is owned by the Service; there is no package-level instance.
// Writes are last-write-wins, which is safe because repopulating a key
// with freshly fetched data is idempotent.
type Cache struct {
	mu    sync.RWMutex
	items map[string]cacheItem
	ttl   time.Duration
}

type cacheItem struct {
	value     interface{}
	expiresAt time.Time
}

// NewCache creates a new cache with the given TTL.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{
		items: make(map[string]cacheItem),
		ttl:   ttl,
	}
}

// Get retrieves an item from the cache. Expired items read as misses.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(item.expiresAt) {
		return nil, false
	}
	return item.value, true
}

// Set stores an item in the cache.
func (c *Cache) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = cacheItem{
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Delete removes an item from the cache.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Clear removes all items from the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]cacheItem)
}

// GetSummaries retrieves a cached anime summary list.
func (c *Cache) GetSummaries(key string) ([]anilist.AnimeSummary, bool) {
	val, ok := c.Get(key)
	if !ok {
		return nil, false
	}
	summaries, ok := val.([]anilist.AnimeSummary)
	return summaries, ok
}
