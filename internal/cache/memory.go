package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"negscreen/internal/model"
)

// MemoryCache is the default DocumentCache backed by an expiring
// in-process store.
type MemoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache creates a cache whose entries expire after
// defaultTTL and are swept at cleanupInterval.
func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{store: gocache.New(defaultTTL, cleanupInterval)}
}

// Get returns the cached document for url, if present.
func (c *MemoryCache) Get(url string) (*model.FetchedDocument, bool) {
	if val, ok := c.store.Get(Key(url)); ok {
		return val.(*model.FetchedDocument), true
	}
	return nil, false
}

// Set stores doc under url for ttl; a non-positive ttl uses the
// cache default.
func (c *MemoryCache) Set(url string, doc *model.FetchedDocument, ttl time.Duration) {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	c.store.Set(Key(url), doc, ttl)
}

// Clear drops every cached document.
func (c *MemoryCache) Clear() {
	c.store.Flush()
}
