package handler

import (
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// CachedPage is a rendered public page.
type CachedPage struct {
	Status int
	Body   []byte
}

// PageCache holds rendered public pages keyed by request path. A zero TTL
// disables caching.
type PageCache struct {
	items *gocache.Cache
	ttl   time.Duration
}

// NewPageCache creates a cache whose entries expire after ttl.
func NewPageCache(ttl time.Duration) *PageCache {
	cleanup := ttl * 2
	if cleanup <= 0 {
		cleanup = time.Minute
	}
	return &PageCache{items: gocache.New(ttl, cleanup), ttl: ttl}
}

// Get returns the cached page for path.
func (p *PageCache) Get(path string) (CachedPage, bool) {
	if p.ttl <= 0 {
		return CachedPage{}, false
	}
	value, ok := p.items.Get(path)
	if !ok {
		return CachedPage{}, false
	}
	page, ok := value.(CachedPage)
	return page, ok
}

// Set stores a rendered page.
func (p *PageCache) Set(path string, page CachedPage) {
	if p.ttl <= 0 {
		return
	}
	p.items.Set(path, page, gocache.DefaultExpiration)
}

// InvalidatePrefix drops every entry whose path starts with prefix.
func (p *PageCache) InvalidatePrefix(prefix string) int {
	removed := 0
	for key := range p.items.Items() {
		if strings.HasPrefix(key, prefix) {
			p.items.Delete(key)
			removed++
		}
	}
	return removed
}

// Invalidate drops a single path.
func (p *PageCache) Invalidate(path string) {
	p.items.Delete(path)
}

// Purge drops every entry.
func (p *PageCache) Purge() {
	p.items.Flush()
}

// Len reports the number of live entries.
func (p *PageCache) Len() int {
	return p.items.ItemCount()
}
