package placecache

import (
	"context"
	"sync"
	"time"

	"github.com/lequoctrung8581/weather-app-group-project-asm3/internal/domain/dashboard"
)

type cachedPlace struct {
	place      dashboard.Place
	resolvedAt time.Time
}

// MemoryCache is an in-process place cache for tests/dev and as fallback
// when Postgres is unavailable.
type MemoryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]cachedPlace
	now     func() time.Time
}

// NewMemoryCache constructs a cache backed by process memory. A zero ttl
// means entries never expire.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		entries: make(map[string]cachedPlace),
		now:     time.Now,
	}
}

// Lookup implements dashboard.PlaceCache.
func (c *MemoryCache) Lookup(_ context.Context, query string) (*dashboard.Place, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[query]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if c.ttl > 0 && c.now().Sub(entry.resolvedAt) > c.ttl {
		c.mu.Lock()
		delete(c.entries, query)
		c.mu.Unlock()
		return nil, false, nil
	}
	place := entry.place
	return &place, true, nil
}

// Store implements dashboard.PlaceCache.
func (c *MemoryCache) Store(_ context.Context, query string, place dashboard.Place) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[query] = cachedPlace{place: place, resolvedAt: c.now()}
	return nil
}

var _ dashboard.PlaceCache = (*MemoryCache)(nil)
