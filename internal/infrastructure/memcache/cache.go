package memcache

import (
	"context"
	"sync"
	"time"

	"langbot/internal/domain/entities"
	"langbot/internal/ports/output"
)

var _ output.TranslationCache = (*Cache)(nil)

// Cache is an in-process translation cache with the same sliding-TTL
// contract as the Redis store. It exists for local development without
// Redis and for tests; a deployment shares one Redis instead.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

type entry struct {
	translation entities.Translation
	ttl         time.Duration
	expiresAt   time.Time
}

// New creates an empty Cache.
func New() *Cache {
	return &Cache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (c *Cache) Get(ctx context.Context, fingerprint string) (*entities.Translation, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[fingerprint]
	if !ok {
		return nil, false, nil
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, fingerprint)
		return nil, false, nil
	}

	// Read extends lifetime, matching the Redis store.
	e.expiresAt = c.now().Add(e.ttl)
	c.entries[fingerprint] = e
	translation := e.translation
	return &translation, true, nil
}

func (c *Cache) Put(ctx context.Context, fingerprint string, translation *entities.Translation, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[fingerprint] = entry{
		translation: *translation,
		ttl:         ttl,
		expiresAt:   c.now().Add(ttl),
	}
	return nil
}
