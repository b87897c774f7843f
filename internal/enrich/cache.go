package enrich

import (
	"sync"
	"time"
)

// Cache is the lookup cache contract. Injected into the client so tests
// can observe or replace it; it lives entirely outside the game's
// transactional boundary.
type Cache interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

type ttlEntry struct {
	value  string
	expiry time.Time
}

// TTLCache is a mutex-guarded map with per-entry expiry checked at read
// time.
type TTLCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]ttlEntry
}

func NewTTLCache(ttl time.Duration) *TTLCache {
	return &TTLCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]ttlEntry),
	}
}

func (c *TTLCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if c.now().After(e.expiry) {
		delete(c.entries, key)
		return "", false
	}
	return e.value, true
}

func (c *TTLCache) Set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = ttlEntry{value: value, expiry: c.now().Add(c.ttl)}
}
