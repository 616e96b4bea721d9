// Package ttlcache provides a synchronized in-memory key/value cache with a
// fixed time-to-live. Entries live for the lifetime of the process; a stale
// entry is simply overwritten by the caller's next Set.
package ttlcache

import (
	"strings"
	"sync"
	"time"
)

type entry struct {
	storedAt time.Time
	value    any
}

// Cache provides thread-safe access to TTL-bounded entries.
type Cache struct {
	ttl   time.Duration
	clock func() time.Time

	mu      sync.RWMutex
	entries map[string]entry
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock overrides the time source. Tests use this to age entries without
// sleeping.
func WithClock(clock func() time.Time) Option {
	return func(c *Cache) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// New creates a cache whose entries expire ttl after they are written.
func New(ttl time.Duration, opts ...Option) *Cache {
	c := &Cache{
		ttl:     ttl,
		clock:   time.Now,
		entries: make(map[string]entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the value for key if present and fresh.
func (c *Cache) Get(key string) (any, bool) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, false
	}

	c.mu.RLock()
	e, found := c.entries[key]
	c.mu.RUnlock()
	if !found {
		return nil, false
	}
	if c.clock().Sub(e.storedAt) >= c.ttl {
		return nil, false
	}
	return e.value, true
}

// Set stores value under key with a fresh timestamp, replacing any previous
// entry.
func (c *Cache) Set(key string, value any) {
	key = strings.TrimSpace(key)
	if key == "" {
		return
	}

	c.mu.Lock()
	c.entries[key] = entry{storedAt: c.clock(), value: value}
	c.mu.Unlock()
}

// Len reports the number of stored entries, fresh or stale.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
