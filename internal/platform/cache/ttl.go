package cache

import (
	"strings"
	"sync"
	"time"
)

// TTL is a read-through cache with a fixed entry lifetime.
// Invalidation is coarse: callers drop every key sharing a prefix.
type TTL[V any] struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]ttlEntry[V]
	// gen advances on every InvalidatePrefix.
	gen uint64
}

type ttlEntry[V any] struct {
	value     V
	expiresAt time.Time
}

func NewTTL[V any](ttl time.Duration) *TTL[V] {
	return &TTL[V]{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]ttlEntry[V]),
	}
}

// WithClock swaps the time source. Tests use it to expire entries deterministically.
func (c *TTL[V]) WithClock(now func() time.Time) *TTL[V] {
	c.mu.Lock()
	defer c.mu.Unlock()
	if now != nil {
		c.now = now
	}
	return c
}

func (c *TTL[V]) TTL() time.Duration {
	return c.ttl
}

func (c *TTL[V]) Get(key string) (V, bool) {
	var zero V
	if c == nil || c.ttl <= 0 {
		return zero, false
	}

	c.mu.RLock()
	item, ok := c.entries[key]
	now := c.now()
	c.mu.RUnlock()

	if !ok {
		return zero, false
	}
	if !now.Before(item.expiresAt) {
		c.mu.Lock()
		if current, still := c.entries[key]; still && !now.Before(current.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return zero, false
	}
	return item.value, true
}

func (c *TTL[V]) Set(key string, value V) {
	if c == nil || c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = ttlEntry[V]{
		value:     value,
		expiresAt: c.now().Add(c.ttl),
	}
}

// Generation identifies the current invalidation epoch. Read-through callers
// capture it before loading a value and pass it to SetIfGeneration.
func (c *TTL[V]) Generation() uint64 {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen
}

// SetIfGeneration stores value only when no invalidation happened since gen
// was read, so a load that raced a write cannot repopulate stale data.
func (c *TTL[V]) SetIfGeneration(key string, value V, gen uint64) bool {
	if c == nil || c.ttl <= 0 {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		return false
	}
	c.entries[key] = ttlEntry[V]{
		value:     value,
		expiresAt: c.now().Add(c.ttl),
	}
	return true
}

// InvalidatePrefix removes every entry whose key starts with prefix and
// returns how many were dropped.
func (c *TTL[V]) InvalidatePrefix(prefix string) int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	removed := 0
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

func (c *TTL[V]) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
