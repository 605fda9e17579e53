package cache

import (
	"sync"
	"time"
)

type entry[T any] struct {
	value    T
	expireAt time.Time
}

// TTL memoizes loaded values per key for a fixed time. A zero ttl disables caching.
type TTL[T any] struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry[T]
}

func NewTTL[T any](ttl time.Duration) *TTL[T] {
	return &TTL[T]{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry[T]),
	}
}

// Get returns the cached value for key, calling load when it is missing or
// expired. Load errors are not cached.
func (c *TTL[T]) Get(key string, load func() (T, error)) (T, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && c.now().Before(e.expireAt) {
		return e.value, nil
	}

	v, err := load()
	if err != nil {
		var zero T
		return zero, err
	}

	if c.ttl > 0 {
		c.mu.Lock()
		c.entries[key] = entry[T]{value: v, expireAt: c.now().Add(c.ttl)}
		c.mu.Unlock()
	}

	return v, nil
}

func (c *TTL[T]) Invalidate() {
	c.mu.Lock()
	clear(c.entries)
	c.mu.Unlock()
}
