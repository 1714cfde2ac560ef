// internal/cache/ttl.go
package cache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ===============================
// IN-MEMORY TTL CACHE
// ===============================

// TTLCache is an in-memory cache with per-entry expiry and a bounded
// key count. When full it evicts the oldest inserted entry, not the
// least recently used one; re-setting an existing key keeps its
// original position in the insertion order.
type TTLCache[T any] struct {
	mu         sync.Mutex
	items      map[string]ttlEntry[T]
	order      []string
	maxKeys    int
	defaultTTL time.Duration
	logger     *zap.Logger
	stats      CacheStats

	// now is swappable so expiry is testable without sleeping.
	now func() time.Time
}

type ttlEntry[T any] struct {
	value     T
	expiresAt time.Time
}

// NewTTLCache creates a new in-memory TTL cache
func NewTTLCache[T any](config *Config, logger *zap.Logger) *TTLCache[T] {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ttl := config.TTL
	if ttl <= 0 {
		ttl = DefaultConfig().TTL
	}

	return &TTLCache[T]{
		items:      make(map[string]ttlEntry[T]),
		maxKeys:    config.MaxKeys,
		defaultTTL: ttl,
		logger:     logger,
		now:        time.Now,
	}
}

// Get retrieves a value from the cache
func (c *TTLCache[T]) Get(ctx context.Context, key string) (T, bool) {
	var zero T

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.items[key]
	if !exists {
		c.stats.Misses++
		return zero, false
	}

	if c.now().After(entry.expiresAt) {
		c.removeLocked(key)
		c.stats.Expired++
		c.stats.Misses++
		return zero, false
	}

	c.stats.Hits++
	return entry.value, true
}

// Set stores a value with the default TTL
func (c *TTLCache[T]) Set(ctx context.Context, key string, value T) error {
	return c.SetWithTTL(ctx, key, value, c.defaultTTL)
}

// SetWithTTL stores a value with an explicit TTL
func (c *TTLCache[T]) SetWithTTL(ctx context.Context, key string, value T, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry := ttlEntry[T]{value: value, expiresAt: c.now().Add(ttl)}

	if _, exists := c.items[key]; exists {
		// Existing keys keep their insertion-order slot.
		c.items[key] = entry
		c.stats.Sets++
		return nil
	}

	if c.maxKeys > 0 && len(c.items) >= c.maxKeys {
		c.evictOldestLocked()
	}

	c.items[key] = entry
	c.order = append(c.order, key)
	c.stats.Sets++
	return nil
}

// GetOrFetch returns the cached value or loads it via fetch.
// Concurrent misses for the same key each run their own fetch; the
// last one to finish wins.
func (c *TTLCache[T]) GetOrFetch(ctx context.Context, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	if value, ok := c.Get(ctx, key); ok {
		return value, nil
	}

	value, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	_ = c.Set(ctx, key, value)
	return value, nil
}

// Invalidate removes a single key
func (c *TTLCache[T]) Invalidate(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(key)
	return nil
}

// Clear removes all keys
func (c *TTLCache[T]) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]ttlEntry[T])
	c.order = c.order[:0]
	return nil
}

// Stats returns a snapshot of cache counters
func (c *TTLCache[T]) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	stats := c.stats
	stats.Keys = int64(len(c.items))
	return stats
}

// evictOldestLocked drops the oldest inserted live entry. Caller must
// hold the lock.
func (c *TTLCache[T]) evictOldestLocked() {
	if len(c.order) == 0 {
		return
	}
	oldest := c.order[0]
	c.order = c.order[1:]
	delete(c.items, oldest)
	c.stats.Evictions++
	c.logger.Debug("cache entry evicted", zap.String("key", oldest))
}

// removeLocked deletes key from the map and the insertion order.
// Caller must hold the lock.
func (c *TTLCache[T]) removeLocked(key string) {
	if _, exists := c.items[key]; !exists {
		return
	}
	delete(c.items, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
