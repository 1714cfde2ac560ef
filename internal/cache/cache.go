// internal/cache/cache.go
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ===============================
// CACHE INTERFACE
// ===============================

// Cache defines the caching interface. Services receive their own
// typed instance; nothing in this package is a process-wide singleton.
type Cache[T any] interface {
	// Get returns the cached value for key. Expired entries count as
	// misses and are evicted on read.
	Get(ctx context.Context, key string) (T, bool)

	// Set stores a value under key with the default TTL.
	Set(ctx context.Context, key string, value T) error

	// SetWithTTL stores a value under key with an explicit TTL.
	SetWithTTL(ctx context.Context, key string, value T, ttl time.Duration) error

	// GetOrFetch returns the cached value or loads it via fetch and
	// caches the result. Fetch errors are returned uncached.
	GetOrFetch(ctx context.Context, key string, fetch func(ctx context.Context) (T, error)) (T, error)

	// Invalidate removes a single key.
	Invalidate(ctx context.Context, key string) error

	// Clear removes every key this cache owns.
	Clear(ctx context.Context) error

	// Stats returns a snapshot of cache counters.
	Stats() CacheStats
}

// CacheStats represents cache statistics
type CacheStats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Sets      int64 `json:"sets"`
	Evictions int64 `json:"evictions"`
	Expired   int64 `json:"expired"`
	Keys      int64 `json:"keys"`
}

// HitRatio returns hits as a fraction of all lookups.
func (s CacheStats) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// ===============================
// CACHE CONFIGURATION
// ===============================

// Config holds cache configuration
type Config struct {
	Provider string        `json:"provider" yaml:"provider"` // "memory", "redis"
	TTL      time.Duration `json:"ttl" yaml:"ttl"`           // Default TTL
	MaxKeys  int           `json:"max_keys" yaml:"max_keys"` // Max keys in memory cache

	// Redis configuration
	RedisURL      string `json:"redis_url" yaml:"redis_url"`
	RedisDB       int    `json:"redis_db" yaml:"redis_db"`
	RedisPassword string `json:"redis_password" yaml:"redis_password"`
	PoolSize      int    `json:"pool_size" yaml:"pool_size"`

	// KeyPrefix namespaces this instance's keys in shared backends.
	KeyPrefix string `json:"key_prefix" yaml:"key_prefix"`
}

// DefaultConfig returns a default cache configuration
func DefaultConfig() *Config {
	return &Config{
		Provider: "memory",
		TTL:      15 * time.Minute,
		MaxKeys:  1000,
		PoolSize: 10,
	}
}

// ===============================
// CACHE FACTORY
// ===============================

// New creates a typed cache instance for the configured provider.
func New[T any](config *Config, logger *zap.Logger) (Cache[T], error) {
	if config == nil {
		config = DefaultConfig()
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	switch strings.ToLower(config.Provider) {
	case "redis":
		return NewRedisCache[T](config, logger)
	case "memory", "":
		return NewTTLCache[T](config, logger), nil
	default:
		return nil, fmt.Errorf("unsupported cache provider: %s", config.Provider)
	}
}
