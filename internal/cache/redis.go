// internal/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ===============================
// REDIS CACHE IMPLEMENTATION
// ===============================

// RedisCache stores JSON-encoded values in Redis under a key prefix.
// Expiry and eviction are delegated to Redis itself.
type RedisCache[T any] struct {
	client     *redis.Client
	prefix     string
	defaultTTL time.Duration
	logger     *zap.Logger
}

// NewRedisCache creates a new Redis-backed cache
func NewRedisCache[T any](config *Config, logger *zap.Logger) (*RedisCache[T], error) {
	if config == nil {
		return nil, fmt.Errorf("cache config cannot be nil")
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	// Parse Redis URL if provided
	var options *redis.Options
	if config.RedisURL != "" {
		var err error
		options, err = redis.ParseURL(config.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
		}
	} else {
		options = &redis.Options{
			Addr:     "localhost:6379",
			Password: config.RedisPassword,
			DB:       config.RedisDB,
		}
	}

	if config.PoolSize > 0 {
		options.PoolSize = config.PoolSize
	}

	client := redis.NewClient(options)

	// Test the connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	ttl := config.TTL
	if ttl <= 0 {
		ttl = DefaultConfig().TTL
	}

	logger.Info("Redis cache initialized",
		zap.String("addr", options.Addr),
		zap.Int("db", options.DB),
		zap.String("prefix", config.KeyPrefix),
	)

	return &RedisCache[T]{
		client:     client,
		prefix:     config.KeyPrefix,
		defaultTTL: ttl,
		logger:     logger,
	}, nil
}

func (r *RedisCache[T]) key(key string) string {
	if r.prefix == "" {
		return key
	}
	return r.prefix + ":" + key
}

// Get retrieves a value from Redis
func (r *RedisCache[T]) Get(ctx context.Context, key string) (T, bool) {
	var zero T

	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err == redis.Nil {
		return zero, false
	} else if err != nil {
		r.logger.Error("Failed to get from Redis",
			zap.String("key", key),
			zap.Error(err))
		return zero, false
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		r.logger.Error("Failed to decode cached value",
			zap.String("key", key),
			zap.Error(err))
		return zero, false
	}

	return value, true
}

// Set stores a value with the default TTL
func (r *RedisCache[T]) Set(ctx context.Context, key string, value T) error {
	return r.SetWithTTL(ctx, key, value, r.defaultTTL)
}

// SetWithTTL stores a value with an explicit TTL
func (r *RedisCache[T]) SetWithTTL(ctx context.Context, key string, value T, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	if ttl <= 0 {
		ttl = r.defaultTTL
	}

	return r.client.Set(ctx, r.key(key), data, ttl).Err()
}

// GetOrFetch returns the cached value or loads it via fetch
func (r *RedisCache[T]) GetOrFetch(ctx context.Context, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	if value, ok := r.Get(ctx, key); ok {
		return value, nil
	}

	value, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	if err := r.Set(ctx, key, value); err != nil {
		r.logger.Warn("Failed to cache fetched value",
			zap.String("key", key),
			zap.Error(err))
	}
	return value, nil
}

// Invalidate removes a single key
func (r *RedisCache[T]) Invalidate(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

// Clear removes every key under this cache's prefix
func (r *RedisCache[T]) Clear(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, r.key("*"), 0).Iterator()
	var keys []string

	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		// Delete in batches to avoid blocking Redis for too long
		if len(keys) >= 1000 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
			keys = keys[:0]
		}
	}

	if err := iter.Err(); err != nil {
		return err
	}

	if len(keys) > 0 {
		return r.client.Del(ctx, keys...).Err()
	}
	return nil
}

// Stats reports Redis-side counters. Hit and miss counts are only
// tracked per-connection by Redis, so this returns key count alone.
func (r *RedisCache[T]) Stats() CacheStats {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var stats CacheStats
	count, err := r.client.DBSize(ctx).Result()
	if err == nil {
		stats.Keys = count
	}
	return stats
}
