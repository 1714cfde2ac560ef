package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeClock lets tests advance time without sleeping.
type fakeClock struct {
	current time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.current
}

func (c *fakeClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}

func newTestCache(t *testing.T, maxKeys int, ttl time.Duration) (*TTLCache[string], *fakeClock) {
	t.Helper()
	clock := &fakeClock{current: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	c := NewTTLCache[string](&Config{TTL: ttl, MaxKeys: maxKeys}, zap.NewNop())
	c.now = clock.Now
	return c, clock
}

func TestTTLCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, clock := newTestCache(t, 10, 10*time.Millisecond)

	require.NoError(t, c.Set(ctx, "greeting", "hello"))

	value, ok := c.Get(ctx, "greeting")
	require.True(t, ok)
	assert.Equal(t, "hello", value)

	// At exactly the TTL the entry is still alive.
	clock.Advance(10 * time.Millisecond)
	_, ok = c.Get(ctx, "greeting")
	assert.True(t, ok)

	// One tick past the TTL it is gone.
	clock.Advance(time.Millisecond)
	_, ok = c.Get(ctx, "greeting")
	assert.False(t, ok)

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Expired)
	assert.Equal(t, int64(0), stats.Keys, "expired entry should be evicted on read")
}

func TestTTLCacheInsertionOrderEviction(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t, 2, time.Minute)

	require.NoError(t, c.Set(ctx, "a", "1"))
	require.NoError(t, c.Set(ctx, "b", "2"))
	require.NoError(t, c.Set(ctx, "c", "3"))

	// "a" was inserted first, so it is the one evicted.
	_, ok := c.Get(ctx, "a")
	assert.False(t, ok)

	value, ok := c.Get(ctx, "b")
	require.True(t, ok)
	assert.Equal(t, "2", value)

	value, ok = c.Get(ctx, "c")
	require.True(t, ok)
	assert.Equal(t, "3", value)

	assert.Equal(t, int64(1), c.Stats().Evictions)
}

func TestTTLCacheResetKeepsPosition(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t, 2, time.Minute)

	require.NoError(t, c.Set(ctx, "a", "1"))
	require.NoError(t, c.Set(ctx, "b", "2"))

	// Re-setting "a" refreshes its value but not its position, so it
	// is still the oldest insertion when "c" forces an eviction.
	require.NoError(t, c.Set(ctx, "a", "1-updated"))
	require.NoError(t, c.Set(ctx, "c", "3"))

	_, ok := c.Get(ctx, "a")
	assert.False(t, ok)

	_, ok = c.Get(ctx, "b")
	assert.True(t, ok)
}

func TestTTLCacheGetOrFetch(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t, 10, time.Minute)

	t.Run("fetches on miss and caches", func(t *testing.T) {
		calls := 0
		fetch := func(ctx context.Context) (string, error) {
			calls++
			return "fetched", nil
		}

		value, err := c.GetOrFetch(ctx, "item", fetch)
		require.NoError(t, err)
		assert.Equal(t, "fetched", value)

		value, err = c.GetOrFetch(ctx, "item", fetch)
		require.NoError(t, err)
		assert.Equal(t, "fetched", value)
		assert.Equal(t, 1, calls, "second lookup should hit the cache")
	})

	t.Run("fetch errors are not cached", func(t *testing.T) {
		fetchErr := errors.New("upstream down")
		calls := 0
		fetch := func(ctx context.Context) (string, error) {
			calls++
			if calls == 1 {
				return "", fetchErr
			}
			return "recovered", nil
		}

		_, err := c.GetOrFetch(ctx, "flaky", fetch)
		assert.ErrorIs(t, err, fetchErr)

		value, err := c.GetOrFetch(ctx, "flaky", fetch)
		require.NoError(t, err)
		assert.Equal(t, "recovered", value)
	})
}

func TestTTLCacheInvalidateAndClear(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t, 10, time.Minute)

	require.NoError(t, c.Set(ctx, "a", "1"))
	require.NoError(t, c.Set(ctx, "b", "2"))

	require.NoError(t, c.Invalidate(ctx, "a"))
	_, ok := c.Get(ctx, "a")
	assert.False(t, ok)

	require.NoError(t, c.Clear(ctx))
	_, ok = c.Get(ctx, "b")
	assert.False(t, ok)
	assert.Equal(t, int64(0), c.Stats().Keys)

	// Clearing resets the insertion order too, so new inserts evict
	// correctly afterwards.
	require.NoError(t, c.Set(ctx, "x", "1"))
	require.NoError(t, c.Set(ctx, "y", "2"))
	value, ok := c.Get(ctx, "y")
	require.True(t, ok)
	assert.Equal(t, "2", value)
}

func TestTTLCacheStructValues(t *testing.T) {
	type tip struct {
		Title string
		Body  string
	}

	ctx := context.Background()
	clock := &fakeClock{current: time.Now()}
	c := NewTTLCache[*tip](&Config{TTL: time.Minute, MaxKeys: 10}, zap.NewNop())
	c.now = clock.Now

	require.NoError(t, c.Set(ctx, "daily", &tip{Title: "Colors", Body: "Mix them"}))

	got, ok := c.Get(ctx, "daily")
	require.True(t, ok)
	assert.Equal(t, "Colors", got.Title)

	_, ok = c.Get(ctx, "missing")
	assert.False(t, ok)
}

func TestNewCacheFactory(t *testing.T) {
	c, err := New[string](&Config{Provider: "memory", TTL: time.Minute}, zap.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, c)

	_, err = New[string](&Config{Provider: "memcached"}, zap.NewNop())
	assert.Error(t, err)
}
