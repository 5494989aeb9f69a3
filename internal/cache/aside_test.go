package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestAside_MissThenHit(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	calls := 0
	var v string
	load := func() error {
		calls++
		v = "loaded"
		return nil
	}

	require.NoError(t, Aside(ctx, "user:abc", &v, time.Minute, load))
	assert.Equal(t, "loaded", v)
	assert.Equal(t, 1, calls)

	// Second call is served from cache without invoking the loader.
	v = ""
	require.NoError(t, Aside(ctx, "user:abc", &v, time.Minute, load))
	assert.Equal(t, "loaded", v)
	assert.Equal(t, 1, calls)
}

func TestAside_NoRedisFallsThrough(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	calls := 0
	var v int
	require.NoError(t, Aside(ctx, "user:abc", &v, time.Minute, func() error {
		calls++
		v = 42
		return nil
	}))
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, calls)
}

func TestAside_CorruptEntryDropped(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("user:bad", "{not json"))

	var v map[string]int
	require.NoError(t, Aside(ctx, "user:bad", &v, time.Minute, func() error {
		v = map[string]int{"n": 1}
		return nil
	}))
	assert.Equal(t, 1, v["n"])
}

func TestInvalidateFeed(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(FeedPageKey("viewer", 10, 0), "[]"))
	require.NoError(t, mr.Set(FeedPageKey("viewer", 10, 10), "[]"))
	require.NoError(t, mr.Set(UserKey("u1"), "{}"))

	InvalidateFeed(ctx)

	assert.False(t, mr.Exists(FeedPageKey("viewer", 10, 0)))
	assert.False(t, mr.Exists(FeedPageKey("viewer", 10, 10)))
	assert.True(t, mr.Exists(UserKey("u1")))
}
