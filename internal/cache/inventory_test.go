package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedProfile struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestAsideFillsOnMissAndServesFromCache(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	fills := 0
	fill := func(dest *cachedProfile) func() error {
		return func() error {
			fills++
			*dest = cachedProfile{ID: 7, Username: "alice"}
			return nil
		}
	}

	var first cachedProfile
	require.NoError(t, Aside(ctx, UserKey(7), &first, UserTTL, fill(&first)))
	assert.Equal(t, "alice", first.Username)
	assert.Equal(t, 1, fills)

	var second cachedProfile
	require.NoError(t, Aside(ctx, UserKey(7), &second, UserTTL, fill(&second)))
	assert.Equal(t, "alice", second.Username)
	assert.Equal(t, 1, fills, "second read must be served from cache")
}

func TestAsidePropagatesFillError(t *testing.T) {
	setupMiniredis(t)

	var dest cachedProfile
	wantErr := errors.New("store unavailable")
	err := Aside(context.Background(), UserKey(1), &dest, UserTTL, func() error { return wantErr })
	assert.ErrorIs(t, err, wantErr)
}

func TestAsideWithoutClientDegradesToFill(t *testing.T) {
	SetClient(nil)

	fills := 0
	var dest cachedProfile
	for i := 0; i < 2; i++ {
		require.NoError(t, Aside(context.Background(), UserKey(2), &dest, UserTTL, func() error {
			fills++
			return nil
		}))
	}
	assert.Equal(t, 2, fills)
}

func TestInvalidateRemovesEntry(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	var dest cachedProfile
	require.NoError(t, Aside(ctx, PostKey(3), &dest, PostTTL, func() error {
		dest = cachedProfile{ID: 3}
		return nil
	}))
	assert.True(t, mr.Exists(PostKey(3)))

	InvalidatePost(ctx, 3)
	assert.False(t, mr.Exists(PostKey(3)))
}
