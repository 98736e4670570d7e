//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/money/backend/internal/infrastructure/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisIdempotencyStore(t *testing.T) {
	ctx := context.Background()
	host, port := StartRedis(t)

	client, err := cache.NewRedisClient(ctx, cache.RedisConfig{Host: host, Port: port})
	require.NoError(t, err)
	store := cache.NewRedisIdempotencyStore(client, cache.DefaultKeyPrefix)
	defer store.Close()

	t.Run("first mark wins", func(t *testing.T) {
		first, err := store.MarkProcessed(ctx, "outcome-projection:e1", time.Minute)
		require.NoError(t, err)
		assert.True(t, first)

		second, err := store.MarkProcessed(ctx, "outcome-projection:e1", time.Minute)
		require.NoError(t, err)
		assert.False(t, second)

		processed, err := store.IsProcessed(ctx, "outcome-projection:e1")
		require.NoError(t, err)
		assert.True(t, processed)
	})

	t.Run("forget allows a retry", func(t *testing.T) {
		_, err := store.MarkProcessed(ctx, "outcome-projection:e2", time.Minute)
		require.NoError(t, err)
		require.NoError(t, store.Forget(ctx, "outcome-projection:e2"))

		again, err := store.MarkProcessed(ctx, "outcome-projection:e2", time.Minute)
		require.NoError(t, err)
		assert.True(t, again)
	})

	t.Run("marks expire", func(t *testing.T) {
		_, err := store.MarkProcessed(ctx, "outcome-projection:e3", time.Second)
		require.NoError(t, err)

		assert.Eventually(t, func() bool {
			processed, err := store.IsProcessed(ctx, "outcome-projection:e3")
			return err == nil && !processed
		}, 5*time.Second, 100*time.Millisecond)
	})

	t.Run("keys are namespaced", func(t *testing.T) {
		n, err := client.Exists(ctx, cache.DefaultKeyPrefix+"outcome-projection:e1").Result()
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	_, err := cache.NewRedisClient(context.Background(), cache.RedisConfig{Host: "127.0.0.1", Port: 1})
	assert.Error(t, err)
}
