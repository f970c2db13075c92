package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestCache(t *testing.T) *Cache {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewCache(client, zap.NewNop(), "smartqueue")
}

func TestCache_SetAndGet(t *testing.T) {
	cache := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "queue:US_PrimeTime:10", []byte(`[{"id":"a"}]`), time.Minute))

	data, err := cache.Get(ctx, "queue:US_PrimeTime:10")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"a"}]`), data)
}

func TestCache_Get_Miss(t *testing.T) {
	cache := setupTestCache(t)

	data, err := cache.Get(context.Background(), "queue:absent")
	require.NoError(t, err, "a miss is not an error")
	assert.Nil(t, data)
}

func TestCache_Delete(t *testing.T) {
	cache := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, cache.Delete(ctx, "k"))

	data, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, data)

	assert.NoError(t, cache.Delete(ctx, "k"), "deleting a missing key is a no-op")
}

func TestCache_Clear(t *testing.T) {
	cache := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "queue:a", []byte("1"), time.Minute))
	require.NoError(t, cache.Set(ctx, "queue:b", []byte("2"), time.Minute))

	require.NoError(t, cache.Clear(ctx))

	for _, key := range []string{"queue:a", "queue:b"} {
		data, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Nil(t, data, "key %s should be gone", key)
	}
}
