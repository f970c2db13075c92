package locker

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

const testLockKey = "refresh:test:lock"

func setupTestLocker(t *testing.T) (*RedisLocker, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisLocker(client, zap.NewNop()), mr
}

func TestRedisLocker_Acquire(t *testing.T) {
	locker, _ := setupTestLocker(t)

	acquired, err := locker.Acquire(context.Background(), testLockKey, time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)
}

func TestRedisLocker_Acquire_Contention(t *testing.T) {
	first, mr := setupTestLocker(t)

	acquired, err := first.Acquire(context.Background(), testLockKey, time.Minute)
	require.NoError(t, err)
	require.True(t, acquired)

	// A second locker against the same Redis must see the lock as taken.
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	second := NewRedisLocker(client, zap.NewNop())

	acquired, err = second.Acquire(context.Background(), testLockKey, time.Minute)
	require.NoError(t, err)
	assert.False(t, acquired)
}

func TestRedisLocker_Release_AllowsReacquire(t *testing.T) {
	locker, _ := setupTestLocker(t)

	acquired, err := locker.Acquire(context.Background(), testLockKey, time.Minute)
	require.NoError(t, err)
	require.True(t, acquired)

	require.NoError(t, locker.Release(context.Background(), testLockKey))

	acquired, err = locker.Acquire(context.Background(), testLockKey, time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)
}

func TestRedisLocker_Release_NotOwned(t *testing.T) {
	locker, _ := setupTestLocker(t)

	// Releasing a lock we never acquired must be a silent no-op.
	require.NoError(t, locker.Release(context.Background(), testLockKey))
}

func TestRedisLocker_Acquire_AfterExpiry(t *testing.T) {
	locker, mr := setupTestLocker(t)

	acquired, err := locker.Acquire(context.Background(), testLockKey, time.Second)
	require.NoError(t, err)
	require.True(t, acquired)

	mr.FastForward(2 * time.Second)

	acquired, err = locker.Acquire(context.Background(), testLockKey, time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)
}
