package kvstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRefreshTokenStore(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewRefreshTokenStore(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "jti-1", uuid.New(), time.Hour))

	ok, err := store.Exists(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.Revoke(ctx, "jti-1"))
	ok, err = store.Exists(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Save(ctx, "jti-2", uuid.New(), time.Minute))
	mr.FastForward(2 * time.Minute)
	ok, err = store.Exists(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestJobLock(t *testing.T) {
	mr, client := newTestRedis(t)
	first := NewJobLock(client)
	second := NewJobLock(client)
	ctx := context.Background()

	ok, err := first.Acquire(ctx, "review:2026-03", time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = second.Acquire(ctx, "review:2026-03", time.Hour)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, second.Release(ctx, "review:2026-03"))
	assert.True(t, mr.Exists(jobLockPrefix+"review:2026-03"))

	require.NoError(t, first.Release(ctx, "review:2026-03"))
	ok, err = second.Acquire(ctx, "review:2026-03", time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestWindowCounter(t *testing.T) {
	mr, client := newTestRedis(t)
	counter := NewWindowCounter(client)
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		count, ttl, err := counter.Hit(ctx, "auth:1.2.3.4", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, i, count)
		assert.Greater(t, ttl, time.Duration(0))
	}

	mr.FastForward(61 * time.Second)
	count, _, err := counter.Hit(ctx, "auth:1.2.3.4", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestWindowCounter_RestoresLostExpiry(t *testing.T) {
	mr, client := newTestRedis(t)
	counter := NewWindowCounter(client)
	ctx := context.Background()

	_, _, err := counter.Hit(ctx, "review:user-1", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, mr.TTL(rateLimitPrefix+"review:user-1"))

	require.NoError(t, client.Persist(ctx, rateLimitPrefix+"review:user-1").Err())

	count, ttl, err := counter.Hit(ctx, "review:user-1", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Equal(t, time.Hour, ttl)
	assert.Equal(t, time.Hour, mr.TTL(rateLimitPrefix+"review:user-1"))
}

func TestWindowCounter_StoreDown(t *testing.T) {
	mr, client := newTestRedis(t)
	counter := NewWindowCounter(client)
	mr.Close()

	_, _, err := counter.Hit(context.Background(), "auth:1.2.3.4", time.Minute)
	assert.Error(t, err)
}
