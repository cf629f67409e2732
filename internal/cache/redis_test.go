package cache

import (
	"context"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/gogotex/usergroups/internal/document"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, prefix string, ttl time.Duration) (*RedisCache, *mr.Miniredis) {
	t.Helper()
	m, err := mr.Run()
	require.NoError(t, err)
	t.Cleanup(m.Close)
	return NewRedisCache(redis.NewClient(&redis.Options{Addr: m.Addr()}), prefix, ttl), m
}

func TestRedisCache_LeaseFillGetDelete(t *testing.T) {
	c, m := newTestCache(t, "users:", 5*time.Second)
	ctx := context.Background()
	d := document.Document{"_id": "6553f1c2a1b2c3d4e5f60718", "username": "john_doe"}

	token, err := c.Lease(ctx, d.ID())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	_, ok, err := c.Get(ctx, d.ID())
	require.NoError(t, err)
	require.False(t, ok, "a lease reads as a miss")

	require.NoError(t, c.Fill(ctx, d, token))
	require.True(t, m.Exists("users:6553f1c2a1b2c3d4e5f60718"))

	got, ok, err := c.Get(ctx, d.ID())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "john_doe", got["username"])

	require.NoError(t, c.Delete(ctx, d.ID()))
	_, ok, err = c.Get(ctx, d.ID())
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRedisCache_SecondLeaseIsRefused(t *testing.T) {
	c, _ := newTestCache(t, "users:", 5*time.Second)
	ctx := context.Background()

	first, err := c.Lease(ctx, "6553f1c2a1b2c3d4e5f60718")
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := c.Lease(ctx, "6553f1c2a1b2c3d4e5f60718")
	require.NoError(t, err)
	require.Empty(t, second)
	require.NoError(t, c.Fill(ctx, document.Document{"_id": "6553f1c2a1b2c3d4e5f60718"}, second))
}

func TestRedisCache_FillAfterInvalidateIsDropped(t *testing.T) {
	c, m := newTestCache(t, "users:", 5*time.Second)
	ctx := context.Background()
	d := document.Document{"_id": "6553f1c2a1b2c3d4e5f60718", "username": "stale"}

	token, err := c.Lease(ctx, d.ID())
	require.NoError(t, err)
	require.NoError(t, c.Delete(ctx, d.ID()))

	require.NoError(t, c.Fill(ctx, d, token))
	require.False(t, m.Exists("users:"+d.ID()))

	// a newer lease also defeats the old token
	token2, err := c.Lease(ctx, d.ID())
	require.NoError(t, err)
	require.NoError(t, c.Fill(ctx, d, token))
	_, ok, err := c.Get(ctx, d.ID())
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, c.Fill(ctx, d, token2))
	_, ok, err = c.Get(ctx, d.ID())
	require.NoError(t, err)
	require.True(t, ok)
}

func TestRedisCache_TTLExpiry(t *testing.T) {
	c, m := newTestCache(t, "groups:", time.Second)
	ctx := context.Background()
	d := document.Document{"_id": "6553f1c2a1b2c3d4e5f60719", "groupname": "admins"}

	token, err := c.Lease(ctx, d.ID())
	require.NoError(t, err)
	require.NoError(t, c.Fill(ctx, d, token))

	// advance miniredis clock past TTL
	m.FastForward(2 * time.Second)

	_, ok, err := c.Get(ctx, d.ID())
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRedisCache_ErrorWhenUnreachable(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	m.Close()

	c := NewRedisCache(client, "users:", time.Second)
	_, ok, err := c.Get(context.Background(), "6553f1c2a1b2c3d4e5f60718")
	require.Error(t, err)
	require.False(t, ok)
}
