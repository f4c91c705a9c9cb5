package cache

import (
	"testing"

	"transport-backend/internal/models"

	"github.com/alicebob/miniredis/v2"
	redisClient "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*UnreadCountCache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redisClient.NewClient(&redisClient.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewUnreadCountCache(client, DefaultConfig()), mr
}

func TestCacheSetAndGet(t *testing.T) {
	cache, _ := newTestCache(t)

	_, ok := cache.Get(models.RoleDriver, "driver@example.com")
	assert.False(t, ok, "cold cache misses")

	require.NoError(t, cache.Set(models.RoleDriver, "driver@example.com", 7))

	count, ok := cache.Get(models.RoleDriver, "driver@example.com")
	require.True(t, ok)
	assert.Equal(t, int64(7), count)
}

func TestCacheEntryExpires(t *testing.T) {
	cache, mr := newTestCache(t)

	require.NoError(t, cache.Set(models.RoleDriver, "driver@example.com", 3))
	mr.FastForward(DefaultConfig().TTL * 2)

	_, ok := cache.Get(models.RoleDriver, "driver@example.com")
	assert.False(t, ok)
}

func TestInvalidateUserDropsOnlyThatPair(t *testing.T) {
	cache, _ := newTestCache(t)

	require.NoError(t, cache.Set(models.RoleDriver, "a@example.com", 1))
	require.NoError(t, cache.Set(models.RoleDriver, "b@example.com", 2))

	require.NoError(t, cache.InvalidateUser(models.RoleDriver, "a@example.com"))

	_, ok := cache.Get(models.RoleDriver, "a@example.com")
	assert.False(t, ok)

	count, ok := cache.Get(models.RoleDriver, "b@example.com")
	require.True(t, ok)
	assert.Equal(t, int64(2), count)
}

func TestInvalidateRoleDropsEveryPair(t *testing.T) {
	cache, _ := newTestCache(t)

	require.NoError(t, cache.Set(models.RoleDriver, "a@example.com", 1))
	require.NoError(t, cache.Set(models.RoleDriver, "b@example.com", 2))
	require.NoError(t, cache.Set(models.RoleDean, "dean@example.com", 5))

	require.NoError(t, cache.InvalidateRole(models.RoleDriver))

	_, ok := cache.Get(models.RoleDriver, "a@example.com")
	assert.False(t, ok)
	_, ok = cache.Get(models.RoleDriver, "b@example.com")
	assert.False(t, ok)

	count, ok := cache.Get(models.RoleDean, "dean@example.com")
	require.True(t, ok, "other roles keep their entries")
	assert.Equal(t, int64(5), count)
}

func TestNilClientIsANoOp(t *testing.T) {
	cache := NewUnreadCountCache(nil, DefaultConfig())

	_, ok := cache.Get(models.RoleDriver, "driver@example.com")
	assert.False(t, ok)
	assert.NoError(t, cache.Set(models.RoleDriver, "driver@example.com", 1))
	assert.NoError(t, cache.InvalidateUser(models.RoleDriver, "driver@example.com"))
	assert.NoError(t, cache.InvalidateRole(models.RoleDriver))
}
