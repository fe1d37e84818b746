package cache

import (
	"context"
	"parcel-network-service/internal/domain"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var portoSevilla = domain.Route{Cities: []domain.City{"Porto", "Lisboa", "Sevilla"}, DistanceKm: 773}

func TestLRURouteCache(t *testing.T) {
	ctx := context.Background()
	c := NewLRURouteCache(2)

	_, ok, err := c.Get(ctx, "Porto", "Sevilla")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Put(ctx, "Porto", "Sevilla", portoSevilla))
	got, ok, err := c.Get(ctx, "Porto", "Sevilla")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, portoSevilla, got)

	got.Cities[0] = "Madrid"
	again, _, _ := c.Get(ctx, "Porto", "Sevilla")
	assert.Equal(t, domain.City("Porto"), again.Cities[0])

	// Direction is part of the key.
	_, ok, _ = c.Get(ctx, "Sevilla", "Porto")
	assert.False(t, ok)
}

func TestLRURouteCacheEvicts(t *testing.T) {
	ctx := context.Background()
	c := NewLRURouteCache(2)

	require.NoError(t, c.Put(ctx, "A", "B", domain.Route{Cities: []domain.City{"A", "B"}, DistanceKm: 1}))
	require.NoError(t, c.Put(ctx, "A", "C", domain.Route{Cities: []domain.City{"A", "C"}, DistanceKm: 2}))
	require.NoError(t, c.Put(ctx, "A", "D", domain.Route{Cities: []domain.City{"A", "D"}, DistanceKm: 3}))

	assert.Equal(t, 2, c.Len())
	_, ok, _ := c.Get(ctx, "A", "B")
	assert.False(t, ok)
}

func newRedisCache(t *testing.T, ttl time.Duration) (*RedisRouteCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisRouteCache(client, ttl), mr
}

func TestRedisRouteCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache(t, time.Hour)

	_, ok, err := c.Get(ctx, "Porto", "Sevilla")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Put(ctx, "Porto", "Sevilla", portoSevilla))
	assert.True(t, mr.Exists("parcel:route:Porto|Sevilla"))
	assert.Equal(t, time.Hour, mr.TTL("parcel:route:Porto|Sevilla"))

	got, ok, err := c.Get(ctx, "Porto", "Sevilla")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, portoSevilla, got)
}

func TestRedisRouteCacheExpires(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache(t, time.Minute)

	require.NoError(t, c.Put(ctx, "Porto", "Sevilla", portoSevilla))
	mr.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx, "Porto", "Sevilla")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisRouteCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache(t, 0)

	require.NoError(t, mr.Set("parcel:route:Porto|Sevilla", "not json"))

	_, ok, err := c.Get(ctx, "Porto", "Sevilla")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestRedisRouteCacheUnavailable(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache(t, 0)
	mr.Close()

	_, _, err := c.Get(ctx, "Porto", "Sevilla")
	assert.Error(t, err)
	assert.Error(t, c.Put(ctx, "Porto", "Sevilla", portoSevilla))
}
