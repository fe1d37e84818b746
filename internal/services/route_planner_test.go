package services

import (
	"context"
	"errors"
	"parcel-network-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCache struct {
	entries map[string]domain.Route
	gets    int
	puts    int
	failGet error
	failPut error
}

func newCountingCache() *countingCache {
	return &countingCache{entries: map[string]domain.Route{}}
}

func (c *countingCache) Get(ctx context.Context, origin, destination domain.City) (domain.Route, bool, error) {
	c.gets++
	if c.failGet != nil {
		return domain.Route{}, false, c.failGet
	}
	r, ok := c.entries[string(origin)+"|"+string(destination)]
	return r, ok, nil
}

func (c *countingCache) Put(ctx context.Context, origin, destination domain.City, route domain.Route) error {
	c.puts++
	if c.failPut != nil {
		return c.failPut
	}
	c.entries[string(origin)+"|"+string(destination)] = route.Clone()
	return nil
}

func TestRoutePlannerUsesCache(t *testing.T) {
	cache := newCountingCache()
	planner, err := NewRoutePlanner(domain.BuildGraph(), WithRouteCache(cache))
	require.NoError(t, err)

	ctx := context.Background()
	first, err := planner.Route(ctx, "Porto", "Sevilla")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.puts)

	second, err := planner.Route(ctx, "Porto", "Sevilla")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.puts, "second lookup should be served from cache")
	assert.Equal(t, 2, cache.gets)
	assert.Equal(t, first, second)

	// Mutating a returned route must not leak into the cache.
	second.Cities[0] = "Madrid"
	third, err := planner.Route(ctx, "Porto", "Sevilla")
	require.NoError(t, err)
	assert.Equal(t, domain.City("Porto"), third.Cities[0])
}

func TestRoutePlannerCacheFailureFallsThrough(t *testing.T) {
	cache := newCountingCache()
	cache.failGet = errors.New("cache down")
	cache.failPut = errors.New("cache down")

	planner, err := NewRoutePlanner(domain.BuildGraph(), WithRouteCache(cache))
	require.NoError(t, err)

	route, err := planner.Route(context.Background(), "Madrid", "Barcelona")
	require.NoError(t, err)
	assert.Equal(t, 621.0, route.DistanceKm)
}

func TestRoutePlannerDoesNotCacheFailures(t *testing.T) {
	cache := newCountingCache()
	planner, err := NewRoutePlanner(domain.BuildGraph(), WithRouteCache(cache))
	require.NoError(t, err)

	_, err = planner.Route(context.Background(), "Madrid", "Atlantis")
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, cache.puts)
}

func TestRoutePlannerTravelTimeDefaultSpeed(t *testing.T) {
	planner, err := NewRoutePlanner(domain.BuildGraph(), WithDefaultSpeed(100))
	require.NoError(t, err)
	assert.Equal(t, 100.0, planner.DefaultSpeed())

	est, err := planner.TravelTime(context.Background(), "Madrid", "Bilbao", 0)
	require.NoError(t, err)
	assert.Equal(t, 100.0, est.SpeedKmh)
	assert.InDelta(t, 4.0, est.Hours, 1e-9)

	_, err = planner.TravelTime(context.Background(), "Madrid", "Bilbao", -5)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestNewRoutePlannerRequiresGraph(t *testing.T) {
	_, err := NewRoutePlanner(nil)
	assert.Error(t, err)
}
