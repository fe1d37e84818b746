package cache

import (
	"context"
	"errors"
	"fmt"
	"parcel-network-service/internal/domain"
	"parcel-network-service/internal/platform/obs"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "parcel:route:"

type cachedRoute struct {
	Cities     []string `json:"cities"`
	DistanceKm float64  `json:"distance_km"`
}

// RedisRouteCache shares computed routes between service instances.
// A TTL of 0 keeps entries until Redis evicts them.
type RedisRouteCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRouteCache(client *redis.Client, ttl time.Duration) *RedisRouteCache {
	return &RedisRouteCache{client: client, ttl: ttl}
}

func (c *RedisRouteCache) Get(ctx context.Context, origin, destination domain.City) (_ domain.Route, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.redis.Get")(&err)

	if c.client == nil {
		return domain.Route{}, false, errors.New("redis route cache: client is nil")
	}

	data, err := c.client.Get(ctx, redisKeyPrefix+routeKey(origin, destination)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Route{}, false, nil
	}
	if err != nil {
		return domain.Route{}, false, fmt.Errorf("redis route cache: get %s->%s: %w", origin, destination, err)
	}

	var cr cachedRoute
	if err := json.Unmarshal(data, &cr); err != nil {
		return domain.Route{}, false, fmt.Errorf("redis route cache: decode %s->%s: %w", origin, destination, err)
	}
	if len(cr.Cities) == 0 {
		return domain.Route{}, false, fmt.Errorf("redis route cache: empty route for %s->%s", origin, destination)
	}

	route := domain.Route{Cities: make([]domain.City, 0, len(cr.Cities)), DistanceKm: cr.DistanceKm}
	for _, city := range cr.Cities {
		route.Cities = append(route.Cities, domain.City(city))
	}
	return route, true, nil
}

func (c *RedisRouteCache) Put(ctx context.Context, origin, destination domain.City, route domain.Route) error {
	if c.client == nil {
		return errors.New("redis route cache: client is nil")
	}

	cr := cachedRoute{Cities: make([]string, 0, len(route.Cities)), DistanceKm: route.DistanceKm}
	for _, city := range route.Cities {
		cr.Cities = append(cr.Cities, string(city))
	}

	data, err := json.Marshal(cr)
	if err != nil {
		return fmt.Errorf("redis route cache: encode %s->%s: %w", origin, destination, err)
	}

	if err := c.client.Set(ctx, redisKeyPrefix+routeKey(origin, destination), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis route cache: set %s->%s: %w", origin, destination, err)
	}
	return nil
}
