package cache

import (
	"context"
	"parcel-network-service/internal/domain"

	"github.com/tidwall/tinylru"
)

// LRURouteCache is an in-process, size-bounded route cache.
// tinylru is safe for concurrent use.
type LRURouteCache struct {
	lru tinylru.LRU
}

func NewLRURouteCache(size int) *LRURouteCache {
	c := &LRURouteCache{}
	c.lru.Resize(size)
	return c
}

func (c *LRURouteCache) Get(ctx context.Context, origin, destination domain.City) (domain.Route, bool, error) {
	v, ok := c.lru.Get(routeKey(origin, destination))
	if !ok {
		return domain.Route{}, false, nil
	}
	return v.(domain.Route).Clone(), true, nil
}

func (c *LRURouteCache) Put(ctx context.Context, origin, destination domain.City, route domain.Route) error {
	c.lru.Set(routeKey(origin, destination), route.Clone())
	return nil
}

// Len is the number of cached routes.
func (c *LRURouteCache) Len() int { return c.lru.Len() }

func routeKey(origin, destination domain.City) string {
	return string(origin) + "|" + string(destination)
}
