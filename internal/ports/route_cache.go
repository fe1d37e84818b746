package ports

import (
	"context"
	"parcel-network-service/internal/domain"
)

// Optional memoization of shortest-path results.
// Routes are a pure function of (graph, origin, destination), so entries never go stale
// while the process runs on a single graph.
type RouteCache interface {
	// Return the cached route and whether it was present.
	Get(ctx context.Context, origin, destination domain.City) (domain.Route, bool, error)
	Put(ctx context.Context, origin, destination domain.City, route domain.Route) error
}
