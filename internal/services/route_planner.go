package services

import (
	"context"
	"errors"
	"fmt"
	"parcel-network-service/internal/domain"
	"parcel-network-service/internal/platform/obs"
	"parcel-network-service/internal/ports"

	"github.com/rs/zerolog"
)

// RoutePlanner answers routing queries against one immutable graph.
//
// Shortest paths may be memoized through an optional RouteCache. The cache is
// an optimization only: lookup or store failures are logged and the route is
// computed directly.
type RoutePlanner struct {
	graph    *domain.Graph
	cache    ports.RouteCache
	speedKmh float64
}

type RoutePlannerOption func(*RoutePlanner)

// WithRouteCache enables memoization of shortest-path results.
func WithRouteCache(c ports.RouteCache) RoutePlannerOption {
	return func(p *RoutePlanner) { p.cache = c }
}

// WithDefaultSpeed overrides the speed used by TravelTime when callers pass 0.
func WithDefaultSpeed(kmh float64) RoutePlannerOption {
	return func(p *RoutePlanner) {
		if validSpeed(kmh) {
			p.speedKmh = kmh
		}
	}
}

func NewRoutePlanner(g *domain.Graph, opts ...RoutePlannerOption) (*RoutePlanner, error) {
	if g == nil {
		return nil, errors.New("new route planner: graph must be non-nil")
	}

	p := &RoutePlanner{graph: g, speedKmh: DefaultSpeedKmh}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Graph exposes the underlying network for listing and visualization.
func (p *RoutePlanner) Graph() *domain.Graph { return p.graph }

// Cities lists every node of the network.
func (p *RoutePlanner) Cities() []domain.City { return p.graph.Cities() }

// DefaultSpeed is the speed TravelTime applies when none is given.
func (p *RoutePlanner) DefaultSpeed() float64 { return p.speedKmh }

// Route returns the shortest route between origin and destination.
func (p *RoutePlanner) Route(ctx context.Context, origin, destination domain.City) (_ domain.Route, err error) {
	defer obs.Time(ctx, "routing.Route")(&err)

	logger := zerolog.Ctx(ctx)

	if p.cache != nil {
		cached, ok, cerr := p.cache.Get(ctx, origin, destination)
		if cerr != nil {
			logger.Warn().Err(cerr).Str("origin", string(origin)).Str("destination", string(destination)).Msg("route cache lookup failed")
		} else if ok {
			return cached.Clone(), nil
		}
	}

	route, err := ShortestPath(p.graph, origin, destination)
	if err != nil {
		return domain.Route{}, fmt.Errorf("compute route: %w", err)
	}

	if p.cache != nil {
		if cerr := p.cache.Put(ctx, origin, destination, route); cerr != nil {
			logger.Warn().Err(cerr).Str("origin", string(origin)).Str("destination", string(destination)).Msg("route cache store failed")
		}
	}

	return route.Clone(), nil
}

// TravelTime estimates the direct-edge transit time. A speed of 0 means "use the default".
// Negative speeds are rejected.
func (p *RoutePlanner) TravelTime(ctx context.Context, origin, destination domain.City, speedKmh float64) (_ domain.TravelEstimate, err error) {
	defer obs.Time(ctx, "routing.TravelTime")(&err)

	if speedKmh == 0 {
		speedKmh = p.speedKmh
	}

	est, err := TravelTime(p.graph, origin, destination, speedKmh)
	if err != nil {
		return domain.TravelEstimate{}, fmt.Errorf("compute travel time: %w", err)
	}
	return est, nil
}
