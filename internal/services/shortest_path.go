package services

import (
	"container/heap"
	"fmt"
	"math"
	"parcel-network-service/internal/domain"
)

// DefaultSpeedKmh is the average truck speed used when callers do not supply one.
const DefaultSpeedKmh = 80.0

// ShortestPath computes the minimum-distance route between two cities using Dijkstra.
//
// Neighbours are relaxed in name order and equal-priority queue entries pop in push
// order, so ties resolve by discovery order and the result is stable for a given graph.
// Only strictly shorter paths replace a known predecessor.
// The graph is read, never written.
func ShortestPath(g *domain.Graph, origin, destination domain.City) (domain.Route, error) {
	if !g.Has(origin) {
		return domain.Route{}, fmt.Errorf("shortest path: origin %q: %w", origin, domain.ErrNotFound)
	}
	if !g.Has(destination) {
		return domain.Route{}, fmt.Errorf("shortest path: destination %q: %w", destination, domain.ErrNotFound)
	}
	if origin == destination {
		return domain.Route{}, fmt.Errorf("shortest path: origin and destination are both %q: %w", origin, domain.ErrInvalidArgument)
	}

	dist := map[domain.City]float64{origin: 0}
	prev := make(map[domain.City]domain.City)
	settled := make(map[domain.City]bool)

	pq := &cityQueue{}
	heap.Push(pq, &queueItem{city: origin, priority: 0})

	for pq.Len() > 0 {
		item := heap.Pop(pq).(*queueItem)
		current := item.city

		if settled[current] {
			continue
		}
		settled[current] = true

		if current == destination {
			break
		}

		for _, n := range g.Neighbors(current) {
			if settled[n.City] {
				continue
			}
			tentative := dist[current] + n.Distance
			if known, ok := dist[n.City]; !ok || tentative < known {
				dist[n.City] = tentative
				prev[n.City] = current
				heap.Push(pq, &queueItem{city: n.City, priority: tentative})
			}
		}
	}

	if !settled[destination] {
		return domain.Route{}, fmt.Errorf("shortest path: %q to %q: %w", origin, destination, domain.ErrNoPath)
	}

	return domain.Route{
		Cities:     reconstructPath(prev, origin, destination),
		DistanceKm: dist[destination],
	}, nil
}

// TravelTime estimates transit time over the direct edge between two cities.
//
// It deliberately does not fall back to a multi-hop route: cities that are only
// connected through intermediate stops yield ErrNotFound. Use ShortestPath for those.
func TravelTime(g *domain.Graph, origin, destination domain.City, speedKmh float64) (domain.TravelEstimate, error) {
	if !validSpeed(speedKmh) {
		return domain.TravelEstimate{}, fmt.Errorf("travel time: speed must be a positive finite number, got %v: %w", speedKmh, domain.ErrInvalidArgument)
	}

	km, ok := g.Distance(origin, destination)
	if !ok {
		return domain.TravelEstimate{}, fmt.Errorf("travel time: no direct edge %q to %q: %w", origin, destination, domain.ErrNotFound)
	}

	hours := km / speedKmh
	if math.IsInf(hours, 0) || math.IsNaN(hours) {
		return domain.TravelEstimate{}, fmt.Errorf("travel time: speed %v too small for %v km: %w", speedKmh, km, domain.ErrInvalidArgument)
	}

	return domain.TravelEstimate{
		Origin:      origin,
		Destination: destination,
		DistanceKm:  km,
		SpeedKmh:    speedKmh,
		Hours:       hours,
	}, nil
}

func validSpeed(kmh float64) bool {
	return kmh > 0 && !math.IsInf(kmh, 1)
}

func reconstructPath(prev map[domain.City]domain.City, origin, destination domain.City) []domain.City {
	path := []domain.City{destination}
	for current := destination; current != origin; {
		current = prev[current]
		path = append(path, current)
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

type queueItem struct {
	city     domain.City
	priority float64
	seq      int
}

// cityQueue is a min-heap on priority, FIFO among equal priorities.
type cityQueue struct {
	items []*queueItem
	next  int
}

func (pq *cityQueue) Len() int { return len(pq.items) }

func (pq *cityQueue) Less(i, j int) bool {
	a, b := pq.items[i], pq.items[j]
	if a.priority != b.priority {
		return a.priority < b.priority
	}
	return a.seq < b.seq
}

func (pq *cityQueue) Swap(i, j int) { pq.items[i], pq.items[j] = pq.items[j], pq.items[i] }

func (pq *cityQueue) Push(x any) {
	item := x.(*queueItem)
	item.seq = pq.next
	pq.next++
	pq.items = append(pq.items, item)
}

func (pq *cityQueue) Pop() any {
	old := pq.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	pq.items = old[:n-1]
	return item
}
