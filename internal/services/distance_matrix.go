package services

import (
	"math"
	"parcel-network-service/internal/domain"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

// DistanceMatrix holds all-pairs shortest distances in km.
// Unreachable pairs are absent from the inner maps.
type DistanceMatrix struct {
	Cities    []domain.City
	Distances map[domain.City]map[domain.City]float64
}

// Lookup returns the shortest distance between a and b.
func (m DistanceMatrix) Lookup(a, b domain.City) (float64, bool) {
	d, ok := m.Distances[a][b]
	return d, ok
}

// ComputeDistanceMatrix runs an all-pairs Dijkstra over the network.
// Only distances are kept; route shapes come from ShortestPath, whose
// tie-breaking is deterministic.
func ComputeDistanceMatrix(g *domain.Graph) DistanceMatrix {
	cities := g.Cities()
	ids := make(map[domain.City]int64, len(cities))
	for i, c := range cities {
		ids[c] = int64(i)
	}

	wg := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	for _, c := range cities {
		wg.AddNode(simple.Node(ids[c]))
	}
	for _, e := range g.Edges() {
		wg.SetWeightedEdge(wg.NewWeightedEdge(simple.Node(ids[e.A]), simple.Node(ids[e.B]), e.Distance))
	}

	all := path.DijkstraAllPaths(wg)

	out := DistanceMatrix{
		Cities:    cities,
		Distances: make(map[domain.City]map[domain.City]float64, len(cities)),
	}
	for _, a := range cities {
		row := make(map[domain.City]float64, len(cities))
		for _, b := range cities {
			w := all.Weight(ids[a], ids[b])
			if math.IsInf(w, 1) {
				continue
			}
			row[b] = w
		}
		out.Distances[a] = row
	}
	return out
}
