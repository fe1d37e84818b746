package domain

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// City is an opaque node identifier in the network graph.
type City string

// Edge is an undirected road connection between two cities.
// Distance is expressed in kilometers and is always positive.
type Edge struct {
	A        City
	B        City
	Distance float64
}

// Graph is the static, undirected, weighted city network.
// It is built once and never mutated; callers only read from it.
type Graph struct {
	adj map[City]map[City]float64
}

// cityTable is the fixed topology, as approximate road distances in km.
// Each unordered pair appears once; symmetry is applied by NewGraph.
var cityTable = []Edge{
	{"Madrid", "Barcelona", 621},
	{"Madrid", "Valencia", 355},
	{"Madrid", "Sevilla", 532},
	{"Madrid", "Lisboa", 625},
	{"Madrid", "Bilbao", 400},
	{"Madrid", "Zaragoza", 325},
	{"Barcelona", "Valencia", 350},
	{"Barcelona", "Bilbao", 610},
	{"Barcelona", "Zaragoza", 313},
	{"Valencia", "Sevilla", 650},
	{"Sevilla", "Lisboa", 460},
	{"Lisboa", "Porto", 313},
	{"Bilbao", "Zaragoza", 320},
}

// BuildGraph returns the fixed Iberian city network.
func BuildGraph() *Graph {
	g, err := NewGraph(cityTable)
	if err != nil {
		// The literal table is part of the program; a bad entry is a programming error.
		panic(err)
	}
	return g
}

// NewGraph builds an immutable graph from a list of undirected edges.
// It rejects self-loops, non-positive weights and conflicting duplicate pairs.
func NewGraph(edges []Edge) (*Graph, error) {
	adj := make(map[City]map[City]float64)

	link := func(from, to City, d float64) {
		if adj[from] == nil {
			adj[from] = make(map[City]float64)
		}
		adj[from][to] = d
	}

	for i, e := range edges {
		if e.A == "" || e.B == "" {
			return nil, fmt.Errorf("new graph: edge #%d: city name must not be empty: %w", i+1, ErrInvalidArgument)
		}
		if e.A == e.B {
			return nil, fmt.Errorf("new graph: edge #%d: self-loop on %q: %w", i+1, e.A, ErrInvalidArgument)
		}
		if e.Distance <= 0 {
			return nil, fmt.Errorf("new graph: edge %q-%q: distance must be positive, got %v: %w", e.A, e.B, e.Distance, ErrInvalidArgument)
		}
		if prev, ok := adj[e.A][e.B]; ok && prev != e.Distance {
			return nil, fmt.Errorf("new graph: edge %q-%q: conflicting distances %v and %v: %w", e.A, e.B, prev, e.Distance, ErrInvalidArgument)
		}

		link(e.A, e.B, e.Distance)
		link(e.B, e.A, e.Distance)
	}

	return &Graph{adj: adj}, nil
}

// Has reports whether the city is a node of the graph.
func (g *Graph) Has(c City) bool {
	_, ok := g.adj[c]
	return ok
}

// Cities returns every node sorted by name.
func (g *Graph) Cities() []City {
	out := make([]City, 0, len(g.adj))
	for c := range g.adj {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// Neighbor is one incident edge seen from a given city.
type Neighbor struct {
	City     City
	Distance float64
}

// Neighbors returns the cities adjacent to c, sorted by name.
// Iteration order is fixed so that graph searches are deterministic.
func (g *Graph) Neighbors(c City) []Neighbor {
	row := g.adj[c]
	out := make([]Neighbor, 0, len(row))
	for n, d := range row {
		out = append(out, Neighbor{City: n, Distance: d})
	}
	slices.SortFunc(out, func(a, b Neighbor) int { return strings.Compare(string(a.City), string(b.City)) })
	return out
}

// Distance returns the weight of the direct edge between a and b.
func (g *Graph) Distance(a, b City) (float64, bool) {
	d, ok := g.adj[a][b]
	return d, ok
}

// Edges enumerates each undirected edge once, with A < B, sorted.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0)
	for _, a := range g.Cities() {
		for _, n := range g.Neighbors(a) {
			if a < n.City {
				out = append(out, Edge{A: a, B: n.City, Distance: n.Distance})
			}
		}
	}
	return out
}

// NormalizeCity trims and title-cases free-form user input ("  madrid " -> "Madrid").
// Boundary layers call it; the graph itself treats names as opaque.
func NormalizeCity(s string) City {
	// Casers carry state, so one is built per call.
	return City(cases.Title(language.Und).String(strings.TrimSpace(s)))
}
