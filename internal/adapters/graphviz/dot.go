package graphviz

import (
	"fmt"
	"parcel-network-service/internal/domain"
	"strconv"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"
)

// cityNode carries the city name as its DOT identifier.
type cityNode struct {
	id   int64
	name domain.City
}

func (n cityNode) ID() int64     { return n.id }
func (n cityNode) DOTID() string { return string(n.name) }
func (n cityNode) Attributes() []encoding.Attribute {
	return []encoding.Attribute{{Key: "shape", Value: "ellipse"}}
}

// roadEdge labels each edge with its distance in km.
type roadEdge struct {
	from, to cityNode
	km       float64
}

func (e roadEdge) From() graph.Node         { return e.from }
func (e roadEdge) To() graph.Node           { return e.to }
func (e roadEdge) ReversedEdge() graph.Edge { return roadEdge{from: e.to, to: e.from, km: e.km} }
func (e roadEdge) Weight() float64          { return e.km }
func (e roadEdge) Attributes() []encoding.Attribute {
	return []encoding.Attribute{{Key: "label", Value: strconv.FormatFloat(e.km, 'f', -1, 64)}}
}

// MarshalDOT renders the network as an undirected Graphviz document with
// distance-labelled edges. It is the hand-off to external renderers; no
// layout is computed here.
func MarshalDOT(g *domain.Graph, name string) ([]byte, error) {
	nodes := make(map[domain.City]cityNode)
	wg := simple.NewWeightedUndirectedGraph(0, 0)

	for i, c := range g.Cities() {
		n := cityNode{id: int64(i), name: c}
		nodes[c] = n
		wg.AddNode(n)
	}
	for _, e := range g.Edges() {
		wg.SetWeightedEdge(roadEdge{from: nodes[e.A], to: nodes[e.B], km: e.Distance})
	}

	b, err := dot.Marshal(wg, name, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal dot: %w", err)
	}
	return b, nil
}
