package domain

import (
	"errors"
	"testing"
)

func TestBuildGraphIsSymmetric(t *testing.T) {
	g := BuildGraph()

	for _, a := range g.Cities() {
		for _, n := range g.Neighbors(a) {
			back, ok := g.Distance(n.City, a)
			if !ok {
				t.Fatalf("edge %s-%s has no reverse", a, n.City)
			}
			if back != n.Distance {
				t.Fatalf("edge %s-%s = %v, reverse = %v", a, n.City, n.Distance, back)
			}
			if n.City == a {
				t.Fatalf("self-loop on %s", a)
			}
			if n.Distance <= 0 {
				t.Fatalf("edge %s-%s has non-positive weight %v", a, n.City, n.Distance)
			}
		}
	}
}

func TestBuildGraphTopology(t *testing.T) {
	g := BuildGraph()

	want := []City{"Barcelona", "Bilbao", "Lisboa", "Madrid", "Porto", "Sevilla", "Valencia", "Zaragoza"}
	got := g.Cities()
	if len(got) != len(want) {
		t.Fatalf("cities = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("cities[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if d, ok := g.Distance("Madrid", "Barcelona"); !ok || d != 621 {
		t.Fatalf("Madrid-Barcelona = %v (ok=%v), want 621", d, ok)
	}
	if _, ok := g.Distance("Valencia", "Bilbao"); ok {
		t.Fatalf("Valencia-Bilbao should have no direct edge")
	}
	if d, ok := g.Distance("Zaragoza", "Madrid"); !ok || d != 325 {
		t.Fatalf("Zaragoza-Madrid = %v (ok=%v), want 325", d, ok)
	}

	if n := len(g.Edges()); n != 13 {
		t.Fatalf("edge count = %d, want 13", n)
	}
}

func TestEdgesAreOrdered(t *testing.T) {
	edges := BuildGraph().Edges()
	for i, e := range edges {
		if e.A >= e.B {
			t.Fatalf("edge #%d %s-%s is not ordered", i, e.A, e.B)
		}
		if i > 0 {
			prev := edges[i-1]
			if prev.A > e.A || (prev.A == e.A && prev.B >= e.B) {
				t.Fatalf("edges out of order at #%d: %v then %v", i, prev, e)
			}
		}
	}
}

func TestNewGraphRejectsInvalidEdges(t *testing.T) {
	cases := map[string][]Edge{
		"self loop":   {{"A", "A", 1}},
		"zero weight": {{"A", "B", 0}},
		"negative":    {{"A", "B", -3}},
		"empty name":  {{"", "B", 3}},
		"conflict":    {{"A", "B", 3}, {"B", "A", 4}},
	}

	for name, edges := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewGraph(edges)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("err = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestNewGraphAcceptsRepeatedEqualEdge(t *testing.T) {
	g, err := NewGraph([]Edge{{"A", "B", 3}, {"B", "A", 3}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(g.Edges()) != 1 {
		t.Fatalf("edges = %v, want one", g.Edges())
	}
}

func TestNormalizeCity(t *testing.T) {
	cases := map[string]City{
		"madrid":      "Madrid",
		"  SEVILLA  ": "Sevilla",
		"lisboa":      "Lisboa",
		"":            "",
	}
	for in, want := range cases {
		if got := NormalizeCity(in); got != want {
			t.Errorf("NormalizeCity(%q) = %q, want %q", in, got, want)
		}
	}
}
