package domain

// Represents a computed path through the network.
// Cities is ordered from origin to destination and consecutive entries
// are joined by a graph edge. DistanceKm is the sum of traversed edge weights.
type Route struct {
	Cities     []City
	DistanceKm float64
}

func (r Route) Origin() City { return r.Cities[0] }

func (r Route) Destination() City { return r.Cities[len(r.Cities)-1] }

// Hops is the number of edges traversed.
func (r Route) Hops() int { return len(r.Cities) - 1 }

// Clone returns a copy that shares no memory with r.
func (r Route) Clone() Route {
	return Route{Cities: append([]City(nil), r.Cities...), DistanceKm: r.DistanceKm}
}

// Represents the estimate for a single direct edge.
type TravelEstimate struct {
	Origin      City
	Destination City
	DistanceKm  float64
	SpeedKmh    float64
	Hours       float64
}
