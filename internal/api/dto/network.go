package dto

type ListCitiesResponse struct {
	Cities []string `json:"cities"`
}

type RouteResponse struct {
	Origin      string   `json:"origin"`
	Destination string   `json:"destination"`
	Route       []string `json:"route"`
	DistanceKm  float64  `json:"distance_km"`
}

type TravelTimeResponse struct {
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	DistanceKm  float64 `json:"distance_km"`
	SpeedKmh    float64 `json:"speed_kmh"`
	Hours       float64 `json:"hours"`
}

type EdgeResponse struct {
	A          string  `json:"a"`
	B          string  `json:"b"`
	DistanceKm float64 `json:"distance_km"`
}

type NetworkResponse struct {
	Cities []string       `json:"cities"`
	Edges  []EdgeResponse `json:"edges"`
}

// DistanceMatrixResponse maps origin -> destination -> shortest km.
type DistanceMatrixResponse struct {
	Cities    []string                      `json:"cities"`
	Distances map[string]map[string]float64 `json:"distances"`
}
