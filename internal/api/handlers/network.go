package handlers

import (
	"context"
	"math"
	"net/http"
	"parcel-network-service/internal/adapters/graphviz"
	"parcel-network-service/internal/api/dto"
	"parcel-network-service/internal/domain"
	"parcel-network-service/internal/services"
	"strconv"
	"strings"
	"sync"
)

// RouteService is the routing surface the HTTP layer depends on.
type RouteService interface {
	Graph() *domain.Graph
	Route(ctx context.Context, origin, destination domain.City) (domain.Route, error)
	TravelTime(ctx context.Context, origin, destination domain.City, speedKmh float64) (domain.TravelEstimate, error)
}

// NetworkHandler exposes read-only queries over the city network.
type NetworkHandler struct {
	Routes RouteService

	matrixOnce sync.Once
	matrix     dto.DistanceMatrixResponse
}

func (h *NetworkHandler) Cities(w http.ResponseWriter, r *http.Request) {
	cities := h.Routes.Graph().Cities()
	res := dto.ListCitiesResponse{Cities: make([]string, 0, len(cities))}
	for _, c := range cities {
		res.Cities = append(res.Cities, string(c))
	}
	writeJSON(w, r, http.StatusOK, res)
}

// Network enumerates every node and undirected edge, for external renderers.
func (h *NetworkHandler) Network(w http.ResponseWriter, r *http.Request) {
	g := h.Routes.Graph()

	res := dto.NetworkResponse{}
	for _, c := range g.Cities() {
		res.Cities = append(res.Cities, string(c))
	}
	for _, e := range g.Edges() {
		res.Edges = append(res.Edges, dto.EdgeResponse{A: string(e.A), B: string(e.B), DistanceKm: e.Distance})
	}
	writeJSON(w, r, http.StatusOK, res)
}

// GraphDOT renders the network in Graphviz DOT format.
func (h *NetworkHandler) GraphDOT(w http.ResponseWriter, r *http.Request) {
	b, err := graphviz.MarshalDOT(h.Routes.Graph(), "network")
	if err != nil {
		writeDomainError(w, r, "graph dot", err)
		return
	}
	w.Header().Set("Content-Type", "text/vnd.graphviz")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func (h *NetworkHandler) Route(w http.ResponseWriter, r *http.Request) {
	origin, destination, ok := cityPair(w, r)
	if !ok {
		return
	}

	route, err := h.Routes.Route(r.Context(), origin, destination)
	if err != nil {
		writeDomainError(w, r, "route", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewRouteResponse(route))
}

// TravelTime answers for the direct edge only; see services.TravelTime.
func (h *NetworkHandler) TravelTime(w http.ResponseWriter, r *http.Request) {
	origin, destination, ok := cityPair(w, r)
	if !ok {
		return
	}

	speed := 0.0
	if raw := strings.TrimSpace(r.URL.Query().Get("speed")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || !(v > 0) || math.IsInf(v, 1) {
			writeError(w, r, http.StatusBadRequest, "speed must be a positive finite number")
			return
		}
		speed = v
	}

	est, err := h.Routes.TravelTime(r.Context(), origin, destination, speed)
	if err != nil {
		writeDomainError(w, r, "travel time", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewTravelTimeResponse(est))
}

// Matrix returns all-pairs shortest distances. The graph is immutable, so the
// matrix is computed once per handler.
func (h *NetworkHandler) Matrix(w http.ResponseWriter, r *http.Request) {
	h.matrixOnce.Do(func() {
		m := services.ComputeDistanceMatrix(h.Routes.Graph())
		h.matrix = dto.DistanceMatrixResponse{
			Cities:    dto.CityNames(m.Cities),
			Distances: make(map[string]map[string]float64, len(m.Distances)),
		}
		for a, row := range m.Distances {
			out := make(map[string]float64, len(row))
			for b, d := range row {
				out[string(b)] = d
			}
			h.matrix.Distances[string(a)] = out
		}
	})
	writeJSON(w, r, http.StatusOK, h.matrix)
}

func cityPair(w http.ResponseWriter, r *http.Request) (domain.City, domain.City, bool) {
	q := r.URL.Query()
	origin := domain.NormalizeCity(q.Get("from"))
	destination := domain.NormalizeCity(q.Get("to"))
	if origin == "" || destination == "" {
		writeError(w, r, http.StatusBadRequest, "query parameters from and to are required")
		return "", "", false
	}
	return origin, destination, true
}
