package api

import (
	"net/http"
	"parcel-network-service/internal/api/handlers"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(logger zerolog.Logger, routes handlers.RouteService, registry handlers.PackageService) http.Handler {
	r := mux.NewRouter()

	netHandler := &handlers.NetworkHandler{Routes: routes}
	pkgHandler := &handlers.PackageHandler{Registry: registry}

	r.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)

	r.HandleFunc("/cities", netHandler.Cities).Methods(http.MethodGet)
	r.HandleFunc("/network", netHandler.Network).Methods(http.MethodGet)
	r.HandleFunc("/graph.dot", netHandler.GraphDOT).Methods(http.MethodGet)
	r.HandleFunc("/routes", netHandler.Route).Methods(http.MethodGet)
	r.HandleFunc("/travel-time", netHandler.TravelTime).Methods(http.MethodGet)
	r.HandleFunc("/matrix", netHandler.Matrix).Methods(http.MethodGet)

	r.HandleFunc("/packages", pkgHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/packages", pkgHandler.Create).Methods(http.MethodPost)
	r.HandleFunc("/packages/{code}", pkgHandler.Get).Methods(http.MethodGet)
	r.HandleFunc("/packages/{code}", pkgHandler.Delete).Methods(http.MethodDelete)

	return loggingMiddleware(logger, r)
}
