package handlers

import (
	"context"
	"io"
	"net/http"
	"parcel-network-service/internal/api/dto"
	"parcel-network-service/internal/domain"
	"strings"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
)

// PackageService is the registry surface the HTTP layer depends on.
type PackageService interface {
	Create(ctx context.Context, origin, destination domain.City) (domain.Package, error)
	Find(code string) (domain.Package, error)
	List() []domain.Package
	Remove(ctx context.Context, code string) error
}

// PackageHandler exposes package registration, tracking and removal.
type PackageHandler struct {
	Registry PackageService
}

func (h *PackageHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, dto.NewListPackagesResponse(h.Registry.List()))
}

func (h *PackageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePackageRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	origin := domain.NormalizeCity(req.Origin)
	destination := domain.NormalizeCity(req.Destination)
	if origin == "" || destination == "" {
		writeError(w, r, http.StatusBadRequest, "origin and destination are required")
		return
	}

	pkg, err := h.Registry.Create(r.Context(), origin, destination)
	if err != nil {
		writeDomainError(w, r, "create package", err)
		return
	}

	w.Header().Set("Location", "/packages/"+pkg.Code)
	writeJSON(w, r, http.StatusCreated, dto.NewPackageResponse(pkg))
}

func (h *PackageHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(strings.TrimSpace(mux.Vars(r)["code"]))

	pkg, err := h.Registry.Find(code)
	if err != nil {
		writeDomainError(w, r, "find package", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewPackageResponse(pkg))
}

func (h *PackageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(strings.TrimSpace(mux.Vars(r)["code"]))

	if err := h.Registry.Remove(r.Context(), code); err != nil {
		writeDomainError(w, r, "remove package", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
