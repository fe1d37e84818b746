package services

import (
	"context"
	"errors"
	"fmt"
	"parcel-network-service/internal/domain"
	"parcel-network-service/internal/platform/obs"
	"parcel-network-service/internal/ports"
	"slices"
	"sync"

	"github.com/rs/zerolog"
)

// PackageRegistry is the authoritative, ordered collection of package records.
//
// It owns the in-memory slice exclusively and rewrites the full persisted state
// after every successful mutation. Mutations hold mu for the whole
// read-modify-save sequence so the code counter and the store stay consistent
// under concurrent callers.
type PackageRegistry struct {
	mu       sync.RWMutex
	packages []domain.Package
	store    ports.RegistryStore
	planner  *RoutePlanner
}

// NewPackageRegistry loads prior state from store. A store without prior state
// yields an empty registry; any other load failure is returned.
func NewPackageRegistry(ctx context.Context, store ports.RegistryStore, planner *RoutePlanner) (*PackageRegistry, error) {
	if store == nil {
		return nil, errors.New("new package registry: store must be non-nil")
	}
	if planner == nil {
		return nil, errors.New("new package registry: planner must be non-nil")
	}

	pkgs, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("new package registry: load: %w: %w", domain.ErrStorage, err)
	}

	seen := make(map[string]struct{}, len(pkgs))
	for i, p := range pkgs {
		if _, dup := seen[p.Code]; dup {
			return nil, fmt.Errorf("new package registry: duplicate code %q at index %d: %w", p.Code, i, domain.ErrStorage)
		}
		seen[p.Code] = struct{}{}
	}

	zerolog.Ctx(ctx).Info().Int("packages", len(pkgs)).Msg("registry loaded")

	return &PackageRegistry{packages: pkgs, store: store, planner: planner}, nil
}

// Create routes a new package from origin to destination and registers it with
// status "in transit". If no route exists nothing is stored. If the save fails
// the in-memory registry is left as it was before the call.
func (r *PackageRegistry) Create(ctx context.Context, origin, destination domain.City) (_ domain.Package, err error) {
	defer obs.Time(ctx, "registry.Create")(&err)

	route, err := r.planner.Route(ctx, origin, destination)
	if err != nil {
		return domain.Package{}, fmt.Errorf("create package: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	pkg := domain.Package{
		Code:          domain.FormatCode(r.nextSequenceLocked()),
		Origin:        origin,
		Destination:   destination,
		Route:         route.Cities,
		DistanceTotal: route.DistanceKm,
		Status:        domain.StatusInTransit,
	}

	r.packages = append(r.packages, pkg)
	if err := r.saveLocked(ctx); err != nil {
		r.packages = r.packages[:len(r.packages)-1]
		return domain.Package{}, fmt.Errorf("create package %s: %w", pkg.Code, err)
	}

	zerolog.Ctx(ctx).Info().Str("code", pkg.Code).Str("origin", string(origin)).Str("destination", string(destination)).
		Float64("distance_km", pkg.DistanceTotal).Msg("package registered")

	return pkg.Clone(), nil
}

// Find returns the package with the given code.
func (r *PackageRegistry) Find(code string) (domain.Package, error) {
	if _, err := domain.ParseCode(code); err != nil {
		return domain.Package{}, fmt.Errorf("find package: %w", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexLocked(code)
	if i < 0 {
		return domain.Package{}, fmt.Errorf("find package %q: %w", code, domain.ErrNotFound)
	}
	return r.packages[i].Clone(), nil
}

// List returns all packages in creation order. The result is a copy and is
// never nil.
func (r *PackageRegistry) List() []domain.Package {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Package, 0, len(r.packages))
	for _, p := range r.packages {
		out = append(out, p.Clone())
	}
	return out
}

// Len is the number of registered packages.
func (r *PackageRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.packages)
}

// Remove deletes the package with the given code and persists the registry.
// On save failure the package is restored at its original position.
func (r *PackageRegistry) Remove(ctx context.Context, code string) (err error) {
	defer obs.Time(ctx, "registry.Remove")(&err)

	if _, err := domain.ParseCode(code); err != nil {
		return fmt.Errorf("remove package: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(code)
	if i < 0 {
		return fmt.Errorf("remove package %q: %w", code, domain.ErrNotFound)
	}

	removed := r.packages[i]
	r.packages = slices.Delete(r.packages, i, i+1)

	if err := r.saveLocked(ctx); err != nil {
		r.packages = slices.Insert(r.packages, i, removed)
		return fmt.Errorf("remove package %q: %w", code, err)
	}

	zerolog.Ctx(ctx).Info().Str("code", code).Msg("package removed")
	return nil
}

// nextSequenceLocked derives the next code from current state: one past the
// larger of the registry length and the highest sequence in use. With no
// deletions this is len+1; after deletions it never reissues a live code.
func (r *PackageRegistry) nextSequenceLocked() int {
	highest := len(r.packages)
	for _, p := range r.packages {
		if seq, err := domain.ParseCode(p.Code); err == nil && seq > highest {
			highest = seq
		}
	}
	return highest + 1
}

func (r *PackageRegistry) indexLocked(code string) int {
	return slices.IndexFunc(r.packages, func(p domain.Package) bool { return p.Code == code })
}

func (r *PackageRegistry) saveLocked(ctx context.Context) error {
	snapshot := make([]domain.Package, len(r.packages))
	copy(snapshot, r.packages)

	if err := r.store.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("save registry: %w: %w", domain.ErrStorage, err)
	}
	return nil
}
