package ports

import (
	"context"
	"parcel-network-service/internal/domain"
)

// Port: durable storage for the package registry.
//
// Save always receives the complete registry and replaces whatever was stored
// before; there is no incremental append.
type RegistryStore interface {
	// Return the persisted packages in creation order.
	// A store with no prior state returns an empty slice and a nil error.
	Load(ctx context.Context) ([]domain.Package, error)
	// Replace the persisted state with pkgs.
	Save(ctx context.Context, pkgs []domain.Package) error
}
