package repositories

import (
	"context"
	"parcel-network-service/internal/domain"
	"sync"
)

// MemoryRegistryStore keeps registry state in process memory.
// It backs REGISTRY_BACKEND=memory and doubles as a test fake: FailSave and
// FailLoad inject errors, Saves counts successful writes.
type MemoryRegistryStore struct {
	mu       sync.Mutex
	pkgs     []domain.Package
	saved    bool
	Saves    int
	FailSave error
	FailLoad error
}

func NewMemoryRegistryStore(initial ...domain.Package) *MemoryRegistryStore {
	s := &MemoryRegistryStore{}
	if len(initial) > 0 {
		s.pkgs = clonePackages(initial)
		s.saved = true
	}
	return s
}

func (s *MemoryRegistryStore) Load(ctx context.Context) ([]domain.Package, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailLoad != nil {
		return nil, s.FailLoad
	}
	return clonePackages(s.pkgs), nil
}

func (s *MemoryRegistryStore) Save(ctx context.Context, pkgs []domain.Package) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailSave != nil {
		return s.FailSave
	}
	s.pkgs = clonePackages(pkgs)
	s.saved = true
	s.Saves++
	return nil
}

// Snapshot returns the last saved state and whether anything was ever saved.
func (s *MemoryRegistryStore) Snapshot() ([]domain.Package, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clonePackages(s.pkgs), s.saved
}

func clonePackages(pkgs []domain.Package) []domain.Package {
	out := make([]domain.Package, 0, len(pkgs))
	for _, p := range pkgs {
		out = append(out, p.Clone())
	}
	return out
}
