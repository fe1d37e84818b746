package repositories

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"parcel-network-service/internal/domain"
	"path/filepath"

	"github.com/goccy/go-json"
)

// JSONRegistryStore persists the registry as a single indented JSON array.
//
// Saves write a temp file in the target directory, fsync it and rename it over
// the previous file, so readers see either the old or the new document.
type JSONRegistryStore struct {
	Path string
}

func NewJSONRegistryStore(path string) *JSONRegistryStore {
	return &JSONRegistryStore{Path: path}
}

// Load reads the registry file. A missing file means no prior state.
func (s *JSONRegistryStore) Load(ctx context.Context) ([]domain.Package, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return []domain.Package{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("json registry store: read %q: %w", s.Path, err)
	}

	var recs []packageRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("json registry store: parse %q: %w", s.Path, err)
	}

	return fromRecords(recs), nil
}

func (s *JSONRegistryStore) Save(ctx context.Context, pkgs []domain.Package) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(toRecords(pkgs), "", "    ")
	if err != nil {
		return fmt.Errorf("json registry store: encode: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("json registry store: create dir %q: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("json registry store: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("json registry store: chmod %q: %w", tmpName, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("json registry store: write %q: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("json registry store: sync %q: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("json registry store: close %q: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, s.Path); err != nil {
		return fmt.Errorf("json registry store: replace %q: %w", s.Path, err)
	}

	return nil
}
