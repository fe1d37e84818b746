package repositories

import (
	"context"
	"errors"
	"fmt"
	"os"
	"parcel-network-service/internal/domain"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"go.etcd.io/bbolt"
)

var (
	boltRegistryBucket = []byte("registry")
	boltPackagesKey    = []byte("packages")
)

// BoltRegistryStore keeps the registry document in a single bbolt key.
// Each Save replaces the whole document inside one write transaction.
type BoltRegistryStore struct {
	db *bbolt.DB
}

func OpenBoltRegistryStore(path string) (*BoltRegistryStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("bolt registry store: create dir for %q: %w", path, err)
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bolt registry store: open %q: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(boltRegistryBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("bolt registry store: create bucket: %w", err)
	}

	return &BoltRegistryStore{db: db}, nil
}

func (s *BoltRegistryStore) Close() error {
	return s.db.Close()
}

func (s *BoltRegistryStore) Load(ctx context.Context) ([]domain.Package, error) {
	if s.db == nil {
		return nil, errors.New("bolt registry store: db is nil")
	}

	var recs []packageRecord
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(boltRegistryBucket).Get(boltPackagesKey)
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &recs)
	})
	if err != nil {
		return nil, fmt.Errorf("bolt registry store: load: %w", err)
	}

	return fromRecords(recs), nil
}

func (s *BoltRegistryStore) Save(ctx context.Context, pkgs []domain.Package) error {
	if s.db == nil {
		return errors.New("bolt registry store: db is nil")
	}

	data, err := json.Marshal(toRecords(pkgs))
	if err != nil {
		return fmt.Errorf("bolt registry store: encode: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(boltRegistryBucket).Put(boltPackagesKey, data)
	})
	if err != nil {
		return fmt.Errorf("bolt registry store: save: %w", err)
	}

	return nil
}
