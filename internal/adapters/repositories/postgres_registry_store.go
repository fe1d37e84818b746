package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"parcel-network-service/internal/domain"
	"parcel-network-service/internal/platform/obs"

	"github.com/goccy/go-json"
)

// Postgres-backed implementation of the RegistryStore port.
//
// Save rewrites the packages table inside one transaction; position keeps
// creation order since the table itself is unordered.
type PostgresRegistryStore struct{ DB *sql.DB }

func NewPostgresRegistryStore(db *sql.DB) *PostgresRegistryStore {
	return &PostgresRegistryStore{DB: db}
}

// Return all packages in creation order. An empty table is an empty registry.
func (s *PostgresRegistryStore) Load(ctx context.Context) (_ []domain.Package, err error) {
	defer obs.Time(ctx, "registry.postgres.Load")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres registry store: DB is nil")
	}

	query := `
	SELECT
		code,
		origin,
		destination,
		route,
		distance_total,
		status
	FROM packages
	ORDER BY position;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load packages: query packages table: %w", err)
	}
	defer rows.Close()

	recs := make([]packageRecord, 0, 64)
	for rows.Next() {
		var rec packageRecord
		var route []byte
		if err := rows.Scan(&rec.Code, &rec.Origin, &rec.Destination, &route, &rec.DistanceTotal, &rec.Status); err != nil {
			return nil, fmt.Errorf("load packages: scan row: %w", err)
		}
		if err := json.Unmarshal(route, &rec.Route); err != nil {
			return nil, fmt.Errorf("load packages: decode route of %q: %w", rec.Code, err)
		}
		recs = append(recs, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load packages: row iteration: %w", err)
	}

	return fromRecords(recs), nil
}

// Replace the table contents with pkgs.
func (s *PostgresRegistryStore) Save(ctx context.Context, pkgs []domain.Package) (err error) {
	defer obs.Time(ctx, "registry.postgres.Save")(&err)

	if s.DB == nil {
		return errors.New("postgres registry store: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save packages: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM packages;`); err != nil {
		return fmt.Errorf("save packages: clear table: %w", err)
	}

	if len(pkgs) > 0 {
		stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO packages (position, code, origin, destination, route, distance_total, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
		`)
		if err != nil {
			return fmt.Errorf("save packages: prepare insert: %w", err)
		}
		defer stmt.Close()

		for i, p := range pkgs {
			rec := toRecord(p)
			route, err := json.Marshal(rec.Route)
			if err != nil {
				return fmt.Errorf("save packages: encode route of %q: %w", rec.Code, err)
			}
			if _, err := stmt.ExecContext(ctx, i, rec.Code, rec.Origin, rec.Destination, string(route), rec.DistanceTotal, rec.Status); err != nil {
				return fmt.Errorf("save packages: insert code=%s: %w", rec.Code, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save packages: commit tx: %w", err)
	}

	return nil
}
