package countries

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/playperu/geoguess/internal/geoguess"
)

// Store is the SQLite country catalog. The schema is created by the
// migrations package.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Count returns the number of countries in the catalog.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM countries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting countries: %w", err)
	}
	return n, nil
}

// Seed replaces the catalog with cs, recording their order so All returns
// them in data order.
func (s *Store) Seed(ctx context.Context, cs []geoguess.Country) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM countries`); err != nil {
		return fmt.Errorf("clearing catalog: %w", err)
	}

	for i, c := range cs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO countries (code, name, latitude, longitude, position) VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT(code) DO UPDATE SET
				name = excluded.name,
				latitude = excluded.latitude,
				longitude = excluded.longitude,
				position = excluded.position`,
			c.Code, c.Name, c.Latitude, c.Longitude, i,
		)
		if err != nil {
			return fmt.Errorf("inserting %s: %w", c.Code, err)
		}
	}

	return tx.Commit()
}

// All returns every country in data order.
func (s *Store) All(ctx context.Context) ([]geoguess.Country, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT code, name, latitude, longitude FROM countries ORDER BY position, code`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cs []geoguess.Country
	for rows.Next() {
		var c geoguess.Country
		if err := rows.Scan(&c.Code, &c.Name, &c.Latitude, &c.Longitude); err != nil {
			return nil, err
		}
		cs = append(cs, c)
	}
	return cs, rows.Err()
}

// LoadAtlas seeds the catalog when it is empty or replaces it when a
// dataset file is given, then reads the atlas from it. An empty path seeds from the
// embedded dataset.
func LoadAtlas(ctx context.Context, logger *slog.Logger, store *Store, path string) (*geoguess.Atlas, error) {
	n, err := store.Count(ctx)
	if err != nil {
		return nil, err
	}

	if n == 0 || path != "" {
		var cs []geoguess.Country
		if path != "" {
			cs, err = LoadFile(path)
		} else {
			cs, err = Embedded()
		}
		if err != nil {
			return nil, fmt.Errorf("loading dataset: %w", err)
		}
		if err := store.Seed(ctx, cs); err != nil {
			return nil, fmt.Errorf("seeding catalog: %w", err)
		}
		logger.Info("country catalog seeded", "countries", len(cs), "file", path)
	}

	cs, err := store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	if len(cs) == 0 {
		return nil, ErrEmptyDataset
	}
	return geoguess.NewAtlas(cs)
}
