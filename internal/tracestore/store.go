// Package tracestore persists a simulation's termination events and
// species coverage deltas to DuckDB, outside the polymer core: the core
// only emits signals (internal/polymer.Signal), and a Store subscribes
// to them the way an outside collaborator would, mirroring
// internal/duckdb/store.go's Open/ensureSchema/insert shape.
package tracestore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// Store manages a DuckDB connection recording one simulation run's
// termination events and species counts over time.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at path. An empty path opens
// an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("create tracestore directory: %w", err)
			}
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error { return s.db.Close() }

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) ensureSchema() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS termination_events (
		tick BIGINT,
		polymer_index INTEGER,
		polymer_name VARCHAR,
		polymerase VARCHAR,
		gene VARCHAR
	)`); err != nil {
		return err
	}

	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS species_counts (
		tick BIGINT,
		species VARCHAR,
		delta INTEGER
	)`)
	return err
}
