package catalog

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"kithara/internal/config"
	"kithara/internal/services"
)

//go:embed schema.sql
var schemaSQL string

// Store manages catalog persistence backed by SQLite. All access funnels
// through one mutex-guarded connection; both reads and writes serialize.
type Store struct {
	mu   sync.Mutex
	db   *sql.DB
	path string
}

// Open initializes or connects to the catalog database and ensures the
// schema exists.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.DatabasePath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, services.Wrap(services.ErrPersistence, "catalog", "open", dbPath, err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, services.Wrap(services.ErrPersistence, "catalog", "open", fmt.Sprintf("apply pragma %q", pragma), execErr)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, services.Wrap(services.ErrPersistence, "catalog", "open", "create schema", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Clear deletes all sound and track rows and all migration markers, so
// one-shot migrations re-execute on the next run. Used when rebuilding the
// cache from scratch.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, stmt := range []string{
		"DELETE FROM sounds",
		"DELETE FROM music_tracks",
		"DELETE FROM metadata",
	} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return services.Wrap(services.ErrPersistence, "catalog", "clear", stmt, err)
		}
	}
	return nil
}

// Metadata returns the value stored under key, or ok=false when absent.
func (s *Store) Metadata(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metadataLocked(ctx, key)
}

// SetMetadata stores a key-value pair, replacing any previous value.
func (s *Store) SetMetadata(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setMetadataLocked(ctx, key, value)
}

func (s *Store) metadataLocked(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM metadata WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, services.Wrap(services.ErrPersistence, "catalog", "metadata", key, err)
	}
	return value, true, nil
}

func (s *Store) setMetadataLocked(ctx context.Context, key, value string) error {
	if _, err := s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO metadata (key, value) VALUES (?, ?)", key, value); err != nil {
		return services.Wrap(services.ErrPersistence, "catalog", "set metadata", key, err)
	}
	return nil
}
