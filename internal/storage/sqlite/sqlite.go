// Package sqlite provides a SQLite-backed implementation of storage.Local.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/seatsync/internal/models"
	"github.com/mmynk/seatsync/internal/storage"
)

// Ensure SQLiteStore implements storage.Local
var _ storage.Local = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Local using SQLite.
// Each key holds one encoded snapshot document.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows one writer; writes from the sync engine are already serialized
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load reads the snapshot stored under key.
// A missing or undecodable value is reported as not found.
func (s *SQLiteStore) Load(ctx context.Context, key string) (models.Snapshot, bool, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM cache WHERE key = ?",
		key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return models.Snapshot{}, false, nil
	}
	if err != nil {
		return models.Snapshot{}, false, fmt.Errorf("failed to load %s: %w", key, err)
	}

	snapshot, ok := storage.Decode(value)
	return snapshot, ok, nil
}

// Save overwrites the value stored under key.
func (s *SQLiteStore) Save(ctx context.Context, key string, snapshot models.Snapshot) error {
	value, err := storage.Encode(snapshot)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO cache (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(value), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// UpdatedAt returns the Unix timestamp of the last write to key, or 0 when
// the key has never been written.
func (s *SQLiteStore) UpdatedAt(ctx context.Context, key string) (int64, error) {
	var ts int64
	err := s.db.QueryRowContext(ctx,
		"SELECT updated_at FROM cache WHERE key = ?",
		key,
	).Scan(&ts)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read updated_at for %s: %w", key, err)
	}
	return ts, nil
}
