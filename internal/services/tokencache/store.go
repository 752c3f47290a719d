// Package tokencache persists Real-Debrid API tokens across runs so that a
// credential pair does not trigger a fresh web login on every process start.
//
// Tokens are stored in a small SQLite database keyed by (username, password).
// No expiry is recorded: staleness is determined by live validation at
// resolution time, not by the cache.
package tokencache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DefaultFilename is the cache database filename, placed in the platform
// temp directory.
const DefaultFilename = "api-token_cache_real-debrid.com.db"

const schema = `CREATE TABLE IF NOT EXISTS tokens (
	username TEXT,
	password TEXT,
	token    TEXT,
	PRIMARY KEY (username, password)
)`

// Store is a SQLite-backed token cache. The backing file may be shared by
// multiple concurrent processes; writes are last-writer-wins per key.
type Store struct {
	db   *sql.DB
	path string
}

// DefaultPath returns the default cache location in the platform temp
// directory, falling back to the working directory if the temp directory is
// unusable.
func DefaultPath() string {
	tmp := os.TempDir()
	if info, err := os.Stat(tmp); err == nil && info.IsDir() {
		return filepath.Join(tmp, DefaultFilename)
	}
	return DefaultFilename
}

// Open opens (creating if absent) the cache database at path. Initialization
// is idempotent: an existing database is never erased.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open token cache: %w", err)
	}

	// Wait out writer locks from concurrent resolver instances.
	if _, err := db.ExecContext(context.Background(), `PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to configure token cache: %w", err)
	}

	if _, err := db.ExecContext(context.Background(), schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize token cache: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Path returns the location of the backing database file.
func (s *Store) Path() string { return s.path }

// Close closes the backing database.
func (s *Store) Close() error { return s.db.Close() }

// Get returns the most recently stored token for the credential pair, or
// ok=false if none exists.
func (s *Store) Get(ctx context.Context, username, password string) (string, bool, error) {
	var token string
	err := s.db.QueryRowContext(ctx,
		`SELECT token FROM tokens WHERE username = ? AND password = ?`,
		username, password,
	).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read token cache: %w", err)
	}
	return token, true, nil
}

// Put upserts the token for the credential pair, replacing any prior record.
func (s *Store) Put(ctx context.Context, token, username, password string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO tokens (username, password, token) VALUES (?, ?, ?)`,
		username, password, token,
	)
	if err != nil {
		return fmt.Errorf("failed to write token cache: %w", err)
	}
	return nil
}

// Clear removes the record for the credential pair, if present.
func (s *Store) Clear(ctx context.Context, username, password string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM tokens WHERE username = ? AND password = ?`,
		username, password,
	)
	if err != nil {
		return fmt.Errorf("failed to clear token cache: %w", err)
	}
	return nil
}
