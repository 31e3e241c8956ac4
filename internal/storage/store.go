// Package storage persists the encrypted application document in a local
// SQLite database: one logical record, overwritten whole on every save.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"

	"github.com/claude/repvault/migrations"
)

// StoreError wraps an underlying storage failure (I/O, schema, SQL).
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// RecordStore is a key-value store backed by SQLite. The database handle is
// opened lazily on first use and reused for the rest of the process.
type RecordStore struct {
	path string

	mu sync.Mutex
	db *sql.DB
}

// NewRecordStore creates a store for the database at path. The file and its
// parent directories are created on first use.
func NewRecordStore(path string) *RecordStore {
	return &RecordStore{path: path}
}

// conn returns the open database handle, opening and migrating on first call.
func (s *RecordStore) conn(ctx context.Context) (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db, nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return nil, &StoreError{Op: "open", Err: fmt.Errorf("creating data dir: %w", err)}
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, &StoreError{Op: "open", Err: err}
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, &StoreError{Op: "open", Err: err}
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, &StoreError{Op: "migrate", Err: err}
	}

	s.db = db
	return s.db, nil
}

// runMigrations applies the embedded schema migrations.
func runMigrations(db *sql.DB) error {
	src, err := iofs.New(migrations.Files, ".")
	if err != nil {
		return fmt.Errorf("loading embedded migrations: %w", err)
	}
	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("creating sqlite driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// Put stores value under key, replacing any previous value in a single
// statement so a record is never observed half-written.
func (s *RecordStore) Put(ctx context.Context, key string, value []byte) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx,
		`INSERT OR REPLACE INTO vault_records (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)`,
		key, value)
	if err != nil {
		return &StoreError{Op: "put", Err: err}
	}
	return nil
}

// Get retrieves the value stored under key. The second return is false when
// no record exists.
func (s *RecordStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, false, err
	}
	var value []byte
	err = db.QueryRowContext(ctx,
		`SELECT value FROM vault_records WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, &StoreError{Op: "get", Err: err}
	}
	return value, true, nil
}

// Delete removes the record under key. Deleting a missing key is not an error.
func (s *RecordStore) Delete(ctx context.Context, key string) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, `DELETE FROM vault_records WHERE key = ?`, key); err != nil {
		return &StoreError{Op: "delete", Err: err}
	}
	return nil
}

// Close closes the database handle if it was opened.
func (s *RecordStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
