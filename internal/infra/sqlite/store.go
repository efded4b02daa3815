// Package sqlite provides the SQLite implementation of domain.Store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/runoshun/git-board/internal/domain"
	_ "modernc.org/sqlite"
)

const (
	busyTimeoutMS   = 5000
	maxOpenConns    = 1
	maxIdleConns    = 1
	connMaxLifetime = 5 * time.Minute
)

// Ensure Store implements domain.Store.
var _ domain.Store = (*Store)(nil)

// Store implements domain.Store on a single SQLite database file.
// The database is opened lazily on first use; until Initialize has created
// it, every operation fails with domain.ErrNotInitialized.
type Store struct {
	clock domain.Clock
	db    *sql.DB
	path  string
	mu    sync.Mutex
}

// New creates a new Store for the given database path.
// The file does not need to exist; Initialize creates it.
func New(path string, clock domain.Clock) *Store {
	if clock == nil {
		clock = domain.RealClock{}
	}
	return &Store{path: path, clock: clock}
}

// Initialize creates the database file and applies pending migrations.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("create board directory: %w: %w", domain.ErrPersistence, err)
	}
	db, err := open(ctx, s.path)
	if err != nil {
		return err
	}
	s.db = db
	return nil
}

// IsInitialized reports whether the database file exists.
func (s *Store) IsInitialized() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// conn returns the open database, opening it if needed.
func (s *Store) conn(ctx context.Context) (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db, nil
	}
	if !s.IsInitialized() {
		return nil, domain.ErrNotInitialized
	}
	db, err := open(ctx, s.path)
	if err != nil {
		return nil, err
	}
	s.db = db
	return db, nil
}

func open(ctx context.Context, path string) (*sql.DB, error) {
	dsn, err := sqliteDSN(path)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, persistErr("open database", err)
	}
	if err := configureDB(ctx, db); err != nil {
		_ = db.Close()
		return nil, persistErr("configure database", err)
	}
	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, persistErr("migrate database", err)
	}
	return db, nil
}

func configureDB(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		"PRAGMA foreign_keys = ON;",
		fmt.Sprintf("PRAGMA busy_timeout = %d;", busyTimeoutMS),
	}
	for _, stmt := range pragmas {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	return nil
}

func sqliteDSN(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("db path is required")
	}
	u := url.URL{Scheme: "file", Path: path}
	return u.String(), nil
}

// persistErr classifies a database error as a persistence failure.
func persistErr(op string, err error) error {
	if errors.Is(err, domain.ErrPersistence) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrPersistence, err)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, value)
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
