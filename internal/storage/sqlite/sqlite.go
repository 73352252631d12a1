// Package sqlite provides a SQLite-backed implementation of the persistence
// contract, the only backend with real transactions.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"libris/internal/clock"
	"libris/internal/models"
	"libris/internal/storage"
)

// Ensure Store implements the contract and the transaction extension.
var (
	_ storage.PersistenceService = (*Store)(nil)
	_ storage.Transactional      = (*Store)(nil)
)

// sqlDateTimeLayout is the timestamp format handed to the driver. Reads
// truncate fractional seconds, so sub-second precision is lost round-trip.
const sqlDateTimeLayout = "2006-01-02 15:04:05.000000"

// Store implements the persistence contract on a SQLite database.
//
// Auto-commit is the default mode; BeginTransaction suspends it until the
// matching Commit or Rollback. The mutex serializes transaction state, the
// driver handles actual query concurrency.
type Store struct {
	db *sql.DB

	mu sync.Mutex
	tx *sql.Tx
}

// New opens (or creates) the database at dbPath and ensures the schema
// exists.
func New(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create database directory: %v", models.ErrOperationFailed, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: open database: %v", models.ErrOperationFailed, err)
	}

	if err := ensureSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: apply schema: %v", models.ErrOperationFailed, err)
	}

	return &Store{db: db}, nil
}

// Close rolls back any open transaction and closes the database.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.tx != nil {
		_ = s.tx.Rollback()
		s.tx = nil
	}
	s.mu.Unlock()
	return s.db.Close()
}

// BeginTransaction suspends auto-commit. Nested transactions are not
// supported; a second Begin before Commit/Rollback fails.
func (s *Store) BeginTransaction(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tx != nil {
		return fmt.Errorf("%w: transaction already in progress", models.ErrOperationFailed)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %v", models.ErrOperationFailed, err)
	}
	s.tx = tx
	return nil
}

// CommitTransaction commits the open transaction. A commit without an open
// transaction is a no-op.
func (s *Store) CommitTransaction(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tx == nil {
		return nil
	}
	err := s.tx.Commit()
	s.tx = nil
	if err != nil {
		return fmt.Errorf("%w: commit transaction: %v", models.ErrOperationFailed, err)
	}
	return nil
}

// RollbackTransaction rolls back the open transaction. A rollback without
// an open transaction is a no-op.
func (s *Store) RollbackTransaction(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tx == nil {
		return nil
	}
	err := s.tx.Rollback()
	s.tx = nil
	if err != nil {
		return fmt.Errorf("%w: rollback transaction: %v", models.ErrOperationFailed, err)
	}
	return nil
}

// querier is satisfied by both *sql.DB and *sql.Tx, so statements run in
// the open transaction when there is one and in auto-commit mode otherwise.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Store) q() querier {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tx != nil {
		return s.tx
	}
	return s.db
}

func toSQLDateTime(t time.Time) string {
	return t.Format(sqlDateTimeLayout)
}

// fromSQLDateTime parses a driver timestamp, truncating any fractional
// seconds first.
func fromSQLDateTime(s string) (time.Time, error) {
	trimmed := s
	if dot := strings.IndexByte(trimmed, '.'); dot != -1 {
		trimmed = trimmed[:dot]
	}
	if len(trimmed) > len(clock.DateTimeLayout) {
		trimmed = trimmed[:len(clock.DateTimeLayout)]
	}
	t, err := clock.ParseDateTime(trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: parse sql timestamp %q: %v", models.ErrOperationFailed, s, err)
	}
	return t, nil
}

// nullable maps "" to NULL for optional foreign keys and fields.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
