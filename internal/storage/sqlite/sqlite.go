// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3" // registers the sqlite3 dialect
	"github.com/jmoiron/sqlx"
	msqlite "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mmynk/biblioteca/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db      *sqlx.DB
	dialect goqu.DialectWrapper
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Foreign keys are a per-connection setting, so they go in the DSN to
	// apply to every pooled connection.
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", dbPath)
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(db.DB); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db, dialect: goqu.Dialect("sqlite3")}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ping checks that the database is reachable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// sqlBuilder is any prepared goqu dataset.
type sqlBuilder interface {
	ToSQL() (string, []interface{}, error)
}

func (s *SQLiteStore) exec(ctx context.Context, b sqlBuilder) (sql.Result, error) {
	q, args, err := b.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build statement: %w", err)
	}
	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %v", storage.ErrConflict, err)
		}
		return nil, err
	}
	return res, nil
}

// insert runs an INSERT and returns the new row ID.
func (s *SQLiteStore) insert(ctx context.Context, ds *goqu.InsertDataset) (int64, error) {
	res, err := s.exec(ctx, ds.Prepared(true))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// mutate runs an UPDATE or DELETE and maps "no rows touched" to ErrNotFound.
func (s *SQLiteStore) mutate(ctx context.Context, b sqlBuilder, what string, id any) error {
	res, err := s.exec(ctx, b)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %v: %w", what, id, storage.ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) get(ctx context.Context, dest any, ds *goqu.SelectDataset) error {
	q, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	return s.db.GetContext(ctx, dest, q, args...)
}

func (s *SQLiteStore) selectAll(ctx context.Context, dest any, ds *goqu.SelectDataset) error {
	q, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	return s.db.SelectContext(ctx, dest, q, args...)
}

func (s *SQLiteStore) count(ctx context.Context, ds *goqu.SelectDataset) (int, error) {
	var n int
	if err := s.get(ctx, &n, ds.ClearOrder().ClearLimit().ClearOffset().Select(goqu.COUNT(goqu.Star()))); err != nil {
		return 0, err
	}
	return n, nil
}

// notFound maps sql.ErrNoRows to storage.ErrNotFound.
func notFound(err error, what string, id any) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %v: %w", what, id, storage.ErrNotFound)
	}
	return fmt.Errorf("failed to get %s: %w", what, err)
}

func isUniqueViolation(err error) bool {
	var se *msqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE || se.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}

// nullable turns a nil pointer into SQL NULL.
func nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func ptrString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

func ptrInt64(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	return &ni.Int64
}
