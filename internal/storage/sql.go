package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"github.com/momverse/momverse/internal/dbx"
	"github.com/momverse/momverse/internal/filex"
	"github.com/momverse/momverse/internal/migrations"
	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// sqlQueries holds the dialect-specific statements of an SQLStore.
type sqlQueries struct {
	get       string
	getLocked string
	upsert    string
	delete    string
}

var sqliteQueries = sqlQueries{
	get:       `SELECT value FROM namespaces WHERE name = ?`,
	getLocked: `SELECT value FROM namespaces WHERE name = ?`,
	upsert: `INSERT INTO namespaces (name, value) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value,
			updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')`,
	delete: `DELETE FROM namespaces WHERE name = ?`,
}

var postgresQueries = sqlQueries{
	get:       `SELECT value FROM namespaces WHERE name = $1`,
	getLocked: `SELECT value FROM namespaces WHERE name = $1 FOR UPDATE`,
	upsert: `INSERT INTO namespaces (name, value) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
	delete: `DELETE FROM namespaces WHERE name = $1`,
}

// SQLStore implements Store over a namespaces(name, value) table.
type SQLStore struct {
	db *sql.DB
	q  sqlQueries
}

// NewSQLiteStore wraps an open SQLite handle. The schema must already exist.
func NewSQLiteStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db, q: sqliteQueries}
}

// NewPostgresStore wraps an open PostgreSQL handle. The schema must already exist.
func NewPostgresStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db, q: postgresQueries}
}

// OpenSQLite opens (creating if needed) an SQLite database and migrates it.
func OpenSQLite(ctx context.Context, dsn string) (*SQLStore, error) {
	if path := sqlitePath(dsn); path != "" {
		if err := filex.EnsureParentDir(path); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite: %w", ErrStorageUnavailable, err)
	}
	// one writer; also keeps :memory: databases on a single connection
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db, "sqlite3", migrations.DirSQLite); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewSQLiteStore(db), nil
}

// OpenPostgres connects through the pgx stdlib driver and migrates the schema.
func OpenPostgres(ctx context.Context, dsn string) (*SQLStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open postgres: %w", ErrStorageUnavailable, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping postgres: %w", ErrStorageUnavailable, err)
	}

	if err := RunMigrations(ctx, db, "postgres", migrations.DirPostgres); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewPostgresStore(db), nil
}

// sqlitePath extracts the file path from an SQLite DSN, or "" for an
// in-memory database.
func sqlitePath(dsn string) string {
	path := strings.TrimPrefix(dsn, "file:")
	path, _, _ = strings.Cut(path, "?")
	if path == "" || strings.HasPrefix(path, ":memory:") {
		return ""
	}
	return path
}

// goose keeps its base FS and dialect in package globals.
var gooseMu sync.Mutex

// RunMigrations applies the embedded migrations in dir using the given
// goose dialect. It is idempotent.
func RunMigrations(ctx context.Context, db *sql.DB, dialect, dir string) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(log.New(io.Discard, "", 0))

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("%w: migrate: %w", ErrStorageUnavailable, err)
	}
	return nil
}

// DB exposes the underlying handle for tests and maintenance commands.
func (s *SQLStore) DB() *sql.DB {
	return s.db
}

func (s *SQLStore) Get(ctx context.Context, ns Namespace) ([]byte, error) {
	return s.get(ctx, s.db, s.q.get, ns)
}

func (s *SQLStore) get(ctx context.Context, q dbx.DBTX, query string, ns Namespace) ([]byte, error) {
	var value []byte
	err := q.QueryRowContext(ctx, query, string(ns)).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, unavailable("get", ns, err)
	}
	return value, nil
}

func (s *SQLStore) Put(ctx context.Context, ns Namespace, value []byte) error {
	if _, err := s.db.ExecContext(ctx, s.q.upsert, string(ns), value); err != nil {
		return unavailable("put", ns, err)
	}
	return nil
}

// Update reads and rewrites ns inside one transaction. PostgreSQL locks the
// existing row; SQLite serializes writers on the database lock.
func (s *SQLStore) Update(ctx context.Context, ns Namespace, fn UpdateFunc) error {
	var fnErr error

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		current, err := s.get(ctx, tx, s.q.getLocked, ns)
		if err != nil {
			return err
		}

		next, err := fn(current)
		if err != nil {
			fnErr = err
			return err
		}

		if _, err := tx.ExecContext(ctx, s.q.upsert, string(ns), next); err != nil {
			return unavailable("update", ns, err)
		}
		return nil
	})

	switch {
	case err == nil:
		return nil
	case fnErr != nil:
		return fnErr
	case errors.Is(err, ErrStorageUnavailable):
		return err
	default:
		return unavailable("update", ns, err)
	}
}

func (s *SQLStore) Delete(ctx context.Context, ns Namespace) error {
	if _, err := s.db.ExecContext(ctx, s.q.delete, string(ns)); err != nil {
		return unavailable("delete", ns, err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
