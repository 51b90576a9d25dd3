// Package store persists tasks, categories and tags in an embedded DuckDB
// database and moves them in and out of JSON, CSV, Parquet and Excel files.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jmoiron/sqlx"

	"github.com/nibzard/yawmak/internal/logging"

	// Registers the "duckdb" database/sql driver.
	_ "github.com/marcboeker/go-duckdb"
)

// MemoryPath opens a throwaway in-memory database.
const MemoryPath = ":memory:"

const (
	tableTodos          = "todos"
	tableCategories     = "categories"
	tableTags           = "tags"
	tableTodoCategories = "todo_categories"
	tableTodoTags       = "todo_tags"
)

var settings = []string{
	`SET enable_progress_bar = false`,
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS todos (
		id INTEGER PRIMARY KEY,
		task TEXT NOT NULL,
		done BOOLEAN NOT NULL DEFAULT false,
		due_date DATE,
		completion_date DATE,
		priority INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id INTEGER PRIMARY KEY,
		name TEXT UNIQUE NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tags (
		id INTEGER PRIMARY KEY,
		name TEXT UNIQUE NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS todo_categories (
		todo_id INTEGER REFERENCES todos(id),
		category_id INTEGER REFERENCES categories(id)
	)`,
	`CREATE TABLE IF NOT EXISTS todo_tags (
		todo_id INTEGER REFERENCES todos(id),
		tag_id INTEGER REFERENCES tags(id)
	)`,
}

// Store is a handle on one yawmak database file.
type Store struct {
	db   *sqlx.DB
	path string
	log  *log.Logger
	now  func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger routes store diagnostics to l.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock overrides the clock used to stamp imported completed tasks.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Open opens (creating if needed) the database at path and makes sure the
// schema exists. An empty path or MemoryPath opens an in-memory database.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	s := &Store{
		path: path,
		log:  logging.Discard(),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	dsn := path
	if path == MemoryPath {
		dsn = ""
	}
	if dsn != "" {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, &Error{Kind: KindIO, Op: "create database directory", Err: err}
		}
	}

	db, err := sqlx.Open("duckdb", dsn)
	if err != nil {
		return nil, wrap("open database", err)
	}
	// One invocation owns one connection; settings and temp state are per connection.
	db.SetMaxOpenConns(1)
	s.db = db

	if err := s.init(ctx); err != nil {
		db.Close()
		return nil, err
	}
	s.log.Debug("database ready", "path", s.displayPath())
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database path the store was opened with.
func (s *Store) Path() string {
	return s.displayPath()
}

func (s *Store) displayPath() string {
	if s.path == "" {
		return MemoryPath
	}
	return s.path
}

func (s *Store) init(ctx context.Context) error {
	for _, stmt := range settings {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return wrap("apply settings", err)
		}
	}
	return s.withTx(ctx, "create schema", func(tx *sqlx.Tx) error {
		for _, stmt := range schema {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	})
}

// withTx runs fn in a transaction, rolling back when fn fails.
func (s *Store) withTx(ctx context.Context, op string, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return wrap(op, err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.log.Warn("rollback failed", "op", op, "error", rbErr)
		}
		return wrap(op, err)
	}
	if err := tx.Commit(); err != nil {
		return wrap(op, err)
	}
	return nil
}

// nextID returns the id the next row of table should get. Ids are derived
// from the current maximum so that rows imported with explicit ids never
// collide with later inserts.
func nextID(ctx context.Context, q sqlx.QueryerContext, table string) (int64, error) {
	var id int64
	query := fmt.Sprintf("SELECT COALESCE(max(id), 0) + 1 FROM %s", table)
	if err := sqlx.GetContext(ctx, q, &id, query); err != nil {
		return 0, fmt.Errorf("next %s id: %w", table, err)
	}
	return id, nil
}
