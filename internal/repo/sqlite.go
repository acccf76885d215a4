package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // registers the "sqlite" driver for database/sql

	"github.com/pkordes/wanderlust/internal/domain"
)

// sqlDB is the subset of *sql.DB and *sql.Tx the SQLite backend needs.
type sqlDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// sqliteKV is the SQLite implementation of KV. It shares the kv table
// layout (and migrations) with the Postgres backend.
type sqliteKV struct {
	db sqlDB
}

// OpenSQLite opens (creating if needed) the SQLite database file at path.
// Callers are responsible for closing the returned *sql.DB and for running
// migrations before use.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("repo.OpenSQLite: ensure directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("repo.OpenSQLite: open: %w", err)
	}
	// SQLite allows one writer at a time.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("repo.OpenSQLite: ping: %w", err)
	}
	return db, nil
}

// NewSQLiteKV constructs a KV backed by the provided SQLite handle.
func NewSQLiteKV(db sqlDB) KV {
	return &sqliteKV{db: db}
}

func (r *sqliteKV) Get(ctx context.Context, key string) ([]byte, error) {
	const q = `SELECT value FROM kv WHERE key = ?`

	var value string
	if err := r.db.QueryRowContext(ctx, q, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("repo.SQLiteKV.Get %q: %w", key, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("repo.SQLiteKV.Get %q: %w", key, err)
	}
	return []byte(value), nil
}

func (r *sqliteKV) Put(ctx context.Context, key string, value []byte) error {
	const q = `
		INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE
		SET value      = excluded.value,
		    updated_at = CURRENT_TIMESTAMP`

	if _, err := r.db.ExecContext(ctx, q, key, string(value)); err != nil {
		return fmt.Errorf("repo.SQLiteKV.Put %q: %w", key, err)
	}
	return nil
}

func (r *sqliteKV) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("repo.SQLiteKV.Delete %q: %w", key, err)
	}
	return nil
}
