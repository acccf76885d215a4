package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/wanderlust/internal/domain"
)

// pgKV is the Postgres implementation of KV. Rows live in the kv table
// created by the migrations package.
type pgKV struct {
	db db
}

// NewPostgresKV constructs a KV backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPostgresKV(db db) KV {
	return &pgKV{db: db}
}

// Get reads the value stored under key.
func (r *pgKV) Get(ctx context.Context, key string) ([]byte, error) {
	const q = `SELECT value FROM kv WHERE key = @key`

	var value string
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"key": key}).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("repo.PostgresKV.Get %q: %w", key, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("repo.PostgresKV.Get %q: %w", key, err)
	}
	return []byte(value), nil
}

// Put upserts the value under key and refreshes updated_at.
func (r *pgKV) Put(ctx context.Context, key string, value []byte) error {
	const q = `
		INSERT INTO kv (key, value, updated_at)
		VALUES (@key, @value, now())
		ON CONFLICT (key) DO UPDATE
		SET value      = EXCLUDED.value,
		    updated_at = now()`

	args := pgx.NamedArgs{
		"key":   key,
		"value": string(value),
	}
	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("repo.PostgresKV.Put %q: %w", key, err)
	}
	return nil
}

// Delete removes the row for key if there is one.
func (r *pgKV) Delete(ctx context.Context, key string) error {
	const q = `DELETE FROM kv WHERE key = @key`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"key": key}); err != nil {
		return fmt.Errorf("repo.PostgresKV.Delete %q: %w", key, err)
	}
	return nil
}
