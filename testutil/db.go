// Package testutil provides store fixtures shared by the repo, service and
// migration tests. Postgres fixtures skip the test when TEST_DATABASE_URL is
// not set, so the unit suite runs without a database.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/pkordes/wanderlust/internal/repo"
	"github.com/pkordes/wanderlust/migrations"
)

// NewTxKV returns a Postgres-backed repo.KV that runs inside one transaction.
// The transaction is rolled back when the test finishes, so every test sees
// an empty kv table and leaves nothing behind. The schema must already be
// migrated; see MigratePostgres.
func NewTxKV(t *testing.T) repo.KV {
	t.Helper()
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, requireDSN(t))
	if err != nil {
		t.Fatalf("testutil.NewTxKV: open pool: %v", err)
	}
	t.Cleanup(pool.Close)

	tx, err := pool.Begin(ctx)
	if err != nil {
		t.Fatalf("testutil.NewTxKV: begin: %v", err)
	}
	t.Cleanup(func() { _ = tx.Rollback(context.Background()) })

	return repo.NewPostgresKV(tx)
}

// NewSQLiteKV returns a repo.KV over a migrated SQLite file in the test's
// temp directory. It needs no external database and always runs.
func NewSQLiteKV(t *testing.T) repo.KV {
	t.Helper()
	ctx := context.Background()

	db, err := repo.OpenSQLite(ctx, filepath.Join(t.TempDir(), "wanderlust.db"))
	if err != nil {
		t.Fatalf("testutil.NewSQLiteKV: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := migrations.Up(ctx, goose.DialectSQLite3, db); err != nil {
		t.Fatalf("testutil.NewSQLiteKV: %v", err)
	}
	return repo.NewSQLiteKV(db)
}

// NewSQLDB opens a *sql.DB on TEST_DATABASE_URL through the pgx driver, for
// tests that drive goose directly. It is closed when the test finishes.
func NewSQLDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := openPostgres(requireDSN(t))
	if err != nil {
		t.Fatalf("testutil.NewSQLDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// MigratePostgres applies every pending migration to the database at dsn.
// It is meant for TestMain, where no *testing.T is available.
func MigratePostgres(dsn string) error {
	db, err := openPostgres(dsn)
	if err != nil {
		return fmt.Errorf("testutil.MigratePostgres: %w", err)
	}
	defer db.Close()

	if _, err := migrations.Up(context.Background(), goose.DialectPostgres, db); err != nil {
		return fmt.Errorf("testutil.MigratePostgres: %w", err)
	}
	return nil
}

func openPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return db, nil
}

// requireDSN returns TEST_DATABASE_URL, skipping the test if it is not set.
func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping integration test")
	}
	return dsn
}
