// Package repo contains all persistence logic for the Wanderlust planner.
// The planner stores a handful of JSON documents under fixed keys, so every
// backend implements the same small KV interface. No business logic lives
// here, only key/value reads and writes.
package repo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Keys used by the service layer.
const (
	KeyTrips           = "trips"
	KeyActiveTripID    = "activeTripId"
	KeyActiveTab       = "activeTab"
	KeyCurrentDay      = "currentDay"
	KeyHasSeenDragHint = "hasSeenDragHint"
)

// KV defines the persistence operations every backend supports.
// The service layer depends on this interface, not a concrete backend,
// which allows services to be unit-tested against the in-memory store.
type KV interface {
	// Get returns the value stored under key.
	// Returns domain.ErrNotFound if the key has never been written or was deleted.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
