package app_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/wanderlust/internal/app"
	"github.com/pkordes/wanderlust/internal/config"
	"github.com/pkordes/wanderlust/internal/domain"
)

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestNew_MemorySeedsDefaultTrip(t *testing.T) {
	a, err := app.New(context.Background(), config.Config{StoreBackend: config.BackendMemory}, discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	trips := a.Trips.List(context.Background())
	require.Len(t, trips, 1)
	assert.Equal(t, domain.SeedTripID, trips[0].ID)
}

func TestNew_DiskPersistsAcrossRestarts(t *testing.T) {
	ctx := context.Background()
	cfg := config.Config{StoreBackend: config.BackendDisk, DataDir: t.TempDir()}

	first, err := app.New(ctx, cfg, discard())
	require.NoError(t, err)
	created, err := first.Trips.Create(ctx, domain.TripTemplate{Destination: "Kyoto", StartDate: "2025-04-01", DayCount: 2})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := app.New(ctx, cfg, discard())
	require.NoError(t, err)
	got, err := second.Trips.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kyoto", got.Destination)
}

func TestNew_SQLiteMigratesOnOpen(t *testing.T) {
	ctx := context.Background()
	cfg := config.Config{StoreBackend: config.BackendSQLite, SQLitePath: filepath.Join(t.TempDir(), "w.db")}

	a, err := app.New(ctx, cfg, discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	sess, err := a.Session.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.TabItinerary, sess.ActiveTab)
}

func TestOpenStore_UnknownBackend(t *testing.T) {
	_, _, err := app.OpenStore(context.Background(), config.Config{StoreBackend: "redis"}, discard())
	assert.ErrorContains(t, err, "unknown store backend")
}
