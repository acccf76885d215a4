// Package app assembles the planner's dependency graph from a Config.
// Both the HTTP server and the CLI start here so they see the same store.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/pkordes/wanderlust/internal/catalog"
	"github.com/pkordes/wanderlust/internal/config"
	"github.com/pkordes/wanderlust/internal/itinerary"
	"github.com/pkordes/wanderlust/internal/repo"
	"github.com/pkordes/wanderlust/internal/service"
	"github.com/pkordes/wanderlust/migrations"
)

// App holds the wired services. Close releases the store.
type App struct {
	KV         repo.KV
	Trips      *service.TripStore
	Session    *service.SessionService
	Itinerary  *service.ItineraryService
	Export     *service.ExportService
	Catalog    *service.CatalogService
	Translator service.Translator

	closers []func() error
}

// New opens the configured store, loads the trip collection and builds every
// service on top of it. The catalog is not fetched; call App.Catalog.Load.
func New(ctx context.Context, cfg config.Config, log *slog.Logger) (*App, error) {
	kv, closers, err := OpenStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	a := &App{KV: kv, closers: closers}

	engine := itinerary.New()
	a.Trips, err = service.OpenTripStoreWithFallback(ctx, kv, log, service.WithEngine(engine))
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("app.New: %w", err)
	}
	a.Session = service.NewSessionService(kv, a.Trips)
	a.Itinerary = service.NewItineraryService(a.Trips, a.Session, engine)
	a.Export = service.NewExportService(a.Trips, a.Session)
	a.Catalog = service.NewCatalogService(catalogSource(cfg), log)
	a.Translator = service.NewDictionaryTranslator()
	return a, nil
}

// Close releases the store in reverse order of opening.
func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

func catalogSource(cfg config.Config) catalog.Source {
	if cfg.CatalogURL == "" {
		return catalog.NewStaticSource()
	}
	return catalog.NewSheetSource(cfg.CatalogURL, cfg.CatalogTimeout)
}

// OpenStore opens the KV backend named by cfg.StoreBackend. SQL backends are
// migrated to the latest schema before they are returned.
func OpenStore(ctx context.Context, cfg config.Config, log *slog.Logger) (repo.KV, []func() error, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		return repo.NewMemoryKV(), nil, nil

	case config.BackendDisk:
		kv, err := repo.NewDiskKV(cfg.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("app.OpenStore: %w", err)
		}
		log.InfoContext(ctx, "using disk store", "dir", cfg.DataDir)
		return kv, nil, nil

	case config.BackendSQLite:
		db, err := repo.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("app.OpenStore: %w", err)
		}
		if err := migrate(ctx, log, goose.DialectSQLite3, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		log.InfoContext(ctx, "using sqlite store", "path", cfg.SQLitePath)
		return repo.NewSQLiteKV(db), []func() error{db.Close}, nil

	case config.BackendPostgres:
		// New() does not open connections immediately; Ping does.
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("app.OpenStore: create pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("app.OpenStore: connect: %w", err)
		}
		db := stdlib.OpenDBFromPool(pool)
		if err := migrate(ctx, log, goose.DialectPostgres, db); err != nil {
			db.Close()
			pool.Close()
			return nil, nil, err
		}
		log.InfoContext(ctx, "database connection established")
		closePool := func() error { pool.Close(); return nil }
		return repo.NewPostgresKV(pool), []func() error{closePool, db.Close}, nil

	default:
		return nil, nil, fmt.Errorf("app.OpenStore: unknown store backend %q", cfg.StoreBackend)
	}
}

func migrate(ctx context.Context, log *slog.Logger, dialect goose.Dialect, db *sql.DB) error {
	n, err := migrations.Up(ctx, dialect, db)
	if err != nil {
		return fmt.Errorf("app.OpenStore: %w", err)
	}
	if n > 0 {
		log.InfoContext(ctx, "applied migrations", "count", n)
	}
	return nil
}
