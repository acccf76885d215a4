// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backends selectable with STORE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendDisk     = "disk"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Config holds all configuration values for the API server and the CLI.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// StoreBackend selects where trips and session state are kept:
	// memory, disk, postgres or sqlite. Defaults to "disk".
	StoreBackend string

	// DataDir is the directory used by the disk backend. Defaults to "./data".
	DataDir string

	// DatabaseURL is the Postgres connection string. Required for the
	// postgres backend.
	DatabaseURL string

	// SQLitePath is the database file used by the sqlite backend.
	// Defaults to "./data/wanderlust.db".
	SQLitePath string

	// CatalogURL is the published CSV of the place catalog. Empty means the
	// built-in catalog is used.
	CatalogURL string

	// CatalogTimeout bounds one catalog download attempt. Defaults to 10s.
	CatalogTimeout time.Duration

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB; imports of a
	// full backup are the largest requests.
	MaxBodyBytes int64
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set, or the
// first value that cannot be parsed.
func Load() (Config, error) {
	cfg := Config{
		Port:         getEnv("PORT", "8080"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		CORSOrigins:  splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		StoreBackend: strings.ToLower(getEnv("STORE_BACKEND", BackendDisk)),
		DataDir:      getEnv("DATA_DIR", "./data"),
		SQLitePath:   getEnv("SQLITE_PATH", "./data/wanderlust.db"),
		CatalogURL:   os.Getenv("CATALOG_URL"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
	}

	timeout, err := time.ParseDuration(getEnv("CATALOG_TIMEOUT", "10s"))
	if err != nil || timeout <= 0 {
		return Config{}, fmt.Errorf("CATALOG_TIMEOUT must be a positive duration, got %q", os.Getenv("CATALOG_TIMEOUT"))
	}
	cfg.CatalogTimeout = timeout

	maxBody, err := strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64)
	if err != nil || maxBody <= 0 {
		return Config{}, fmt.Errorf("MAX_BODY_BYTES must be a positive integer, got %q", os.Getenv("MAX_BODY_BYTES"))
	}
	cfg.MaxBodyBytes = maxBody

	switch cfg.StoreBackend {
	case BackendMemory, BackendDisk, BackendPostgres, BackendSQLite:
	default:
		return Config{}, fmt.Errorf("STORE_BACKEND must be one of memory, disk, postgres, sqlite, got %q", cfg.StoreBackend)
	}

	var missing []string

	if cfg.StoreBackend == BackendPostgres && cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
