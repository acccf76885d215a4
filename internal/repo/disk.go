package repo

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"

	"github.com/pkordes/wanderlust/internal/domain"
)

// diskKV stores one file per key under a base directory.
type diskKV struct {
	d *diskv.Diskv
}

// NewDiskKV returns a KV backed by files under basePath, creating the
// directory if needed. Writes land in a temp file first and are renamed into
// place. Reads go through a small in-memory cache.
func NewDiskKV(basePath string) (KV, error) {
	if basePath == "" {
		return nil, errors.New("repo.NewDiskKV: base path required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("repo.NewDiskKV: ensure base path: %w", err)
	}
	return &diskKV{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    func(string) []string { return []string{} }, // flat layout
		CacheSizeMax: 1024 * 1024,                                  // 1MB
		TempDir:      filepath.Join(basePath, ".tmp"),               // write-then-rename
	})}, nil
}

func (k *diskKV) Get(_ context.Context, key string) ([]byte, error) {
	v, err := k.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("repo.DiskKV.Get %q: %w", key, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("repo.DiskKV.Get %q: %w", key, err)
	}
	return v, nil
}

func (k *diskKV) Put(_ context.Context, key string, value []byte) error {
	if err := k.d.Write(key, value); err != nil {
		return fmt.Errorf("repo.DiskKV.Put %q: %w", key, err)
	}
	return nil
}

func (k *diskKV) Delete(_ context.Context, key string) error {
	if !k.d.Has(key) {
		return nil
	}
	if err := k.d.Erase(key); err != nil {
		return fmt.Errorf("repo.DiskKV.Delete %q: %w", key, err)
	}
	return nil
}
