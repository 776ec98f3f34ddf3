package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"
)

const diskvTempDir = ".tmp"

// DiskvBackend keeps one file per key under a base directory.
type DiskvBackend struct {
	d        *diskv.Diskv
	basePath string
}

func OpenDiskv(basePath string) (*DiskvBackend, error) {
	if basePath == "" {
		return nil, errors.New("storage: diskv base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: ensure base path: %w", err)
	}
	return &DiskvBackend{
		d: diskv.New(diskv.Options{
			BasePath:  basePath,
			Transform: func(string) []string { return []string{} },
			TempDir:   filepath.Join(basePath, diskvTempDir),
			// Other processes write the same files, so nothing is cached.
			CacheSizeMax: 0,
		}),
		basePath: basePath,
	}, nil
}

func (b *DiskvBackend) BasePath() string { return b.basePath }

func (b *DiskvBackend) Get(_ context.Context, key string) ([]byte, error) {
	val, err := b.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return val, nil
}

func (b *DiskvBackend) Put(_ context.Context, key string, value []byte) error {
	return b.d.Write(key, value)
}

func (b *DiskvBackend) Delete(_ context.Context, key string) error {
	if err := b.d.Erase(key); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (b *DiskvBackend) Close() error { return nil }
