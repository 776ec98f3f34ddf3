package storage

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	KindDiskv  = "diskv"
	KindSQLite = "sqlite"
	KindMemory = "memory"
)

const sqliteFileName = "dayblocks.db"

// Open builds the backend named by kind rooted at dir.
func Open(kind, dir string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", KindDiskv:
		return OpenDiskv(dir)
	case KindSQLite:
		return OpenSQLite(filepath.Join(dir, sqliteFileName))
	case KindMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", kind)
	}
}
