package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// Persisted keys. Each is read independently at startup and rewritten on
// every change that touches it.
const (
	KeyTasksByDate    = "tasks-by-date"
	KeyTasksByBlock   = "tasks-by-block"
	KeyCommentsByTask = "comments-by-task"
	KeyBlockLabels    = "block-labels"
	KeyCategories     = "categories"
	KeyLastReset      = "last-reset"
	KeyCurrentDate    = "current-date"
	KeyLoggedIn       = "logged-in"
)

// Keys lists every key the store reads and writes.
func Keys() []string {
	return []string{
		KeyTasksByDate,
		KeyCommentsByTask,
		KeyBlockLabels,
		KeyCategories,
		KeyLastReset,
		KeyCurrentDate,
		KeyLoggedIn,
	}
}

func isKnownKey(key string) bool {
	if key == KeyTasksByBlock {
		return true
	}
	for _, k := range Keys() {
		if k == key {
			return true
		}
	}
	return false
}

// Backend is a local key-value store holding opaque JSON values.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
