package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func backends(t *testing.T) map[string]Backend {
	t.Helper()
	dir := t.TempDir()
	sqliteBackend, err := OpenSQLite(filepath.Join(dir, "sqlite", "dayblocks-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = sqliteBackend.Close() })

	diskvBackend, err := OpenDiskv(filepath.Join(dir, "diskv"))
	if err != nil {
		t.Fatalf("open diskv: %v", err)
	}
	return map[string]Backend{
		KindSQLite: sqliteBackend,
		KindDiskv:  diskvBackend,
		KindMemory: NewMemoryBackend(),
	}
}

func TestBackendPutGetDelete(t *testing.T) {
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if _, err := backend.Get(ctx, KeyCategories); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound for missing key, got %v", err)
			}

			if err := backend.Put(ctx, KeyCategories, []byte(`["Work"]`)); err != nil {
				t.Fatalf("put: %v", err)
			}
			if err := backend.Put(ctx, KeyCategories, []byte(`["Work","Home"]`)); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			got, err := backend.Get(ctx, KeyCategories)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if string(got) != `["Work","Home"]` {
				t.Fatalf("unexpected value: %q", got)
			}

			if err := backend.Delete(ctx, KeyCategories); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if _, err := backend.Get(ctx, KeyCategories); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound after delete, got %v", err)
			}
			if err := backend.Delete(ctx, KeyCategories); err != nil {
				t.Fatalf("deleting a missing key should be a no-op, got %v", err)
			}
		})
	}
}

func TestOpenSelectsBackend(t *testing.T) {
	dir := t.TempDir()
	b, err := Open("sqlite", dir)
	if err != nil {
		t.Fatalf("open sqlite backend: %v", err)
	}
	defer b.Close()
	if _, ok := b.(*SQLiteBackend); !ok {
		t.Fatalf("expected *SQLiteBackend, got %T", b)
	}
	if _, err := Open("etcd", dir); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestKeyForEventFiltersNoise(t *testing.T) {
	cases := []struct {
		ev   fsnotify.Event
		key  string
		want bool
	}{
		{fsnotify.Event{Name: "/data/tasks-by-date", Op: fsnotify.Write}, KeyTasksByDate, true},
		{fsnotify.Event{Name: "/data/last-reset", Op: fsnotify.Rename}, KeyLastReset, true},
		{fsnotify.Event{Name: "/data/.tmp", Op: fsnotify.Create}, "", false},
		{fsnotify.Event{Name: "/data/notes.txt", Op: fsnotify.Write}, "", false},
		{fsnotify.Event{Name: "/data/categories", Op: fsnotify.Chmod}, "", false},
	}
	for _, tc := range cases {
		key, ok := keyForEvent(tc.ev)
		if ok != tc.want || key != tc.key {
			t.Fatalf("keyForEvent(%v) = %q,%v want %q,%v", tc.ev, key, ok, tc.key, tc.want)
		}
	}
}

func TestDiskvWatchReportsExternalWrites(t *testing.T) {
	dir := t.TempDir()
	watched, err := OpenDiskv(dir)
	if err != nil {
		t.Fatalf("open diskv: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events, err := watched.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	writer, err := OpenDiskv(dir)
	if err != nil {
		t.Fatalf("open writer: %v", err)
	}
	if err := writer.Put(ctx, KeyCurrentDate, []byte(`"2026-05-18"`)); err != nil {
		t.Fatalf("put: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-events:
			if ev.Key == KeyCurrentDate {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for watch event")
		}
	}
}
