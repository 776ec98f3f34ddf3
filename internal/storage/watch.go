package storage

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Event reports that a persisted key changed on disk.
type Event struct {
	Key string
}

// Watch streams change events for the known keys until ctx is cancelled.
// The channel is closed once ctx is done or the watcher fails.
func (b *DiskvBackend) Watch(ctx context.Context) (<-chan Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("storage: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				log.Printf("storage: watcher close: %v", err)
			}
		})
	}
	if err := watcher.Add(b.basePath); err != nil {
		closeWatcher()
		return nil, fmt.Errorf("storage: watch %s: %w", b.basePath, err)
	}

	events := make(chan Event, 16)
	go func() {
		defer close(events)
		defer closeWatcher()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				key, relevant := keyForEvent(ev)
				if !relevant {
					continue
				}
				select {
				case events <- Event{Key: key}:
				case <-ctx.Done():
					return
				}
			case werr, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("storage: watcher error: %v", werr)
			}
		}
	}()
	return events, nil
}

func keyForEvent(ev fsnotify.Event) (string, bool) {
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return "", false
	}
	name := filepath.Base(ev.Name)
	if strings.HasPrefix(name, ".") || !isKnownKey(name) {
		return "", false
	}
	return name, true
}
