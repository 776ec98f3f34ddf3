// Package store owns the task, comment and settings state and persists every
// change to a local key-value backend.
package store

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/sandeepkv93/dayblocks/internal/clock"
	"github.com/sandeepkv93/dayblocks/internal/storage"
)

type Options struct {
	Clock             clock.Clock
	Zone              clock.Zone
	DefaultCategories []string
	Logger            *log.Logger
}

type Store struct {
	mu      sync.Mutex
	backend storage.Backend
	snap    Snapshot
	clock   clock.Clock
	zone    clock.Zone
	logger  *log.Logger
	// defaults is the snapshot an empty backend starts from.
	defaults Snapshot

	subMu   sync.Mutex
	subs    map[int]func(Snapshot)
	nextSub int
}

// Open loads every persisted key from backend. Keys that are absent start
// from defaults built from opts.
func Open(ctx context.Context, backend storage.Backend, opts Options) (*Store, error) {
	if backend == nil {
		return nil, errors.New("store: nil backend")
	}
	if opts.Clock == nil {
		opts.Clock = clock.SystemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	s := &Store{
		backend: backend,
		clock:   opts.Clock,
		zone:    opts.Zone,
		logger:  opts.Logger,
		subs:    make(map[int]func(Snapshot)),
	}
	s.defaults = NewSnapshot(opts.Zone.Today(opts.Clock.Now()), opts.DefaultCategories)
	snap, err := load(ctx, backend, s.defaults)
	if err != nil {
		return nil, err
	}
	s.snap = snap
	return s, nil
}

func (s *Store) Clock() clock.Clock { return s.clock }

func (s *Store) Zone() clock.Zone { return s.zone }

func (s *Store) Backend() storage.Backend { return s.backend }

// Snapshot returns a private copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Clone()
}

// Reload re-reads the backend, picking up writes made by another process.
func (s *Store) Reload(ctx context.Context) error {
	s.mu.Lock()
	snap, err := load(ctx, s.backend, s.defaults)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.snap = snap
	out := snap.Clone()
	s.mu.Unlock()
	s.notify(out)
	return nil
}

// Subscribe registers fn to receive every new snapshot. The returned func
// removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

// Update applies fn to a copy of the current snapshot. fn returns the
// persisted keys it changed; when it returns none the store is untouched.
// Otherwise the copy replaces the current snapshot as a whole and the
// changed keys are written before Update returns.
func (s *Store) Update(ctx context.Context, fn func(next *Snapshot) []string) error {
	s.mu.Lock()
	next := s.snap.Clone()
	dirty := fn(&next)
	if len(dirty) == 0 {
		s.mu.Unlock()
		return nil
	}
	s.snap = next
	set := make(map[string]bool, len(dirty))
	for _, key := range dirty {
		set[key] = true
	}
	err := writeKeys(ctx, s.backend, next, set)
	out := next.Clone()
	s.mu.Unlock()

	if err != nil {
		s.logger.Printf("store: persist %v: %v", dirty, err)
	}
	s.notify(out)
	return err
}

func (s *Store) notify(snap Snapshot) {
	s.subMu.Lock()
	fns := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn(snap)
	}
}

func (s *Store) Close() error {
	return s.backend.Close()
}
