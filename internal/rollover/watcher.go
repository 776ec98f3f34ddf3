package rollover

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/sandeepkv93/dayblocks/internal/scheduler"
)

const boundaryEventID = "rollover-boundary"

type WatcherOptions struct {
	// PollInterval drives the coarse wall-clock check. Zero disables it.
	PollInterval    time.Duration
	SchedulerBuffer int
	OnRollover      func(Result)
	Logger          *log.Logger
}

// Watcher runs the engine at startup, at every local midnight and on a
// periodic poll that covers timers missed during suspend or clock jumps.
type Watcher struct {
	engine   *Engine
	sched    *scheduler.Engine
	cron     *cron.Cron
	interval time.Duration
	notify   func(Result)
	logger   *log.Logger

	mu      sync.Mutex
	started bool
	stopped bool
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewWatcher(engine *Engine, opts WatcherOptions) *Watcher {
	logger := opts.Logger
	if logger == nil {
		logger = engine.logger
	}
	return &Watcher{
		engine:   engine,
		sched:    scheduler.NewEngine(opts.SchedulerBuffer),
		cron:     cron.New(cron.WithLocation(engine.store.Zone().Location())),
		interval: opts.PollInterval,
		notify:   opts.OnRollover,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Start performs the catch-up run and arms the midnight timer and poll.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return nil
	}
	w.started = true
	ctx, w.cancel = context.WithCancel(ctx)
	w.mu.Unlock()

	res, err := w.engine.Run(ctx, true)
	if err != nil {
		w.logger.Printf("rollover: startup run: %v", err)
	}
	w.report(res)

	if w.interval > 0 {
		spec := fmt.Sprintf("@every %s", w.interval)
		if _, err := w.cron.AddFunc(spec, func() { w.Tick(ctx) }); err != nil {
			w.cancel()
			close(w.done)
			return fmt.Errorf("rollover: poll %q: %w", spec, err)
		}
		w.cron.Start()
	}

	w.sched.Start()
	if err := w.arm(); err != nil {
		w.logger.Printf("rollover: arm boundary: %v", err)
	}
	go w.loop(ctx)
	return nil
}

// Tick runs the engine unless today is already reconciled.
func (w *Watcher) Tick(ctx context.Context) {
	res, err := w.engine.Run(ctx, false)
	if err != nil {
		w.logger.Printf("rollover: run: %v", err)
	}
	w.report(res)
}

func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.started || w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	w.cancel()
	w.mu.Unlock()

	stopCtx := w.cron.Stop()
	<-stopCtx.Done()
	w.sched.Stop()
	<-w.done
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.done)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.sched.C():
			if !ok {
				return
			}
			if ev.Kind != scheduler.KindDayBoundary {
				continue
			}
			w.Tick(ctx)
			if err := w.arm(); err != nil {
				w.logger.Printf("rollover: re-arm boundary: %v", err)
			}
		}
	}
}

// arm schedules the next midnight. The store clock decides the distance and
// the engine waits it out in real time.
func (w *Watcher) arm() error {
	now := w.engine.store.Clock().Now()
	boundary := w.engine.store.Zone().NextBoundary(now)
	w.sched.Cancel(boundaryEventID)
	return w.sched.Schedule(scheduler.Event{
		ID:   boundaryEventID,
		Kind: scheduler.KindDayBoundary,
		At:   time.Now().Add(boundary.Sub(now)),
	})
}

func (w *Watcher) report(res Result) {
	if w.notify == nil || !res.Ran {
		return
	}
	w.notify(res)
}
