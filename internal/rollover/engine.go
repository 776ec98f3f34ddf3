package rollover

import (
	"context"
	"log"

	"github.com/sandeepkv93/dayblocks/internal/store"
)

type Engine struct {
	store  *store.Store
	logger *log.Logger
}

func NewEngine(s *store.Store, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{store: s, logger: logger}
}

// Run reconciles the store for the current reference-zone day. Unless force
// is set it does nothing when the last-reset marker already names today.
// The task changes and the new marker land in a single store update, and
// the marker is written after the tasks.
func (e *Engine) Run(ctx context.Context, force bool) (Result, error) {
	today := e.store.Zone().Today(e.store.Clock().Now())
	var res Result
	err := e.store.Update(ctx, func(next *store.Snapshot) []string {
		if !force && next.LastReset == today {
			res = Result{Previous: next.LastReset, Today: today}
			return nil
		}
		before := *next
		reconciled, r := Reconcile(before, today)
		res = r
		keys := dirtyKeys(before, r)
		if len(keys) > 0 {
			*next = reconciled
		}
		return keys
	})
	if res.Ran && (res.Changed() || res.Previous != res.Today) {
		e.logger.Printf("rollover: %s -> %s reopened=%d tagged=%d", res.Previous, res.Today, res.Reopened, res.Tagged)
	}
	return res, err
}
