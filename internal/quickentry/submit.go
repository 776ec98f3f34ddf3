package quickentry

import (
	"context"
	"time"

	"github.com/sandeepkv93/dayblocks/internal/model"
	"github.com/sandeepkv93/dayblocks/internal/store"
)

// Submit parses line and adds the task to the block of the current hour.
// Nothing changes when parsing fails.
func Submit(ctx context.Context, s *store.Store, line string, extras store.Extras) (model.Task, model.Block, error) {
	now := s.Clock().Now()
	return SubmitAt(ctx, s, line, now, extras)
}

func SubmitAt(ctx context.Context, s *store.Store, line string, now time.Time, extras store.Extras) (model.Task, model.Block, error) {
	zone := s.Zone()
	draft, err := Parse(line, now, zone)
	if err != nil {
		return model.Task{}, "", err
	}
	block := zone.BlockAt(now)
	task, _, err := s.AddTask(ctx, draft.Date, block, draft.Text, extras)
	if err != nil {
		return model.Task{}, "", err
	}
	return task, block, nil
}
