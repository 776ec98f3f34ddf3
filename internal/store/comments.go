package store

import (
	"context"
	"strings"

	"github.com/sandeepkv93/dayblocks/internal/commands"
	"github.com/sandeepkv93/dayblocks/internal/model"
	"github.com/sandeepkv93/dayblocks/internal/storage"
)

// AddComment appends a comment to the task. A comment that is exactly a
// directive ("!repeat", "!end") is stored like any other and also flips the
// task's recurring flag. Blank text or an unknown task is a no-op.
func (s *Store) AddComment(ctx context.Context, taskID, text string) (model.Comment, bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Comment{}, false, nil
	}
	var added model.Comment
	ok := false
	err := s.Update(ctx, func(next *Snapshot) []string {
		if _, _, found := next.Find(taskID); !found {
			return nil
		}
		added = model.Comment{ID: model.NewID(), Text: text, CreatedAt: s.clock.Now()}
		next.Comments[taskID] = append(next.Comments[taskID], added)
		ok = true

		dirty := []string{storage.KeyCommentsByTask}
		cmd, perr := commands.Parse(text)
		if perr != nil {
			return dirty
		}
		res, xerr := commands.Execute(cmd, commands.Handlers{
			Repeat: func() (commands.Result, error) { return commands.Result{Recurring: true}, nil },
			End:    func() (commands.Result, error) { return commands.Result{Recurring: false}, nil },
		})
		if xerr != nil {
			return dirty
		}
		if setRecurring(next, taskID, res.Recurring) {
			dirty = append(dirty, storage.KeyTasksByDate)
		}
		return dirty
	})
	return added, ok, err
}

// DeleteComment removes one comment; unknown ids are a no-op.
func (s *Store) DeleteComment(ctx context.Context, taskID, commentID string) (bool, error) {
	deleted := false
	err := s.Update(ctx, func(next *Snapshot) []string {
		list := next.Comments[taskID]
		kept := make([]model.Comment, 0, len(list))
		for _, c := range list {
			if c.ID == commentID {
				deleted = true
				continue
			}
			kept = append(kept, c)
		}
		if !deleted {
			return nil
		}
		if len(kept) == 0 {
			delete(next.Comments, taskID)
		} else {
			next.Comments[taskID] = kept
		}
		return []string{storage.KeyCommentsByTask}
	})
	return deleted, err
}

// Comments returns the task's comments oldest first; never nil.
func (s *Store) Comments(taskID string) []model.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Comment{}, s.snap.Comments[taskID]...)
}
