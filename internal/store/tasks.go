package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandeepkv93/dayblocks/internal/model"
	"github.com/sandeepkv93/dayblocks/internal/storage"
)

type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

func ParseDirection(raw string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(raw))); d {
	case DirectionUp, DirectionDown:
		return d, nil
	default:
		return "", fmt.Errorf("store: invalid direction %q", raw)
	}
}

// Extras carries the optional fields of a new task.
type Extras struct {
	Category  string
	Urgency   model.Urgency
	Recurring bool
}

var tasksKey = []string{storage.KeyTasksByDate}

// AddTask appends a new task to the end of the (date, block) list. Blank text
// is a silent no-op reported as ok=false.
func (s *Store) AddTask(ctx context.Context, date model.DateKey, block model.Block, text string, extras Extras) (model.Task, bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Task{}, false, nil
	}
	if !block.IsValid() {
		return model.Task{}, false, fmt.Errorf("%w: %q", model.ErrInvalidBlock, block)
	}
	if !date.IsValid() {
		return model.Task{}, false, fmt.Errorf("%w: %q", model.ErrInvalidDate, date)
	}
	if extras.Urgency != model.UrgencyUnset && !extras.Urgency.IsValid() {
		return model.Task{}, false, fmt.Errorf("%w: %d", model.ErrInvalidUrgency, int(extras.Urgency))
	}

	var created model.Task
	err := s.Update(ctx, func(next *Snapshot) []string {
		category := strings.TrimSpace(extras.Category)
		if category == "" {
			category = next.DefaultCategory()
		}
		created = model.Task{
			ID:        model.NewID(),
			Text:      text,
			Recurring: extras.Recurring,
			Category:  category,
			Urgency:   extras.Urgency.OrDefault(),
			DueDate:   date,
			CreatedAt: s.clock.Now(),
		}
		next.setSlot(date, block, append(next.slot(date, block), created))
		return tasksKey
	})
	return created, true, err
}

// ToggleDone flips the done flag and moves the task to the end of its list.
// The move happens in both directions, so toggling twice restores the value
// but not the position.
func (s *Store) ToggleDone(ctx context.Context, date model.DateKey, block model.Block, id string) (model.Task, bool, error) {
	var toggled model.Task
	found := false
	err := s.Update(ctx, func(next *Snapshot) []string {
		list := append([]model.Task(nil), next.slot(date, block)...)
		idx := indexOf(list, id)
		if idx < 0 {
			return nil
		}
		task := list[idx]
		if task.Done {
			task.Reopen()
		} else {
			task.MarkDone(s.zone.Today(s.clock.Now()))
		}
		list = append(list[:idx], list[idx+1:]...)
		list = append(list, task)
		next.setSlot(date, block, list)
		toggled, found = task, true
		return tasksKey
	})
	return toggled, found, err
}

// MoveTask swaps the task at index with its neighbour. Out-of-range indexes
// and moves past either end are no-ops.
func (s *Store) MoveTask(ctx context.Context, date model.DateKey, block model.Block, index int, dir Direction) (bool, error) {
	moved := false
	err := s.Update(ctx, func(next *Snapshot) []string {
		list := append([]model.Task(nil), next.slot(date, block)...)
		if index < 0 || index >= len(list) {
			return nil
		}
		target := index
		switch dir {
		case DirectionUp:
			target = index - 1
		case DirectionDown:
			target = index + 1
		}
		if target < 0 || target >= len(list) || target == index {
			return nil
		}
		list[index], list[target] = list[target], list[index]
		next.setSlot(date, block, list)
		moved = true
		return tasksKey
	})
	return moved, err
}

// DeleteTask removes the task and every comment it owns.
func (s *Store) DeleteTask(ctx context.Context, date model.DateKey, block model.Block, id string) (bool, error) {
	deleted := false
	err := s.Update(ctx, func(next *Snapshot) []string {
		list := next.slot(date, block)
		idx := indexOf(list, id)
		if idx < 0 {
			return nil
		}
		trimmed := make([]model.Task, 0, len(list)-1)
		trimmed = append(trimmed, list[:idx]...)
		trimmed = append(trimmed, list[idx+1:]...)
		next.setSlot(date, block, trimmed)
		deleted = true
		if _, ok := next.Comments[id]; ok {
			delete(next.Comments, id)
			return []string{storage.KeyTasksByDate, storage.KeyCommentsByTask}
		}
		return tasksKey
	})
	return deleted, err
}

func (s *Store) SetCategory(ctx context.Context, date model.DateKey, block model.Block, id, category string) (bool, error) {
	category = strings.TrimSpace(category)
	return s.editTask(ctx, date, block, id, func(t *model.Task) bool {
		if t.Category == category {
			return false
		}
		t.Category = category
		return true
	})
}

func (s *Store) SetUrgency(ctx context.Context, date model.DateKey, block model.Block, id string, urgency model.Urgency) (bool, error) {
	if !urgency.IsValid() {
		return false, fmt.Errorf("%w: %d", model.ErrInvalidUrgency, int(urgency))
	}
	return s.editTask(ctx, date, block, id, func(t *model.Task) bool {
		if t.Urgency == urgency {
			return false
		}
		t.Urgency = urgency
		return true
	})
}

// EditText replaces the task text; blank text keeps the old one.
func (s *Store) EditText(ctx context.Context, date model.DateKey, block model.Block, id, text string) (bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return false, nil
	}
	return s.editTask(ctx, date, block, id, func(t *model.Task) bool {
		if t.Text == text {
			return false
		}
		t.Text = text
		return true
	})
}

// SetRecurring sets the recurring flag on the task with id, wherever it is.
func (s *Store) SetRecurring(ctx context.Context, id string, recurring bool) (bool, error) {
	changed := false
	err := s.Update(ctx, func(next *Snapshot) []string {
		if setRecurring(next, id, recurring) {
			changed = true
			return tasksKey
		}
		return nil
	})
	return changed, err
}

func (s *Store) FindTask(id string) (Location, model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Find(id)
}

func (s *Store) Tasks(date model.DateKey, block model.Block) []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Task(nil), s.snap.List(date, block)...)
}

func (s *Store) editTask(ctx context.Context, date model.DateKey, block model.Block, id string, edit func(*model.Task) bool) (bool, error) {
	changed := false
	err := s.Update(ctx, func(next *Snapshot) []string {
		list := next.slot(date, block)
		idx := indexOf(list, id)
		if idx < 0 {
			return nil
		}
		if !edit(&list[idx]) {
			return nil
		}
		changed = true
		return tasksKey
	})
	return changed, err
}

func setRecurring(next *Snapshot, id string, recurring bool) bool {
	loc, task, ok := next.Find(id)
	if !ok || task.Recurring == recurring {
		return false
	}
	next.Tasks[loc.Date][loc.Block][loc.Index].Recurring = recurring
	return true
}
