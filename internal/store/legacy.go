package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sandeepkv93/dayblocks/internal/model"
	"github.com/sandeepkv93/dayblocks/internal/storage"
)

// Older data files keep a single day's tasks per block under
// "tasks-by-block", with numeric ids.
type legacyTask struct {
	ID        json.RawMessage `json:"id"`
	Text      string          `json:"text"`
	Done      bool            `json:"done"`
	Recurring bool            `json:"recurring"`
}

type legacyComment struct {
	ID   json.RawMessage `json:"id"`
	Text string          `json:"text"`
}

func rawID(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

func loadLegacyTasks(ctx context.Context, backend storage.Backend, today model.DateKey, category string) (map[model.DateKey]map[model.Block][]model.Task, bool, error) {
	var byBlock map[model.Block][]legacyTask
	found, err := readKey(ctx, backend, storage.KeyTasksByBlock, &byBlock)
	if err != nil || !found {
		return nil, false, err
	}
	blocks := make(map[model.Block][]model.Task)
	for block, list := range byBlock {
		if !block.IsValid() {
			continue
		}
		for _, lt := range list {
			if strings.TrimSpace(lt.Text) == "" {
				continue
			}
			task := model.Task{
				ID:        rawID(lt.ID),
				Text:      lt.Text,
				Recurring: lt.Recurring,
				Category:  category,
				Urgency:   model.UrgencyMedium,
				DueDate:   today,
			}
			if task.ID == "" {
				task.ID = model.NewID()
			}
			if lt.Done {
				task.MarkDone(today)
			}
			blocks[block] = append(blocks[block], task)
		}
	}
	out := make(map[model.DateKey]map[model.Block][]model.Task)
	if len(blocks) > 0 {
		out[today] = blocks
	}
	return out, true, nil
}

func loadComments(ctx context.Context, backend storage.Backend) (map[string][]model.Comment, error) {
	raw, err := backend.Get(ctx, storage.KeyCommentsByTask)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", storage.KeyCommentsByTask, err)
	}
	if strings.TrimSpace(string(raw)) == "" {
		return nil, nil
	}
	var legacy map[string][]legacyComment
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", storage.KeyCommentsByTask, err)
	}
	var current map[string][]model.Comment
	if err := json.Unmarshal(raw, &current); err == nil {
		return current, nil
	}
	out := make(map[string][]model.Comment, len(legacy))
	for taskID, list := range legacy {
		for _, lc := range list {
			out[taskID] = append(out[taskID], model.Comment{ID: rawID(lc.ID), Text: lc.Text})
		}
	}
	return out, nil
}
