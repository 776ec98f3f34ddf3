package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/sandeepkv93/dayblocks/internal/model"
	"github.com/sandeepkv93/dayblocks/internal/storage"
)

// persistOrder writes last-reset after everything else so a crash between
// writes can only cause a reconciliation to be repeated, never skipped.
var persistOrder = []string{
	storage.KeyTasksByDate,
	storage.KeyCommentsByTask,
	storage.KeyBlockLabels,
	storage.KeyCategories,
	storage.KeyCurrentDate,
	storage.KeyLoggedIn,
	storage.KeyLastReset,
}

func encodeKey(s Snapshot, key string) ([]byte, error) {
	switch key {
	case storage.KeyTasksByDate:
		return json.Marshal(s.Tasks)
	case storage.KeyCommentsByTask:
		return json.Marshal(s.Comments)
	case storage.KeyBlockLabels:
		return json.Marshal(s.Labels)
	case storage.KeyCategories:
		return json.Marshal(s.Categories)
	case storage.KeyLastReset:
		return json.Marshal(s.LastReset)
	case storage.KeyCurrentDate:
		return json.Marshal(s.CurrentDate)
	case storage.KeyLoggedIn:
		return json.Marshal(s.LoggedIn)
	default:
		return nil, fmt.Errorf("store: unknown key %q", key)
	}
}

func writeKeys(ctx context.Context, backend storage.Backend, s Snapshot, dirty map[string]bool) error {
	var errs []error
	for _, key := range persistOrder {
		if !dirty[key] {
			continue
		}
		payload, err := encodeKey(s, key)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := backend.Put(ctx, key, payload); err != nil {
			errs = append(errs, fmt.Errorf("store: write %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

func readKey(ctx context.Context, backend storage.Backend, key string, dst any) (bool, error) {
	raw, err := backend.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("store: read %s: %w", key, err)
	}
	if strings.TrimSpace(string(raw)) == "" {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("store: decode %s: %w", key, err)
	}
	return true, nil
}

// load reads every key independently; absent keys keep the defaults in base.
func load(ctx context.Context, backend storage.Backend, base Snapshot) (Snapshot, error) {
	out := base.Clone()

	var tasks map[model.DateKey]map[model.Block][]model.Task
	found, err := readKey(ctx, backend, storage.KeyTasksByDate, &tasks)
	if err != nil {
		return Snapshot{}, err
	}
	if found && tasks != nil {
		out.Tasks = tasks
	} else {
		legacy, ok, err := loadLegacyTasks(ctx, backend, base.CurrentDate, base.DefaultCategory())
		if err != nil {
			return Snapshot{}, err
		}
		if ok {
			out.Tasks = legacy
		}
	}

	comments, err := loadComments(ctx, backend)
	if err != nil {
		return Snapshot{}, err
	}
	if comments != nil {
		out.Comments = comments
	}

	var labels map[model.Block]string
	if found, err := readKey(ctx, backend, storage.KeyBlockLabels, &labels); err != nil {
		return Snapshot{}, err
	} else if found {
		for block, label := range labels {
			if block.IsValid() && strings.TrimSpace(label) != "" {
				out.Labels[block] = label
			}
		}
	}

	var categories []string
	if found, err := readKey(ctx, backend, storage.KeyCategories, &categories); err != nil {
		return Snapshot{}, err
	} else if found {
		out.Categories = normalizeCategories(categories)
	}

	for _, item := range []struct {
		key string
		dst *model.DateKey
	}{
		{storage.KeyLastReset, &out.LastReset},
		{storage.KeyCurrentDate, &out.CurrentDate},
	} {
		var raw string
		found, err := readKey(ctx, backend, item.key, &raw)
		if err != nil {
			return Snapshot{}, err
		}
		if !found {
			continue
		}
		key, err := model.ParseDateKey(raw)
		if err != nil {
			return Snapshot{}, fmt.Errorf("store: decode %s: %w", item.key, err)
		}
		*item.dst = key
	}

	if _, err := readKey(ctx, backend, storage.KeyLoggedIn, &out.LoggedIn); err != nil {
		return Snapshot{}, err
	}

	normalizeTasks(&out)
	return out, nil
}

// normalizeTasks fills in defaults for records written by older versions.
func normalizeTasks(s *Snapshot) {
	for date, blocks := range s.Tasks {
		for block, list := range blocks {
			if !block.IsValid() {
				delete(blocks, block)
				continue
			}
			for i := range list {
				if list[i].DueDate == "" {
					list[i].DueDate = date
				}
				if list[i].Done && list[i].CompletedOn == "" {
					list[i].CompletedOn = date
				}
			}
		}
	}
}

func normalizeCategories(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, c := range in {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

func sortDates(dates []model.DateKey) {
	sort.Slice(dates, func(i, j int) bool { return dates[i] < dates[j] })
}
