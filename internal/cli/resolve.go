package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sandeepkv93/dayblocks/internal/model"
	"github.com/sandeepkv93/dayblocks/internal/store"
)

var ErrTaskNotFound = errors.New("cli: no task matches")

// resolveTask finds a task by full id or by a unique id suffix, which is
// what list prints.
func resolveTask(snap store.Snapshot, ref string) (store.Location, model.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return store.Location{}, model.Task{}, fmt.Errorf("%w: empty id", ErrTaskNotFound)
	}
	if loc, task, ok := snap.Find(ref); ok {
		return loc, task, nil
	}
	var matches []store.Location
	for _, date := range snap.Dates() {
		for _, block := range model.Blocks() {
			for i, t := range snap.List(date, block) {
				if strings.HasSuffix(t.ID, ref) {
					matches = append(matches, store.Location{Date: date, Block: block, Index: i})
				}
			}
		}
	}
	switch len(matches) {
	case 0:
		return store.Location{}, model.Task{}, fmt.Errorf("%w: %q", ErrTaskNotFound, ref)
	case 1:
		loc := matches[0]
		return loc, snap.List(loc.Date, loc.Block)[loc.Index], nil
	default:
		return store.Location{}, model.Task{}, fmt.Errorf("cli: id %q matches %d tasks, use more characters", ref, len(matches))
	}
}

func resolveComment(comments []model.Comment, ref string) (model.Comment, error) {
	ref = strings.TrimSpace(ref)
	var found []model.Comment
	for _, c := range comments {
		if c.ID == ref {
			return c, nil
		}
		if ref != "" && strings.HasSuffix(c.ID, ref) {
			found = append(found, c)
		}
	}
	switch len(found) {
	case 0:
		return model.Comment{}, fmt.Errorf("cli: no comment matches %q", ref)
	case 1:
		return found[0], nil
	default:
		return model.Comment{}, fmt.Errorf("cli: comment id %q is ambiguous", ref)
	}
}
