// Package rollover reconciles stored tasks when the reference-zone date
// changes: recurring tasks reopen and unfinished past tasks are tagged
// overdue.
package rollover

import (
	"github.com/sandeepkv93/dayblocks/internal/model"
	"github.com/sandeepkv93/dayblocks/internal/storage"
	"github.com/sandeepkv93/dayblocks/internal/store"
)

type Result struct {
	Previous model.DateKey
	Today    model.DateKey
	// Reopened counts recurring tasks whose done flag was cleared.
	Reopened int
	// Tagged counts tasks newly marked overdue.
	Tagged   int
	// Cleared counts overdue tags dropped from tasks that became recurring.
	Cleared  int
	Ran      bool
}

// Changed reports whether the run touched any task.
func (r Result) Changed() bool {
	return r.Reopened > 0 || r.Tagged > 0 || r.Cleared > 0
}

// Reconcile returns next with the rollover applied for today. snap is not
// modified. Applying it again for the same day changes nothing.
func Reconcile(snap store.Snapshot, today model.DateKey) (store.Snapshot, Result) {
	next := snap.Clone()
	res := Result{Previous: snap.LastReset, Today: today, Ran: true}

	for date, blocks := range next.Tasks {
		for _, list := range blocks {
			for i := range list {
				task := &list[i]
				if task.Recurring && task.Done && task.CompletedOn.Before(today) {
					task.Reopen()
					res.Reopened++
				}
				if task.Recurring {
					if task.Overdue {
						task.Overdue = false
						res.Cleared++
					}
					continue
				}
				if date.Before(today) && !task.Done && !task.Overdue {
					task.Overdue = true
					res.Tagged++
				}
			}
		}
	}
	next.LastReset = today
	return next, res
}

func dirtyKeys(before store.Snapshot, res Result) []string {
	var keys []string
	if res.Changed() {
		keys = append(keys, storage.KeyTasksByDate)
	}
	if before.LastReset != res.Today {
		keys = append(keys, storage.KeyLastReset)
	}
	return keys
}
