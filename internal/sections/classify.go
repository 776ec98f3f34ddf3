// Package sections groups every stored task into Overdue, Today and
// Upcoming relative to the reference-zone date. Tasks finished on an
// earlier day get a fourth, Completed, section.
package sections

import (
	"time"

	"github.com/sandeepkv93/dayblocks/internal/clock"
	"github.com/sandeepkv93/dayblocks/internal/model"
	"github.com/sandeepkv93/dayblocks/internal/store"
)

type Bucket string

const (
	BucketOverdue   Bucket = "overdue"
	BucketToday     Bucket = "today"
	BucketUpcoming  Bucket = "upcoming"
	// BucketCompleted holds done tasks whose day has passed.
	BucketCompleted Bucket = "completed"
)

func Buckets() []Bucket {
	return []Bucket{BucketOverdue, BucketToday, BucketUpcoming, BucketCompleted}
}

func (b Bucket) Title() string {
	switch b {
	case BucketOverdue:
		return "Overdue"
	case BucketToday:
		return "Today"
	case BucketUpcoming:
		return "Upcoming"
	case BucketCompleted:
		return "Completed"
	default:
		return string(b)
	}
}

// Entry is a task plus the slot it lives in.
type Entry struct {
	Task  model.Task
	Date  model.DateKey
	Block model.Block
	Index int
}

type Group struct {
	Category string
	// Stale is set when the category is no longer configured.
	Stale   bool
	Entries []Entry
}

type Section struct {
	Bucket Bucket
	Groups []Group
}

func (s Section) Len() int {
	n := 0
	for _, g := range s.Groups {
		n += len(g.Entries)
	}
	return n
}

type Sections struct {
	Today     model.DateKey
	Overdue   Section
	Current   Section
	Upcoming  Section
	Completed Section
}

func (s Sections) All() []Section {
	return []Section{s.Overdue, s.Current, s.Upcoming, s.Completed}
}

// BucketOf decides where a task belongs. Recurring tasks come back every
// day, so a past due date puts them under today instead of overdue. The
// rollover tag wins over the date for everything else.
func BucketOf(task model.Task, date, today model.DateKey) Bucket {
	due := task.DueDate
	if due == "" {
		due = date
	}
	switch {
	case task.Recurring:
		if due.After(today) {
			return BucketUpcoming
		}
		return BucketToday
	case task.Overdue && !task.Done:
		return BucketOverdue
	case due.After(today):
		return BucketUpcoming
	case due == today:
		return BucketToday
	case task.Done:
		return BucketCompleted
	default:
		return BucketOverdue
	}
}

// Classify walks tasks by date, then block order, then list order.
func Classify(snap store.Snapshot, now time.Time, zone clock.Zone) Sections {
	today := zone.Today(now)
	entries := map[Bucket][]Entry{}
	for _, date := range snap.Dates() {
		for _, block := range model.Blocks() {
			for i, task := range snap.List(date, block) {
				b := BucketOf(task, date, today)
				entries[b] = append(entries[b], Entry{Task: task, Date: date, Block: block, Index: i})
			}
		}
	}
	return Sections{
		Today:     today,
		Overdue:   Section{Bucket: BucketOverdue, Groups: group(entries[BucketOverdue], snap.Categories)},
		Current:   Section{Bucket: BucketToday, Groups: group(entries[BucketToday], snap.Categories)},
		Upcoming:  Section{Bucket: BucketUpcoming, Groups: group(entries[BucketUpcoming], snap.Categories)},
		Completed: Section{Bucket: BucketCompleted, Groups: group(entries[BucketCompleted], snap.Categories)},
	}
}

// group orders configured categories first, then labels that are no longer
// configured in first-seen order. Empty groups are omitted.
func group(entries []Entry, categories []string) []Group {
	byCategory := make(map[string][]Entry)
	var stale []string
	configured := make(map[string]bool, len(categories))
	for _, c := range categories {
		configured[c] = true
	}
	for _, e := range entries {
		c := e.Task.Category
		if _, seen := byCategory[c]; !seen && !configured[c] {
			stale = append(stale, c)
		}
		byCategory[c] = append(byCategory[c], e)
	}

	out := make([]Group, 0, len(byCategory))
	for _, c := range categories {
		if list := byCategory[c]; len(list) > 0 {
			out = append(out, Group{Category: c, Entries: list})
		}
	}
	for _, c := range stale {
		out = append(out, Group{Category: c, Stale: true, Entries: byCategory[c]})
	}
	return out
}
