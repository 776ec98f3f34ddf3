package store

import (
	"github.com/sandeepkv93/dayblocks/internal/model"
)

// Snapshot is the whole persisted state at one instant. Values handed out by
// the Store are private copies; mutating them never affects the Store.
type Snapshot struct {
	Tasks       map[model.DateKey]map[model.Block][]model.Task
	Comments    map[string][]model.Comment
	Labels      map[model.Block]string
	Categories  []string
	LastReset   model.DateKey
	CurrentDate model.DateKey
	LoggedIn    bool
}

// Location addresses a task inside the Tasks map.
type Location struct {
	Date  model.DateKey
	Block model.Block
	Index int
}

func NewSnapshot(today model.DateKey, categories []string) Snapshot {
	return Snapshot{
		Tasks:       make(map[model.DateKey]map[model.Block][]model.Task),
		Comments:    make(map[string][]model.Comment),
		Labels:      model.DefaultLabels(),
		Categories:  normalizeCategories(categories),
		LastReset:   today,
		CurrentDate: today,
	}
}

func (s Snapshot) Clone() Snapshot {
	out := s
	out.Tasks = make(map[model.DateKey]map[model.Block][]model.Task, len(s.Tasks))
	for date, blocks := range s.Tasks {
		copied := make(map[model.Block][]model.Task, len(blocks))
		for block, list := range blocks {
			copied[block] = append([]model.Task(nil), list...)
		}
		out.Tasks[date] = copied
	}
	out.Comments = make(map[string][]model.Comment, len(s.Comments))
	for id, list := range s.Comments {
		out.Comments[id] = append([]model.Comment(nil), list...)
	}
	out.Labels = make(map[model.Block]string, len(s.Labels))
	for block, label := range s.Labels {
		out.Labels[block] = label
	}
	out.Categories = append([]string(nil), s.Categories...)
	return out
}

// List returns the ordered tasks of one slot.
func (s Snapshot) List(date model.DateKey, block model.Block) []model.Task {
	return s.Tasks[date][block]
}

// Dates returns every date key holding at least one task, ascending.
func (s Snapshot) Dates() []model.DateKey {
	out := make([]model.DateKey, 0, len(s.Tasks))
	for date, blocks := range s.Tasks {
		for _, list := range blocks {
			if len(list) > 0 {
				out = append(out, date)
				break
			}
		}
	}
	sortDates(out)
	return out
}

// Find locates a task by id anywhere in the store.
func (s Snapshot) Find(id string) (Location, model.Task, bool) {
	for date, blocks := range s.Tasks {
		for block, list := range blocks {
			for i, task := range list {
				if task.ID == id {
					return Location{Date: date, Block: block, Index: i}, task, true
				}
			}
		}
	}
	return Location{}, model.Task{}, false
}

func (s Snapshot) Label(block model.Block) string {
	if label, ok := s.Labels[block]; ok && label != "" {
		return label
	}
	return model.DefaultLabels()[block]
}

// DefaultCategory is the first configured category, or "" when none exist.
func (s Snapshot) DefaultCategory() string {
	if len(s.Categories) == 0 {
		return ""
	}
	return s.Categories[0]
}

func (s Snapshot) HasCategory(name string) bool {
	for _, c := range s.Categories {
		if c == name {
			return true
		}
	}
	return false
}

func (s *Snapshot) slot(date model.DateKey, block model.Block) []model.Task {
	return s.Tasks[date][block]
}

func (s *Snapshot) setSlot(date model.DateKey, block model.Block, list []model.Task) {
	blocks, ok := s.Tasks[date]
	if !ok {
		blocks = make(map[model.Block][]model.Task)
		s.Tasks[date] = blocks
	}
	if len(list) == 0 {
		delete(blocks, block)
		if len(blocks) == 0 {
			delete(s.Tasks, date)
		}
		return
	}
	blocks[block] = list
}

func indexOf(list []model.Task, id string) int {
	for i, task := range list {
		if task.ID == id {
			return i
		}
	}
	return -1
}
