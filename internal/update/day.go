package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/dayblocks/internal/model"
	"github.com/sandeepkv93/dayblocks/internal/store"
)

func (m Model) handleDayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.Cursor.Row = clamp(m.Cursor.Row-1, len(m.currentList()))
	case "down", "j":
		m.Cursor.Row = clamp(m.Cursor.Row+1, len(m.currentList()))
	case "left", "h", "shift+tab":
		m.shiftBlock(-1)
	case "right", "l", "tab":
		m.shiftBlock(1)
	case "a":
		return m.openInput(ModeAdd, "add> ", "")
	case "e":
		return m.openInput(ModeLabel, "label> ", m.Snapshot.Label(m.Cursor.Block))
	case "E":
		if task, ok := m.currentTask(); ok {
			return m.openInput(ModeEdit, "edit> ", task.Text)
		}
	case " ", "enter":
		m.toggleCurrent()
	case "K":
		m.moveCurrent(store.DirectionUp)
	case "J":
		m.moveCurrent(store.DirectionDown)
	case "x":
		if task, ok := m.currentTask(); ok {
			_, err := m.store.DeleteTask(m.ctx, m.date(), m.Cursor.Block, task.ID)
			if !m.report("delete task", err) {
				m.Status = StatusBar{Text: "deleted: " + task.Text}
			}
			m.refresh()
		}
	case "u":
		if task, ok := m.currentTask(); ok {
			_, err := m.store.SetUrgency(m.ctx, m.date(), m.Cursor.Block, task.ID, task.Urgency.Next())
			m.report("set urgency", err)
			m.refresh()
		}
	case "g":
		if task, ok := m.currentTask(); ok {
			next := nextCategory(m.Snapshot.Categories, task.Category)
			_, err := m.store.SetCategory(m.ctx, m.date(), m.Cursor.Block, task.ID, next)
			m.report("set category", err)
			m.refresh()
		}
	case "r":
		if task, ok := m.currentTask(); ok {
			_, err := m.store.SetRecurring(m.ctx, task.ID, !task.Recurring)
			m.report("set repeat", err)
			m.refresh()
		}
	case "c":
		if task, ok := m.currentTask(); ok {
			m.openComments(task.ID, ViewDay)
		}
	case "[":
		m.shiftDate(-1)
	case "]":
		m.shiftDate(1)
	case "t":
		_, err := m.store.SetCurrentDate(m.ctx, m.today())
		m.report("go to today", err)
		m.refresh()
	case m.Keys.Sections:
		m.CurrentView = ViewSections
		m.refresh()
	}
	return m, nil
}

func (m *Model) shiftBlock(delta int) {
	blocks := model.Blocks()
	i := (m.Cursor.Block.Index() + delta + len(blocks)) % len(blocks)
	m.Cursor = Cursor{Block: blocks[i]}
}

func (m *Model) shiftDate(days int) {
	_, err := m.store.ShiftCurrentDate(m.ctx, days)
	m.report("change date", err)
	m.refresh()
}

// toggleCurrent flips the selected task. The task moves to the end of its
// list, so the cursor stays put and lands on the next one.
func (m *Model) toggleCurrent() {
	task, ok := m.currentTask()
	if !ok {
		return
	}
	updated, _, err := m.store.ToggleDone(m.ctx, m.date(), m.Cursor.Block, task.ID)
	if !m.report("toggle task", err) {
		state := "open"
		if updated.Done {
			state = "done"
		}
		m.Status = StatusBar{Text: fmt.Sprintf("%s: %s", state, updated.Text)}
	}
	m.refresh()
}

func (m *Model) moveCurrent(dir store.Direction) {
	if _, ok := m.currentTask(); !ok {
		return
	}
	moved, err := m.store.MoveTask(m.ctx, m.date(), m.Cursor.Block, m.Cursor.Row, dir)
	if m.report("move task", err) || !moved {
		return
	}
	if dir == store.DirectionUp {
		m.Cursor.Row--
	} else {
		m.Cursor.Row++
	}
	m.refresh()
}
