package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/dayblocks/internal/sections"
)

func (m Model) handleSectionsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entries := m.sectionEntries()
	switch msg.String() {
	case "up", "k":
		m.SectionCursor = clamp(m.SectionCursor-1, len(entries))
	case "down", "j":
		m.SectionCursor = clamp(m.SectionCursor+1, len(entries))
	case " ":
		if entry, ok := m.selectedEntry(entries); ok {
			_, _, err := m.store.ToggleDone(m.ctx, entry.Date, entry.Block, entry.Task.ID)
			m.report("toggle task", err)
			m.refresh()
		}
	case "c":
		if entry, ok := m.selectedEntry(entries); ok {
			m.openComments(entry.Task.ID, ViewSections)
		}
	case "enter":
		if entry, ok := m.selectedEntry(entries); ok {
			_, err := m.store.SetCurrentDate(m.ctx, entry.Date)
			if !m.report("open day", err) {
				m.CurrentView = ViewDay
				m.Cursor = Cursor{Block: entry.Block, Row: entry.Index}
			}
			m.refresh()
		}
	case "esc", m.Keys.Sections:
		m.CurrentView = ViewDay
		m.refresh()
	}
	return m, nil
}

func (m Model) selectedEntry(entries []sections.Entry) (sections.Entry, bool) {
	if m.SectionCursor < 0 || m.SectionCursor >= len(entries) {
		return sections.Entry{}, false
	}
	return entries[m.SectionCursor], true
}
