package update

import (
	"github.com/sandeepkv93/dayblocks/internal/model"
	"github.com/sandeepkv93/dayblocks/internal/sections"
	"github.com/sandeepkv93/dayblocks/internal/views"
)

func (m Model) taskRow(task model.Task, selected bool) views.TaskRow {
	return views.TaskRow{
		ID:        task.ID,
		Text:      task.Text,
		Done:      task.Done,
		Recurring: task.Recurring,
		Overdue:   task.Overdue,
		Urgency:   task.Urgency.String(),
		Category:  task.Category,
		DueDate:   string(task.DueDate),
		Comments:  len(m.Snapshot.Comments[task.ID]),
		Selected:  selected,
	}
}

func (m Model) dayPanelData() views.DayPanelData {
	data := views.DayPanelData{
		Date:    string(m.date()),
		IsToday: m.date() == m.today(),
	}
	for _, block := range model.Blocks() {
		active := block == m.Cursor.Block
		panel := views.BlockPanelData{Label: m.Snapshot.Label(block), Active: active}
		for i, task := range m.Snapshot.List(m.date(), block) {
			panel.Rows = append(panel.Rows, m.taskRow(task, active && i == m.Cursor.Row && m.CurrentView == ViewDay))
		}
		data.Blocks = append(data.Blocks, panel)
	}
	if m.CurrentView == ViewDay && m.Mode != ModeNone && m.Mode != ModeComment {
		data.Input = m.entryInput.View()
	}
	return data
}

// sectionEntries flattens the classified buckets in display order so a
// single cursor can walk them.
func (m Model) sectionEntries() []sections.Entry {
	classified := sections.Classify(m.Snapshot, m.store.Clock().Now(), m.store.Zone())
	var out []sections.Entry
	for _, section := range classified.All() {
		for _, g := range section.Groups {
			out = append(out, g.Entries...)
		}
	}
	return out
}

func (m Model) sectionsPanelData() []views.SectionData {
	classified := sections.Classify(m.Snapshot, m.store.Clock().Now(), m.store.Zone())
	var out []views.SectionData
	pos := 0
	for _, section := range classified.All() {
		data := views.SectionData{Title: section.Bucket.Title()}
		for _, g := range section.Groups {
			group := views.SectionGroupData{Category: g.Category, Stale: g.Stale}
			for _, entry := range g.Entries {
				group.Rows = append(group.Rows, m.taskRow(entry.Task, pos == m.SectionCursor))
				pos++
			}
			data.Groups = append(data.Groups, group)
		}
		out = append(out, data)
	}
	return out
}

func (m Model) commentsPanelData() views.CommentsPanelData {
	_, task, _ := m.Snapshot.Find(m.CommentTaskID)
	data := views.CommentsPanelData{TaskText: task.Text, Recurring: task.Recurring}
	loc := m.store.Zone().Location()
	for i, c := range m.Snapshot.Comments[m.CommentTaskID] {
		data.Comments = append(data.Comments, views.CommentData{
			Text:     c.Text,
			At:       c.CreatedAt.In(loc).Format("2006-01-02 15:04"),
			Selected: i == m.CommentCursor,
		})
	}
	if m.Mode == ModeComment {
		data.Input = m.entryInput.View()
	}
	return data
}
