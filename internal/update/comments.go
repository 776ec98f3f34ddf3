package update

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) openComments(taskID string, from View) {
	m.CommentTaskID = taskID
	m.CommentCursor = 0
	m.commentReturn = from
	m.CurrentView = ViewComments
}

func (m Model) handleCommentsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	list := m.Snapshot.Comments[m.CommentTaskID]
	switch msg.String() {
	case "up", "k":
		m.CommentCursor = clamp(m.CommentCursor-1, len(list))
	case "down", "j":
		m.CommentCursor = clamp(m.CommentCursor+1, len(list))
	case "a":
		return m.openInput(ModeComment, "comment> ", "")
	case "x":
		if m.CommentCursor < len(list) {
			_, err := m.store.DeleteComment(m.ctx, m.CommentTaskID, list[m.CommentCursor].ID)
			m.report("delete comment", err)
			m.refresh()
		}
	case "esc":
		m.CurrentView = m.commentReturn
		m.CommentTaskID = ""
		m.refresh()
	}
	return m, nil
}

func (m *Model) submitComment(text string) {
	_, before, _ := m.Snapshot.Find(m.CommentTaskID)
	_, ok, err := m.store.AddComment(m.ctx, m.CommentTaskID, text)
	if m.report("add comment", err) {
		m.refresh()
		return
	}
	m.refresh()
	if !ok {
		return
	}
	m.CommentCursor = len(m.Snapshot.Comments[m.CommentTaskID]) - 1
	_, after, _ := m.Snapshot.Find(m.CommentTaskID)
	switch {
	case after.Recurring && !before.Recurring:
		m.Status = StatusBar{Text: "repeats daily: " + after.Text}
	case !after.Recurring && before.Recurring:
		m.Status = StatusBar{Text: "no longer repeats: " + after.Text}
	default:
		m.Status = StatusBar{Text: "comment added"}
	}
}
