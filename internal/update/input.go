package update

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/dayblocks/internal/model"
	"github.com/sandeepkv93/dayblocks/internal/quickentry"
	"github.com/sandeepkv93/dayblocks/internal/store"
)

func (m Model) openInput(mode InputMode, prompt, value string) (tea.Model, tea.Cmd) {
	m.Mode = mode
	m.entryInput.Prompt = prompt
	m.entryInput.SetValue(value)
	m.entryInput.CursorEnd()
	m.entryInput.Focus()
	return m, nil
}

// openQuick starts quick entry with the default category and urgency;
// ctrl+g and ctrl+u cycle them while the prompt is open.
func (m Model) openQuick() (tea.Model, tea.Cmd) {
	m.quickExtras = store.Extras{Urgency: model.UrgencyMedium}
	if len(m.Snapshot.Categories) > 0 {
		m.quickExtras.Category = m.Snapshot.Categories[0]
	}
	return m.openInput(ModeQuick, m.quickPrompt(), "")
}

func (m Model) quickPrompt() string {
	return fmt.Sprintf("quick [%s, %s] (text, MMDD)> ", m.quickExtras.Category, m.quickExtras.Urgency)
}

func (m *Model) closeInput() {
	m.Mode = ModeNone
	m.entryInput.SetValue("")
	m.entryInput.Blur()
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Mode == ModeQuick {
		switch msg.Type {
		case tea.KeyCtrlG:
			m.quickExtras.Category = nextCategory(m.Snapshot.Categories, m.quickExtras.Category)
			m.entryInput.Prompt = m.quickPrompt()
			return m, nil
		case tea.KeyCtrlU:
			m.quickExtras.Urgency = m.quickExtras.Urgency.Next()
			m.entryInput.Prompt = m.quickPrompt()
			return m, nil
		}
	}
	switch msg.Type {
	case tea.KeyEsc:
		m.closeInput()
		return m, nil
	case tea.KeyEnter:
		mode := m.Mode
		value := m.entryInput.Value()
		m.closeInput()
		return m.submitInput(mode, value)
	case tea.KeyRunes:
		m.entryInput.SetValue(m.entryInput.Value() + string(msg.Runes))
		m.entryInput.CursorEnd()
		return m, nil
	case tea.KeySpace:
		m.entryInput.SetValue(m.entryInput.Value() + " ")
		m.entryInput.CursorEnd()
		return m, nil
	}
	var cmd tea.Cmd
	m.entryInput, cmd = m.entryInput.Update(msg)
	return m, cmd
}

func (m Model) submitInput(mode InputMode, value string) (tea.Model, tea.Cmd) {
	switch mode {
	case ModeAdd:
		task, ok, err := m.store.AddTask(m.ctx, m.date(), m.Cursor.Block, value, store.Extras{})
		if !m.report("add task", err) && ok {
			m.Status = StatusBar{Text: "added: " + task.Text}
		}
		m.refresh()
		if ok {
			m.Cursor.Row = len(m.currentList()) - 1
		}
	case ModeQuick:
		return m.submitQuick(value)
	case ModeComment:
		m.submitComment(value)
	case ModeLabel:
		_, err := m.store.SetLabel(m.ctx, m.Cursor.Block, value)
		m.report("set label", err)
		m.refresh()
	case ModeEdit:
		if task, ok := m.currentTask(); ok {
			_, err := m.store.EditText(m.ctx, m.date(), m.Cursor.Block, task.ID, value)
			m.report("edit task", err)
			m.refresh()
		}
	}
	return m, nil
}

// submitQuick files a "text, MMDD" line. A malformed line reopens the
// prompt with the line untouched and raises a self-clearing notice.
func (m Model) submitQuick(line string) (tea.Model, tea.Cmd) {
	task, block, err := quickentry.Submit(m.ctx, m.store, line, m.quickExtras)
	var perr *quickentry.ParseError
	if errors.As(err, &perr) {
		m.Mode = ModeQuick
		m.entryInput.SetValue(line)
		m.entryInput.CursorEnd()
		m.entryInput.Focus()
		return m.showNotice(perr.Message)
	}
	if m.report("quick entry", err) {
		m.refresh()
		return m, nil
	}
	m.refresh()
	m.Status = StatusBar{Text: fmt.Sprintf("added %q to %s (%s)", task.Text, task.DueDate, m.Snapshot.Label(block))}
	return m, nil
}

func (m Model) showNotice(text string) (tea.Model, tea.Cmd) {
	m.Notice = Notice{Text: text, Seq: m.Notice.Seq + 1}
	return m, clearNoticeCmd(m.Notice.Seq, m.noticeFor)
}
