package update

import (
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/dayblocks/internal/views"
)

func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForRolloverCmd(m.rollovers), waitForChangeCmd(m.changes))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		keyStr := typed.String()
		if keyStr == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.CurrentView == ViewLogin {
			return m.handleLoginKey(typed)
		}
		if m.Mode != ModeNone {
			return m.handleInputKey(typed)
		}

		switch keyStr {
		case m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case m.Keys.Logout:
			return m.logout()
		case m.Keys.Quick:
			return m.openQuick()
		}
		switch m.CurrentView {
		case ViewDay:
			return m.handleDayKey(typed)
		case ViewSections:
			return m.handleSectionsKey(typed)
		case ViewComments:
			return m.handleCommentsKey(typed)
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) && m.Snapshot.LoggedIn && typed.View != ViewLogin &&
			(typed.View != ViewComments || m.CommentTaskID != "") {
			m.CurrentView = typed.View
			m.refresh()
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	case ClearNoticeMsg:
		if typed.Seq == m.Notice.Seq {
			m.Notice.Text = ""
		}
		return m, nil
	case RolloverMsg:
		m.refresh()
		if typed.Result.Changed() {
			m.Status = StatusBar{Text: fmt.Sprintf("new day %s: %d reopened, %d overdue",
				typed.Result.Today, typed.Result.Reopened, typed.Result.Tagged)}
		}
		return m, waitForRolloverCmd(m.rollovers)
	case ReloadMsg:
		if err := m.store.Reload(m.ctx); err != nil {
			log.Printf("update: reload after %s changed: %v", typed.Key, err)
			m.Status = StatusBar{Text: "reload: " + err.Error(), IsError: true}
		}
		m.refresh()
		if !m.Snapshot.LoggedIn && m.CurrentView != ViewLogin {
			m.closeInput()
			m.CurrentView = ViewLogin
			m.focusLogin(0)
		}
		return m, waitForChangeCmd(m.changes)
	}

	return m, nil
}

func (m Model) View() string {
	if m.CurrentView == ViewLogin {
		return m.renderLoginView()
	}
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}
	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewDay:
		leftPane = views.RenderDayPanel(m.dayPanelData())
	case ViewSections:
		leftPane = views.RenderSectionsPanel(m.sectionsPanelData())
	case ViewComments:
		if m.commentReturn == ViewSections {
			leftPane = views.RenderSectionsPanel(m.sectionsPanelData())
		} else {
			leftPane = views.RenderDayPanel(m.dayPanelData())
		}
		rightPane = views.RenderCommentsPanel(m.commentsPanelData())
	}
	if m.Mode == ModeQuick && m.CurrentView != ViewDay {
		rightPane += "\n" + m.entryInput.View()
	}
	rightPane += m.renderHelpIfVisible()

	return views.RenderApp(views.AppData{
		Header:     fmt.Sprintf("dayblocks | %s | view: %s", m.date(), m.CurrentView),
		LeftPane:   leftPane,
		RightPane:  rightPane,
		StatusLine: status,
		Notice:     m.Notice.Text,
		Footer: fmt.Sprintf("keys: %s quick | %s sections | %s logout | %s help | %s quit",
			m.Keys.Quick, m.Keys.Sections, m.Keys.Logout, m.Keys.Help, m.Keys.Quit),
	})
}

func isKnownView(v View) bool {
	switch v {
	case ViewLogin, ViewDay, ViewSections, ViewComments:
		return true
	default:
		return false
	}
}
