package update

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/dayblocks/internal/views"
)

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		m.focusLogin(1 - m.loginFocus)
		return m, nil
	case tea.KeyEnter:
		if m.loginFocus == 0 {
			m.focusLogin(1)
			return m, nil
		}
		return m.submitLogin()
	case tea.KeyRunes:
		in := m.loginInput()
		in.SetValue(in.Value() + string(msg.Runes))
		in.CursorEnd()
		return m, nil
	}
	var cmd tea.Cmd
	in := m.loginInput()
	*in, cmd = in.Update(msg)
	return m, cmd
}

func (m *Model) focusLogin(field int) {
	m.loginFocus = field
	if field == 0 {
		m.usernameInput.Focus()
		m.passwordInput.Blur()
	} else {
		m.passwordInput.Focus()
		m.usernameInput.Blur()
	}
}

func (m Model) submitLogin() (tea.Model, tea.Cmd) {
	ok, err := m.store.Login(m.ctx, m.creds, m.usernameInput.Value(), m.passwordInput.Value())
	if m.report("login", err) {
		return m, nil
	}
	m.passwordInput.SetValue("")
	if !ok {
		m.loginError = "invalid username or password"
		return m, nil
	}
	m.loginError = ""
	m.usernameInput.SetValue("")
	m.usernameInput.Blur()
	m.passwordInput.Blur()
	m.loginFocus = 0
	m.CurrentView = ViewDay
	m.Cursor = Cursor{Block: m.store.Zone().BlockAt(m.store.Clock().Now())}
	m.Status = StatusBar{Text: "logged in"}
	m.refresh()
	return m, nil
}

func (m Model) logout() (tea.Model, tea.Cmd) {
	if m.report("logout", m.store.Logout(m.ctx)) {
		return m, nil
	}
	m.closeInput()
	m.CurrentView = ViewLogin
	m.HelpVisible = false
	m.Status = StatusBar{}
	m.focusLogin(0)
	m.refresh()
	return m, nil
}

func (m *Model) loginInput() *textinput.Model {
	if m.loginFocus == 1 {
		return &m.passwordInput
	}
	return &m.usernameInput
}

func (m Model) renderLoginView() string {
	return views.RenderLogin(views.LoginPanelData{
		UsernameView: m.usernameInput.View(),
		PasswordView: m.passwordInput.View(),
		Error:        m.loginError,
	})
}
