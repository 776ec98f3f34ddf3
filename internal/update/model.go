package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/sandeepkv93/dayblocks/internal/model"
	"github.com/sandeepkv93/dayblocks/internal/rollover"
	"github.com/sandeepkv93/dayblocks/internal/storage"
	"github.com/sandeepkv93/dayblocks/internal/store"
)

type View string

const (
	ViewLogin    View = "Login"
	ViewDay      View = "Day"
	ViewSections View = "Sections"
	ViewComments View = "Comments"
)

// InputMode names the text prompt that currently owns the keyboard.
type InputMode string

const (
	ModeNone    InputMode = ""
	ModeAdd     InputMode = "add"
	ModeQuick   InputMode = "quick"
	ModeComment InputMode = "comment"
	ModeLabel   InputMode = "label"
	ModeEdit    InputMode = "edit"
)

type StatusBar struct {
	Text    string
	IsError bool
}

// Notice is a transient message that clears itself. Seq ties a clear
// request to the notice it was scheduled for.
type Notice struct {
	Text string
	Seq  int
}

type GlobalKeyMap struct {
	Quick    string
	Sections string
	Logout   string
	Help     string
	Quit     string
}

// Cursor addresses a row of the day view.
type Cursor struct {
	Block model.Block
	Row   int
}

type Options struct {
	Context        context.Context
	Credentials    store.Credentials
	NoticeDuration time.Duration
	// Rollovers and Changes feed background events into the program.
	Rollovers <-chan rollover.Result
	Changes   <-chan storage.Event
}

type Model struct {
	CurrentView   View
	Mode          InputMode
	Snapshot      store.Snapshot
	Cursor        Cursor
	SectionCursor int
	CommentTaskID string
	CommentCursor int
	Status        StatusBar
	Notice        Notice
	HelpVisible   bool
	Keys          GlobalKeyMap
	Quitting      bool
	LastError     error

	store     *store.Store
	ctx       context.Context
	creds     store.Credentials
	noticeFor time.Duration
	rollovers <-chan rollover.Result
	changes   <-chan storage.Event

	commentReturn View
	usernameInput textinput.Model
	passwordInput textinput.Model
	loginFocus    int
	loginError    string
	entryInput    textinput.Model
	quickExtras   store.Extras
	helpModel     help.Model
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type ClearNoticeMsg struct {
	Seq int
}

// RolloverMsg reports a rollover run from the background watcher.
type RolloverMsg struct {
	Result rollover.Result
}

// ReloadMsg asks the model to re-read the store after an external write.
type ReloadMsg struct {
	Key string
}

func NewModel(s *store.Store, opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	noticeFor := opts.NoticeDuration
	if noticeFor <= 0 {
		noticeFor = 3 * time.Second
	}
	m := Model{
		CurrentView: ViewDay,
		Cursor:      Cursor{Block: model.BlockMorning},
		Keys: GlobalKeyMap{
			Quick:    "n",
			Sections: "s",
			Logout:   "ctrl+l",
			Help:     "?",
			Quit:     "q",
		},
		store:     s,
		ctx:       ctx,
		creds:     opts.Credentials,
		noticeFor: noticeFor,
		rollovers: opts.Rollovers,
		changes:   opts.Changes,
	}
	m.initBubbleComponents()
	m.refresh()
	if !m.Snapshot.LoggedIn {
		m.CurrentView = ViewLogin
		m.usernameInput.Focus()
	} else {
		m.Cursor.Block = s.Zone().BlockAt(s.Clock().Now())
	}
	return m
}

func (m *Model) initBubbleComponents() {
	m.usernameInput = textinput.New()
	m.usernameInput.Prompt = "username: "
	m.usernameInput.CharLimit = 64
	m.usernameInput.Width = 28

	m.passwordInput = textinput.New()
	m.passwordInput.Prompt = "password: "
	m.passwordInput.CharLimit = 64
	m.passwordInput.Width = 28
	m.passwordInput.EchoMode = textinput.EchoPassword

	m.entryInput = textinput.New()
	m.entryInput.CharLimit = 256
	m.entryInput.Width = 48

	m.helpModel = help.New()
}

// refresh pulls a fresh snapshot and clamps every cursor to it.
func (m *Model) refresh() {
	m.Snapshot = m.store.Snapshot()
	if !m.Cursor.Block.IsValid() {
		m.Cursor.Block = model.BlockMorning
	}
	m.Cursor.Row = clamp(m.Cursor.Row, len(m.currentList()))
	m.SectionCursor = clamp(m.SectionCursor, len(m.sectionEntries()))
	if m.CommentTaskID != "" {
		if _, _, ok := m.Snapshot.Find(m.CommentTaskID); !ok {
			m.CommentTaskID = ""
			if m.CurrentView == ViewComments {
				m.CurrentView = m.commentReturn
			}
		}
	}
	m.CommentCursor = clamp(m.CommentCursor, len(m.Snapshot.Comments[m.CommentTaskID]))
}

func (m Model) date() model.DateKey {
	return m.Snapshot.CurrentDate
}

func (m Model) today() model.DateKey {
	return m.store.Zone().Today(m.store.Clock().Now())
}

func (m Model) currentList() []model.Task {
	return m.Snapshot.List(m.date(), m.Cursor.Block)
}

func (m Model) currentTask() (model.Task, bool) {
	list := m.currentList()
	if m.Cursor.Row < 0 || m.Cursor.Row >= len(list) {
		return model.Task{}, false
	}
	return list[m.Cursor.Row], true
}
