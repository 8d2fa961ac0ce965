// Package login provides the sign-in screen shown while no session exists.
package login

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/promaster-tui/internal/app"
	"github.com/j-veylop/promaster-tui/internal/models"
	"github.com/j-veylop/promaster-tui/internal/ui/components"
	"github.com/j-veylop/promaster-tui/internal/ui/styles"
)

type field int

const (
	fieldUser field = iota
	fieldPassword
	fieldLanguage
	fieldSubmit
	fieldCount
)

type keyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Submit   key.Binding
	LangPrev key.Binding
	LangNext key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab/↓", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab/↑", "prev field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "sign in"),
		),
		LangPrev: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "language"),
		),
		LangNext: key.NewBinding(
			key.WithKeys("right", " "),
			key.WithHelp("→", "language"),
		),
	}
}

// Model is the sign-in form.
type Model struct {
	state      *app.State
	commands   *app.Commands
	err        string
	spinner    components.LoadingSpinner
	keys       keyMap
	user       textinput.Model
	password   textinput.Model
	focus      field
	language   int
	width      int
	height     int
	submitting bool
}

// New creates the sign-in form. The language selector starts on lastLanguageID.
func New(state *app.State, commands *app.Commands, lastUser string, lastLanguageID int) *Model {
	user := textinput.New()
	user.Placeholder = "User name"
	user.Prompt = ""
	user.CharLimit = 128
	user.SetValue(lastUser)

	password := textinput.New()
	password.Placeholder = "Password"
	password.Prompt = ""
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	m := &Model{
		state:    state,
		commands: commands,
		spinner:  components.NewSpinner("Signing in..."),
		keys:     defaultKeyMap(),
		user:     user,
		password: password,
	}

	for i, l := range models.Languages {
		if l.ID == lastLanguageID {
			m.language = i
		}
	}

	if lastUser != "" {
		m.setFocus(fieldPassword)
	} else {
		m.setFocus(fieldUser)
	}
	return m
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Init())
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case app.LoginResultMsg:
		m.submitting = false
		if msg.Error != nil {
			m.err = msg.Error.Error()
			m.password.SetValue("")
			m.setFocus(fieldPassword)
		} else {
			m.err = ""
			m.password.SetValue("")
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m, m.handleKeyMsg(msg)
	}

	return m, m.updateInputs(msg)
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	if m.submitting {
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Next):
		m.setFocus((m.focus + 1) % fieldCount)
		return nil

	case key.Matches(msg, m.keys.Prev):
		m.setFocus((m.focus - 1 + fieldCount) % fieldCount)
		return nil

	case key.Matches(msg, m.keys.Submit):
		if m.focus == fieldUser {
			m.setFocus(fieldPassword)
			return nil
		}
		return m.submit()

	case m.focus == fieldLanguage && key.Matches(msg, m.keys.LangPrev):
		m.language = (m.language - 1 + len(models.Languages)) % len(models.Languages)
		return nil

	case m.focus == fieldLanguage && key.Matches(msg, m.keys.LangNext):
		m.language = (m.language + 1) % len(models.Languages)
		return nil
	}

	m.err = ""
	return m.updateInputs(msg)
}

func (m *Model) updateInputs(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.user, cmd = m.user.Update(msg)
	cmds = append(cmds, cmd)
	m.password, cmd = m.password.Update(msg)
	cmds = append(cmds, cmd)

	return tea.Batch(cmds...)
}

func (m *Model) submit() tea.Cmd {
	userName := strings.TrimSpace(m.user.Value())
	password := m.password.Value()

	switch {
	case userName == "":
		m.err = "User name is required"
		m.setFocus(fieldUser)
		return nil
	case password == "":
		m.err = "Password is required"
		m.setFocus(fieldPassword)
		return nil
	}

	m.err = ""
	m.submitting = true
	return tea.Batch(
		m.commands.Login(userName, password, m.Language().ID),
		m.spinner.Init(),
	)
}

func (m *Model) setFocus(f field) {
	m.focus = f
	m.user.Blur()
	m.password.Blur()
	switch f {
	case fieldUser:
		m.user.Focus()
	case fieldPassword:
		m.password.Focus()
	}
}

// Language returns the selected language.
func (m *Model) Language() models.Language {
	return models.Languages[m.language]
}

// Err returns the message shown under the form.
func (m *Model) Err() string {
	return m.err
}

// Submitting reports whether a sign-in request is in flight.
func (m *Model) Submitting() bool {
	return m.submitting
}

// SetSize sets the available size for the form.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	inputWidth := min(max(width/3, 20), 40)
	m.user.Width = inputWidth
	m.password.Width = inputWidth
}

// ShortHelp returns key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Next, m.keys.Submit}
}

// FullHelp returns key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Next, m.keys.Prev},
		{m.keys.LangPrev, m.keys.LangNext, m.keys.Submit},
	}
}

func (m *Model) labelStyle(f field) string {
	if m.focus == f {
		return styles.FocusedStyle.Render("▸ ")
	}
	return "  "
}
