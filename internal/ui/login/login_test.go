package login

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j-veylop/promaster-tui/internal/app"
)

func newModel(lastUser string, lastLanguage int) *Model {
	m := New(app.NewState(), app.NewCommands(nil), lastUser, lastLanguage)
	m.SetSize(100, 40)
	return m
}

func typeText(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestNew(t *testing.T) {
	m := newModel("", 0)
	assert.Equal(t, fieldUser, m.focus)
	assert.Equal(t, 1, m.Language().ID)

	m = newModel("agent", 3)
	assert.Equal(t, fieldPassword, m.focus, "known user should start on the password")
	assert.Equal(t, "agent", m.user.Value())
	assert.Equal(t, 3, m.Language().ID)
}

func TestSubmit_RequiresFields(t *testing.T) {
	m := newModel("", 0)

	m.setFocus(fieldSubmit)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, "User name is required", m.Err())
	assert.Equal(t, fieldUser, m.focus)

	typeText(m, "agent")
	m.setFocus(fieldSubmit)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "Password is required", m.Err())
	assert.False(t, m.Submitting())
}

func TestSubmit_SendsLogin(t *testing.T) {
	m := newModel("", 0)

	typeText(m, " agent ")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter}) // moves to password
	require.Equal(t, fieldPassword, m.focus)
	typeText(m, "s3cret")

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 2, m.Language().ID)

	cmd := m.submit()
	require.NotNil(t, cmd)
	assert.True(t, m.Submitting())

	var login app.LoginMsg
	found := false
	if batch, ok := cmd().(tea.BatchMsg); ok {
		for _, c := range batch {
			if c == nil {
				continue
			}
			if msg, ok := c().(app.LoginMsg); ok {
				login, found = msg, true
			}
		}
	}
	require.True(t, found, "submit should request a login")
	assert.Equal(t, "agent", login.UserName)
	assert.Equal(t, "s3cret", login.Password)
	assert.Equal(t, 2, login.LanguageID)

	// Keys are ignored while the request is in flight
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, fieldLanguage, m.focus)
}

func TestLoginResult(t *testing.T) {
	m := newModel("agent", 1)
	typeText(m, "wrong")
	m.submitting = true

	m.Update(app.LoginResultMsg{Error: errors.New("invalid credentials")})
	assert.False(t, m.Submitting())
	assert.Equal(t, "invalid credentials", m.Err())
	assert.Empty(t, m.password.Value(), "password should be cleared")
	assert.Contains(t, m.View(), "invalid credentials")

	// Typing clears the error
	typeText(m, "x")
	assert.Empty(t, m.Err())
}

func TestLanguageWraps(t *testing.T) {
	m := newModel("", 0)
	m.setFocus(fieldLanguage)

	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 4, m.Language().ID)
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, m.Language().ID)
}

func TestView(t *testing.T) {
	m := newModel("", 0)
	view := m.View()

	for _, want := range []string{"ProMaster", "User name", "Password", "English", "Sign in"} {
		assert.True(t, strings.Contains(view, want), "view should contain %q", want)
	}
	assert.NotEmpty(t, m.ShortHelp())
	assert.NotEmpty(t, m.FullHelp())
}
