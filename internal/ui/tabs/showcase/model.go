// Package showcase provides the project showcase tab with pinning and
// availability.
package showcase

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/promaster-tui/internal/app"
	"github.com/j-veylop/promaster-tui/internal/models"
	"github.com/j-veylop/promaster-tui/internal/ui/components"
)

// tagFilters is the cycle order of the tag filter. The empty entry shows
// every project.
var tagFilters = []string{
	"",
	models.ShowcaseTagLabel(models.ShowcaseTagMixDevelopments),
	models.ShowcaseTagLabel(models.ShowcaseTagLastFewUnits),
	models.ShowcaseTagLabel(models.ShowcaseTagSellingFast),
}

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Pin    key.Binding
	Filter key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Pin: key.NewBinding(
			key.WithKeys("p", " "),
			key.WithHelp("p", "pin/unpin"),
		),
		Filter: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "cycle tag"),
		),
	}
}

// Model represents the showcase tab state.
type Model struct {
	state     *app.State
	commands  *app.Commands
	described map[string]string
	spinner   components.LoadingSpinner
	keys      keyMap
	viewport  viewport.Model
	cursor    int
	filter    int
	frame     int
	width     int
	height    int
}

// New creates a new showcase model.
func New(state *app.State, commands *app.Commands) *Model {
	return &Model{
		state:     state,
		commands:  commands,
		described: make(map[string]string),
		spinner:   components.NewSpinner("Loading showcase..."),
		keys:      defaultKeyMap(),
		viewport:  viewport.New(0, 0),
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Init()
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case app.StateChangedMsg:
		m.clampCursor()

	case tea.KeyMsg:
		return m, m.handleKeyMsg(msg)

	case spinner.TickMsg:
		m.frame++
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case app.TickMsg:
		m.frame++
	}

	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	projects := m.projects()

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.scrollToCursor()
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(projects)-1 {
			m.cursor++
			m.scrollToCursor()
		}
	case key.Matches(msg, m.keys.Pin):
		if p, ok := m.Selected(); ok {
			return m.commands.TogglePin(p)
		}
	case key.Matches(msg, m.keys.Filter):
		m.filter = (m.filter + 1) % len(tagFilters)
		m.cursor = 0
		return m.commands.FilterShowcase(m.Filter())
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
	return nil
}

// projects flattens the sections in display order. A pinned project shows
// up twice: once under the pins and once in its group.
func (m *Model) projects() []models.ShowcaseProject {
	var out []models.ShowcaseProject
	for _, s := range m.state.ShowcaseSections() {
		out = append(out, s.Projects...)
	}
	return out
}

// Selected returns the project under the cursor.
func (m *Model) Selected() (models.ShowcaseProject, bool) {
	projects := m.projects()
	if len(projects) == 0 {
		return models.ShowcaseProject{}, false
	}
	return projects[min(m.cursor, len(projects)-1)], true
}

// Filter returns the filter sent with showcase requests.
func (m *Model) Filter() models.ShowcaseFilter {
	return models.ShowcaseFilter{TagName: tagFilters[m.filter]}
}

func (m *Model) clampCursor() {
	n := len(m.projects())
	if m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

// scrollToCursor keeps the selected card inside the viewport. Each card is
// roughly cardHeight lines tall.
func (m *Model) scrollToCursor() {
	const cardHeight = 5

	top := m.cursor * cardHeight
	switch {
	case top < m.viewport.YOffset:
		m.viewport.SetYOffset(top)
	case top+cardHeight > m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(top + cardHeight - m.viewport.Height)
	}
}

// SetSize sets the available size for the showcase.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Up, m.keys.Down, m.keys.Pin, m.keys.Filter}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Up, m.keys.Down},
		{m.keys.Pin, m.keys.Filter},
	}
}
