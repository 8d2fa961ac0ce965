// Package dashboard provides the main dashboard tab: projects, statistics
// and the activity feed of the signed-in user.
package dashboard

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/promaster-tui/internal/app"
	"github.com/j-veylop/promaster-tui/internal/models"
	"github.com/j-veylop/promaster-tui/internal/stats"
	"github.com/j-veylop/promaster-tui/internal/ui/components"
)

const allLabel = "All"

// keyMap defines the key bindings specific to the dashboard tab.
type keyMap struct {
	TagFilter      key.Binding
	ActivityFilter key.Binding
	ChartPicker    key.Binding
	GroupPicker    key.Binding
	NextAxis       key.Binding
	PrevAxis       key.Binding
	NextSeries     key.Binding
	PrevSeries     key.Binding
	Export         key.Binding
}

// defaultKeyMap returns the default key bindings for the dashboard tab.
func defaultKeyMap() keyMap {
	return keyMap{
		TagFilter: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "project tag"),
		),
		ActivityFilter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "activity filter"),
		),
		ChartPicker: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "chart"),
		),
		GroupPicker: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "filter identities"),
		),
		NextAxis: key.NewBinding(
			key.WithKeys("a", "]"),
			key.WithHelp("a/]", "next axis"),
		),
		PrevAxis: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev axis"),
		),
		NextSeries: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next series"),
		),
		PrevSeries: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "prev series"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export PNG"),
		),
	}
}

// Model represents the dashboard tab state.
type Model struct {
	state    *app.State
	commands *app.Commands
	now      func() time.Time
	list     components.SelectList
	spinner  components.LoadingSpinner
	keys     keyMap
	viewport viewport.Model
	series   int
	width    int
	height   int
}

// New creates a new dashboard model.
func New(state *app.State, commands *app.Commands) *Model {
	return &Model{
		state:    state,
		commands: commands,
		now:      time.Now,
		spinner:  components.NewSpinner("Loading dashboard..."),
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
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
		m.clampSeries()

	case tea.KeyMsg:
		if m.state.GetDialog().IsOpen() {
			return m, m.updateDialog(msg)
		}
		return m, m.handleKeyMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	dash := m.state.GetDashboard()
	axis := m.state.GetAxis()

	switch {
	case key.Matches(msg, m.keys.NextAxis):
		m.state.CycleAxis(1)
		m.series = 0
	case key.Matches(msg, m.keys.PrevAxis):
		m.state.CycleAxis(-1)
		m.series = 0
	case key.Matches(msg, m.keys.NextSeries):
		if n := len(m.state.Charts(axis)); n > 0 {
			m.series = (m.series + 1) % n
		}
	case key.Matches(msg, m.keys.PrevSeries):
		if n := len(m.state.Charts(axis)); n > 0 {
			m.series = (m.series - 1 + n) % n
		}
	case key.Matches(msg, m.keys.Export):
		item, ok := m.SelectedSeries()
		if !ok {
			return m.commands.NotifyWarning("No chart to export")
		}
		return m.commands.ExportChart(item)
	case dash == nil:
		// Dialogs need catalogs.
	case key.Matches(msg, m.keys.TagFilter):
		m.openDialog(app.TagFilterDialog())
	case key.Matches(msg, m.keys.ActivityFilter):
		m.openDialog(app.ActivityFilterDialog())
	case key.Matches(msg, m.keys.ChartPicker):
		m.openDialog(app.ChartPickerDialog(axis))
	case key.Matches(msg, m.keys.GroupPicker):
		m.openDialog(app.GroupPickerDialog(axis))
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
	return nil
}

// openDialog builds the list for a dialog and makes it the active one.
func (m *Model) openDialog(d app.Dialog) {
	dash := m.state.GetDashboard()
	if dash == nil || dash.Data == nil {
		return
	}
	sel := m.state.GetSelection()

	switch d.Kind {
	case app.DialogTagFilter:
		items, current := []string{allLabel}, allLabel
		for _, t := range dash.Data.ProjectTags {
			items = append(items, t.Description)
			if t.IntID == sel.TagID {
				current = t.Description
			}
		}
		m.list = components.NewSelectList("Project tag", items, current)

	case app.DialogActivityFilter:
		items, current := []string{allLabel}, allLabel
		for _, f := range dash.Data.ActivityFilters {
			items = append(items, f.Description)
			if f.IntID == sel.ActivityCategory {
				current = f.Description
			}
		}
		m.list = components.NewSelectList("Activity filter", items, current)

	case app.DialogChartPicker:
		_, types := dash.Catalog.Axis(d.Axis)
		items := make([]string, 0, len(types))
		for _, t := range types {
			items = append(items, t.Description)
		}
		m.list = components.NewSelectList("Chart · "+d.Axis.Title(), items, sel.ChartNames[d.Axis])

	case app.DialogGroupPicker:
		groups, _ := dash.Catalog.Axis(d.Axis)
		items := []string{allLabel}
		for _, g := range stats.GroupsForChart(groups, sel.ChartNames[d.Axis]) {
			items = append(items, groupLabel(g.GroupName))
		}
		current := allLabel
		if sel.Groups[d.Axis] != "" {
			current = groupLabel(sel.Groups[d.Axis])
		}
		m.list = components.NewSelectList("Group · "+d.Axis.Title(), items, current)

	case app.DialogPropertyPicker:
		groups, _ := dash.Catalog.Axis(d.Axis)
		var items []string
		for _, g := range stats.GroupsForChart(groups, sel.ChartNames[d.Axis]) {
			if g.GroupName == d.Group {
				items = g.ItemsName
				break
			}
		}
		checked := items
		if sel.Groups[d.Axis] == d.Group && len(sel.Identities[d.Axis]) > 0 {
			checked = sel.Identities[d.Axis]
		}
		m.list = components.NewMultiSelectList(groupLabel(d.Group), items, checked)

	default:
		return
	}

	m.list.SetHeight(max(m.height/2, 5))
	m.state.OpenDialog(d)
}

// updateDialog routes a key to the open dialog and applies its result.
func (m *Model) updateDialog(msg tea.KeyMsg) tea.Cmd {
	var action components.SelectAction
	m.list, action = m.list.Update(msg)

	switch action {
	case components.SelectCancelled:
		m.state.CloseDialog()
	case components.SelectConfirmed:
		m.confirmDialog(m.state.GetDialog())
	}
	return nil
}

func (m *Model) confirmDialog(d app.Dialog) {
	dash := m.state.GetDashboard()
	if dash == nil || dash.Data == nil {
		m.state.CloseDialog()
		return
	}
	cursor := m.list.Cursor()

	switch d.Kind {
	case app.DialogTagFilter:
		tag := 0
		if cursor > 0 && cursor <= len(dash.Data.ProjectTags) {
			tag = dash.Data.ProjectTags[cursor-1].IntID
		}
		m.state.SetTagFilter(tag)

	case app.DialogActivityFilter:
		category := 0
		if cursor > 0 && cursor <= len(dash.Data.ActivityFilters) {
			category = dash.Data.ActivityFilters[cursor-1].IntID
		}
		m.state.SetActivityFilter(category)

	case app.DialogChartPicker:
		if name, ok := m.list.Current(); ok {
			m.state.SetChartName(d.Axis, name)
			m.series = 0
		}

	case app.DialogGroupPicker:
		groups, _ := dash.Catalog.Axis(d.Axis)
		forChart := stats.GroupsForChart(groups, m.state.GetSelection().ChartNames[d.Axis])
		if cursor <= 0 || cursor > len(forChart) {
			m.state.SetIdentities(d.Axis, "", nil)
			break
		}
		// The group picker leads into the identity picker of that group.
		m.openDialog(app.PropertyPickerDialog(d.Axis, forChart[cursor-1].GroupName))
		return

	case app.DialogPropertyPicker:
		m.state.SetIdentities(d.Axis, d.Group, m.list.Checked())
		m.series = 0
	}

	m.state.CloseDialog()
}

// SelectedSeries returns the series picked for export on the current axis.
func (m *Model) SelectedSeries() (models.ChartDataItem, bool) {
	charts := m.state.Charts(m.state.GetAxis())
	if len(charts) == 0 {
		return models.ChartDataItem{}, false
	}
	return charts[min(m.series, len(charts)-1)], true
}

func (m *Model) clampSeries() {
	n := len(m.state.Charts(m.state.GetAxis()))
	if m.series >= n {
		m.series = max(n-1, 0)
	}
}

// DialogView renders the open dialog.
func (m *Model) DialogView() string {
	return m.list.View(min(max(m.width/2, 30), 60))
}

// SetSize sets the available size for the dashboard.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.list.SetHeight(max(height/2, 5))
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keys.TagFilter,
		m.keys.ActivityFilter,
		m.keys.ChartPicker,
		m.keys.GroupPicker,
		m.keys.NextAxis,
		m.keys.NextSeries,
		m.keys.Export,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.TagFilter, m.keys.ActivityFilter},
		{m.keys.ChartPicker, m.keys.GroupPicker},
		{m.keys.NextAxis, m.keys.PrevAxis, m.keys.NextSeries, m.keys.PrevSeries},
		{m.keys.Export},
	}
}

func groupLabel(name string) string {
	if name == "" {
		return "(ungrouped)"
	}
	return name
}
