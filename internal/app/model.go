// Package app implements the main Bubble Tea application with tab-based navigation.
package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/promaster-tui/internal/export"
	"github.com/j-veylop/promaster-tui/internal/format"
	"github.com/j-veylop/promaster-tui/internal/models"
	"github.com/j-veylop/promaster-tui/internal/services"
	"github.com/j-veylop/promaster-tui/internal/services/promaster"
	"github.com/j-veylop/promaster-tui/internal/ui/styles"
)

// TabID represents the identifier for a tab in the application.
type TabID int

const (
	// TabDashboard is the ID for the dashboard tab.
	TabDashboard TabID = iota
	// TabShowcase is the ID for the showcase tab.
	TabShowcase
	// TabInfo is the ID for the info tab.
	TabInfo
)

// String returns the string representation of the TabID.
func (t TabID) String() string {
	switch t {
	case TabDashboard:
		return "Dashboard"
	case TabShowcase:
		return "Showcase"
	case TabInfo:
		return "Info"
	default:
		return "Unknown"
	}
}

// Tab defines the interface that all tabs must implement.
type Tab interface {
	// Init initializes the tab and returns any initial commands.
	Init() tea.Cmd

	// Update handles messages and returns the updated tab and any commands.
	Update(msg tea.Msg) (Tab, tea.Cmd)

	// View renders the tab content.
	View() string

	// SetSize sets the available size for the tab.
	SetSize(width, height int)

	// ShortHelp returns key bindings for the short help view.
	ShortHelp() []key.Binding

	// FullHelp returns key bindings for the full help view.
	FullHelp() [][]key.Binding
}

// DialogRenderer is implemented by tabs that draw the active dialog.
// The root model overlays it on top of the tab view.
type DialogRenderer interface {
	DialogView() string
}

// KeyMap defines the keybindings for the application.
type KeyMap struct {
	Tab1      key.Binding
	Tab2      key.Binding
	Tab3      key.Binding
	NextTab   key.Binding
	PrevTab   key.Binding
	Refresh   key.Binding
	Logout    key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
	Up        key.Binding
	Down      key.Binding
	Enter     key.Binding
	Escape    key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	km := KeyMap{}
	km = setTabKeys(km)
	km = setActionKeys(km)
	km = setNavigationKeys(km)
	return km
}

func setTabKeys(k KeyMap) KeyMap {
	k.Tab1 = key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "dashboard"))
	k.Tab2 = key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "showcase"))
	k.Tab3 = key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "info"))
	k.NextTab = key.NewBinding(key.WithKeys("tab", "l", "right"), key.WithHelp("tab/→", "next tab"))
	k.PrevTab = key.NewBinding(key.WithKeys("shift+tab", "h", "left"), key.WithHelp("shift+tab/←", "prev tab"))
	return k
}

func setActionKeys(k KeyMap) KeyMap {
	k.Refresh = key.NewBinding(key.WithKeys("r", "ctrl+r"), key.WithHelp("r", "refresh"))
	k.Logout = key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "sign out"))
	k.Help = key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help"))
	k.Quit = key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit"))
	k.ForceQuit = key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit"))
	return k
}

func setNavigationKeys(k KeyMap) KeyMap {
	k.Up = key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up"))
	k.Down = key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down"))
	k.Enter = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select"))
	k.Escape = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel"))
	k.PageUp = key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up"))
	k.PageDown = key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down"))
	return k
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Refresh, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab1, k.Tab2, k.Tab3},
		{k.NextTab, k.PrevTab},
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Refresh, k.Logout, k.Help, k.Quit},
	}
}

// Styles defines the application styles.
type Styles struct {
	// Tab bar styles
	TabBar       lipgloss.Style
	ActiveTab    lipgloss.Style
	InactiveTab  lipgloss.Style
	TabSeparator lipgloss.Style

	// Notification styles
	NotificationSuccess lipgloss.Style
	NotificationError   lipgloss.Style
	NotificationWarning lipgloss.Style
	NotificationInfo    lipgloss.Style

	// Content styles
	Content lipgloss.Style
	Help    lipgloss.Style
	Spinner lipgloss.Style
	Toast   lipgloss.Style

	// Common styles
	Title     lipgloss.Style
	Subtle    lipgloss.Style
	Highlight lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
}

// DefaultStyles returns the default application styles.
func DefaultStyles() Styles {
	subtle := lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
	highlight := lipgloss.AdaptiveColor{Light: "#D75F00", Dark: "#FF8700"}
	success := lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}
	warning := lipgloss.AdaptiveColor{Light: "#FF8C00", Dark: "#FF8C00"}
	errorColor := lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"}
	info := lipgloss.AdaptiveColor{Light: "#0087D7", Dark: "#5FAFFF"}

	s := Styles{}
	s.TabBar = lipgloss.NewStyle().Padding(0, 1).BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).BorderForeground(subtle)
	s.ActiveTab = lipgloss.NewStyle().Bold(true).Foreground(highlight).Padding(0, 2)
	s.InactiveTab = lipgloss.NewStyle().Foreground(subtle).Padding(0, 2)
	s.TabSeparator = lipgloss.NewStyle().Foreground(subtle).SetString(" | ")

	s.NotificationSuccess = lipgloss.NewStyle().Foreground(success).Padding(0, 1)
	s.NotificationError = lipgloss.NewStyle().Foreground(errorColor).Bold(true).Padding(0, 1)
	s.NotificationWarning = lipgloss.NewStyle().Foreground(warning).Padding(0, 1)
	s.NotificationInfo = lipgloss.NewStyle().Foreground(info).Padding(0, 1)

	s.Content = lipgloss.NewStyle().Padding(1, 2)
	s.Help = lipgloss.NewStyle().Foreground(subtle).Padding(0, 1)
	s.Spinner = lipgloss.NewStyle().Foreground(highlight)
	s.Toast = styles.ToastStyle

	s.Title = lipgloss.NewStyle().Bold(true).Foreground(highlight)
	s.Subtle = lipgloss.NewStyle().Foreground(subtle)
	s.Highlight = lipgloss.NewStyle().Foreground(highlight)
	s.Error = lipgloss.NewStyle().Foreground(errorColor)
	s.Success = lipgloss.NewStyle().Foreground(success)
	s.Warning = lipgloss.NewStyle().Foreground(warning)

	return s
}

// Model is the main application model.
type Model struct {
	// Tab management
	activeTab TabID
	tabs      []Tab
	tabNames  []string
	login     Tab

	// Shared state
	state    *State
	services *services.Manager
	commands *Commands
	keymap   KeyMap
	styles   Styles

	// UI components
	spinner spinner.Model

	// Window dimensions
	width  int
	height int

	// UI state
	showHelp bool
	ready    bool

	exportDir      string
	showcaseFilter models.ShowcaseFilter

	// Service subscription
	eventChannel chan services.ServiceEvent
}

// NewModel initializes a new application model.
func NewModel(mgr *services.Manager) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Accent)

	m := &Model{
		activeTab: TabDashboard,
		tabNames:  []string{"Dashboard", "Showcase", "Info"},
		tabs:      make([]Tab, 3), // Placeholder - tabs will be set externally
		state:     NewState(),
		services:  mgr,
		commands:  NewCommands(mgr),
		keymap:    DefaultKeyMap(),
		styles:    DefaultStyles(),
		spinner:   s,
	}

	if mgr != nil && mgr.Config() != nil {
		m.exportDir = mgr.Config().ExportDir
	}

	return m
}

// SetTabs sets the tabs for the model.
func (m *Model) SetTabs(tabs []Tab) {
	m.tabs = tabs
	if m.width > 0 && m.height > 0 {
		m.updateTabSizes()
	}
}

// SetLogin sets the screen shown while signed out.
func (m *Model) SetLogin(login Tab) {
	m.login = login
	if m.width > 0 && m.height > 0 {
		m.updateTabSizes()
	}
}

// SetExportDir overrides the directory chart exports are written to.
func (m *Model) SetExportDir(dir string) {
	m.exportDir = dir
}

// GetState returns the application state.
func (m *Model) GetState() *State {
	return m.state
}

// GetServices returns the service manager.
func (m *Model) GetServices() *services.Manager {
	return m.services
}

// GetCommands returns the commands helper.
func (m *Model) GetCommands() *Commands {
	return m.commands
}

// GetKeyMap returns the key bindings.
func (m *Model) GetKeyMap() KeyMap {
	return m.keymap
}

// GetStyles returns the application styles.
func (m *Model) GetStyles() Styles {
	return m.styles
}

// GetActiveTab returns the currently active tab ID.
func (m *Model) GetActiveTab() TabID {
	return m.activeTab
}

// GetWidth returns the window width.
func (m *Model) GetWidth() int {
	return m.width
}

// GetHeight returns the window height.
func (m *Model) GetHeight() int {
	return m.height
}

// IsReady returns true if the model is ready (window size received).
func (m *Model) IsReady() bool {
	return m.ready
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	m.state.SetLoadingNotification("Loading...")

	cmds := []tea.Cmd{
		m.spinner.Tick,
		defaultTickCmd(),
	}

	if m.services != nil {
		cmds = append(cmds, subscribeToServicesCmd(m.services))
	}

	if m.login != nil {
		cmds = append(cmds, m.login.Init())
	}
	for _, tab := range m.tabs {
		if tab != nil {
			cmds = append(cmds, tab.Init())
		}
	}

	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg, tea.KeyMsg, spinner.TickMsg:
		if cmd := m.handleTeaMsg(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case StateChangedMsg:
		cmds = append(cmds, m.broadcastToTabs(msg))
		return m, tea.Batch(cmds...)

	default:
		if appCmds := m.handleAppMsg(msg); len(appCmds) > 0 {
			cmds = append(cmds, appCmds...)
		}
	}

	if cmd := m.updateScreen(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleTeaMsg(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleWindowSize(msg)
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case spinner.TickMsg:
		return m.handleSpinnerTick(msg)
	}
	return nil
}

func (m *Model) handleAppMsg(msg tea.Msg) []tea.Cmd {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case TickMsg:
		cmds = append(cmds, m.handleTick())
	case SubscriptionEventMsg:
		cmds = append(cmds, m.handleSubscriptionEvent(msg)...)
	case ServiceEventMsg:
		cmds = append(cmds, m.handleServiceEventMsg(msg)...)
	case LoginMsg:
		cmds = append(cmds, m.handleLogin(msg)...)
	case LoginResultMsg:
		cmds = append(cmds, m.handleLoginResult(msg)...)
	case LogoutMsg:
		if m.services != nil {
			cmds = append(cmds, logoutCmd(m.services))
		}
	case LogoutResultMsg:
		cmds = append(cmds, m.handleLogoutResult(msg)...)
	case RefreshMsg:
		cmds = append(cmds, m.handleRefresh(msg)...)
	case DashboardLoadedMsg:
		cmds = append(cmds, m.handleDashboardLoaded(msg)...)
	case ShowcaseFilterMsg:
		m.showcaseFilter = msg.Filter
		cmds = append(cmds, m.handleRefresh(RefreshMsg{Resource: "showcase"})...)
	case ShowcaseLoadedMsg:
		cmds = append(cmds, m.handleShowcaseLoaded(msg)...)
	case TogglePinMsg:
		if m.services != nil {
			cmds = append(cmds, togglePinCmd(m.services, msg.Project))
		}
	case PinToggledMsg:
		cmds = append(cmds, m.handlePinToggled(msg)...)
	case ExportChartMsg:
		cmds = append(cmds, m.handleExportChart(msg)...)
	case ExportResultMsg:
		cmds = append(cmds, m.handleExportResult(msg)...)
	case AddNotificationMsg:
		cmds = append(cmds, m.handleAddNotification(msg)...)
	case RemoveNotificationMsg:
		m.state.RemoveNotification(msg.ID)
	case ClearNotificationsMsg:
		m.state.ClearAllNotifications()
	case ClearExpiredNotificationsMsg:
		m.state.ClearExpiredNotifications()
	case StartLoadingMsg:
		m.handleStartLoading(msg)
	case StopLoadingMsg:
		m.handleStopLoading(msg)
	case ErrorMsg:
		cmds = append(cmds, notifyErrorCmd(errorText(msg.Context, msg.Error)))
	case TabSwitchMsg:
		m.activeTab = msg.Tab
		m.updateTabSizes()
	case ToggleHelpMsg:
		m.showHelp = !m.showHelp
	}
	return cmds
}

func (m *Model) handleWindowSize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true
	m.updateTabSizes()
}

func (m *Model) handleSpinnerTick(msg spinner.TickMsg) tea.Cmd {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return cmd
}

func (m *Model) handleTick() tea.Cmd {
	m.state.ClearExpiredNotifications()
	return defaultTickCmd()
}

func (m *Model) handleSubscriptionEvent(msg SubscriptionEventMsg) []tea.Cmd {
	var cmds []tea.Cmd
	m.eventChannel = msg.Channel
	cmds = append(cmds, waitForServiceEventCmd(m.eventChannel))

	// The session may have been loaded before we subscribed.
	if m.services != nil {
		cmds = append(cmds, m.handleSessionChanged(m.services.Session().Current())...)
	}
	return cmds
}

func (m *Model) handleServiceEventMsg(msg ServiceEventMsg) []tea.Cmd {
	cmds := m.handleServiceEvent(msg.Event)
	if m.eventChannel != nil {
		cmds = append(cmds, waitForServiceEventCmd(m.eventChannel))
	}
	return cmds
}

func (m *Model) handleServiceEvent(event services.ServiceEvent) []tea.Cmd {
	var cmds []tea.Cmd

	switch e := event.(type) {
	case services.SessionChangedEvent:
		cmds = append(cmds, m.handleSessionChanged(e.Session)...)

	case services.DashboardUpdatedEvent:
		cmds = append(cmds, m.applyDashboard(e.Dashboard)...)

	case services.ShowcaseUpdatedEvent:
		m.state.SetShowcase(e.Projects, e.Pinned)
		cmds = append(cmds, send(StateChangedMsg{Resource: "showcase"}))

	case services.ImagesLoadedEvent:
		m.state.MergeImages(e.Paths)
		cmds = append(cmds, send(StateChangedMsg{Resource: "images"}))

	case services.NewActivitiesEvent:
		if n := len(e.Activities); n == 1 {
			cmds = append(cmds, notifyInfoCmd("New activity: "+format.Sanitize(e.Activities[0].ActivityTitle)))
		} else if n > 1 {
			cmds = append(cmds, notifyInfoCmd(fmt.Sprintf("%d new activities", n)))
		}

	case services.ErrorEvent:
		if errors.Is(e.Error, promaster.ErrUnauthorized) {
			cmds = append(cmds, notifyWarningCmd("Session expired, please sign in again"))
			break
		}
		cmds = append(cmds, notifyErrorCmd(fmt.Sprintf("[%s] %v", e.Service, e.Error)))
	}

	return cmds
}

// handleSessionChanged applies a session from the store. A new token
// triggers a dashboard refresh; a missing one returns to the login screen.
func (m *Model) handleSessionChanged(sess *models.Session) []tea.Cmd {
	var cmds []tea.Cmd

	prev := m.state.GetSession()
	m.state.SetLoading("initial", false)
	if !m.state.AnyLoading() {
		m.state.ClearLoadingNotification()
	}

	if !sess.IsAuthenticated() {
		if prev.IsAuthenticated() {
			m.state.SetSession(nil)
			m.activeTab = TabDashboard
			m.showHelp = false
			cmds = append(cmds, notifyInfoCmd("Signed out"))
		}
		return cmds
	}

	sameToken := prev.IsAuthenticated() && prev.AccessToken == sess.AccessToken
	if prev.IsAuthenticated() && !sameToken {
		m.state.SetSession(nil)
	}
	m.state.SetSession(sess)

	if !sameToken {
		cmds = append(cmds, m.handleRefresh(RefreshMsg{Resource: "all"})...)
		cmds = append(cmds, send(StateChangedMsg{Resource: "session"}))
	}
	return cmds
}

func (m *Model) applyDashboard(d *services.Dashboard) []tea.Cmd {
	if d == nil {
		return nil
	}

	m.state.SetDashboard(d)
	cmds := []tea.Cmd{send(StateChangedMsg{Resource: "dashboard"})}

	if d.Stale {
		cmds = append(cmds, notifyWarningCmd("Offline: showing data from "+format.Clock(d.FetchedAt)))
	}
	if d.Coerced > 0 {
		cmds = append(cmds, notifyWarningCmd(fmt.Sprintf("%d statistic values were not numbers and count as 0", d.Coerced)))
	}
	return cmds
}

func (m *Model) handleLogin(msg LoginMsg) []tea.Cmd {
	if m.services == nil {
		return []tea.Cmd{send(LoginResultMsg{Error: errors.New("services unavailable")})}
	}

	m.state.SetLoading("login", true)
	m.state.SetLoadingNotification("Signing in...")
	return []tea.Cmd{loginCmd(m.services, msg)}
}

func (m *Model) handleLoginResult(msg LoginResultMsg) []tea.Cmd {
	var cmds []tea.Cmd

	m.state.SetLoading("login", false)
	if !m.state.AnyLoading() {
		m.state.ClearLoadingNotification()
	}

	if msg.Error != nil {
		cmds = append(cmds, notifyErrorCmd(errorText("Sign in failed", msg.Error)))
		return cmds
	}

	cmds = append(cmds, m.handleSessionChanged(msg.Session)...)
	if msg.Session != nil {
		name := msg.Session.UserName
		if msg.Session.Profile != nil && msg.Session.Profile.ProfileName != "" {
			name = msg.Session.Profile.ProfileName
		}
		cmds = append(cmds, notifySuccessCmd("Signed in as "+format.Sanitize(name)))
	}
	return cmds
}

func (m *Model) handleLogoutResult(msg LogoutResultMsg) []tea.Cmd {
	if msg.Error != nil {
		return []tea.Cmd{notifyErrorCmd(errorText("Sign out failed", msg.Error))}
	}
	return m.handleSessionChanged(nil)
}

func (m *Model) handleDashboardLoaded(msg DashboardLoadedMsg) []tea.Cmd {
	m.handleStopLoading(StopLoadingMsg{Resource: "dashboard"})

	// Failures are reported through the service error events.
	if msg.Error != nil || msg.Dashboard == nil {
		return nil
	}
	if m.state.GetDashboard() == msg.Dashboard {
		return nil
	}
	m.state.SetDashboard(msg.Dashboard)
	return []tea.Cmd{send(StateChangedMsg{Resource: "dashboard"})}
}

func (m *Model) handleShowcaseLoaded(msg ShowcaseLoadedMsg) []tea.Cmd {
	m.handleStopLoading(StopLoadingMsg{Resource: "showcase"})
	if msg.Error != nil {
		return nil
	}
	m.state.SetShowcase(msg.Projects, nil)
	return []tea.Cmd{send(StateChangedMsg{Resource: "showcase"})}
}

func (m *Model) handlePinToggled(msg PinToggledMsg) []tea.Cmd {
	if msg.Error != nil {
		return []tea.Cmd{notifyErrorCmd(errorText("Pin failed", msg.Error))}
	}

	m.state.SetPinned(msg.ProjectID, msg.Pinned)
	name := format.Sanitize(msg.ProjectName)
	if msg.Pinned {
		return []tea.Cmd{notifySuccessCmd("Pinned " + name)}
	}
	return []tea.Cmd{notifyInfoCmd("Unpinned " + name)}
}

func (m *Model) handleExportChart(msg ExportChartMsg) []tea.Cmd {
	if m.exportDir == "" {
		return []tea.Cmd{notifyErrorCmd("Export directory is not configured")}
	}
	return []tea.Cmd{exportChartCmd(m.exportDir, msg.Item)}
}

func (m *Model) handleExportResult(msg ExportResultMsg) []tea.Cmd {
	switch {
	case errors.Is(msg.Error, export.ErrEmptyChart):
		return []tea.Cmd{notifyWarningCmd("Nothing to export for this chart")}
	case msg.Error != nil:
		return []tea.Cmd{notifyErrorCmd(errorText("Export failed", msg.Error))}
	default:
		return []tea.Cmd{notifySuccessCmd("Saved " + msg.Path)}
	}
}

func (m *Model) handleAddNotification(msg AddNotificationMsg) []tea.Cmd {
	var cmds []tea.Cmd
	id := m.state.AddNotification(msg.Type, msg.Message, msg.Duration)
	if msg.Duration > 0 {
		cmds = append(cmds, clearNotificationCmd(id, msg.Duration))
	}
	return cmds
}

func (m *Model) handleStartLoading(msg StartLoadingMsg) {
	m.state.SetLoading(msg.Resource, true)
	m.state.SetLoadingNotification("Refreshing...")
}

func (m *Model) handleStopLoading(msg StopLoadingMsg) {
	m.state.SetLoading(msg.Resource, false)
	if !m.state.AnyLoading() {
		m.state.ClearLoadingNotification()
	}
}

func (m *Model) handleRefresh(msg RefreshMsg) []tea.Cmd {
	var cmds []tea.Cmd
	if m.services == nil || !m.state.IsAuthenticated() {
		return cmds
	}

	switch msg.Resource {
	case "all", "dashboard":
		if m.state.IsLoading("dashboard") {
			return cmds
		}
		m.handleStartLoading(StartLoadingMsg{Resource: "dashboard"})
		cmds = append(cmds, refreshDashboardCmd(m.services))
	case "showcase":
		m.handleStartLoading(StartLoadingMsg{Resource: "showcase"})
		cmds = append(cmds, refreshShowcaseCmd(m.services, m.showcaseFilter))
	}
	return cmds
}

// updateScreen forwards a message to the visible screen: the login
// screen while signed out, the active tab otherwise.
func (m *Model) updateScreen(msg tea.Msg) tea.Cmd {
	if !m.state.IsAuthenticated() {
		if m.login == nil {
			return nil
		}
		var cmd tea.Cmd
		m.login, cmd = m.login.Update(msg)
		return cmd
	}
	return m.updateActiveTab(msg)
}

func (m *Model) updateActiveTab(msg tea.Msg) tea.Cmd {
	if int(m.activeTab) < len(m.tabs) && m.tabs[m.activeTab] != nil {
		var cmd tea.Cmd
		m.tabs[m.activeTab], cmd = m.tabs[m.activeTab].Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) broadcastToTabs(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for i, tab := range m.tabs {
		if tab == nil {
			continue
		}
		var cmd tea.Cmd
		m.tabs[i], cmd = tab.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m *Model) updateTabSizes() {
	contentHeight := m.height - 5
	contentHeight = max(0, contentHeight)

	for _, tab := range m.tabs {
		if tab != nil {
			tab.SetSize(m.width, contentHeight)
		}
	}
	if m.login != nil {
		m.login.SetSize(m.width, m.height)
	}
}

// capturingInput reports whether keys belong to a form or dialog.
func (m *Model) capturingInput() bool {
	return !m.state.IsAuthenticated() || m.state.GetDialog().IsOpen()
}

// handleKeyMsg handles keyboard input.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	if m.capturingInput() {
		if key.Matches(msg, m.keymap.ForceQuit) {
			return tea.Quit
		}
		return nil
	}

	// Global keybindings (work regardless of tab)
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.showHelp = !m.showHelp
		return nil

	case key.Matches(msg, m.keymap.Tab1):
		m.activeTab = TabDashboard
		m.updateTabSizes()
		return nil

	case key.Matches(msg, m.keymap.Tab2):
		m.activeTab = TabShowcase
		m.updateTabSizes()
		return nil

	case key.Matches(msg, m.keymap.Tab3):
		m.activeTab = TabInfo
		m.updateTabSizes()
		return nil

	case key.Matches(msg, m.keymap.NextTab):
		if !m.showHelp {
			m.activeTab = TabID((int(m.activeTab) + 1) % len(m.tabs))
			m.updateTabSizes()
		}
		return nil

	case key.Matches(msg, m.keymap.PrevTab):
		if !m.showHelp {
			m.activeTab = TabID((int(m.activeTab) - 1 + len(m.tabs)) % len(m.tabs))
			m.updateTabSizes()
		}
		return nil

	case key.Matches(msg, m.keymap.Refresh):
		return tea.Batch(m.handleRefresh(RefreshMsg{Resource: "all"})...)

	case key.Matches(msg, m.keymap.Logout):
		return send(LogoutMsg{})

	case key.Matches(msg, m.keymap.Escape):
		if m.showHelp {
			m.showHelp = false
			return nil
		}
	}

	// Let the tab handle other keys
	return nil
}

// View renders the application UI.
func (m *Model) View() string {
	if !m.ready {
		return m.styles.Content.Render(fmt.Sprintf("%s Loading...", m.spinner.View()))
	}

	var mainView string
	switch {
	case m.state.IsAuthenticated():
		mainView = m.renderTabs()
	case m.state.IsInitialLoading() || m.login == nil:
		mainView = m.styles.Content.Render(fmt.Sprintf("%s Loading...", m.spinner.View()))
	default:
		mainView = m.login.View()
	}

	if m.showHelp {
		mainView = m.overlayCentered(mainView, m.renderHelp())
	}

	notifications := m.renderNotifications()

	if len(notifications) > 0 {
		return m.overlayToasts(mainView, notifications)
	}

	return mainView
}

func (m *Model) renderTabs() string {
	var b strings.Builder

	if m.width > 0 {
		b.WriteString(m.renderNavbar())
		b.WriteString("\n")
	}

	var active Tab
	if int(m.activeTab) < len(m.tabs) {
		active = m.tabs[m.activeTab]
	}
	if active == nil {
		b.WriteString(m.renderPlaceholder())
		return b.String()
	}

	b.WriteString(active.View())
	view := b.String()

	if r, ok := active.(DialogRenderer); ok && m.state.GetDialog().IsOpen() {
		if dialog := r.DialogView(); dialog != "" {
			view = m.overlayCentered(view, dialog)
		}
	}
	return view
}

func (m *Model) overlayCentered(mainView string, overlay string) string {
	mainLines := strings.Split(mainView, "\n")
	overlayLines := strings.Split(overlay, "\n")

	overlayHeight := len(overlayLines)
	overlayWidth := lipgloss.Width(overlay)

	// Calculate center position
	y := (m.height - overlayHeight) / 2
	x := (m.width - overlayWidth) / 2

	if y < 0 {
		y = 0
	}
	if x < 0 {
		x = 0
	}

	for len(mainLines) < y+overlayHeight && len(mainLines) < m.height {
		mainLines = append(mainLines, "")
	}

	for i, overlayLine := range overlayLines {
		mainY := y + i
		if mainY >= len(mainLines) {
			break
		}

		mainLine := mainLines[mainY]

		// Truncate main line to the start of the overlay
		left := ansi.Truncate(mainLine, x, "")

		// Skip 'x + overlayWidth' visual cells for the right part
		right := ansi.TruncateLeft(mainLine, x+overlayWidth, "")

		// If the line was shorter than the overlay start, pad it
		if lipgloss.Width(left) < x {
			left += strings.Repeat(" ", x-lipgloss.Width(left))
		}

		mainLines[mainY] = left + overlayLine + right
	}

	return strings.Join(mainLines, "\n")
}

func (m *Model) renderNavbar() string {
	var tabs []string

	for i, name := range m.tabNames {
		if TabID(i) == m.activeTab {
			tabs = append(tabs, m.styles.ActiveTab.Render(fmt.Sprintf("[%d] %s", i+1, name)))
		} else {
			tabs = append(tabs, m.styles.InactiveTab.Render(fmt.Sprintf(" %d  %s", i+1, name)))
		}
	}

	tabBar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	if user := m.userLabel(); user != "" {
		gap := m.width - lipgloss.Width(tabBar) - lipgloss.Width(user) - 4
		if gap > 0 {
			tabBar += strings.Repeat(" ", gap) + user
		}
	}

	return m.styles.TabBar.Width(m.width).Render(tabBar)
}

func (m *Model) userLabel() string {
	sess := m.state.GetSession()
	if sess == nil {
		return ""
	}
	name := sess.UserName
	if sess.Profile != nil && sess.Profile.ProfileName != "" {
		name = sess.Profile.ProfileName
	}
	return m.styles.Subtle.Render(format.Sanitize(name))
}

func (m *Model) renderNotifications() []string {
	notifications := m.state.GetNotifications()
	if len(notifications) == 0 {
		return nil
	}

	var toasts []string
	for _, n := range notifications {
		var style lipgloss.Style
		var prefix string

		switch n.Type {
		case NotificationSuccess:
			style = m.styles.NotificationSuccess
			prefix = "[OK]"
		case NotificationError:
			style = m.styles.NotificationError
			prefix = "[ERR]"
		case NotificationWarning:
			style = m.styles.NotificationWarning
			prefix = "[WARN]"
		case NotificationInfo:
			style = m.styles.NotificationInfo
			prefix = "[INFO]"
		case NotificationLoading:
			style = m.styles.NotificationInfo
			prefix = m.spinner.View()
		}

		content := style.Render(fmt.Sprintf("%s %s", prefix, n.Message))
		toast := m.styles.Toast.Render(content)
		toasts = append(toasts, toast)
	}

	return toasts
}

func (m *Model) overlayToasts(mainView string, toasts []string) string {
	if len(toasts) == 0 {
		return mainView
	}

	toastStack := lipgloss.JoinVertical(lipgloss.Right, toasts...)
	toastLines := strings.Split(toastStack, "\n")
	mainLines := strings.Split(mainView, "\n")

	toastWidth := lipgloss.Width(toastStack)
	startX := max(m.width-toastWidth-2, 0)

	startY := 2

	for i, toastLine := range toastLines {
		lineIdx := startY + i
		if lineIdx >= len(mainLines) {
			break
		}

		mainLine := mainLines[lineIdx]
		mainLineWidth := lipgloss.Width(mainLine)

		if mainLineWidth < startX {
			padding := strings.Repeat(" ", startX-mainLineWidth)
			mainLines[lineIdx] = mainLine + padding + toastLine
		} else {
			truncated := ansi.Truncate(mainLine, startX, "")
			mainLines[lineIdx] = truncated + toastLine
		}
	}

	return strings.Join(mainLines, "\n")
}

func (m *Model) renderHelp() string {
	var lines []string

	lines = append(lines, m.styles.Title.Render("Keyboard Shortcuts"))
	lines = append(lines, "")

	lines = append(lines, m.styles.Highlight.Render("Navigation"))
	lines = append(lines, "  1-3        Switch tabs")
	lines = append(lines, "  Tab        Next tab")
	lines = append(lines, "  Shift+Tab  Previous tab")
	lines = append(lines, "")

	lines = append(lines, m.styles.Highlight.Render("Actions"))
	lines = append(lines, "  r          Refresh data")
	lines = append(lines, "  X          Sign out")
	lines = append(lines, "  ?          Toggle help")
	lines = append(lines, "  q/Ctrl+C   Quit")
	lines = append(lines, "")

	if int(m.activeTab) < len(m.tabs) && m.tabs[m.activeTab] != nil {
		tabHelp := m.tabs[m.activeTab].ShortHelp()
		if len(tabHelp) > 0 {
			lines = append(lines, m.styles.Highlight.Render(fmt.Sprintf("%s Tab", m.tabNames[m.activeTab])))
			for _, binding := range tabHelp {
				lines = append(lines, fmt.Sprintf("  %-10s %s", binding.Help().Key, binding.Help().Desc))
			}
		}
	}

	lines = append(lines, "")
	lines = append(lines, m.styles.Subtle.Render("Press ? or Esc to close"))

	return styles.HelpPanelStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderPlaceholder() string {
	content := fmt.Sprintf(
		"Tab %d: %s\n\n%s",
		m.activeTab+1,
		m.tabNames[m.activeTab],
		m.styles.Subtle.Render("This tab is not yet implemented."),
	)
	return m.styles.Content.Render(content)
}

func errorText(context string, err error) string {
	if err == nil {
		return context
	}
	if context == "" {
		return err.Error()
	}
	return fmt.Sprintf("%s: %v", context, err)
}
