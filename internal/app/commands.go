package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/promaster-tui/internal/export"
	"github.com/j-veylop/promaster-tui/internal/models"
	"github.com/j-veylop/promaster-tui/internal/services"
)

const (
	// DefaultTickInterval is the default interval between ticks.
	DefaultTickInterval = 2 * time.Second

	// DefaultNotificationDuration is the default duration for notifications.
	DefaultNotificationDuration = 5 * time.Second

	// QuickNotificationDuration is for brief notifications.
	QuickNotificationDuration = 3 * time.Second

	// LongNotificationDuration is for important notifications.
	LongNotificationDuration = 10 * time.Second

	// requestTimeout bounds commands that talk to the backend.
	requestTimeout = 45 * time.Second
)

// tickCmd returns a command that sends a TickMsg after the specified interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// defaultTickCmd returns a command that sends a TickMsg after the default interval.
func defaultTickCmd() tea.Cmd {
	return tickCmd(DefaultTickInterval)
}

// loginCmd signs in with the manager.
func loginCmd(mgr *services.Manager, msg LoginMsg) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		sess, err := mgr.Login(ctx, msg.UserName, msg.Password, msg.LanguageID)
		return LoginResultMsg{Session: sess, Error: err}
	}
}

// logoutCmd signs out with the manager.
func logoutCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		return LogoutResultMsg{Error: mgr.Logout()}
	}
}

// refreshDashboardCmd fetches the dashboard (and with it the showcase).
func refreshDashboardCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		dash, err := mgr.RefreshDashboard(ctx)
		return DashboardLoadedMsg{Dashboard: dash, Error: err}
	}
}

// refreshShowcaseCmd fetches the showcase with a filter.
func refreshShowcaseCmd(mgr *services.Manager, filter models.ShowcaseFilter) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		projects, err := mgr.RefreshShowcase(ctx, filter)
		return ShowcaseLoadedMsg{Projects: projects, Error: err}
	}
}

// togglePinCmd pins or unpins a showcase project.
func togglePinCmd(mgr *services.Manager, project models.ShowcaseProject) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		pinned, err := mgr.TogglePin(ctx, project)
		return PinToggledMsg{
			ProjectID:   project.ProjectID,
			ProjectName: project.ProjectName,
			Pinned:      pinned,
			Error:       err,
		}
	}
}

// exportChartCmd writes a chart series to a PNG file under dir.
func exportChartCmd(dir string, item models.ChartDataItem) tea.Cmd {
	return func() tea.Msg {
		path, err := export.WriteFile(dir, item, time.Now())
		return ExportResultMsg{Path: path, Error: err}
	}
}

// subscribeToServicesCmd returns a command that subscribes to service events.
func subscribeToServicesCmd(mgr *services.Manager) tea.Cmd {
	ch, _ := mgr.Subscribe()
	return func() tea.Msg {
		return SubscriptionEventMsg{Channel: ch}
	}
}

// waitForServiceEventCmd returns a command that waits for the next service event.
func waitForServiceEventCmd(ch <-chan services.ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return ServiceEventMsg{Event: event}
	}
}

// clearNotificationCmd returns a command that removes a notification after a delay.
func clearNotificationCmd(id string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return RemoveNotificationMsg{ID: id}
	})
}

// notifySuccessCmd returns a command that adds a success notification.
func notifySuccessCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationSuccess,
			Message:  message,
			Duration: DefaultNotificationDuration,
		}
	}
}

// notifyErrorCmd returns a command that adds an error notification.
func notifyErrorCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationError,
			Message:  message,
			Duration: LongNotificationDuration,
		}
	}
}

// notifyWarningCmd returns a command that adds a warning notification.
func notifyWarningCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationWarning,
			Message:  message,
			Duration: DefaultNotificationDuration,
		}
	}
}

// notifyInfoCmd returns a command that adds an info notification.
func notifyInfoCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationInfo,
			Message:  message,
			Duration: QuickNotificationDuration,
		}
	}
}

// send wraps a message in a command.
func send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// Commands provides a public interface to the command functions.
type Commands struct {
	manager *services.Manager
}

// NewCommands creates a new Commands instance.
func NewCommands(mgr *services.Manager) *Commands {
	return &Commands{manager: mgr}
}

// Tick returns a tick command with the specified interval.
func (c *Commands) Tick(interval time.Duration) tea.Cmd {
	return tickCmd(interval)
}

// DefaultTick returns a tick command with the default interval.
func (c *Commands) DefaultTick() tea.Cmd {
	return defaultTickCmd()
}

// Login returns a command that requests signing in.
func (c *Commands) Login(userName, password string, languageID int) tea.Cmd {
	return send(LoginMsg{UserName: userName, Password: password, LanguageID: languageID})
}

// Refresh returns a command that requests a refresh of a resource.
func (c *Commands) Refresh(resource string) tea.Cmd {
	return send(RefreshMsg{Resource: resource})
}

// FilterShowcase returns a command that requests a filtered showcase.
func (c *Commands) FilterShowcase(filter models.ShowcaseFilter) tea.Cmd {
	return send(ShowcaseFilterMsg{Filter: filter})
}

// TogglePin returns a command that requests toggling a project pin.
func (c *Commands) TogglePin(project models.ShowcaseProject) tea.Cmd {
	return send(TogglePinMsg{Project: project})
}

// ExportChart returns a command that requests a PNG export of a series.
func (c *Commands) ExportChart(item models.ChartDataItem) tea.Cmd {
	return send(ExportChartMsg{Item: item})
}

// NotifySuccess returns a command that adds a success notification.
func (c *Commands) NotifySuccess(message string) tea.Cmd {
	return notifySuccessCmd(message)
}

// NotifyError returns a command that adds an error notification.
func (c *Commands) NotifyError(message string) tea.Cmd {
	return notifyErrorCmd(message)
}

// NotifyWarning returns a command that adds a warning notification.
func (c *Commands) NotifyWarning(message string) tea.Cmd {
	return notifyWarningCmd(message)
}

// NotifyInfo returns a command that adds an info notification.
func (c *Commands) NotifyInfo(message string) tea.Cmd {
	return notifyInfoCmd(message)
}

// ClearNotification returns a command that removes a notification after a delay.
func (c *Commands) ClearNotification(id string, delay time.Duration) tea.Cmd {
	return clearNotificationCmd(id, delay)
}

// Quit returns a command that quits the application.
func (c *Commands) Quit() tea.Cmd {
	return tea.Quit
}

// Batch combines multiple commands into one.
func (c *Commands) Batch(cmds ...tea.Cmd) tea.Cmd {
	return tea.Batch(cmds...)
}
