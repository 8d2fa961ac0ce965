package app

import (
	"time"

	"github.com/j-veylop/promaster-tui/internal/models"
	"github.com/j-veylop/promaster-tui/internal/services"
)

// TickMsg is sent periodically to trigger state refresh.
type TickMsg struct {
	Time time.Time
}

// StartLoadingMsg signals that a resource is starting to load.
type StartLoadingMsg struct {
	Resource string
}

// StopLoadingMsg signals that a resource has finished loading.
type StopLoadingMsg struct {
	Resource string
}

// LoginMsg requests signing in.
type LoginMsg struct {
	UserName   string
	Password   string
	LanguageID int
}

// LoginResultMsg contains the result of a sign-in attempt.
type LoginResultMsg struct {
	Session *models.Session
	Error   error
}

// LogoutMsg requests signing out.
type LogoutMsg struct{}

// LogoutResultMsg contains the result of a sign-out.
type LogoutResultMsg struct {
	Error error
}

// RefreshMsg requests a refresh of data.
type RefreshMsg struct {
	Resource string // "all", "dashboard", "showcase"
}

// DashboardLoadedMsg contains the result of a dashboard refresh.
type DashboardLoadedMsg struct {
	Dashboard *services.Dashboard
	Error     error
}

// ShowcaseFilterMsg requests reloading the showcase with a filter.
type ShowcaseFilterMsg struct {
	Filter models.ShowcaseFilter
}

// ShowcaseLoadedMsg contains the result of a showcase refresh.
type ShowcaseLoadedMsg struct {
	Error    error
	Projects []models.ShowcaseProject
}

// TogglePinMsg requests pinning or unpinning a showcase project.
type TogglePinMsg struct {
	Project models.ShowcaseProject
}

// PinToggledMsg contains the new pin state of a project.
type PinToggledMsg struct {
	Error       error
	ProjectName string
	ProjectID   int
	Pinned      bool
}

// ExportChartMsg requests writing a chart series to a PNG file.
type ExportChartMsg struct {
	Item models.ChartDataItem
}

// ExportResultMsg contains the result of an export operation.
type ExportResultMsg struct {
	Error error
	Path  string
}

// StateChangedMsg tells tabs that shared state was replaced by new data.
type StateChangedMsg struct {
	Resource string
}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Type     NotificationType
	Message  string
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ClearNotificationsMsg requests clearing all notifications.
type ClearNotificationsMsg struct{}

// ClearExpiredNotificationsMsg triggers clearing of expired notifications.
type ClearExpiredNotificationsMsg struct{}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// SubscriptionEventMsg is the callback wrapper for service subscription.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}

// ErrorMsg represents a general error.
type ErrorMsg struct {
	Error   error
	Context string
}

// TabSwitchMsg requests switching to a specific tab.
type TabSwitchMsg struct {
	Tab TabID
}

// ToggleHelpMsg toggles the help display.
type ToggleHelpMsg struct{}
