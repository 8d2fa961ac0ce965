// Package app provides the main Bubble Tea application model and state management.
package app

import (
	"slices"
	"sync"
	"time"

	"github.com/j-veylop/promaster-tui/internal/models"
	"github.com/j-veylop/promaster-tui/internal/services"
	"github.com/j-veylop/promaster-tui/internal/services/images"
	"github.com/j-veylop/promaster-tui/internal/stats"
)

// NotificationType defines the type of notification.
type NotificationType int

const (
	// NotificationSuccess represents a success notification.
	NotificationSuccess NotificationType = iota
	// NotificationError represents an error notification.
	NotificationError
	// NotificationWarning represents a warning notification.
	NotificationWarning
	// NotificationInfo represents an informational notification.
	NotificationInfo
	// NotificationLoading represents a loading notification with spinner.
	NotificationLoading
)

const (
	// LoadingNotificationID is the fixed ID for loading notifications.
	LoadingNotificationID = "__loading__"
)

// String returns the string representation of a NotificationType.
func (n NotificationType) String() string {
	switch n {
	case NotificationSuccess:
		return "success"
	case NotificationError:
		return "error"
	case NotificationWarning:
		return "warning"
	case NotificationInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Notification represents a user-facing notification message.
type Notification struct {
	ID        string
	Type      NotificationType
	Message   string
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired returns true if the notification has expired.
func (n *Notification) IsExpired() bool {
	if n.Duration <= 0 {
		return false
	}
	return time.Since(n.CreatedAt) > n.Duration
}

// LoadingState tracks loading states for different resources.
type LoadingState struct {
	Initial   bool
	Login     bool
	Dashboard bool
	Showcase  bool
}

// Selection holds the user's filter and chart choices. Axis-indexed arrays
// follow models.Axes.
type Selection struct {
	ChartNames       [3]string
	Groups           [3]string
	Identities       [3][]string
	TagID            int
	ActivityCategory int
}

// State is the application state shared between the root model and tabs.
type State struct {
	mu sync.RWMutex

	Session   *models.Session
	Dashboard *services.Dashboard
	Showcase  []models.ShowcaseProject
	Pinned    map[int]bool
	Images    map[string]string

	Selection Selection
	Axis      models.Axis
	Dialog    Dialog

	Loading LoadingState

	LastUpdated time.Time

	notifications   []Notification
	notificationSeq int
}

// NewState creates an empty signed-out state.
func NewState() *State {
	return &State{
		Showcase:      make([]models.ShowcaseProject, 0),
		Pinned:        make(map[int]bool),
		Images:        make(map[string]string),
		notifications: make([]Notification, 0),
		Loading: LoadingState{
			Initial: true,
		},
	}
}

// SetLoading sets the loading state for a specific resource.
func (s *State) SetLoading(resource string, loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch resource {
	case "initial":
		s.Loading.Initial = loading
	case "login":
		s.Loading.Login = loading
	case "dashboard":
		s.Loading.Dashboard = loading
	case "showcase":
		s.Loading.Showcase = loading
	}
}

// AnyLoading returns true if any resource is currently loading.
func (s *State) AnyLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.Loading.Initial ||
		s.Loading.Login ||
		s.Loading.Dashboard ||
		s.Loading.Showcase
}

// IsInitialLoading returns true if initial data is still loading.
func (s *State) IsInitialLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Loading.Initial
}

// IsLoading reports whether one resource is loading.
func (s *State) IsLoading(resource string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch resource {
	case "initial":
		return s.Loading.Initial
	case "login":
		return s.Loading.Login
	case "dashboard":
		return s.Loading.Dashboard
	case "showcase":
		return s.Loading.Showcase
	default:
		return false
	}
}

// GetLoadingResources returns a list of currently loading resources.
func (s *State) GetLoadingResources() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var resources []string
	if s.Loading.Initial {
		resources = append(resources, "initial")
	}
	if s.Loading.Login {
		resources = append(resources, "login")
	}
	if s.Loading.Dashboard {
		resources = append(resources, "dashboard")
	}
	if s.Loading.Showcase {
		resources = append(resources, "showcase")
	}
	return resources
}

// SetSession stores the signed-in session. A nil session signs out and
// drops everything fetched for the previous user.
func (s *State) SetSession(sess *models.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess == nil {
		s.Session = nil
		s.Dashboard = nil
		s.Showcase = make([]models.ShowcaseProject, 0)
		s.Pinned = make(map[int]bool)
		s.Images = make(map[string]string)
		s.Selection = Selection{}
		s.Axis = models.AxisProperty
		s.Dialog = NoDialog
		s.LastUpdated = time.Time{}
		return
	}

	clone := sess.Clone()
	s.Session = &clone
}

// GetSession returns the signed-in session, or nil.
func (s *State) GetSession() *models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Session
}

// IsAuthenticated reports whether a user is signed in.
func (s *State) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Session.IsAuthenticated()
}

// SetDashboard stores a processed dashboard and keeps the selection valid
// for its catalogs.
func (s *State) SetDashboard(d *services.Dashboard) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Dashboard = d
	if d == nil {
		return
	}
	s.LastUpdated = d.FetchedAt

	if d.Data != nil && s.Session != nil {
		profile := d.Data.UserProfile
		s.Session.Profile = &profile
	}

	for _, axis := range models.Axes {
		groups, types := d.Catalog.Axis(axis)

		name := s.Selection.ChartNames[axis]
		if !slices.ContainsFunc(types, func(t models.ChartType) bool { return t.Description == name }) {
			s.Selection.ChartNames[axis] = stats.DefaultChartName(types)
			s.Selection.Groups[axis] = ""
			s.Selection.Identities[axis] = nil
			continue
		}

		known := stats.Identities(d.Catalog.Records(axis), name)
		s.Selection.Identities[axis] = slices.DeleteFunc(slices.Clone(s.Selection.Identities[axis]), func(id string) bool {
			return !slices.Contains(known, id)
		})
		if len(s.Selection.Identities[axis]) == 0 {
			s.Selection.Identities[axis] = nil
		}
		if !slices.ContainsFunc(groups, func(g models.ListGroup) bool { return g.GroupName == s.Selection.Groups[axis] }) {
			s.Selection.Groups[axis] = ""
		}
	}
}

// GetDashboard returns the current dashboard, or nil.
func (s *State) GetDashboard() *services.Dashboard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Dashboard
}

// Charts returns the chart series of an axis for the current selection.
func (s *State) Charts(axis models.Axis) []models.ChartDataItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.Dashboard == nil {
		return make([]models.ChartDataItem, 0)
	}
	return stats.ProcessCharts(
		s.Dashboard.Catalog.Records(axis),
		s.Selection.ChartNames[axis],
		s.Selection.Identities[axis],
	)
}

// GetSelection returns a copy of the selection.
func (s *State) GetSelection() Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sel := s.Selection
	for i := range sel.Identities {
		sel.Identities[i] = slices.Clone(sel.Identities[i])
	}
	return sel
}

// SetTagFilter selects the project tag of the projects strip (0 = all).
func (s *State) SetTagFilter(tagID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Selection.TagID = tagID
}

// SetActivityFilter selects the activity category of the feed (0 = all).
func (s *State) SetActivityFilter(category int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Selection.ActivityCategory = category
}

// SetChartName selects the chart of an axis and clears its identity filter.
func (s *State) SetChartName(axis models.Axis, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Selection.ChartNames[axis] == name {
		return
	}
	s.Selection.ChartNames[axis] = name
	s.Selection.Groups[axis] = ""
	s.Selection.Identities[axis] = nil
}

// SetIdentities restricts an axis to the given identities of a group. An
// empty list removes the restriction.
func (s *State) SetIdentities(axis models.Axis, group string, identities []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(identities) == 0 {
		s.Selection.Groups[axis] = ""
		s.Selection.Identities[axis] = nil
		return
	}
	s.Selection.Groups[axis] = group
	s.Selection.Identities[axis] = slices.Clone(identities)
}

// GetAxis returns the axis shown on the dashboard.
func (s *State) GetAxis() models.Axis {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Axis
}

// SetAxis selects the axis shown on the dashboard.
func (s *State) SetAxis(axis models.Axis) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Axis = axis
}

// CycleAxis moves to the next (or previous) axis.
func (s *State) CycleAxis(delta int) models.Axis {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(models.Axes)
	s.Axis = models.Axis(((int(s.Axis)+delta)%n + n) % n)
	return s.Axis
}

// OpenDialog replaces the active dialog.
func (s *State) OpenDialog(d Dialog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Dialog = d
}

// CloseDialog closes the active dialog.
func (s *State) CloseDialog() {
	s.OpenDialog(NoDialog)
}

// GetDialog returns the active dialog.
func (s *State) GetDialog() Dialog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Dialog
}

// SetShowcase stores the showcase list and the pinned project ids.
func (s *State) SetShowcase(projects []models.ShowcaseProject, pinned map[int]bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Showcase = projects
	if pinned != nil {
		s.Pinned = pinned
	}
}

// GetShowcase returns the showcase list.
func (s *State) GetShowcase() []models.ShowcaseProject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.Showcase)
}

// ShowcaseSections groups the showcase with pinned projects first.
func (s *State) ShowcaseSections() []models.ShowcaseSection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.GroupShowcase(s.Showcase, s.Pinned)
}

// SetPinned records the pin state of a project.
func (s *State) SetPinned(projectID int, pinned bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if pinned {
		s.Pinned[projectID] = true
	} else {
		delete(s.Pinned, projectID)
	}
}

// IsPinned reports whether a project is pinned.
func (s *State) IsPinned(projectID int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Pinned[projectID]
}

// MergeImages adds extracted photo paths.
func (s *State) MergeImages(paths map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, v := range paths {
		s.Images[k] = v
	}
}

// ImagePath returns the cached file of a photo reference.
func (s *State) ImagePath(photo string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if photo == "" {
		return "", false
	}
	return images.Lookup(s.Images, photo)
}

// ImageCount returns how many photos are cached.
func (s *State) ImageCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.Images)
}

// AddNotification adds a new notification and returns its ID.
func (s *State) AddNotification(notifType NotificationType, message string, duration time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notificationSeq++
	id := time.Now().Format("20060102150405") + "-" + string(rune('A'+s.notificationSeq%26))

	notification := Notification{
		ID:        id,
		Type:      notifType,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  duration,
	}

	s.notifications = append(s.notifications, notification)

	// Keep only the last 10 notifications
	if len(s.notifications) > 10 {
		s.notifications = s.notifications[len(s.notifications)-10:]
	}

	return id
}

// RemoveNotification removes a notification by ID.
func (s *State) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// ClearExpiredNotifications removes all expired notifications.
func (s *State) ClearExpiredNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	s.notifications = active
}

// GetNotifications returns a copy of all active notifications.
func (s *State) GetNotifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Clear expired inline when reading
	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}

	return active
}

// ClearAllNotifications removes all notifications.
func (s *State) ClearAllNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = make([]Notification, 0)
}

// SetLoadingNotification sets a loading notification message.
func (s *State) SetLoadingNotification(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications[i].Message = message
			return
		}
	}

	s.notifications = append(s.notifications, Notification{
		ID:        LoadingNotificationID,
		Type:      NotificationLoading,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  0,
	})
}

// ClearLoadingNotification removes the loading notification.
func (s *State) ClearLoadingNotification() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// GetLastUpdated returns the last time the state was updated.
func (s *State) GetLastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.LastUpdated
}

// TimeSinceUpdate returns the duration since the last update.
func (s *State) TimeSinceUpdate() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.LastUpdated.IsZero() {
		return 0
	}
	return time.Since(s.LastUpdated)
}
