package app

import (
	"reflect"
	"testing"
	"time"

	"github.com/j-veylop/promaster-tui/internal/models"
	"github.com/j-veylop/promaster-tui/internal/services"
	"github.com/j-veylop/promaster-tui/internal/stats"
)

func record(chart, group, identity, label string, value float64) models.StatisticRecord {
	return models.StatisticRecord{
		ChartType:         "bar",
		ChartName:         chart,
		Group:             group,
		ChartIdentityName: identity,
		ItemColName:       label,
		YAxisName:         "units",
		YAxisColName:      models.Number{Value: value},
	}
}

func testDashboard() *services.Dashboard {
	data := &models.DashboardData{
		UserProfile: models.UserProfile{ProfileName: "Jane Tan"},
		Statistics: []models.Statistic{{
			StatisticName: "By Property",
			Records: []models.StatisticRecord{
				record("Units", "North", "Tower A", "Available", 8),
				record("Units", "North", "Tower A", "Booked", 2),
				record("Units", "South", "Tower B", "Available", 5),
				record("Sales", "North", "Tower A", "Q1", 3),
			},
		}},
	}
	return &services.Dashboard{
		FetchedAt: time.Now(),
		Data:      data,
		Catalog:   stats.ProcessStatistics(data.Statistics),
	}
}

func TestNewState(t *testing.T) {
	s := NewState()
	if s == nil {
		t.Fatal("NewState returned nil")
	}
	if len(s.Showcase) != 0 {
		t.Error("Showcase should be empty")
	}
	if s.Loading.Initial != true {
		t.Error("Initial loading should be true")
	}
	if s.IsAuthenticated() {
		t.Error("new state should be signed out")
	}
}

func TestState_SetLoading(t *testing.T) {
	s := NewState()

	s.SetLoading("dashboard", true)
	if !s.Loading.Dashboard || !s.IsLoading("dashboard") {
		t.Error("Dashboard loading should be true")
	}
	if !s.AnyLoading() {
		t.Error("AnyLoading should be true")
	}

	s.SetLoading("dashboard", false)
	// Initial is still true
	if !s.AnyLoading() {
		t.Error("AnyLoading should be true (Initial is true)")
	}

	s.SetLoading("initial", false)
	if s.AnyLoading() {
		t.Error("AnyLoading should be false")
	}

	resources := s.GetLoadingResources()
	if len(resources) != 0 {
		t.Errorf("GetLoadingResources should be empty, got %v", resources)
	}

	s.SetLoading("showcase", true)
	resources = s.GetLoadingResources()
	if len(resources) != 1 || resources[0] != "showcase" {
		t.Errorf("GetLoadingResources should contain showcase, got %v", resources)
	}
}

func TestState_Session(t *testing.T) {
	s := NewState()

	sess := &models.Session{AccessToken: "tok", UserName: "agent"}
	s.SetSession(sess)
	if !s.IsAuthenticated() {
		t.Fatal("should be signed in")
	}
	sess.AccessToken = ""
	if !s.IsAuthenticated() {
		t.Error("state should keep its own copy of the session")
	}

	s.SetDashboard(testDashboard())
	s.SetShowcase([]models.ShowcaseProject{{ProjectID: 1}}, map[int]bool{1: true})
	s.MergeImages(map[string]string{"a.jpg": "/tmp/a.jpg"})
	s.SetTagFilter(2)
	s.OpenDialog(TagFilterDialog())
	s.SetAxis(models.AxisPeriod)

	s.SetSession(nil)
	if s.IsAuthenticated() {
		t.Error("nil session should sign out")
	}
	if s.GetDashboard() != nil || len(s.GetShowcase()) != 0 || s.ImageCount() != 0 || s.IsPinned(1) {
		t.Error("sign-out should drop fetched data")
	}
	if s.GetSelection().TagID != 0 || s.GetDialog().IsOpen() || s.GetAxis() != models.AxisProperty {
		t.Error("sign-out should reset the selection")
	}
	if s.TimeSinceUpdate() != 0 {
		t.Error("TimeSinceUpdate should be 0 without data")
	}
}

func TestState_SetDashboardDefaults(t *testing.T) {
	s := NewState()
	s.SetSession(&models.Session{AccessToken: "tok"})

	s.SetDashboard(testDashboard())

	sel := s.GetSelection()
	if sel.ChartNames[models.AxisProperty] != "Units" {
		t.Errorf("default chart = %q, want Units", sel.ChartNames[models.AxisProperty])
	}
	if sel.ChartNames[models.AxisPeriod] != "" {
		t.Errorf("empty axis chart = %q, want empty", sel.ChartNames[models.AxisPeriod])
	}
	if p := s.GetSession().Profile; p == nil || p.ProfileName != "Jane Tan" {
		t.Error("profile should follow the dashboard")
	}
	if s.GetLastUpdated().IsZero() {
		t.Error("LastUpdated should be set")
	}

	charts := s.Charts(models.AxisProperty)
	if len(charts) != 2 {
		t.Fatalf("Charts len = %d, want 2", len(charts))
	}
	if charts[0].ChartIdentityName != "Tower A" || charts[0].Total() != 10 {
		t.Errorf("first series = %+v", charts[0])
	}
	if got := s.Charts(models.AxisPeriod); len(got) != 0 {
		t.Errorf("empty axis should have no charts, got %d", len(got))
	}
}

func TestState_SelectionSurvivesRefresh(t *testing.T) {
	s := NewState()
	s.SetDashboard(testDashboard())

	s.SetChartName(models.AxisProperty, "Sales")
	if got := s.Charts(models.AxisProperty); len(got) != 1 || got[0].Data[0].Label != "Q1" {
		t.Errorf("Sales charts = %+v", got)
	}

	s.SetChartName(models.AxisProperty, "Units")
	s.SetIdentities(models.AxisProperty, "South", []string{"Tower B", "Gone"})

	s.SetDashboard(testDashboard())
	sel := s.GetSelection()
	if sel.ChartNames[models.AxisProperty] != "Units" {
		t.Error("known chart should be kept")
	}
	if !reflect.DeepEqual(sel.Identities[models.AxisProperty], []string{"Tower B"}) {
		t.Errorf("unknown identities should be pruned, got %v", sel.Identities[models.AxisProperty])
	}
	if sel.Groups[models.AxisProperty] != "South" {
		t.Errorf("group = %q, want South", sel.Groups[models.AxisProperty])
	}

	charts := s.Charts(models.AxisProperty)
	if len(charts) != 1 || charts[0].ChartIdentityName != "Tower B" {
		t.Errorf("filtered charts = %+v", charts)
	}

	s.SetIdentities(models.AxisProperty, "South", nil)
	if len(s.Charts(models.AxisProperty)) != 2 {
		t.Error("empty identity list should remove the filter")
	}

	// A chart name the new payload does not know falls back to the default
	s.SetChartName(models.AxisProperty, "Removed")
	s.SetDashboard(testDashboard())
	if s.GetSelection().ChartNames[models.AxisProperty] != "Units" {
		t.Error("unknown chart should fall back to the default")
	}
}

func TestState_Axis(t *testing.T) {
	s := NewState()

	if got := s.CycleAxis(1); got != models.AxisPersonnel {
		t.Errorf("CycleAxis(1) = %v", got)
	}
	if got := s.CycleAxis(-2); got != models.AxisPeriod {
		t.Errorf("CycleAxis(-2) = %v, want period", got)
	}
	s.SetAxis(models.AxisProperty)
	if s.GetAxis() != models.AxisProperty {
		t.Error("SetAxis failed")
	}
}

func TestState_Dialog(t *testing.T) {
	s := NewState()
	if s.GetDialog().IsOpen() {
		t.Error("no dialog should be open")
	}

	s.OpenDialog(PropertyPickerDialog(models.AxisPersonnel, "Team A"))
	d := s.GetDialog()
	if d.Kind != DialogPropertyPicker || d.Axis != models.AxisPersonnel || d.Group != "Team A" {
		t.Errorf("dialog = %+v", d)
	}
	if !d.HasAxis() {
		t.Error("property picker applies to an axis")
	}

	s.CloseDialog()
	if s.GetDialog() != NoDialog {
		t.Error("dialog should be closed")
	}
}

func TestState_ShowcaseAndPins(t *testing.T) {
	s := NewState()
	s.SetShowcase([]models.ShowcaseProject{
		{ProjectID: 1, ProjectName: "Harbour", ProjectGroupName: "Coast"},
		{ProjectID: 2, ProjectName: "Ridge", ProjectGroupName: "Hills"},
	}, nil)

	sections := s.ShowcaseSections()
	if len(sections) != 2 {
		t.Fatalf("sections = %d, want 2", len(sections))
	}

	s.SetPinned(2, true)
	sections = s.ShowcaseSections()
	if sections[0].Name != models.PinnedSectionName || sections[0].Projects[0].ProjectID != 2 {
		t.Errorf("pinned section should come first: %+v", sections[0])
	}

	s.SetPinned(2, false)
	if s.IsPinned(2) {
		t.Error("project should be unpinned")
	}
}

func TestState_Images(t *testing.T) {
	s := NewState()
	s.MergeImages(map[string]string{"photos/tower-a.jpg": "/cache/photos/tower-a.jpg"})

	if p, ok := s.ImagePath("tower-a.jpg"); !ok || p != "/cache/photos/tower-a.jpg" {
		t.Errorf("ImagePath by base name = %q, %v", p, ok)
	}
	if _, ok := s.ImagePath(""); ok {
		t.Error("empty reference should not match")
	}
	if s.ImageCount() != 1 {
		t.Errorf("ImageCount = %d", s.ImageCount())
	}
}

func TestState_Notifications(t *testing.T) {
	s := NewState()

	id := s.AddNotification(NotificationInfo, "test", time.Minute)
	if id == "" {
		t.Error("AddNotification returned empty ID")
	}

	notifs := s.GetNotifications()
	if len(notifs) != 1 {
		t.Errorf("GetNotifications len = %d, want 1", len(notifs))
	}
	if notifs[0].Message != "test" {
		t.Errorf("Notification message = %s, want test", notifs[0].Message)
	}

	s.RemoveNotification(id)
	if len(s.GetNotifications()) != 0 {
		t.Error("Notification should be removed")
	}

	for range 12 {
		s.AddNotification(NotificationInfo, "many", time.Minute)
	}
	if len(s.GetNotifications()) != 10 {
		t.Errorf("notifications should be capped at 10, got %d", len(s.GetNotifications()))
	}
}

func TestState_ClearExpiredNotifications(t *testing.T) {
	s := NewState()

	// Expired
	s.notifications = append(s.notifications, Notification{
		ID:        "expired",
		CreatedAt: time.Now().Add(-2 * time.Minute),
		Duration:  time.Minute,
	})

	// Active
	s.notifications = append(s.notifications, Notification{
		ID:        "active",
		CreatedAt: time.Now(),
		Duration:  time.Minute,
	})

	s.ClearExpiredNotifications()

	notifs := s.GetNotifications()
	if len(notifs) != 1 {
		t.Fatalf("Expected 1 notification, got %d", len(notifs))
	}
	if notifs[0].ID != "active" {
		t.Errorf("Expected active notification, got %s", notifs[0].ID)
	}
}

func TestState_LoadingNotification(t *testing.T) {
	s := NewState()

	s.SetLoadingNotification("loading...")
	notifs := s.GetNotifications()
	if len(notifs) != 1 {
		t.Errorf("Expected 1 notification, got %d", len(notifs))
	}
	if notifs[0].ID != LoadingNotificationID {
		t.Errorf("Expected ID %s, got %s", LoadingNotificationID, notifs[0].ID)
	}

	// Update message
	s.SetLoadingNotification("still loading...")
	notifs = s.GetNotifications()
	if len(notifs) != 1 {
		t.Errorf("Expected 1 notification after update")
	}
	if notifs[0].Message != "still loading..." {
		t.Errorf("Expected message still loading..., got %s", notifs[0].Message)
	}

	s.ClearLoadingNotification()
	if len(s.GetNotifications()) != 0 {
		t.Error("Loading notification should be cleared")
	}
}

func TestNotificationType_String(t *testing.T) {
	tests := []struct {
		t    NotificationType
		want string
	}{
		{NotificationSuccess, "success"},
		{NotificationError, "error"},
		{NotificationWarning, "warning"},
		{NotificationInfo, "info"},
		{NotificationType(999), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.t.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestDialogKind_String(t *testing.T) {
	if DialogChartPicker.String() != "chart picker" {
		t.Error("DialogChartPicker.String() mismatch")
	}
	if DialogKind(99).String() != "unknown" {
		t.Error("unknown dialog kind mismatch")
	}
}
