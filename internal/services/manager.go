// Package services provides service orchestration for the TUI.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/j-veylop/promaster-tui/internal/config"
	"github.com/j-veylop/promaster-tui/internal/db"
	"github.com/j-veylop/promaster-tui/internal/format"
	"github.com/j-veylop/promaster-tui/internal/logger"
	"github.com/j-veylop/promaster-tui/internal/models"
	"github.com/j-veylop/promaster-tui/internal/services/images"
	"github.com/j-veylop/promaster-tui/internal/services/promaster"
	"github.com/j-veylop/promaster-tui/internal/services/session"
	"github.com/j-veylop/promaster-tui/internal/stats"
)

// seenRetention bounds how long activity keys are remembered.
const seenRetention = 30 * 24 * time.Hour

// Dashboard is a processed dashboard payload.
type Dashboard struct {
	FetchedAt time.Time
	Data      *models.DashboardData
	Catalog   stats.Catalog
	Coerced   int
	Stale     bool
}

type (
	// SessionChangedEvent is emitted when the user signs in or out.
	// Session is nil after sign-out.
	SessionChangedEvent struct {
		Session *models.Session
	}

	// DashboardUpdatedEvent is emitted when dashboard data is available,
	// either fresh or from the local snapshot.
	DashboardUpdatedEvent struct {
		Dashboard *Dashboard
	}

	// ShowcaseUpdatedEvent is emitted when the showcase list is refreshed.
	ShowcaseUpdatedEvent struct {
		Pinned   map[int]bool
		Projects []models.ShowcaseProject
	}

	// ImagesLoadedEvent is emitted when project photos have been extracted.
	ImagesLoadedEvent struct {
		Paths map[string]string
	}

	// NewActivitiesEvent is emitted when a refresh brings activities not seen before.
	NewActivitiesEvent struct {
		Activities []models.Activity
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (SessionChangedEvent) isServiceEvent()   {}
func (DashboardUpdatedEvent) isServiceEvent() {}
func (ShowcaseUpdatedEvent) isServiceEvent()  {}
func (ImagesLoadedEvent) isServiceEvent()     {}
func (NewActivitiesEvent) isServiceEvent()    {}
func (ErrorEvent) isServiceEvent()            {}

// Manager orchestrates services and event routing.
type Manager struct {
	mu          sync.RWMutex
	cfg         *config.Config
	client      *promaster.Client
	images      *images.Fetcher
	session     *session.Store
	database    *db.DB
	flight      singleflight.Group
	stopChan    chan struct{}
	closeOnce   sync.Once
	subscribers []chan<- ServiceEvent
	notify      func(title, message string) error
	primed      bool
	filter      models.ShowcaseFilter
}

// NewManager creates a new service manager.
func NewManager(cfg *config.Config) (*Manager, error) {
	m := &Manager{
		cfg:      cfg,
		stopChan: make(chan struct{}),
		notify: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
	}

	m.client = promaster.New(cfg.BaseURL, cfg.RequestTimeout,
		promaster.WithIPLookupURL(cfg.IPLookupURL),
		promaster.WithPlatformID(cfg.PlatformID),
	)
	m.images = images.New(cfg.BaseURL, cfg.ImageCacheDir, m.client.HTTPClient())

	var err error
	m.database, err = db.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	m.session, err = session.New(cfg.SessionPath)
	if err != nil {
		_ = m.database.Close()
		return nil, fmt.Errorf("failed to initialize session: %w", err)
	}

	if n, err := m.database.PruneSeenActivities(context.Background(), seenRetention); err != nil {
		logger.Warn("failed to prune seen activities", "error", err)
	} else if n > 0 {
		logger.Debug("pruned seen activities", "count", n)
	}

	go m.routeEvents()

	if cfg.DashboardRefreshInterval > 0 {
		go m.pollDashboard(cfg.DashboardRefreshInterval)
	}

	return m, nil
}

// routeEvents routes events from individual services to subscribers.
func (m *Manager) routeEvents() {
	for {
		select {
		case event := <-m.session.Events():
			m.handleSessionEvent(event)

		case <-m.stopChan:
			return
		}
	}
}

// handleSessionEvent converts and broadcasts session events.
func (m *Manager) handleSessionEvent(event session.Event) {
	switch event.Type {
	case session.EventLoaded, session.EventChanged:
		m.broadcast(SessionChangedEvent{Session: event.Session})

	case session.EventCleared:
		m.mu.Lock()
		m.primed = false
		m.mu.Unlock()
		m.broadcast(SessionChangedEvent{})

	case session.EventError:
		m.broadcast(ErrorEvent{
			Service: "session",
			Error:   event.Error,
		})
	}
}

// pollDashboard refreshes the dashboard periodically while signed in.
func (m *Manager) pollDashboard(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !m.session.IsAuthenticated() {
				continue
			}
			ctx, cancel := context.WithTimeout(context.Background(), m.cfg.RequestTimeout*2)
			_, _ = m.RefreshDashboard(ctx)
			cancel()

		case <-m.stopChan:
			return
		}
	}
}

// Login signs in and persists the session.
func (m *Manager) Login(ctx context.Context, userName, password string, languageID int) (*models.Session, error) {
	req := models.LoginRequest{
		UserName:   userName,
		Password:   password,
		LanguageID: languageID,
		DeviceInfo: m.client.DeviceInfo(ctx),
	}

	res, err := m.client.Login(ctx, req)
	if err != nil {
		logger.Warn("login failed", "user", userName, "error", err)
		return nil, err
	}

	sess := models.Session{
		AccessToken: res.AccessToken,
		UserName:    userName,
		Profile:     res.Profile,
		LanguageID:  languageID,
		LoggedInAt:  time.Now(),
	}
	if err := m.session.Save(sess); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	logger.Info("signed in", "user", userName)
	return &sess, nil
}

// Logout clears the session and the extracted image cache.
func (m *Manager) Logout() error {
	if err := m.session.Clear(); err != nil {
		return err
	}
	if err := m.images.Purge(); err != nil {
		logger.Warn("failed to purge image cache", "error", err)
	}
	logger.Info("signed out")
	return nil
}

// RefreshDashboard fetches the dashboard and showcase concurrently.
// Concurrent callers share a single request. When the backend cannot be
// reached the cached snapshot is broadcast as stale data and the error is
// still returned.
func (m *Manager) RefreshDashboard(ctx context.Context) (*Dashboard, error) {
	v, err, _ := m.flight.Do("dashboard", func() (any, error) {
		return m.refreshDashboard(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Dashboard), nil
}

func (m *Manager) refreshDashboard(ctx context.Context) (*Dashboard, error) {
	sess := m.session.Current()
	if !sess.IsAuthenticated() {
		return nil, promaster.ErrUnauthorized
	}

	m.mu.RLock()
	filter := m.filter
	m.mu.RUnlock()

	var (
		data     *models.DashboardData
		projects []models.ShowcaseProject
		showErr  error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		data, err = m.client.Dashboard(gctx, sess.AccessToken)
		return err
	})
	g.Go(func() error {
		projects, showErr = m.client.Showcase(gctx, sess.AccessToken, filter)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, m.handleDashboardError(ctx, sess, err)
	}

	dash := &Dashboard{
		FetchedAt: time.Now(),
		Data:      data,
		Catalog:   stats.ProcessStatistics(data.Statistics),
		Coerced:   coercedCount(data),
	}
	if dash.Coerced > 0 {
		logger.Warn("non-numeric statistic values read as zero", "count", dash.Coerced)
	}

	if err := m.database.SaveSnapshot(ctx, sess.UserName, data); err != nil {
		logger.Warn("failed to save dashboard snapshot", "error", err)
	}
	if err := m.session.SetProfile(data.UserProfile); err != nil {
		logger.Warn("failed to update session profile", "error", err)
	}

	m.broadcast(DashboardUpdatedEvent{Dashboard: dash})
	m.checkNotifications(ctx, data.Activities)

	if showErr != nil {
		m.reportError("showcase", showErr)
	} else {
		m.broadcastShowcase(ctx, projects)
	}

	go m.loadImages(sess.AccessToken, photos(data, projects))

	return dash, nil
}

// handleDashboardError clears the session on rejection and falls back to
// the stored snapshot otherwise.
func (m *Manager) handleDashboardError(ctx context.Context, sess *models.Session, err error) error {
	if errors.Is(err, promaster.ErrUnauthorized) {
		logger.Warn("session rejected by backend, signing out")
		if clearErr := m.session.Clear(); clearErr != nil {
			logger.Error("failed to clear session", "error", clearErr)
		}
		m.reportError("dashboard", err)
		return err
	}

	m.reportError("dashboard", err)

	snap, snapErr := m.database.LoadSnapshot(ctx, sess.UserName)
	if snapErr != nil {
		logger.Warn("failed to load dashboard snapshot", "error", snapErr)
	}
	if snap != nil {
		m.broadcast(DashboardUpdatedEvent{Dashboard: &Dashboard{
			FetchedAt: snap.FetchedAt,
			Data:      snap.Data,
			Catalog:   stats.ProcessStatistics(snap.Data.Statistics),
			Coerced:   coercedCount(snap.Data),
			Stale:     true,
		}})
	}
	return err
}

// RefreshShowcase fetches the showcase with a new filter.
func (m *Manager) RefreshShowcase(ctx context.Context, filter models.ShowcaseFilter) ([]models.ShowcaseProject, error) {
	m.mu.Lock()
	m.filter = filter
	m.mu.Unlock()

	token := m.session.Token()
	projects, err := m.client.Showcase(ctx, token, filter)
	if err != nil {
		m.reportError("showcase", err)
		return nil, err
	}

	m.broadcastShowcase(ctx, projects)
	go m.loadImages(token, photos(nil, projects))
	return projects, nil
}

func (m *Manager) broadcastShowcase(ctx context.Context, projects []models.ShowcaseProject) {
	pinned, err := m.database.PinnedIDs(ctx)
	if err != nil {
		logger.Warn("failed to read pinned projects", "error", err)
		pinned = map[int]bool{}
	}
	m.broadcast(ShowcaseUpdatedEvent{Projects: projects, Pinned: pinned})
}

// TogglePin pins or unpins a showcase project and returns the new state.
func (m *Manager) TogglePin(ctx context.Context, project models.ShowcaseProject) (bool, error) {
	pinned, err := m.database.TogglePin(ctx, project.ProjectID, project.ProjectName)
	if err != nil {
		m.reportError("pins", err)
		return false, err
	}
	return pinned, nil
}

// PinnedIDs returns the set of pinned project ids.
func (m *Manager) PinnedIDs(ctx context.Context) (map[int]bool, error) {
	return m.database.PinnedIDs(ctx)
}

// loadImages fetches project photos in the background.
func (m *Manager) loadImages(token string, refs []string) {
	if len(refs) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), m.cfg.RequestTimeout*2)
	defer cancel()

	paths := m.images.Fetch(ctx, refs, token)
	if len(paths) > 0 {
		m.broadcast(ImagesLoadedEvent{Paths: paths})
	}
}

// checkNotifications records activities and raises a desktop notification
// for new ones. The first refresh after sign-in only records.
func (m *Manager) checkNotifications(ctx context.Context, activities []models.Activity) {
	fresh, err := m.database.MarkActivitiesSeen(ctx, activities)
	if err != nil {
		logger.Warn("failed to record activities", "error", err)
		return
	}

	m.mu.Lock()
	primed := m.primed
	m.primed = true
	m.mu.Unlock()

	if !primed || len(fresh) == 0 {
		return
	}

	m.broadcast(NewActivitiesEvent{Activities: fresh})

	if !m.cfg.DesktopNotifications || m.notify == nil {
		return
	}

	title := fmt.Sprintf("%d new activities", len(fresh))
	if len(fresh) == 1 {
		title = "New activity"
	}
	body := format.Sanitize(fresh[0].ActivityTitle)
	if fresh[0].Status != "" {
		body += " · " + format.Sanitize(fresh[0].Status)
	}
	if err := m.notify(title, body); err != nil {
		logger.Debug("desktop notification failed", "error", err)
	}
}

func (m *Manager) reportError(service string, err error) {
	logger.Error("service error", "service", service, "error", err)
	m.broadcast(ErrorEvent{Service: service, Error: err})
}

func coercedCount(data *models.DashboardData) int {
	n := 0
	for _, s := range data.Statistics {
		n += stats.CoercedCount(s.Records)
	}
	return n
}

// photos collects distinct photo references of dashboard and showcase projects.
func photos(data *models.DashboardData, projects []models.ShowcaseProject) []string {
	refs := data.Photos()
	seen := make(map[string]struct{}, len(refs))
	for _, r := range refs {
		seen[r] = struct{}{}
	}
	for _, p := range projects {
		if p.Photo == "" {
			continue
		}
		if _, ok := seen[p.Photo]; ok {
			continue
		}
		seen[p.Photo] = struct{}{}
		refs = append(refs, p.Photo)
	}
	return refs
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, waitForEvent(ch)
}

// waitForEvent returns a tea.Cmd that waits for the next event.
func waitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// WaitForEvent returns a tea.Cmd for the next event on a channel.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return waitForEvent(ch)
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Session returns the session store.
func (m *Manager) Session() *session.Store {
	return m.session
}

// Config returns the configuration the manager was built with.
func (m *Manager) Config() *config.Config {
	return m.cfg
}

// Close closes the manager and all its services.
func (m *Manager) Close() error {
	var errs []error

	m.closeOnce.Do(func() {
		close(m.stopChan)

		m.mu.Lock()
		for _, sub := range m.subscribers {
			close(sub)
		}
		m.subscribers = nil
		m.mu.Unlock()

		if err := m.session.Close(); err != nil {
			errs = append(errs, err)
		}

		if m.database != nil {
			if err := m.database.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	})

	return errors.Join(errs...)
}
