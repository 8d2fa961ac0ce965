// Package session persists the signed-in session and watches it for
// changes made outside the process.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/j-veylop/promaster-tui/internal/logger"
	"github.com/j-veylop/promaster-tui/internal/models"
)

// Event represents a session store event.
type Event struct {
	Type    EventType
	Error   error
	Session *models.Session
}

// EventType defines the type of session event.
type EventType int

const (
	EventLoaded EventType = iota
	EventChanged
	EventCleared
	EventError
)

func (t EventType) String() string {
	switch t {
	case EventLoaded:
		return "loaded"
	case EventChanged:
		return "changed"
	case EventCleared:
		return "cleared"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Store keeps the current session in memory and on disk.
type Store struct {
	mu            sync.RWMutex
	session       *models.Session
	filePath      string
	watcher       *fsnotify.Watcher
	eventChan     chan Event
	stopChan      chan struct{}
	closeOnce     sync.Once
	debounceTimer *time.Timer
}

// New opens the session file at filePath (a missing file means signed out)
// and starts watching it.
func New(filePath string) (*Store, error) {
	if filePath == "" {
		return nil, errors.New("session path is empty")
	}

	s := &Store{
		filePath:  filePath,
		eventChan: make(chan Event, 100),
		stopChan:  make(chan struct{}),
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(filePath), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	sess, err := readSession(filePath)
	if err != nil {
		logger.Warn("ignoring unreadable session file", "path", filePath, "error", err)
	}
	s.session = sess

	if err := s.startWatcher(); err != nil {
		return nil, fmt.Errorf("failed to start file watcher: %w", err)
	}

	s.sendEvent(Event{Type: EventLoaded, Session: s.Current()})
	return s, nil
}

// Events returns the event channel for subscribing to session changes.
func (s *Store) Events() <-chan Event {
	return s.eventChan
}

// Path returns the session file path.
func (s *Store) Path() string {
	return s.filePath
}

// Current returns a copy of the session, or nil when signed out.
func (s *Store) Current() *models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return nil
	}
	clone := s.session.Clone()
	return &clone
}

// Token returns the access token, or "" when signed out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return ""
	}
	return s.session.AccessToken
}

// Profile returns a copy of the user profile, if known.
func (s *Store) Profile() *models.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil || s.session.Profile == nil {
		return nil
	}
	p := *s.session.Profile
	return &p
}

// IsAuthenticated reports whether a token is stored.
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

// Save replaces the session and persists it.
func (s *Store) Save(sess models.Session) error {
	if sess.AccessToken == "" {
		return errors.New("session has no access token")
	}
	if sess.LoggedInAt.IsZero() {
		sess.LoggedInAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writeLocked(&sess); err != nil {
		return err
	}
	s.session = &sess

	clone := sess.Clone()
	s.sendEvent(Event{Type: EventChanged, Session: &clone})
	return nil
}

// SetProfile updates the profile of the current session.
func (s *Store) SetProfile(profile models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return errors.New("not signed in")
	}

	updated := s.session.Clone()
	updated.Profile = &profile
	if err := s.writeLocked(&updated); err != nil {
		return err
	}
	s.session = &updated
	return nil
}

// Clear signs out by removing the session file.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}

	wasSignedIn := s.session != nil
	s.session = nil
	if wasSignedIn {
		s.sendEvent(Event{Type: EventCleared})
	}
	return nil
}

// writeLocked writes the session to disk (must hold lock).
func (s *Store) writeLocked(sess *models.Session) error {
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	// Write to temp file first, then rename
	tmpFile := s.filePath + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0o600); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tmpFile, s.filePath); err != nil {
		if removeErr := os.Remove(tmpFile); removeErr != nil {
			logger.Error("failed to remove temp file", "error", removeErr)
		}
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// readSession loads the session file. A missing file or a file without a
// token is a signed-out state.
func readSession(path string) (*models.Session, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var sess models.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}
	if !sess.IsAuthenticated() {
		return nil, nil
	}
	return &sess, nil
}

// startWatcher starts the file system watcher.
func (s *Store) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	s.watcher = watcher

	// Watch the directory (to catch file creation/deletion)
	if err := watcher.Add(filepath.Dir(s.filePath)); err != nil {
		if closeErr := watcher.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return err
	}

	go s.watchLoop()
	return nil
}

// watchLoop handles file system events with debouncing.
func (s *Store) watchLoop() {
	const debounceInterval = 100 * time.Millisecond

	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}

			// Only care about our session file
			if filepath.Base(event.Name) != filepath.Base(s.filePath) {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				// Debounce rapid changes
				s.mu.Lock()
				if s.debounceTimer != nil {
					s.debounceTimer.Stop()
				}
				s.debounceTimer = time.AfterFunc(debounceInterval, s.handleFileChange)
				s.mu.Unlock()
			}

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.sendEvent(Event{Type: EventError, Error: err})

		case <-s.stopChan:
			return
		}
	}
}

// handleFileChange reloads the session after a change on disk. Events are
// only emitted when the stored token actually differs from memory.
func (s *Store) handleFileChange() {
	sess, err := readSession(s.filePath)
	if err != nil {
		s.sendEvent(Event{Type: EventError, Error: err})
		return
	}

	s.mu.Lock()
	oldToken := ""
	if s.session != nil {
		oldToken = s.session.AccessToken
	}
	newToken := ""
	if sess != nil {
		newToken = sess.AccessToken
	}
	s.session = sess
	s.mu.Unlock()

	switch {
	case oldToken == newToken:
		return
	case newToken == "":
		s.sendEvent(Event{Type: EventCleared})
	default:
		clone := sess.Clone()
		s.sendEvent(Event{Type: EventChanged, Session: &clone})
	}
}

// sendEvent sends an event to the event channel non-blocking.
func (s *Store) sendEvent(event Event) {
	select {
	case s.eventChan <- event:
	default:
		// Channel full, drop oldest event
		select {
		case <-s.eventChan:
		default:
		}
		select {
		case s.eventChan <- event:
		default:
		}
	}
}

// Close stops the file watcher and cleans up resources.
func (s *Store) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.stopChan)

		s.mu.Lock()
		if s.debounceTimer != nil {
			s.debounceTimer.Stop()
		}
		s.mu.Unlock()

		if s.watcher != nil {
			err = s.watcher.Close()
		}
	})
	return err
}
