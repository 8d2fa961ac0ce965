package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/j-veylop/promaster-tui/internal/logger"
	"github.com/j-veylop/promaster-tui/internal/models"
)

// TogglePin pins the project if it is not pinned and unpins it otherwise.
// It returns the new pinned state.
func (db *DB) TogglePin(ctx context.Context, projectID int, projectName string) (bool, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, "DELETE FROM pinned_projects WHERE project_id = ?", projectID)
	if err != nil {
		return false, fmt.Errorf("failed to unpin project: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to unpin project: %w", err)
	}

	pinned := removed == 0
	if pinned {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO pinned_projects (project_id, project_name, pinned_at) VALUES (?, ?, ?)",
			projectID, projectName, time.Now().UnixMilli(),
		)
		if err != nil {
			return false, fmt.Errorf("failed to pin project: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit pin: %w", err)
	}
	return pinned, nil
}

// PinnedProjects returns the pinned projects, oldest pin first.
func (db *DB) PinnedProjects(ctx context.Context) ([]models.PinnedProject, error) {
	query := `
		SELECT project_id, project_name, pinned_at
		FROM pinned_projects
		ORDER BY pinned_at ASC, project_id ASC
	`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query pinned projects: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("failed to close rows", "error", err)
		}
	}()

	var pins []models.PinnedProject
	for rows.Next() {
		var pin models.PinnedProject
		var pinnedAt int64
		if err := rows.Scan(&pin.ProjectID, &pin.ProjectName, &pinnedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pinned project: %w", err)
		}
		pin.PinnedAt = time.UnixMilli(pinnedAt)
		pins = append(pins, pin)
	}

	return pins, rows.Err()
}

// PinnedIDs returns the set of pinned project ids.
func (db *DB) PinnedIDs(ctx context.Context) (map[int]bool, error) {
	pins, err := db.PinnedProjects(ctx)
	if err != nil {
		return nil, err
	}

	ids := make(map[int]bool, len(pins))
	for _, p := range pins {
		ids[p.ProjectID] = true
	}
	return ids, nil
}

// Snapshot is a cached dashboard payload.
type Snapshot struct {
	FetchedAt time.Time
	Data      *models.DashboardData
}

// SaveSnapshot stores the latest dashboard payload for a user.
func (db *DB) SaveSnapshot(ctx context.Context, userName string, data *models.DashboardData) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode dashboard snapshot: %w", err)
	}

	query := `
		INSERT INTO dashboard_snapshots (user_name, payload, fetched_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_name) DO UPDATE SET
			payload = excluded.payload,
			fetched_at = excluded.fetched_at
	`
	if _, err := db.ExecContext(ctx, query, userName, string(payload), time.Now().UnixMilli()); err != nil {
		return fmt.Errorf("failed to save dashboard snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot returns the cached dashboard payload for a user, or nil if
// none was stored.
func (db *DB) LoadSnapshot(ctx context.Context, userName string) (*Snapshot, error) {
	var payload string
	var fetchedAt int64

	err := db.QueryRowContext(ctx,
		"SELECT payload, fetched_at FROM dashboard_snapshots WHERE user_name = ?", userName,
	).Scan(&payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard snapshot: %w", err)
	}

	var data models.DashboardData
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return nil, fmt.Errorf("failed to decode dashboard snapshot: %w", err)
	}

	return &Snapshot{FetchedAt: time.UnixMilli(fetchedAt), Data: &data}, nil
}

// DeleteSnapshot removes the cached dashboard payload of a user.
func (db *DB) DeleteSnapshot(ctx context.Context, userName string) error {
	if _, err := db.ExecContext(ctx, "DELETE FROM dashboard_snapshots WHERE user_name = ?", userName); err != nil {
		return fmt.Errorf("failed to delete dashboard snapshot: %w", err)
	}
	return nil
}

// MarkActivitiesSeen records the given activities and returns those that had
// not been seen before, in input order.
func (db *DB) MarkActivitiesSeen(ctx context.Context, activities []models.Activity) ([]models.Activity, error) {
	if len(activities) == 0 {
		return nil, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		"INSERT OR IGNORE INTO seen_activities (activity_key, first_seen) VALUES (?, ?)")
	if err != nil {
		return nil, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().UnixMilli()
	var fresh []models.Activity
	for _, a := range activities {
		result, err := stmt.ExecContext(ctx, a.Key(), now)
		if err != nil {
			return nil, fmt.Errorf("failed to mark activity seen: %w", err)
		}
		if n, err := result.RowsAffected(); err == nil && n > 0 {
			fresh = append(fresh, a)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit seen activities: %w", err)
	}
	return fresh, nil
}

// PruneSeenActivities deletes seen markers older than the given age.
func (db *DB) PruneSeenActivities(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan).UnixMilli()
	result, err := db.ExecContext(ctx, "DELETE FROM seen_activities WHERE first_seen < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune seen activities: %w", err)
	}
	return result.RowsAffected()
}
