package db

import (
	"context"
	"fmt"
)

// schemaVersion is stored in PRAGMA user_version.
const schemaVersion = 1

// migrate brings an older database file up to schemaVersion.
func (db *DB) migrate() error {
	var version int
	if err := db.QueryRowContext(context.Background(), "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if version >= schemaVersion {
		return nil
	}

	// Version 0 databases could hold pins without a name.
	queries := []string{
		`UPDATE pinned_projects SET project_name = '' WHERE project_name IS NULL`,
		fmt.Sprintf("PRAGMA user_version = %d", schemaVersion),
	}

	for _, query := range queries {
		if _, err := db.ExecContext(context.Background(), query); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
	}

	return nil
}
