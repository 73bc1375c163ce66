package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// CheckpointResult is the row returned by PRAGMA wal_checkpoint.
// Log and Checkpointed are -1 when the database is not in WAL mode.
type CheckpointResult struct {
	Busy         int
	Log          int
	Checkpointed int
}

// Checkpoint copies the WAL back into the main file and truncates it
func Checkpoint(ctx context.Context, db *gorm.DB) (*CheckpointResult, error) {
	var res CheckpointResult
	if err := db.WithContext(ctx).Raw("PRAGMA wal_checkpoint(TRUNCATE)").Scan(&res).Error; err != nil {
		return nil, fmt.Errorf("wal checkpoint failed: %w", err)
	}
	return &res, nil
}

// Optimize lets SQLite refresh the query planner statistics it needs
func Optimize(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).Exec("PRAGMA optimize").Error; err != nil {
		return fmt.Errorf("optimize failed: %w", err)
	}
	return nil
}
