package history

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// DefaultLimit is the number of runs List returns when no limit is given.
const DefaultLimit = 20

// Repository reads and writes clone runs.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a repository on db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the clone_runs table.
func (r *Repository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&CloneRun{}); err != nil {
		return fmt.Errorf("failed to migrate clone_runs: %w", err)
	}
	return nil
}

// Record stores a run.
func (r *Repository) Record(ctx context.Context, run *CloneRun) error {
	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to record clone run: %w", err)
	}
	return nil
}

// List returns the most recent runs, newest first.
func (r *Repository) List(ctx context.Context, limit int) ([]CloneRun, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	var runs []CloneRun
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Order("id desc").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list clone runs: %w", err)
	}
	return runs, nil
}
