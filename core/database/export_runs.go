package database

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Export run statuses.
const (
	ExportStatusSucceeded = "succeeded"
	ExportStatusFailed    = "failed"
)

// ExportRun records one export execution.
type ExportRun struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RunID       string    `gorm:"size:64;uniqueIndex" json:"run_id"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
	Directory   string    `gorm:"size:512" json:"directory"`
	Files       int       `json:"files"`
	Bundles     int       `json:"bundles"`
	Deployments int       `json:"deployments"`
	Unsynced    int       `json:"unsynced"`
	Uploaded    bool      `json:"uploaded"`
	Status      string    `gorm:"size:32;index" json:"status"`
	Error       string    `gorm:"size:1024" json:"error,omitempty"`
}

// TableName overrides the GORM table name.
func (ExportRun) TableName() string {
	return "export_runs"
}

// exportRunColumns are the columns the repository relies on.
var exportRunColumns = []string{
	"id", "run_id", "started_at", "finished_at", "directory", "files",
	"bundles", "deployments", "unsynced", "uploaded", "status", "error",
}

// ExportRunRepository persists export run history.
type ExportRunRepository struct {
	db *gorm.DB
}

// NewExportRunRepository creates a repository over db.
func NewExportRunRepository(db *gorm.DB) *ExportRunRepository {
	return &ExportRunRepository{db: db}
}

// Migrate creates or updates the export_runs table and checks the result.
func (r *ExportRunRepository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&ExportRun{}); err != nil {
		return fmt.Errorf("failed to migrate export_runs: %w", err)
	}
	missing, err := MissingColumns(r.db.WithContext(ctx), ExportRun{}.TableName(), exportRunColumns)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("export_runs is missing columns %v", missing)
	}
	return nil
}

// Create inserts run.
func (r *ExportRunRepository) Create(ctx context.Context, run *ExportRun) error {
	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to record export run: %w", err)
	}
	return nil
}

// Recent returns the latest runs, newest first.
func (r *ExportRunRepository) Recent(ctx context.Context, limit int) ([]ExportRun, error) {
	if limit <= 0 {
		limit = 20
	}
	var runs []ExportRun
	if err := r.db.WithContext(ctx).Order("started_at DESC").Order("id DESC").Limit(limit).Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list export runs: %w", err)
	}
	return runs, nil
}
