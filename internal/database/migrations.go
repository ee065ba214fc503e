package database

import (
	"fmt"
	"log"

	"github.com/yukikurage/task-tracker-api/internal/models"
	"gorm.io/gorm"
)

// AddIndexes adds the composite indexes the analytics queries rely on.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		model   interface{}
		table   string
		name    string
		columns string
	}{
		// Per-task entry listing and per-day trend
		{&models.TimeEntry{}, "time_entries", "idx_time_entries_task_date", "task_id, date"},
		// Per-user aggregation
		{&models.TimeEntry{}, "time_entries", "idx_time_entries_user_task", "user_id, task_id"},
		// Assignee dashboards filter by status
		{&models.Task{}, "tasks", "idx_tasks_assignee_status", "assignee_id, status"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.model, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Printf("Created index %s on %s(%s)", idx.name, idx.table, idx.columns)
	}

	return nil
}
