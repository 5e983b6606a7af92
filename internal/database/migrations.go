package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"
)

// AddIndexes adds the indexes used by role-scoped listing and dashboards
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Assignee scoping for members
		{"task_assignments", "idx_task_assignments_user_id", "user_id"},

		// Status filter, recent tasks and overdue counts
		{"tasks", "idx_tasks_status", "status"},
		{"tasks", "idx_tasks_created_at", "created_at"},
		{"tasks", "idx_tasks_due_date", "due_date"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.table, idx.name) {
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
