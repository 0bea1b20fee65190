package database

import (
	"fmt"
	"log"

	"github.com/taskflowhq/taskflow-api/internal/models"
	"gorm.io/gorm"
)

func Migrate() error {
	log.Println("Running database migrations...")
	err := DB.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.TaskAssignment{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Println("Database migrations completed")
	return nil
}

// AddIndexes adds indexes used by the task list queries
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Task indexes for visibility, filtering and sorting
		{"tasks", "idx_tasks_creator_id", "creator_id"},
		{"tasks", "idx_tasks_status", "status"},
		{"tasks", "idx_tasks_priority", "priority"},
		{"tasks", "idx_tasks_due_date", "due_date"},
		{"tasks", "idx_tasks_created_at", "created_at"},

		// Task assignments indexes
		{"task_assignments", "idx_task_assignments_task_id", "task_id"},
		{"task_assignments", "idx_task_assignments_user_id", "user_id"},
	}

	for _, idx := range indexes {
		migrator := db.Migrator()
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
