package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/taskflowhq/taskflow-api/internal/services"
)

// StartTrashPurge schedules a daily job that permanently deletes tasks
// trashed longer than retentionDays ago. A retention of zero disables the
// job. Returns the running cron so the caller can stop it on shutdown.
func StartTrashPurge(taskService *services.TaskService, retentionDays int) *cron.Cron {
	if retentionDays <= 0 {
		return nil
	}

	c := cron.New()

	_, err := c.AddFunc("@daily", func() {
		cutoff := time.Now().AddDate(0, 0, -retentionDays)
		purged, err := taskService.PurgeExpiredTrash(cutoff)
		if err != nil {
			log.Printf("Trash purge failed: %v", err)
			return
		}
		if purged > 0 {
			log.Printf("Trash purge removed %d task(s)", purged)
		}
	})
	if err != nil {
		log.Fatalf("Failed to schedule trash purge: %v", err)
	}

	c.Start()
	log.Printf("Trash purge scheduled, retention %d day(s)", retentionDays)
	return c
}
