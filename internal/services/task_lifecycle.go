package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/taskflowhq/taskflow-api/internal/models"
	"gorm.io/gorm"
)

// Task lifecycle: active --Delete--> trashed --Restore--> active, and
// trashed --ForceDelete--> gone. Force-delete is unreachable from the
// active state; each transition checks the required state first.

// DeleteTask soft deletes an active task. Its assignments are kept so a
// later restore brings the task back with assignees intact.
func (s *TaskService) DeleteTask(taskID uint64) error {
	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// RestoreTask clears the soft-delete marker of a trashed task and returns
// the restored task.
func (s *TaskService) RestoreTask(taskID uint64) (*models.Task, error) {
	if _, err := s.taskRepo.FindTrashedByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find trashed task: %w", err)
	}

	if err := s.taskRepo.Restore(taskID); err != nil {
		return nil, fmt.Errorf("failed to restore task: %w", err)
	}

	return s.taskRepo.FindByID(taskID, "Creator", "Assignments", "Assignments.User")
}

// ForceDeleteTask permanently removes a trashed task and its assignment rows
func (s *TaskService) ForceDeleteTask(taskID uint64) error {
	if _, err := s.taskRepo.FindTrashedByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find trashed task: %w", err)
	}

	if err := s.taskRepo.ForceDelete(taskID); err != nil {
		return fmt.Errorf("failed to permanently delete task: %w", err)
	}

	return nil
}

// ListTrashedTasks returns the principal's trashed tasks. Assignees do not
// see other users' trash; only the creator does.
func (s *TaskService) ListTrashedTasks(principalID uint64, page, pageSize int) ([]models.Task, int64, error) {
	tasks, total, err := s.taskRepo.ListTrashed(principalID, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list trashed tasks: %w", err)
	}

	return tasks, total, nil
}

// PurgeExpiredTrash permanently removes tasks that have been in the trash
// since before the cutoff. Returns the number of purged tasks.
func (s *TaskService) PurgeExpiredTrash(cutoff time.Time) (int, error) {
	ids, err := s.taskRepo.TrashedIDsBefore(cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to find expired trash: %w", err)
	}

	purged := 0
	for _, id := range ids {
		if err := s.taskRepo.ForceDelete(id); err != nil {
			return purged, fmt.Errorf("failed to purge task %d: %w", id, err)
		}
		purged++
	}

	return purged, nil
}
