package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/taskflowhq/taskflow-api/internal/models"
	"github.com/taskflowhq/taskflow-api/internal/repository"
	"gorm.io/gorm"
)

// AssignUser attaches a user to a task's assignment set. Attaching an
// already-assigned user is a no-op; other assignees are never detached.
func (s *TaskService) AssignUser(taskID, userID uint64) error {
	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.taskRepo.AttachUser(taskID, userID); err != nil {
		return fmt.Errorf("failed to assign user: %w", err)
	}

	return nil
}

// AssignTasks attaches a single user to every listed task. Validation is
// all-or-nothing: if the user or any task is missing or trashed, no
// assignment row is written.
func (s *TaskService) AssignTasks(taskIDs []uint64, userID uint64) error {
	if len(taskIDs) == 0 {
		return ErrNoTaskIDsProvided
	}

	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	uniqueIDs := uniqueUint64(taskIDs)

	count, err := s.taskRepo.CountActiveByIDs(uniqueIDs)
	if err != nil {
		return fmt.Errorf("failed to verify tasks: %w", err)
	}
	if int(count) != len(uniqueIDs) {
		return ErrTaskNotFound
	}

	if err := s.taskRepo.AttachTasks(uniqueIDs, userID); err != nil {
		return fmt.Errorf("failed to assign tasks: %w", err)
	}

	return nil
}

// CountAssignedTasks returns how many active tasks the user is assigned to.
// Trashed tasks do not count.
func (s *TaskService) CountAssignedTasks(userID uint64) (int64, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("failed to find user: %w", err)
	}

	count, err := s.taskRepo.CountAssignedTasks(userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count assigned tasks: %w", err)
	}

	return count, nil
}

// ListAssignedTasksInput represents filters for listing a user's assigned tasks
type ListAssignedTasksInput struct {
	UserID   uint64
	Status   *models.TaskStatus
	Priority *models.TaskPriority
	DueDate  *time.Time
	Search   string
	Sort     string
	Page     int
	PageSize int
}

// ListAssignedTasks lists tasks assigned to a user with the same filter,
// search, sort and pagination semantics as ListTasks.
func (s *TaskService) ListAssignedTasks(input ListAssignedTasksInput) ([]models.Task, int64, error) {
	if _, err := s.userRepo.FindByID(input.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrUserNotFound
		}
		return nil, 0, fmt.Errorf("failed to find user: %w", err)
	}

	filter := repository.TaskFilter{
		AssignedUserID: &input.UserID,
		Status:         input.Status,
		Priority:       input.Priority,
		DueDate:        input.DueDate,
		Search:         input.Search,
		Sort:           input.Sort,
		Page:           input.Page,
		PageSize:       input.PageSize,
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list assigned tasks: %w", err)
	}

	return tasks, total, nil
}

// uniqueUint64 removes duplicate values from a slice of uint64
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
