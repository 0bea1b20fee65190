package repository

import (
	"time"

	"github.com/taskflowhq/taskflow-api/internal/models"
)

// TaskFilter is the single query specification passed into List. Visibility
// is mandatory: exactly one of PrincipalID (creator-or-assignee scope) or
// AssignedUserID (assignment-only scope) must be set.
type TaskFilter struct {
	// Visibility scope
	PrincipalID    *uint64
	AssignedUserID *uint64

	// Optional filters, AND-combined
	Status   *models.TaskStatus
	Priority *models.TaskPriority
	DueDate  *time.Time // matched against the whole calendar day

	// Free-text search over title and description
	Search string

	// Sort column, optionally prefixed with "-" for descending. Only
	// due_date and created_at are honored; anything else falls back to
	// created_at descending.
	Sort string

	Page     int
	PageSize int
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds an active task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// FindTrashedByID finds a soft-deleted task by ID
	FindTrashedByID(id uint64) (*models.Task, error)

	// List retrieves a visibility-scoped, filtered, sorted page of tasks
	List(filter TaskFilter) ([]models.Task, int64, error)

	// ListTrashed retrieves a page of the creator's soft-deleted tasks
	ListTrashed(creatorID uint64, page, pageSize int) ([]models.Task, int64, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete soft deletes a task, keeping its assignments
	Delete(id uint64) error

	// Restore clears the soft-delete marker of a trashed task
	Restore(id uint64) error

	// ForceDelete permanently removes a task and its assignment rows
	ForceDelete(id uint64) error

	// AttachUser links a user to a task; attaching an existing pair is a no-op
	AttachUser(taskID, userID uint64) error

	// AttachTasks links every listed task to a user, idempotent per pair
	AttachTasks(taskIDs []uint64, userID uint64) error

	// CountAssignedTasks counts active tasks the user is assigned to
	CountAssignedTasks(userID uint64) (int64, error)

	// CountActiveByIDs counts how many of the given task IDs reference
	// existing, non-trashed tasks
	CountActiveByIDs(taskIDs []uint64) (int64, error)

	// TrashedIDsBefore returns IDs of tasks soft-deleted before the cutoff
	TrashedIDsBefore(cutoff time.Time) ([]uint64, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}
