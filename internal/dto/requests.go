package dto

import (
	"time"
)

// RegisterRequest is the payload for user registration
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the payload for authentication
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CreateTaskRequest is the payload for task creation. Status and priority
// are validated against their closed enums here, before the core runs.
type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required,max=150"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Status      string     `json:"status" binding:"omitempty,oneof=todo in_progress done"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low medium high"`
}

// AssignUserRequest attaches one user to a task
type AssignUserRequest struct {
	UserID uint64 `json:"user_id" binding:"required"`
}

// AssignTasksRequest attaches one user to many tasks
type AssignTasksRequest struct {
	TaskIDs []uint64 `json:"task_ids" binding:"required,min=1"`
}
