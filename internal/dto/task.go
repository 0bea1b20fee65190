package dto

import (
	"time"

	"github.com/taskflowhq/taskflow-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID            uint64              `json:"id"`
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	DueDate       *time.Time          `json:"due_date"`
	Status        models.TaskStatus   `json:"status"`
	Priority      models.TaskPriority `json:"priority"`
	CreatedBy     *UserDTO            `json:"created_by"`
	AssignedUsers []UserDTO           `json:"assigned_users"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// AssignedCountDTO reports how many active tasks a user is assigned to
type AssignedCountDTO struct {
	UserID             uint64 `json:"user_id"`
	AssignedTasksCount int64  `json:"assigned_tasks_count"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:   user.ID,
		Name: user.Name,
	}
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:            task.ID,
		Title:         task.Title,
		Description:   task.Description,
		DueDate:       task.DueDate,
		Status:        task.Status,
		Priority:      task.Priority,
		AssignedUsers: []UserDTO{},
		CreatedAt:     task.CreatedAt,
		UpdatedAt:     task.UpdatedAt,
	}

	// Include creator if preloaded
	if task.Creator.ID != 0 {
		creator := ToUserDTO(task.Creator)
		dto.CreatedBy = &creator
	}

	for _, assignment := range task.Assignments {
		if assignment.User.ID != 0 {
			dto.AssignedUsers = append(dto.AssignedUsers, ToUserDTO(assignment.User))
		}
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}
