package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskflowhq/taskflow-api/internal/dto"
	apierrors "github.com/taskflowhq/taskflow-api/internal/errors"
	"github.com/taskflowhq/taskflow-api/internal/middleware"
	"github.com/taskflowhq/taskflow-api/internal/models"
	"github.com/taskflowhq/taskflow-api/internal/services"
	"github.com/taskflowhq/taskflow-api/internal/utils"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns the page of tasks the principal created or is assigned to
func (h *TaskHandler) ListTasks(c *gin.Context) {
	principalID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	query, fieldErrors := dto.ParseTaskListQuery(c)
	if fieldErrors != nil {
		apierrors.ValidationFailed(c, "Invalid filter parameters", fieldErrors)
		return
	}

	params := utils.GetPaginationParams(c)

	tasks, total, err := h.taskService.ListTasks(services.ListTasksInput{
		PrincipalID: principalID,
		Status:      query.Status,
		Priority:    query.Priority,
		DueDate:     query.DueDate,
		Search:      query.Search,
		Sort:        query.Sort,
		Page:        params.Page,
		PageSize:    params.Limit,
	})
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	meta := utils.BuildPaginationMeta(params, len(tasks), total)
	links := utils.BuildPaginationLinks(c, params, meta.LastPage)

	c.JSON(http.StatusOK, dto.NewPaginatedResponse(
		dto.ToTaskDTOs(tasks),
		"Tasks fetched successfully.",
		http.StatusOK,
		links,
		meta,
	))
}

// CreateTask creates a new task owned by the principal
func (h *TaskHandler) CreateTask(c *gin.Context) {
	principalID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, "Invalid request body", bindingFieldErrors(err))
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      models.TaskStatus(req.Status),
		Priority:    models.TaskPriority(req.Priority),
		DueDate:     req.DueDate,
		CreatorID:   principalID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewResponse(
		dto.ToTaskDTO(*task),
		"Task has been created successfully.",
		http.StatusCreated,
	))
}

// GetTask returns a single task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.NotFound(c, "Task not found")
		return
	}

	task, err := h.taskService.GetTask(taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewResponse(
		dto.ToTaskDTO(*task),
		"Task has been fetched successfully.",
		http.StatusOK,
	))
}

// UpdateTask updates the fields present in the request body. The raw JSON
// is inspected so "due_date": null can be told apart from an absent key.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.NotFound(c, "Task not found")
		return
	}

	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input, fieldErrors := buildUpdateInput(rawReq)
	if fieldErrors != nil {
		apierrors.ValidationFailed(c, "Invalid request body", fieldErrors)
		return
	}

	task, err := h.taskService.UpdateTask(taskID, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewResponse(
		dto.ToTaskDTO(*task),
		"Task has been updated successfully.",
		http.StatusOK,
	))
}

// DeleteTask moves an active task to the trash
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.NotFound(c, "Task not found")
		return
	}

	if err := h.taskService.DeleteTask(taskID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// buildUpdateInput converts a partial JSON body into an update input,
// validating enum fields at the boundary.
func buildUpdateInput(rawReq map[string]any) (services.UpdateTaskInput, map[string]string) {
	var input services.UpdateTaskInput
	fieldErrors := make(map[string]string)

	if raw, ok := rawReq["title"]; ok {
		if title, ok := raw.(string); ok {
			input.Title = &title
		} else {
			fieldErrors["title"] = "must be a string"
		}
	}
	if raw, ok := rawReq["description"]; ok {
		if desc, ok := raw.(string); ok {
			input.Description = &desc
		} else {
			fieldErrors["description"] = "must be a string"
		}
	}
	if raw, ok := rawReq["status"]; ok {
		status, isString := raw.(string)
		if !isString || !models.TaskStatus(status).IsValid() {
			fieldErrors["status"] = "must be one of: todo, in_progress, done"
		} else {
			value := models.TaskStatus(status)
			input.Status = &value
		}
	}
	if raw, ok := rawReq["priority"]; ok {
		priority, isString := raw.(string)
		if !isString || !models.TaskPriority(priority).IsValid() {
			fieldErrors["priority"] = "must be one of: low, medium, high"
		} else {
			value := models.TaskPriority(priority)
			input.Priority = &value
		}
	}
	if raw, ok := rawReq["due_date"]; ok {
		switch v := raw.(type) {
		case nil:
			input.ClearDueDate = true
		case string:
			parsed, err := time.Parse(time.RFC3339, v)
			if err != nil {
				parsed, err = time.Parse("2006-01-02", v)
			}
			if err != nil {
				fieldErrors["due_date"] = "must be an RFC 3339 timestamp or YYYY-MM-DD date"
			} else {
				input.DueDate = &parsed
			}
		default:
			fieldErrors["due_date"] = "must be a date string or null"
		}
	}

	if len(fieldErrors) > 0 {
		return input, fieldErrors
	}
	return input, nil
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTitleRequired):
		apierrors.ValidationFailed(c, err.Error(), map[string]string{"title": "this field is required"})
	case errors.Is(err, services.ErrTitleTooLong):
		apierrors.ValidationFailed(c, err.Error(), map[string]string{"title": "must be at most 150 characters"})
	case errors.Is(err, services.ErrNoTaskIDsProvided):
		apierrors.ValidationFailed(c, err.Error(), map[string]string{"task_ids": "at least one task ID is required"})
	default:
		apierrors.InternalError(c, "")
	}
}
