package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskflowhq/taskflow-api/internal/dto"
	apierrors "github.com/taskflowhq/taskflow-api/internal/errors"
	"github.com/taskflowhq/taskflow-api/internal/services"
	"github.com/taskflowhq/taskflow-api/internal/utils"
)

// AssignTask attaches one user to the task's assignment set
func (h *TaskHandler) AssignTask(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.NotFound(c, "Task not found")
		return
	}

	var req dto.AssignUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, "Invalid request body", bindingFieldErrors(err))
		return
	}

	if err := h.taskService.AssignUser(taskID, req.UserID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewResponse(nil, "Task has been assigned successfully.", http.StatusOK))
}

// AssignTasksToUser attaches one user to every listed task. Validation is
// all-or-nothing; an invalid ID anywhere in the list assigns nothing.
func (h *TaskHandler) AssignTasksToUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.NotFound(c, "User not found")
		return
	}

	var req dto.AssignTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, "Invalid request body", bindingFieldErrors(err))
		return
	}

	if err := h.taskService.AssignTasks(req.TaskIDs, userID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewResponse(nil, "Tasks have been assigned successfully.", http.StatusOK))
}

// AssignedTasksCount reports how many active tasks are assigned to the user
func (h *TaskHandler) AssignedTasksCount(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.NotFound(c, "User not found")
		return
	}

	count, err := h.taskService.CountAssignedTasks(userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewResponse(dto.AssignedCountDTO{
		UserID:             userID,
		AssignedTasksCount: count,
	}, "Assigned tasks count fetched successfully.", http.StatusOK))
}

// AssignedTasks lists tasks assigned to the user with the same filter,
// search, sort and pagination semantics as the main task list
func (h *TaskHandler) AssignedTasks(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.NotFound(c, "User not found")
		return
	}

	query, fieldErrors := dto.ParseTaskListQuery(c)
	if fieldErrors != nil {
		apierrors.ValidationFailed(c, "Invalid filter parameters", fieldErrors)
		return
	}

	params := utils.GetPaginationParams(c)

	tasks, total, err := h.taskService.ListAssignedTasks(services.ListAssignedTasksInput{
		UserID:   userID,
		Status:   query.Status,
		Priority: query.Priority,
		DueDate:  query.DueDate,
		Search:   query.Search,
		Sort:     query.Sort,
		Page:     params.Page,
		PageSize: params.Limit,
	})
	if err != nil {
		respondTaskError(c, err)
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
