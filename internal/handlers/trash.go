package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskflowhq/taskflow-api/internal/dto"
	apierrors "github.com/taskflowhq/taskflow-api/internal/errors"
	"github.com/taskflowhq/taskflow-api/internal/middleware"
	"github.com/taskflowhq/taskflow-api/internal/utils"
)

// TrashedTasks lists the principal's soft-deleted tasks
func (h *TaskHandler) TrashedTasks(c *gin.Context) {
	principalID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)

	tasks, total, err := h.taskService.ListTrashedTasks(principalID, params.Page, params.Limit)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch trashed tasks")
		return
	}

	meta := utils.BuildPaginationMeta(params, len(tasks), total)
	links := utils.BuildPaginationLinks(c, params, meta.LastPage)

	c.JSON(http.StatusOK, dto.NewPaginatedResponse(
		dto.ToTaskDTOs(tasks),
		"Trashed tasks fetched successfully.",
		http.StatusOK,
		links,
		meta,
	))
}

// RestoreTask brings a trashed task back to the active state
func (h *TaskHandler) RestoreTask(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.NotFound(c, "Task not found")
		return
	}

	task, err := h.taskService.RestoreTask(taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewResponse(
		dto.ToTaskDTO(*task),
		"Task has been restored successfully.",
		http.StatusOK,
	))
}

// ForceDeleteTask permanently removes a trashed task and its assignments
func (h *TaskHandler) ForceDeleteTask(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.NotFound(c, "Task not found")
		return
	}

	if err := h.taskService.ForceDeleteTask(taskID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewResponse(nil, "Task has been permanently deleted.", http.StatusOK))
}
