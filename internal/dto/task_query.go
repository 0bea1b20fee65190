package dto

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskflowhq/taskflow-api/internal/models"
)

// TaskListQuery holds the optional filter, search and sort parameters of
// the task list endpoints.
type TaskListQuery struct {
	Status   *models.TaskStatus
	Priority *models.TaskPriority
	DueDate  *time.Time
	Search   string
	Sort     string
}

// ParseTaskListQuery reads filter parameters from the request. Enum and
// date values are validated here; field errors are returned for a 422
// response so the query builder only ever sees valid values.
func ParseTaskListQuery(c *gin.Context) (TaskListQuery, map[string]string) {
	query := TaskListQuery{
		Search: c.Query("search"),
		Sort:   c.Query("sort"),
	}
	fieldErrors := make(map[string]string)

	if raw := c.Query("status"); raw != "" {
		status := models.TaskStatus(raw)
		if !status.IsValid() {
			fieldErrors["status"] = "must be one of: todo, in_progress, done"
		} else {
			query.Status = &status
		}
	}

	if raw := c.Query("priority"); raw != "" {
		priority := models.TaskPriority(raw)
		if !priority.IsValid() {
			fieldErrors["priority"] = "must be one of: low, medium, high"
		} else {
			query.Priority = &priority
		}
	}

	if raw := c.Query("due_date"); raw != "" {
		day, err := time.Parse("2006-01-02", raw)
		if err != nil {
			fieldErrors["due_date"] = "must be a date in YYYY-MM-DD format"
		} else {
			query.DueDate = &day
		}
	}

	if len(fieldErrors) > 0 {
		return query, fieldErrors
	}
	return query, nil
}
