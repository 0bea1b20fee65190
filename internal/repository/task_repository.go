package repository

import (
	"strings"
	"time"

	"github.com/taskflowhq/taskflow-api/internal/database"
	"github.com/taskflowhq/taskflow-api/internal/models"
	"github.com/taskflowhq/taskflow-api/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// sortableColumns whitelists the columns a caller may sort by
var sortableColumns = map[string]string{
	"due_date":   "tasks.due_date",
	"created_at": "tasks.created_at",
}

// orderClause resolves the requested sort into an ORDER BY expression.
// Unknown columns fall back to the default ordering.
func orderClause(sort string) string {
	direction := "ASC"
	column := sort
	if strings.HasPrefix(sort, "-") {
		direction = "DESC"
		column = strings.TrimPrefix(sort, "-")
	}

	if col, ok := sortableColumns[column]; ok {
		return col + " " + direction
	}
	return "tasks.created_at DESC"
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds an active task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// FindTrashedByID finds a soft-deleted task by ID
func (r *GormTaskRepository) FindTrashedByID(id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.Unscoped().
		Where("deleted_at IS NOT NULL").
		First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves a visibility-scoped, filtered, sorted page of tasks
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{})

	// Visibility scope, always applied before any filter
	switch {
	case filter.PrincipalID != nil:
		assignmentSubQuery := r.db.Model(&models.TaskAssignment{}).
			Select("1").
			Where("task_assignments.task_id = tasks.id").
			Where("task_assignments.user_id = ?", *filter.PrincipalID)
		query = query.Where("tasks.creator_id = ? OR EXISTS (?)", *filter.PrincipalID, assignmentSubQuery)
	case filter.AssignedUserID != nil:
		assignmentSubQuery := r.db.Model(&models.TaskAssignment{}).
			Select("1").
			Where("task_assignments.task_id = tasks.id").
			Where("task_assignments.user_id = ?", *filter.AssignedUserID)
		query = query.Where("EXISTS (?)", assignmentSubQuery)
	default:
		return []models.Task{}, 0, nil
	}

	// Filters
	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("tasks.priority = ?", *filter.Priority)
	}
	if filter.DueDate != nil {
		day := filter.DueDate
		startOfDay := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		endOfDay := startOfDay.Add(24 * time.Hour)
		query = query.Where("tasks.due_date >= ? AND tasks.due_date < ?", startOfDay, endOfDay)
	}
	if filter.Search != "" {
		term := "%" + filter.Search + "%"
		query = query.Where("tasks.title LIKE ? OR tasks.description LIKE ?", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order(orderClause(filter.Sort))

	if filter.Page > 0 && filter.PageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PaginationParams{
			Page:   filter.Page,
			Limit:  filter.PageSize,
			Offset: (filter.Page - 1) * filter.PageSize,
		}))
	}

	if err := listQuery.
		Preload("Creator").
		Preload("Assignments.User").
		Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// ListTrashed retrieves a page of the creator's soft-deleted tasks
func (r *GormTaskRepository) ListTrashed(creatorID uint64, page, pageSize int) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Unscoped().Model(&models.Task{}).
		Where("tasks.deleted_at IS NOT NULL").
		Where("tasks.creator_id = ?", creatorID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("tasks.deleted_at DESC")
	if page > 0 && pageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PaginationParams{
			Page:   page,
			Limit:  pageSize,
			Offset: (page - 1) * pageSize,
		}))
	}

	if err := listQuery.Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete soft deletes a task. Assignment rows are kept so a restored task
// comes back with its assignees intact.
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Task{}, id).Error
}

// Restore clears the soft-delete marker of a trashed task
func (r *GormTaskRepository) Restore(id uint64) error {
	return r.db.Unscoped().Model(&models.Task{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Update("deleted_at", nil).Error
}

// ForceDelete permanently removes a task and its assignment rows
func (r *GormTaskRepository) ForceDelete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskAssignment{}).Error; err != nil {
			return err
		}

		return tx.Unscoped().Delete(&models.Task{}, id).Error
	})
}

// AttachUser links a user to a task; attaching an existing pair is a no-op
func (r *GormTaskRepository) AttachUser(taskID, userID uint64) error {
	assignment := models.TaskAssignment{
		TaskID: taskID,
		UserID: userID,
	}

	return r.db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&assignment).Error
}

// AttachTasks links every listed task to a user, idempotent per pair
func (r *GormTaskRepository) AttachTasks(taskIDs []uint64, userID uint64) error {
	assignments := make([]models.TaskAssignment, len(taskIDs))
	for i, taskID := range taskIDs {
		assignments[i] = models.TaskAssignment{
			TaskID: taskID,
			UserID: userID,
		}
	}

	return r.db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&assignments).Error
}

// CountAssignedTasks counts active tasks the user is assigned to
func (r *GormTaskRepository) CountAssignedTasks(userID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.TaskAssignment{}).
		Joins("JOIN tasks ON tasks.id = task_assignments.task_id").
		Where("task_assignments.user_id = ?", userID).
		Where("tasks.deleted_at IS NULL").
		Count(&count).Error
	return count, err
}

// CountActiveByIDs counts how many of the given task IDs reference
// existing, non-trashed tasks
func (r *GormTaskRepository) CountActiveByIDs(taskIDs []uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).
		Where("id IN ?", taskIDs).
		Count(&count).Error
	return count, err
}

// TrashedIDsBefore returns IDs of tasks soft-deleted before the cutoff
func (r *GormTaskRepository) TrashedIDsBefore(cutoff time.Time) ([]uint64, error) {
	var ids []uint64
	err := r.db.Unscoped().Model(&models.Task{}).
		Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).
		Pluck("id", &ids).Error
	return ids, err
}
