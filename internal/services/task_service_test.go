package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/taskflowhq/taskflow-api/internal/models"
	"github.com/taskflowhq/taskflow-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type TaskServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *TaskService
	user    *models.User
}

func (s *TaskServiceTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	s.Require().NoError(err)

	err = db.AutoMigrate(&models.User{}, &models.Task{}, &models.TaskAssignment{})
	s.Require().NoError(err)

	s.db = db

	taskRepo := repository.NewTaskRepository(db)
	userRepo := repository.NewUserRepository(db)
	s.service = NewTaskService(taskRepo, userRepo)

	hash, err := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
	s.Require().NoError(err)

	s.user = &models.User{Name: "Owner", Email: "owner@example.com", PasswordHash: string(hash)}
	s.Require().NoError(db.Create(s.user).Error)
}

func (s *TaskServiceTestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.Close()
}

func (s *TaskServiceTestSuite) createTask(title string) *models.Task {
	task, err := s.service.CreateTask(CreateTaskInput{
		Title:     title,
		CreatorID: s.user.ID,
	})
	s.Require().NoError(err)
	return task
}

func (s *TaskServiceTestSuite) TestCreateTask_TrimsTitle() {
	task := s.createTask("  Padded title  ")
	s.Equal("Padded title", task.Title)
}

func (s *TaskServiceTestSuite) TestCreateTask_BlankTitle() {
	_, err := s.service.CreateTask(CreateTaskInput{
		Title:     "   ",
		CreatorID: s.user.ID,
	})
	s.ErrorIs(err, ErrTitleRequired)
}

func (s *TaskServiceTestSuite) TestCreateTask_TitleTooLong() {
	long := make([]byte, 151)
	for i := range long {
		long[i] = 'a'
	}

	_, err := s.service.CreateTask(CreateTaskInput{
		Title:     string(long),
		CreatorID: s.user.ID,
	})
	s.ErrorIs(err, ErrTitleTooLong)
}

func (s *TaskServiceTestSuite) TestCreateTask_Defaults() {
	task := s.createTask("Defaults")
	s.Equal(models.TaskStatusTodo, task.Status)
	s.Equal(models.TaskPriorityMedium, task.Priority)
	s.Nil(task.DueDate)
	s.Equal(models.TaskStateActive, task.State())
}

func (s *TaskServiceTestSuite) TestUpdateTask_BlankTitleRejected() {
	task := s.createTask("Original")

	blank := "  "
	_, err := s.service.UpdateTask(task.ID, UpdateTaskInput{Title: &blank})
	s.ErrorIs(err, ErrTitleRequired)

	reloaded, err := s.service.GetTask(task.ID)
	s.Require().NoError(err)
	s.Equal("Original", reloaded.Title)
}

func (s *TaskServiceTestSuite) TestUpdateTask_ClearDueDate() {
	due := time.Now().Add(48 * time.Hour)
	task, err := s.service.CreateTask(CreateTaskInput{
		Title:     "With due date",
		DueDate:   &due,
		CreatorID: s.user.ID,
	})
	s.Require().NoError(err)
	s.Require().NotNil(task.DueDate)

	updated, err := s.service.UpdateTask(task.ID, UpdateTaskInput{ClearDueDate: true})
	s.Require().NoError(err)
	s.Nil(updated.DueDate)
}

func (s *TaskServiceTestSuite) TestLifecycle_DeleteThenRestore() {
	task := s.createTask("Lifecycle")

	s.Require().NoError(s.service.DeleteTask(task.ID))

	// Trashed tasks are invisible to normal reads.
	_, err := s.service.GetTask(task.ID)
	s.ErrorIs(err, ErrTaskNotFound)

	restored, err := s.service.RestoreTask(task.ID)
	s.Require().NoError(err)
	s.Equal(models.TaskStateActive, restored.State())

	reloaded, err := s.service.GetTask(task.ID)
	s.Require().NoError(err)
	s.Equal("Lifecycle", reloaded.Title)
}

func (s *TaskServiceTestSuite) TestLifecycle_DeleteTwice() {
	task := s.createTask("Delete twice")

	s.Require().NoError(s.service.DeleteTask(task.ID))
	s.ErrorIs(s.service.DeleteTask(task.ID), ErrTaskNotFound)
}

func (s *TaskServiceTestSuite) TestLifecycle_RestoreActiveTask() {
	task := s.createTask("Still active")

	_, err := s.service.RestoreTask(task.ID)
	s.ErrorIs(err, ErrTaskNotFound)
}

func (s *TaskServiceTestSuite) TestLifecycle_ForceDeleteRequiresTrash() {
	task := s.createTask("Not trashed")

	s.ErrorIs(s.service.ForceDeleteTask(task.ID), ErrTaskNotFound)

	s.Require().NoError(s.service.DeleteTask(task.ID))
	s.Require().NoError(s.service.ForceDeleteTask(task.ID))

	var count int64
	s.Require().NoError(s.db.Unscoped().Model(&models.Task{}).Where("id = ?", task.ID).Count(&count).Error)
	s.Zero(count)
}

func (s *TaskServiceTestSuite) TestListTrashedTasks_CreatorOnly() {
	other := &models.User{Name: "Other", Email: "other@example.com", PasswordHash: "x"}
	s.Require().NoError(s.db.Create(other).Error)

	mine := s.createTask("Mine")
	theirs, err := s.service.CreateTask(CreateTaskInput{Title: "Theirs", CreatorID: other.ID})
	s.Require().NoError(err)

	s.Require().NoError(s.service.DeleteTask(mine.ID))
	s.Require().NoError(s.service.DeleteTask(theirs.ID))

	tasks, total, err := s.service.ListTrashedTasks(s.user.ID, 1, 10)
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Require().Len(tasks, 1)
	s.Equal(mine.ID, tasks[0].ID)
}

func (s *TaskServiceTestSuite) TestPurgeExpiredTrash() {
	old := s.createTask("Old trash")
	fresh := s.createTask("Fresh trash")
	active := s.createTask("Active")

	s.Require().NoError(s.service.DeleteTask(old.ID))
	s.Require().NoError(s.service.DeleteTask(fresh.ID))

	// Age the first task's deletion timestamp past the cutoff.
	aged := time.Now().Add(-72 * time.Hour)
	s.Require().NoError(s.db.Unscoped().Model(&models.Task{}).
		Where("id = ?", old.ID).
		Update("deleted_at", aged).Error)

	purged, err := s.service.PurgeExpiredTrash(time.Now().Add(-24 * time.Hour))
	s.Require().NoError(err)
	s.Equal(1, purged)

	var count int64
	s.Require().NoError(s.db.Unscoped().Model(&models.Task{}).Where("id = ?", old.ID).Count(&count).Error)
	s.Zero(count)

	// The fresh trash and the active task are untouched.
	_, err = s.service.RestoreTask(fresh.ID)
	s.NoError(err)
	_, err = s.service.GetTask(active.ID)
	s.NoError(err)
}

func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}
