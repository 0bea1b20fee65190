package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/taskflowhq/taskflow-api/internal/constants"
	"github.com/taskflowhq/taskflow-api/internal/database"
	"github.com/taskflowhq/taskflow-api/internal/models"
	"github.com/taskflowhq/taskflow-api/internal/repository"
	"github.com/taskflowhq/taskflow-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TrashHandlerTestSuite covers the soft-delete lifecycle endpoints
type TrashHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *TaskHandler
}

func (suite *TrashHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.TaskAssignment{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	taskRepo := repository.NewTaskRepository(suite.db)
	userRepo := repository.NewUserRepository(suite.db)
	suite.handler = NewTaskHandler(services.NewTaskService(taskRepo, userRepo))

	gin.SetMode(gin.TestMode)
}

func (suite *TrashHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TrashHandlerTestSuite) createTestUser(email string) *models.User {
	user := &models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func (suite *TrashHandlerTestSuite) createTestTask(title string, creatorID uint64) *models.Task {
	task := &models.Task{
		Title:       title,
		Description: "Test Description",
		CreatorID:   creatorID,
	}
	suite.db.Create(task)
	return task
}

func (suite *TrashHandlerTestSuite) createContext(method, url string, userID uint64, idParam string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)
	if idParam != "" {
		c.Params = gin.Params{{Key: "id", Value: idParam}}
	}

	return c, w
}

// TestRestoreTask_RoundTrip verifies delete then restore yields the task
// back unchanged, minus an advanced updated_at.
func (suite *TrashHandlerTestSuite) TestRestoreTask_RoundTrip() {
	user := suite.createTestUser("test@example.com")
	task := suite.createTestTask("Round trip", user.ID)
	suite.db.Delete(task)

	c, w := suite.createContext("POST", "/api/v1/tasks/1/restore", user.ID, "1")
	suite.handler.RestoreTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var restored models.Task
	suite.Require().NoError(suite.db.First(&restored, task.ID).Error)
	assert.False(suite.T(), restored.DeletedAt.Valid)
	assert.Equal(suite.T(), task.Title, restored.Title)
	assert.Equal(suite.T(), models.TaskStateActive, restored.State())
	assert.True(suite.T(), restored.UpdatedAt.After(task.UpdatedAt) || restored.UpdatedAt.Equal(task.UpdatedAt))
}

// TestRestoreTask_KeepsAssignments verifies assignees survive the trash
func (suite *TrashHandlerTestSuite) TestRestoreTask_KeepsAssignments() {
	user := suite.createTestUser("test@example.com")
	assignee := suite.createTestUser("assignee@example.com")
	task := suite.createTestTask("Task", user.ID)
	suite.db.Create(&models.TaskAssignment{TaskID: task.ID, UserID: assignee.ID})
	suite.db.Delete(task)

	c, w := suite.createContext("POST", "/api/v1/tasks/1/restore", user.ID, "1")
	suite.handler.RestoreTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.TaskAssignment{}).Where("task_id = ?", task.ID).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

// TestRestoreTask_NotTrashed rejects restoring an active task
func (suite *TrashHandlerTestSuite) TestRestoreTask_NotTrashed() {
	user := suite.createTestUser("test@example.com")
	suite.createTestTask("Active task", user.ID)

	c, w := suite.createContext("POST", "/api/v1/tasks/1/restore", user.ID, "1")
	suite.handler.RestoreTask(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestForceDeleteTask_Success erases a trashed task and its assignments
func (suite *TrashHandlerTestSuite) TestForceDeleteTask_Success() {
	user := suite.createTestUser("test@example.com")
	assignee := suite.createTestUser("assignee@example.com")
	task := suite.createTestTask("Doomed", user.ID)
	suite.db.Create(&models.TaskAssignment{TaskID: task.ID, UserID: assignee.ID})
	suite.db.Delete(task)

	c, w := suite.createContext("DELETE", "/api/v1/tasks/1/force-delete", user.ID, "1")
	suite.handler.ForceDeleteTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var taskCount, assignmentCount int64
	suite.db.Unscoped().Model(&models.Task{}).Where("id = ?", task.ID).Count(&taskCount)
	suite.db.Model(&models.TaskAssignment{}).Where("task_id = ?", task.ID).Count(&assignmentCount)
	assert.Equal(suite.T(), int64(0), taskCount)
	assert.Equal(suite.T(), int64(0), assignmentCount)
}

// TestForceDeleteTask_ActiveTask verifies force-delete is unreachable from
// the active state
func (suite *TrashHandlerTestSuite) TestForceDeleteTask_ActiveTask() {
	user := suite.createTestUser("test@example.com")
	task := suite.createTestTask("Still active", user.ID)

	c, w := suite.createContext("DELETE", "/api/v1/tasks/1/force-delete", user.ID, "1")
	suite.handler.ForceDeleteTask(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	// The task is untouched
	var found models.Task
	assert.NoError(suite.T(), suite.db.First(&found, task.ID).Error)
}

// TestTrashedTasks_CreatorOnly verifies only the creator sees their trash
func (suite *TrashHandlerTestSuite) TestTrashedTasks_CreatorOnly() {
	creator := suite.createTestUser("creator@example.com")
	assignee := suite.createTestUser("assignee@example.com")

	mine := suite.createTestTask("My trashed", creator.ID)
	suite.db.Create(&models.TaskAssignment{TaskID: mine.ID, UserID: assignee.ID})
	suite.db.Delete(mine)

	theirs := suite.createTestTask("Their trashed", assignee.ID)
	suite.db.Delete(theirs)

	c, w := suite.createContext("GET", "/api/v1/tasks/trashed", creator.ID, "")
	suite.handler.TrashedTasks(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	items := response["data"].([]interface{})
	suite.Require().Len(items, 1)
	assert.Equal(suite.T(), "My trashed", items[0].(map[string]interface{})["title"])

	// The assignee's own trash listing shows only their creation
	c, w = suite.createContext("GET", "/api/v1/tasks/trashed", assignee.ID, "")
	suite.handler.TrashedTasks(c)

	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	items = response["data"].([]interface{})
	suite.Require().Len(items, 1)
	assert.Equal(suite.T(), "Their trashed", items[0].(map[string]interface{})["title"])
}

// TestTrashHandlerTestSuite runs the test suite
func TestTrashHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TrashHandlerTestSuite))
}
