package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/taskflowhq/taskflow-api/internal/config"
	"github.com/taskflowhq/taskflow-api/internal/database"
	"github.com/taskflowhq/taskflow-api/internal/handlers"
	"github.com/taskflowhq/taskflow-api/internal/middleware"
	"github.com/taskflowhq/taskflow-api/internal/repository"
	"github.com/taskflowhq/taskflow-api/internal/scheduler"
	"github.com/taskflowhq/taskflow-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	// Initialize repositories and services
	taskRepo := repository.NewTaskRepository(database.GetDB())
	userRepo := repository.NewUserRepository(database.GetDB())
	taskService := services.NewTaskService(taskRepo, userRepo)
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, time.Duration(cfg.JWTExpiryHours)*time.Hour)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Start the trash purge job when retention is configured
	scheduler.StartTrashPurge(taskService, cfg.TrashRetentionDays)

	// Initialize Gin router
	r := gin.Default()
	r.Use(cors.Default())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Taskflow API is running",
		})
	})

	// API routes
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.RequireAuth(cfg.JWTSecret), authHandler.Logout)
			auth.GET("/show", middleware.RequireAuth(cfg.JWTSecret), authHandler.Show)
		}

		// Task routes (protected)
		tasks := v1.Group("/tasks")
		tasks.Use(middleware.RequireAuth(cfg.JWTSecret))
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/trashed", taskHandler.TrashedTasks)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
			tasks.POST("/:id/assign", taskHandler.AssignTask)
			tasks.POST("/:id/restore", taskHandler.RestoreTask)
			tasks.DELETE("/:id/force-delete", taskHandler.ForceDeleteTask)
		}

		// User-centric assignment routes (protected)
		users := v1.Group("/users")
		users.Use(middleware.RequireAuth(cfg.JWTSecret))
		{
			users.POST("/:id/assign-tasks", taskHandler.AssignTasksToUser)
			users.GET("/:id/assigned-tasks", taskHandler.AssignedTasks)
			users.GET("/:id/assigned-tasks-count", taskHandler.AssignedTasksCount)
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
