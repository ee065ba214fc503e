package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/yukikurage/task-tracker-api/internal/config"
	"github.com/yukikurage/task-tracker-api/internal/constants"
	"github.com/yukikurage/task-tracker-api/internal/database"
	"github.com/yukikurage/task-tracker-api/internal/handlers"
	"github.com/yukikurage/task-tracker-api/internal/middleware"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/repository"
	"github.com/yukikurage/task-tracker-api/internal/services"
	"github.com/yukikurage/task-tracker-api/internal/utils"
)

func main() {
	// A missing .env file is fine; the environment still applies
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if cfg.SeedDemoData {
		if err := database.SeedDemoData(db); err != nil {
			log.Fatalf("Failed to seed demo data: %v", err)
		}
	}

	// Initialize repositories and services
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	entryRepo := repository.NewTimeEntryRepository(db)

	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	}

	authService := services.NewAuthService(userRepo)
	taskService := services.NewTaskService(taskRepo, entryRepo, userRepo, aiService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)
	statsHandler := handlers.NewStatsHandler(taskService)

	// Initialize Gin router
	r := gin.Default()
	r.Use(middleware.RequestID())

	store, err := newSessionStore(cfg)
	if err != nil {
		log.Fatalf("Failed to create session store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == gin.ReleaseMode
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   constants.SessionMaxAge,
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Task Tracker API is running",
		})
	})

	requireAuth := middleware.RequireAuth(authService)
	requireManager := middleware.RequireRole(models.RoleManager)
	requireTask := middleware.RequireTaskAccess(taskService)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", requireAuth, authHandler.GetCurrentUser)
		}

		users := api.Group("/users")
		users.Use(requireAuth)
		{
			users.GET("", authHandler.ListUsers)
			users.POST("", requireManager, authHandler.CreateUser)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", requireManager, taskHandler.CreateTask)
			tasks.POST("/suggest", requireManager, taskHandler.SuggestTasks)
			tasks.GET("/:id", requireTask, taskHandler.GetTask)
			tasks.PATCH("/:id", requireTask, taskHandler.UpdateTask)
			tasks.DELETE("/:id", requireTask, taskHandler.DeleteTask)
			tasks.POST("/:id/close", requireTask, taskHandler.CloseTask)
			tasks.POST("/:id/approve", requireManager, requireTask, taskHandler.ApproveTask)
			tasks.POST("/:id/reopen", requireManager, requireTask, taskHandler.ReopenTask)
			tasks.GET("/:id/time-entries", requireTask, taskHandler.ListTimeEntries)
			tasks.POST("/:id/time-entries", requireTask, taskHandler.AddTimeEntry)
		}

		stats := api.Group("/stats")
		stats.Use(requireAuth)
		{
			stats.GET("/tasks", statsHandler.TaskStats)
			stats.GET("/me", statsHandler.MyTaskStats)
			stats.GET("/users", requireManager, statsHandler.UserTime)
			stats.GET("/task-time", requireManager, statsHandler.TaskTime)
			stats.GET("/trend", statsHandler.Trend)
		}
	}

	// Start server
	addr := ":" + cfg.Port
	log.Printf("Server starting on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// newSessionStore uses Redis when REDIS_HOST is set and signed cookies
// otherwise. Release builds never run with the built-in secret.
func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	secret := cfg.SessionSecret
	if secret == config.DefaultSessionSecret && cfg.GinMode == gin.ReleaseMode {
		generated, err := utils.GenerateSecret(32)
		if err != nil {
			return nil, err
		}
		log.Println("SESSION_SECRET not set, using a random key; sessions will not survive a restart")
		secret = generated
	}

	if cfg.RedisHost == "" {
		return cookie.NewStore([]byte(secret)), nil
	}

	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	return redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(secret),
	)
}
