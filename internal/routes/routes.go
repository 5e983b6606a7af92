package routes

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/taskdesk/taskdesk-api/internal/auth"
	"github.com/taskdesk/taskdesk-api/internal/config"
	"github.com/taskdesk/taskdesk-api/internal/constants"
	apierrors "github.com/taskdesk/taskdesk-api/internal/errors"
	"github.com/taskdesk/taskdesk-api/internal/handlers"
	"github.com/taskdesk/taskdesk-api/internal/middleware"
	"github.com/taskdesk/taskdesk-api/internal/repository"
	"github.com/taskdesk/taskdesk-api/internal/services"
	"gorm.io/gorm"
)

// NewSessionStore returns a Redis-backed store when REDIS_HOST is set and a
// signed cookie store otherwise.
func NewSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	if cfg.RedisHost != "" {
		redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
		rs, err := redisStore.NewStore(
			10,        // Redis pool size
			"tcp",     // network type
			redisAddr, // Redis address from config
			"",        // password (empty = no password)
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis store: %w", err)
		}
		log.Printf("Using Redis session store at %s", redisAddr)
		store = rs
	} else {
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   constants.SessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}

// NewRouter wires repositories, services and handlers into a gin engine.
func NewRouter(cfg *config.Config, db *gorm.DB, store sessions.Store) *gin.Engine {
	r := gin.Default()

	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if cfg.ClientURL == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = []string{cfg.ClientURL}
		corsConfig.AllowCredentials = true
	}
	r.Use(cors.New(corsConfig))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Services
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	authService := services.NewAuthService(userRepo, tokens, cfg.AdminInviteToken)
	taskService := services.NewTaskService(taskRepo, userRepo)
	dashboardService := services.NewDashboardService(taskRepo)
	userService := services.NewUserService(userRepo, taskRepo)
	reportService := services.NewReportService(taskRepo, userService)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService, dashboardService)
	userHandler := handlers.NewUserHandler(userService)
	reportHandler := handlers.NewReportHandler(reportService)

	requireAuth := middleware.RequireAuth(authService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			log.Printf("Health check failed: %v", err)
			apierrors.ServiceUnavailable(c, "Database unavailable")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Task Management API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/logout", requireAuth, authHandler.Logout)
			authRoutes.GET("/profile", requireAuth, authHandler.GetProfile)
			authRoutes.PUT("/profile", requireAuth, authHandler.UpdateProfile)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.GET("/dashboard-data", middleware.RequireAdmin(), taskHandler.DashboardData)
			tasks.GET("/user-dashboard-data", taskHandler.UserDashboardData)
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", middleware.RequireTaskID(), taskHandler.GetTask)
			tasks.PUT("/:id", middleware.RequireTaskID(), taskHandler.UpdateTask)
			tasks.DELETE("/:id", middleware.RequireTaskID(), middleware.RequireAdmin(), taskHandler.DeleteTask)
			tasks.PUT("/:id/status", middleware.RequireTaskID(), taskHandler.UpdateTaskStatus)
			tasks.PUT("/:id/todo", middleware.RequireTaskID(), taskHandler.UpdateTaskChecklist)
		}

		// User administration (admin only)
		users := api.Group("/users")
		users.Use(requireAuth, middleware.RequireAdmin())
		{
			users.GET("", userHandler.ListUsers)
			users.GET("/:id", middleware.RequireUserID(), userHandler.GetUser)
			users.DELETE("/:id", middleware.RequireUserID(), userHandler.DeleteUser)
		}

		// Report exports (admin only)
		reports := api.Group("/reports")
		reports.Use(requireAuth, middleware.RequireAdmin())
		{
			reports.GET("/export/tasks", reportHandler.ExportTasks)
			reports.GET("/export/users", reportHandler.ExportUsers)
		}
	}

	return r
}
