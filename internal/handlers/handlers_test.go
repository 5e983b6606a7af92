package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"github.com/taskdesk/taskdesk-api/internal/auth"
	"github.com/taskdesk/taskdesk-api/internal/constants"
	"github.com/taskdesk/taskdesk-api/internal/middleware"
	"github.com/taskdesk/taskdesk-api/internal/models"
	"github.com/taskdesk/taskdesk-api/internal/repository"
	"github.com/taskdesk/taskdesk-api/internal/services"
	"github.com/taskdesk/taskdesk-api/internal/testutil"
	"gorm.io/gorm"
)

const testInviteToken = "admin-invite"

// HandlerTestSuite wires the real services to an in-memory database.
type HandlerTestSuite struct {
	suite.Suite
	db          *gorm.DB
	router      *gin.Engine
	authService *services.AuthService
	taskService *services.TaskService

	admin       *models.User
	adminToken  string
	member      *models.User
	memberToken string
	otherToken  string
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db, err := testutil.NewInMemoryDB()
	suite.Require().NoError(err)
	suite.db = db

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	tokens := auth.NewTokenManager("handler-test-secret", time.Hour)

	suite.authService = services.NewAuthService(userRepo, tokens, testInviteToken)
	suite.taskService = services.NewTaskService(taskRepo, userRepo)
	userService := services.NewUserService(userRepo, taskRepo)

	authHandler := NewAuthHandler(suite.authService)
	taskHandler := NewTaskHandler(suite.taskService, services.NewDashboardService(taskRepo))
	userHandler := NewUserHandler(userService)
	reportHandler := NewReportHandler(services.NewReportService(taskRepo, userService))

	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))
	requireAuth := middleware.RequireAuth(suite.authService)

	api := r.Group("/api")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", requireAuth, authHandler.Logout)
	api.GET("/auth/profile", requireAuth, authHandler.GetProfile)
	api.PUT("/auth/profile", requireAuth, authHandler.UpdateProfile)

	tasks := api.Group("/tasks", requireAuth)
	tasks.GET("/dashboard-data", middleware.RequireAdmin(), taskHandler.DashboardData)
	tasks.GET("/user-dashboard-data", taskHandler.UserDashboardData)
	tasks.GET("", taskHandler.ListTasks)
	tasks.POST("", taskHandler.CreateTask)
	tasks.GET("/:id", middleware.RequireTaskID(), taskHandler.GetTask)
	tasks.PUT("/:id", middleware.RequireTaskID(), taskHandler.UpdateTask)
	tasks.DELETE("/:id", middleware.RequireTaskID(), taskHandler.DeleteTask)
	tasks.PUT("/:id/status", middleware.RequireTaskID(), taskHandler.UpdateTaskStatus)
	tasks.PUT("/:id/todo", middleware.RequireTaskID(), taskHandler.UpdateTaskChecklist)

	users := api.Group("/users", requireAuth)
	users.GET("", userHandler.ListUsers)
	users.GET("/:id", middleware.RequireUserID(), userHandler.GetUser)
	users.DELETE("/:id", middleware.RequireUserID(), userHandler.DeleteUser)

	api.GET("/reports/export/tasks", requireAuth, reportHandler.ExportTasks)
	api.GET("/reports/export/users", requireAuth, reportHandler.ExportUsers)

	suite.router = r

	admin := suite.registerUser("Ada", "ada@example.com", testInviteToken)
	suite.admin, suite.adminToken = admin.User, admin.Token
	member := suite.registerUser("Mel", "mel@example.com", "")
	suite.member, suite.memberToken = member.User, member.Token
	suite.otherToken = suite.registerUser("Oz", "oz@example.com", "").Token
}

func (suite *HandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *HandlerTestSuite) registerUser(name, email, invite string) *services.Session {
	session, err := suite.authService.Register(services.RegisterInput{
		Name:             name,
		Email:            email,
		Password:         "password1",
		AdminInviteToken: invite,
	})
	suite.Require().NoError(err)
	return session
}

// do performs a request with an optional bearer token and JSON body
func (suite *HandlerTestSuite) do(method, path, token string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) decode(w *httptest.ResponseRecorder, v interface{}) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), v))
}

func (suite *HandlerTestSuite) errorCode(w *httptest.ResponseRecorder) string {
	var body struct {
		Code string `json:"code"`
	}
	suite.decode(w, &body)
	return body.Code
}
