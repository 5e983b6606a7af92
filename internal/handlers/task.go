package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskdesk/taskdesk-api/internal/access"
	"github.com/taskdesk/taskdesk-api/internal/dto"
	apierrors "github.com/taskdesk/taskdesk-api/internal/errors"
	"github.com/taskdesk/taskdesk-api/internal/middleware"
	"github.com/taskdesk/taskdesk-api/internal/models"
	"github.com/taskdesk/taskdesk-api/internal/services"
)

type TaskHandler struct {
	taskService      *services.TaskService
	dashboardService *services.DashboardService
}

func NewTaskHandler(taskService *services.TaskService, dashboardService *services.DashboardService) *TaskHandler {
	return &TaskHandler{
		taskService:      taskService,
		dashboardService: dashboardService,
	}
}

// ListTasks returns the caller's visible tasks
// Can filter by status; "All" or an empty value disables the filter
func (h *TaskHandler) ListTasks(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var status *models.TaskStatus
	if raw := c.Query("status"); raw != "" && raw != "All" {
		s := models.TaskStatus(raw)
		status = &s
	}

	result, err := h.taskService.ListTasks(caller, status)
	if err != nil {
		respondTaskError(c, "list tasks", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(*result))
}

// GetTask returns a specific task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(caller, middleware.GetTaskID(c))
	if err != nil {
		respondTaskError(c, "get task", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	type CreateTaskRequest struct {
		Title         string              `json:"title"`
		Description   string              `json:"description"`
		Priority      models.TaskPriority `json:"priority"`
		DueDate       *time.Time          `json:"dueDate"`
		AssignedTo    []uint64            `json:"assignedTo"`
		Attachments   []string            `json:"attachments"`
		TodoChecklist []models.TodoItem   `json:"todoChecklist"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(caller, services.CreateTaskInput{
		Title:         req.Title,
		Description:   req.Description,
		Priority:      req.Priority,
		DueDate:       req.DueDate,
		AssignedTo:    req.AssignedTo,
		Attachments:   req.Attachments,
		TodoChecklist: req.TodoChecklist,
	})
	if err != nil {
		respondTaskError(c, "create task", err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskResponse("Task created successfully", *task))
}

// UpdateTask updates an existing task
// Omitted or empty fields keep their stored values
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Title         string              `json:"title"`
		Description   string              `json:"description"`
		Priority      models.TaskPriority `json:"priority"`
		Status        models.TaskStatus   `json:"status"`
		DueDate       *time.Time          `json:"dueDate"`
		AssignedTo    []uint64            `json:"assignedTo"`
		Attachments   []string            `json:"attachments"`
		TodoChecklist []models.TodoItem   `json:"todoChecklist"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(caller, middleware.GetTaskID(c), services.UpdateTaskInput{
		Title:         req.Title,
		Description:   req.Description,
		Priority:      req.Priority,
		Status:        req.Status,
		DueDate:       req.DueDate,
		AssignedTo:    req.AssignedTo,
		Attachments:   req.Attachments,
		TodoChecklist: req.TodoChecklist,
	})
	if err != nil {
		respondTaskError(c, "update task", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse("Task updated successfully", *task))
}

// UpdateTaskStatus sets a task's status directly
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	type UpdateStatusRequest struct {
		Status models.TaskStatus `json:"status"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTaskStatus(caller, middleware.GetTaskID(c), req.Status)
	if err != nil {
		respondTaskError(c, "update task status", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse("Task status updated", *task))
}

// UpdateTaskChecklist replaces a task's checklist
func (h *TaskHandler) UpdateTaskChecklist(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	type UpdateChecklistRequest struct {
		TodoChecklist []models.TodoItem `json:"todoChecklist"`
	}

	var req UpdateChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	if req.TodoChecklist == nil {
		apierrors.BadRequest(c, "todoChecklist is required")
		return
	}

	task, err := h.taskService.UpdateTaskChecklist(caller, middleware.GetTaskID(c), req.TodoChecklist)
	if err != nil {
		respondTaskError(c, "update checklist", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse("Task checklist updated", *task))
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(caller, middleware.GetTaskID(c)); err != nil {
		respondTaskError(c, "delete task", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

// DashboardData returns statistics over every task
func (h *TaskHandler) DashboardData(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	dashboard, err := h.dashboardService.DashboardData(caller)
	if err != nil {
		respondTaskError(c, "load dashboard", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardDTO(*dashboard))
}

// UserDashboardData returns statistics over the caller's assigned tasks
func (h *TaskHandler) UserDashboardData(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	dashboard, err := h.dashboardService.UserDashboardData(caller)
	if err != nil {
		respondTaskError(c, "load user dashboard", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardDTO(*dashboard))
}

func requireCaller(c *gin.Context) (access.Caller, bool) {
	caller, exists := middleware.GetCaller(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return access.Caller{}, false
	}
	return caller, true
}

func respondTaskError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrTaskPermissionDenied),
		errors.Is(err, services.ErrAdminOnly):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleTooLong),
		errors.Is(err, services.ErrAssigneesRequired),
		errors.Is(err, services.ErrInvalidTaskAssignee),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrChecklistItemEmpty):
		apierrors.BadRequest(c, err.Error())
	default:
		log.Printf("Failed to %s: %v", op, err)
		apierrors.InternalError(c, "")
	}
}
