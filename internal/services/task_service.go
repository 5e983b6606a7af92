package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/taskdesk/taskdesk-api/internal/access"
	"github.com/taskdesk/taskdesk-api/internal/constants"
	"github.com/taskdesk/taskdesk-api/internal/models"
	"github.com/taskdesk/taskdesk-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrTaskPermissionDenied = errors.New("user does not have permission to access this task")
	ErrAdminOnly            = errors.New("only administrators can perform this action")
	ErrTitleRequired        = errors.New("title is required")
	ErrTitleTooLong         = errors.New("title is too long")
	ErrAssigneesRequired    = errors.New("assignedTo must contain at least one user ID")
	ErrInvalidTaskAssignee  = errors.New("one or more assigned users do not exist")
	ErrInvalidPriority      = errors.New("priority must be one of Low, Medium, High")
	ErrInvalidStatus        = errors.New("status must be one of Pending, In Progress, Completed")
	ErrChecklistItemEmpty   = errors.New("checklist items require a task description")
)

// TaskService is the task lifecycle engine: it authorizes and applies every
// task mutation.
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	now      func() time.Time
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		now:      time.Now,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title         string
	Description   string
	Priority      models.TaskPriority
	DueDate       *time.Time
	AssignedTo    []uint64
	Attachments   []string
	TodoChecklist []models.TodoItem
}

// UpdateTaskInput carries a partial update. Empty strings, nil pointers and
// nil slices keep the stored value.
type UpdateTaskInput struct {
	Title         string
	Description   string
	Priority      models.TaskPriority
	Status        models.TaskStatus
	DueDate       *time.Time
	AssignedTo    []uint64
	Attachments   []string
	TodoChecklist []models.TodoItem
}

// ListTasksResult is a role-scoped task list with status counts over the
// unfiltered scope.
type ListTasksResult struct {
	Tasks   []models.Task
	Summary StatusSummary
}

// ListTasks returns the caller's visible tasks, optionally filtered by status
func (s *TaskService) ListTasks(caller access.Caller, status *models.TaskStatus) (*ListTasksResult, error) {
	if status != nil && !status.Valid() {
		return nil, ErrInvalidStatus
	}

	scope := access.ScopeUserID(caller)
	tasks, err := s.taskRepo.List(repository.TaskFilter{
		AssignedUserID: scope,
		Status:         status,
		NewestFirst:    true,
		WithAssignees:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	scoped := tasks
	if status != nil {
		scoped, err = s.taskRepo.List(repository.TaskFilter{AssignedUserID: scope})
		if err != nil {
			return nil, fmt.Errorf("failed to count tasks: %w", err)
		}
	}

	return &ListTasksResult{
		Tasks:   tasks,
		Summary: summarizeStatuses(scoped),
	}, nil
}

// GetTask returns a task the caller is allowed to see
func (s *TaskService) GetTask(caller access.Caller, taskID uint64) (*models.Task, error) {
	task, err := s.findTask(taskID, repository.PreloadAssignees, repository.PreloadAssigneeUsers, repository.PreloadCreator)
	if err != nil {
		return nil, err
	}

	if !access.CanViewTask(caller, task) {
		return nil, ErrTaskPermissionDenied
	}

	return task, nil
}

// CreateTask validates input and stores a new pending task. Admins assign
// freely; anyone else is assigned to their own task.
func (s *TaskService) CreateTask(caller access.Caller, input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if len(title) > constants.MaxTitleLength {
		return nil, ErrTitleTooLong
	}

	priority := input.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}
	if !priority.Valid() {
		return nil, ErrInvalidPriority
	}

	if err := validateChecklist(input.TodoChecklist); err != nil {
		return nil, err
	}

	var assignees []uint64
	if access.CanMutateAsAdmin(caller) {
		if len(input.AssignedTo) == 0 {
			return nil, ErrAssigneesRequired
		}
		assignees = uniqueUint64(input.AssignedTo)
		if err := s.ensureUsersExist(assignees); err != nil {
			return nil, err
		}
	} else {
		assignees = []uint64{caller.UserID}
	}

	dueDate := s.now().Add(constants.DefaultDueDateOffset)
	if input.DueDate != nil {
		dueDate = *input.DueDate
	}

	task := &models.Task{
		Title:         title,
		Description:   input.Description,
		Priority:      priority,
		Status:        models.TaskStatusPending,
		DueDate:       dueDate,
		CreatorID:     caller.UserID,
		Attachments:   append([]string{}, input.Attachments...),
		TodoChecklist: newChecklist(input.TodoChecklist),
		Progress:      0,
	}

	if err := s.taskRepo.Create(task, assignees); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.reload(task.ID)
}

// UpdateTask merges non-empty input fields over the stored task
func (s *TaskService) UpdateTask(caller access.Caller, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.findTask(taskID, repository.PreloadAssignees)
	if err != nil {
		return nil, err
	}

	if !access.CanMutateOwnTask(caller, task) {
		return nil, ErrTaskPermissionDenied
	}

	if input.Priority != "" && !input.Priority.Valid() {
		return nil, ErrInvalidPriority
	}
	if input.Status != "" && !input.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if err := validateChecklist(input.TodoChecklist); err != nil {
		return nil, err
	}

	if title := strings.TrimSpace(input.Title); title != "" {
		if len(title) > constants.MaxTitleLength {
			return nil, ErrTitleTooLong
		}
		task.Title = title
	}
	if input.Description != "" {
		task.Description = input.Description
	}
	if input.Priority != "" {
		task.Priority = input.Priority
	}
	if input.DueDate != nil {
		task.DueDate = *input.DueDate
	}
	if input.Attachments != nil {
		task.Attachments = append([]string{}, input.Attachments...)
	}
	if input.TodoChecklist != nil {
		applyChecklist(task, input.TodoChecklist)
	}
	if input.Status != "" {
		overrideStatus(task, input.Status)
	}

	assignees, err := s.resolveUpdatedAssignees(caller, input.AssignedTo)
	if err != nil {
		return nil, err
	}

	if err := s.taskRepo.Update(task, assignees); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.reload(task.ID)
}

// UpdateTaskStatus sets the status directly (override path)
func (s *TaskService) UpdateTaskStatus(caller access.Caller, taskID uint64, status models.TaskStatus) (*models.Task, error) {
	task, err := s.findTask(taskID, repository.PreloadAssignees)
	if err != nil {
		return nil, err
	}

	if !access.CanMutateOwnTask(caller, task) {
		return nil, ErrTaskPermissionDenied
	}

	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	overrideStatus(task, status)

	if err := s.taskRepo.Update(task, nil); err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	return s.reload(task.ID)
}

// UpdateTaskChecklist replaces the checklist and derives progress and status
func (s *TaskService) UpdateTaskChecklist(caller access.Caller, taskID uint64, items []models.TodoItem) (*models.Task, error) {
	task, err := s.findTask(taskID, repository.PreloadAssignees)
	if err != nil {
		return nil, err
	}

	if !access.CanMutateOwnTask(caller, task) {
		return nil, ErrTaskPermissionDenied
	}

	if err := validateChecklist(items); err != nil {
		return nil, err
	}

	applyChecklist(task, items)

	if err := s.taskRepo.Update(task, nil); err != nil {
		return nil, fmt.Errorf("failed to update checklist: %w", err)
	}

	return s.reload(task.ID)
}

// DeleteTask hard deletes a task. Admin only.
func (s *TaskService) DeleteTask(caller access.Caller, taskID uint64) error {
	if !access.CanMutateAsAdmin(caller) {
		return ErrAdminOnly
	}

	if _, err := s.findTask(taskID); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// resolveUpdatedAssignees decides the assignee list written by UpdateTask.
// A nil result keeps the stored assignees.
func (s *TaskService) resolveUpdatedAssignees(caller access.Caller, requested []uint64) ([]uint64, error) {
	if !access.CanMutateAsAdmin(caller) {
		return []uint64{caller.UserID}, nil
	}

	if len(requested) == 0 {
		return nil, nil
	}

	assignees := uniqueUint64(requested)
	if err := s.ensureUsersExist(assignees); err != nil {
		if errors.Is(err, ErrInvalidTaskAssignee) {
			return nil, nil
		}
		return nil, err
	}
	return assignees, nil
}

// findTask loads a task, translating a miss into ErrTaskNotFound
func (s *TaskService) findTask(taskID uint64, preload ...string) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, preload...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// reload fetches a task with assignee and creator details
func (s *TaskService) reload(taskID uint64) (*models.Task, error) {
	return s.findTask(taskID, repository.PreloadAssignees, repository.PreloadAssigneeUsers, repository.PreloadCreator)
}

// ensureUsersExist verifies every ID references a stored user
func (s *TaskService) ensureUsersExist(ids []uint64) error {
	count, err := s.userRepo.CountByIDs(ids)
	if err != nil {
		return fmt.Errorf("failed to verify users: %w", err)
	}
	if int(count) != len(ids) {
		return ErrInvalidTaskAssignee
	}
	return nil
}

func validateChecklist(items []models.TodoItem) error {
	for _, item := range items {
		if strings.TrimSpace(item.Text) == "" {
			return ErrChecklistItemEmpty
		}
	}
	return nil
}

// uniqueUint64 removes duplicate values from a slice of uint64, keeping order
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
