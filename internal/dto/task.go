package dto

import (
	"time"

	"github.com/taskdesk/taskdesk-api/internal/models"
	"github.com/taskdesk/taskdesk-api/internal/services"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID                 uint64              `json:"id"`
	Title              string              `json:"title"`
	Description        string              `json:"description"`
	Priority           models.TaskPriority `json:"priority"`
	Status             models.TaskStatus   `json:"status"`
	DueDate            time.Time           `json:"dueDate"`
	AssignedTo         []UserSummaryDTO    `json:"assignedTo"`
	CreatedBy          uint64              `json:"createdBy"`
	Creator            *UserSummaryDTO     `json:"creator,omitempty"`
	Attachments        []string            `json:"attachments"`
	TodoChecklist      []models.TodoItem   `json:"todoChecklist"`
	Progress           int                 `json:"progress"`
	CompletedTodoCount int                 `json:"completedTodoCount"`
	CreatedAt          time.Time           `json:"createdAt"`
	UpdatedAt          time.Time           `json:"updatedAt"`
}

// StatusSummaryDTO counts the caller's tasks per status
type StatusSummaryDTO struct {
	All             int `json:"all"`
	PendingTasks    int `json:"pendingTasks"`
	InProgressTasks int `json:"inProgressTasks"`
	CompletedTasks  int `json:"completedTasks"`
}

// TaskListResponse represents a role-scoped list of tasks
type TaskListResponse struct {
	Tasks         []TaskDTO        `json:"tasks"`
	StatusSummary StatusSummaryDTO `json:"statusSummary"`
}

// TaskResponse wraps a single task with a message, used by mutations
type TaskResponse struct {
	Message string  `json:"message"`
	Task    TaskDTO `json:"task"`
}

// ToTaskDTO converts a Task model to TaskDTO. Assignees whose user record
// no longer exists are left out of assignedTo.
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:                 task.ID,
		Title:              task.Title,
		Description:        task.Description,
		Priority:           task.Priority,
		Status:             task.Status,
		DueDate:            task.DueDate,
		AssignedTo:         make([]UserSummaryDTO, 0, len(task.Assignments)),
		CreatedBy:          task.CreatorID,
		Attachments:        append([]string{}, task.Attachments...),
		TodoChecklist:      append([]models.TodoItem{}, task.TodoChecklist...),
		Progress:           task.Progress,
		CompletedTodoCount: task.CompletedTodoCount(),
		CreatedAt:          task.CreatedAt,
		UpdatedAt:          task.UpdatedAt,
	}

	// Include creator if preloaded
	if task.Creator.ID != 0 {
		creator := ToUserSummaryDTO(task.Creator)
		dto.Creator = &creator
	}

	for _, assignment := range task.Assignments {
		if assignment.User.ID == 0 {
			continue
		}
		dto.AssignedTo = append(dto.AssignedTo, ToUserSummaryDTO(assignment.User))
	}

	return dto
}

// ToTaskResponse wraps a task DTO with a message
func ToTaskResponse(message string, task models.Task) TaskResponse {
	return TaskResponse{
		Message: message,
		Task:    ToTaskDTO(task),
	}
}

// ToStatusSummaryDTO converts service status counts
func ToStatusSummaryDTO(summary services.StatusSummary) StatusSummaryDTO {
	return StatusSummaryDTO{
		All:             summary.All,
		PendingTasks:    summary.Pending,
		InProgressTasks: summary.InProgress,
		CompletedTasks:  summary.Completed,
	}
}

// ToTaskListResponse converts a list result to TaskListResponse
func ToTaskListResponse(result services.ListTasksResult) TaskListResponse {
	items := make([]TaskDTO, len(result.Tasks))
	for i, task := range result.Tasks {
		items[i] = ToTaskDTO(task)
	}

	return TaskListResponse{
		Tasks:         items,
		StatusSummary: ToStatusSummaryDTO(result.Summary),
	}
}
