package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/taskdesk/taskdesk-api/internal/access"
	"github.com/taskdesk/taskdesk-api/internal/constants"
	"github.com/taskdesk/taskdesk-api/internal/models"
	"github.com/taskdesk/taskdesk-api/internal/repository"
)

// StatusSummary counts tasks per status
type StatusSummary struct {
	All        int
	Pending    int
	InProgress int
	Completed  int
}

// Count returns the number of tasks with the given status
func (s StatusSummary) Count(status models.TaskStatus) int {
	switch status {
	case models.TaskStatusPending:
		return s.Pending
	case models.TaskStatusInProgress:
		return s.InProgress
	case models.TaskStatusCompleted:
		return s.Completed
	}
	return 0
}

func (s *StatusSummary) add(status models.TaskStatus) {
	s.All++
	switch status {
	case models.TaskStatusPending:
		s.Pending++
	case models.TaskStatusInProgress:
		s.InProgress++
	case models.TaskStatusCompleted:
		s.Completed++
	}
}

func summarizeStatuses(tasks []models.Task) StatusSummary {
	var summary StatusSummary
	for _, task := range tasks {
		summary.add(task.Status)
	}
	return summary
}

// Dashboard is the aggregate view over a set of tasks
type Dashboard struct {
	Statuses   StatusSummary
	Overdue    int
	Priorities map[models.TaskPriority]int
	Recent     []models.Task
}

// SummarizeTasks aggregates tasks given in insertion order. Overdue tasks
// are unfinished tasks due before now. Recent holds the newest tasks by
// creation time, ties keeping insertion order.
func SummarizeTasks(tasks []models.Task, now time.Time) Dashboard {
	dashboard := Dashboard{
		Priorities: make(map[models.TaskPriority]int, len(models.TaskPriorities)),
		Recent:     []models.Task{},
	}
	for _, priority := range models.TaskPriorities {
		dashboard.Priorities[priority] = 0
	}

	for _, task := range tasks {
		dashboard.Statuses.add(task.Status)
		if task.Priority.Valid() {
			dashboard.Priorities[task.Priority]++
		}
		if task.Status != models.TaskStatusCompleted && task.DueDate.Before(now) {
			dashboard.Overdue++
		}
	}

	recent := make([]models.Task, len(tasks))
	copy(recent, tasks)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > constants.RecentTasksLimit {
		recent = recent[:constants.RecentTasksLimit]
	}
	dashboard.Recent = append(dashboard.Recent, recent...)

	return dashboard
}

// DashboardService computes dashboards on demand
type DashboardService struct {
	taskRepo repository.TaskRepository
	now      func() time.Time
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(taskRepo repository.TaskRepository) *DashboardService {
	return &DashboardService{
		taskRepo: taskRepo,
		now:      time.Now,
	}
}

// DashboardData aggregates every task. Admin only.
func (s *DashboardService) DashboardData(caller access.Caller) (*Dashboard, error) {
	if !access.CanViewAll(caller) {
		return nil, ErrAdminOnly
	}
	return s.summarize(repository.TaskFilter{})
}

// UserDashboardData aggregates the tasks assigned to the caller
func (s *DashboardService) UserDashboardData(caller access.Caller) (*Dashboard, error) {
	userID := caller.UserID
	return s.summarize(repository.TaskFilter{AssignedUserID: &userID})
}

func (s *DashboardService) summarize(filter repository.TaskFilter) (*Dashboard, error) {
	tasks, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard tasks: %w", err)
	}

	dashboard := SummarizeTasks(tasks, s.now())
	return &dashboard, nil
}
