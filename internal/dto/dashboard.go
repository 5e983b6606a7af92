package dto

import (
	"strings"
	"time"

	"github.com/taskdesk/taskdesk-api/internal/models"
	"github.com/taskdesk/taskdesk-api/internal/services"
)

// DashboardDTO represents dashboard data in API responses
type DashboardDTO struct {
	Statistics  DashboardStatisticsDTO `json:"statistics"`
	Charts      DashboardChartsDTO     `json:"charts"`
	RecentTasks []RecentTaskDTO        `json:"recentTasks"`
}

// DashboardStatisticsDTO holds the headline counts
type DashboardStatisticsDTO struct {
	TotalTasks     int `json:"totalTasks"`
	PendingTasks   int `json:"pendingTasks"`
	CompletedTasks int `json:"completedTasks"`
	OverdueTasks   int `json:"overdueTasks"`
}

// DashboardChartsDTO holds status and priority distributions. Status keys
// have spaces removed, so "In Progress" is reported as "InProgress".
type DashboardChartsDTO struct {
	TaskDistribution   map[string]int `json:"taskDistribution"`
	TaskPriorityLevels map[string]int `json:"taskPriorityLevels"`
}

// RecentTaskDTO is the summary shape of a recently created task
type RecentTaskDTO struct {
	ID        uint64              `json:"id"`
	Title     string              `json:"title"`
	Status    models.TaskStatus   `json:"status"`
	Priority  models.TaskPriority `json:"priority"`
	DueDate   time.Time           `json:"dueDate"`
	CreatedAt time.Time           `json:"createdAt"`
}

// ToDashboardDTO converts a computed dashboard to its DTO
func ToDashboardDTO(d services.Dashboard) DashboardDTO {
	distribution := make(map[string]int, len(models.TaskStatuses)+1)
	for _, status := range models.TaskStatuses {
		distribution[strings.ReplaceAll(string(status), " ", "")] = d.Statuses.Count(status)
	}
	distribution["All"] = d.Statuses.All

	priorities := make(map[string]int, len(models.TaskPriorities))
	for _, priority := range models.TaskPriorities {
		priorities[string(priority)] = d.Priorities[priority]
	}

	recent := make([]RecentTaskDTO, len(d.Recent))
	for i, task := range d.Recent {
		recent[i] = RecentTaskDTO{
			ID:        task.ID,
			Title:     task.Title,
			Status:    task.Status,
			Priority:  task.Priority,
			DueDate:   task.DueDate,
			CreatedAt: task.CreatedAt,
		}
	}

	return DashboardDTO{
		Statistics: DashboardStatisticsDTO{
			TotalTasks:     d.Statuses.All,
			PendingTasks:   d.Statuses.Pending,
			CompletedTasks: d.Statuses.Completed,
			OverdueTasks:   d.Overdue,
		},
		Charts: DashboardChartsDTO{
			TaskDistribution:   distribution,
			TaskPriorityLevels: priorities,
		},
		RecentTasks: recent,
	}
}
