package services

import (
	"fmt"
	"io"

	"github.com/taskdesk/taskdesk-api/internal/access"
	"github.com/taskdesk/taskdesk-api/internal/report"
	"github.com/taskdesk/taskdesk-api/internal/repository"
)

// ReportService builds report rows and hands them to the xlsx encoder.
type ReportService struct {
	taskRepo    repository.TaskRepository
	userService *UserService
}

// NewReportService creates a new ReportService.
func NewReportService(taskRepo repository.TaskRepository, userService *UserService) *ReportService {
	return &ReportService{
		taskRepo:    taskRepo,
		userService: userService,
	}
}

// ExportTasks writes every task with its assignees. Admin only.
func (s *ReportService) ExportTasks(caller access.Caller, w io.Writer) error {
	if !access.CanMutateAsAdmin(caller) {
		return ErrAdminOnly
	}

	tasks, err := s.taskRepo.List(repository.TaskFilter{WithAssignees: true})
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}

	rows := make([]report.TaskRow, len(tasks))
	for i, task := range tasks {
		assignees := make([]string, 0, len(task.Assignments))
		for _, assignment := range task.Assignments {
			if assignment.User.ID == 0 {
				continue
			}
			assignees = append(assignees, fmt.Sprintf("%s (%s)", assignment.User.Name, assignment.User.Email))
		}

		rows[i] = report.TaskRow{
			ID:          task.ID,
			Title:       task.Title,
			Description: task.Description,
			Priority:    string(task.Priority),
			Status:      string(task.Status),
			DueDate:     task.DueDate,
			Assignees:   assignees,
		}
	}

	return report.WriteTasks(w, rows)
}

// ExportUsers writes every user with assigned task counts. Admin only.
func (s *ReportService) ExportUsers(caller access.Caller, w io.Writer) error {
	users, err := s.userService.UserTaskReport(caller)
	if err != nil {
		return err
	}

	rows := make([]report.UserRow, len(users))
	for i, u := range users {
		rows[i] = report.UserRow{
			Name:       u.User.Name,
			Email:      u.User.Email,
			Total:      u.Counts.All,
			Pending:    u.Counts.Pending,
			InProgress: u.Counts.InProgress,
			Completed:  u.Counts.Completed,
		}
	}

	return report.WriteUsers(w, rows)
}
