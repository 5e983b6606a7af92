package services

import (
	"errors"
	"fmt"

	"github.com/taskdesk/taskdesk-api/internal/access"
	"github.com/taskdesk/taskdesk-api/internal/models"
	"github.com/taskdesk/taskdesk-api/internal/repository"
	"gorm.io/gorm"
)

// UserWithTaskCounts pairs a user with counts of the tasks assigned to them
type UserWithTaskCounts struct {
	User   models.User
	Counts StatusSummary
}

// UserService handles administrative user operations.
type UserService struct {
	userRepo repository.UserRepository
	taskRepo repository.TaskRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, taskRepo repository.TaskRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		taskRepo: taskRepo,
	}
}

// ListUsersWithTaskCounts returns every member with assigned task counts.
func (s *UserService) ListUsersWithTaskCounts(caller access.Caller) ([]UserWithTaskCounts, error) {
	if !access.CanMutateAsAdmin(caller) {
		return nil, ErrAdminOnly
	}

	role := models.RoleMember
	users, err := s.userRepo.List(&role)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return s.attachCounts(users)
}

// GetUser returns a single user with assigned task counts.
func (s *UserService) GetUser(caller access.Caller, userID uint64) (*UserWithTaskCounts, error) {
	if !access.CanMutateAsAdmin(caller) {
		return nil, ErrAdminOnly
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	result, err := s.attachCounts([]models.User{*user})
	if err != nil {
		return nil, err
	}
	return &result[0], nil
}

// DeleteUser removes a user. Tasks keep their assignee references.
func (s *UserService) DeleteUser(caller access.Caller, userID uint64) error {
	if !access.CanMutateAsAdmin(caller) {
		return ErrAdminOnly
	}

	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.userRepo.Delete(userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// UserTaskReport returns every user, admins included, with task counts.
func (s *UserService) UserTaskReport(caller access.Caller) ([]UserWithTaskCounts, error) {
	if !access.CanMutateAsAdmin(caller) {
		return nil, ErrAdminOnly
	}

	users, err := s.userRepo.List(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return s.attachCounts(users)
}

func (s *UserService) attachCounts(users []models.User) ([]UserWithTaskCounts, error) {
	result := make([]UserWithTaskCounts, len(users))
	if len(users) == 0 {
		return result, nil
	}

	tasks, err := s.taskRepo.List(repository.TaskFilter{WithAssignees: true})
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	counts := make(map[uint64]*StatusSummary)
	for _, task := range tasks {
		for _, userID := range task.AssigneeIDs() {
			summary, ok := counts[userID]
			if !ok {
				summary = &StatusSummary{}
				counts[userID] = summary
			}
			summary.add(task.Status)
		}
	}

	for i, user := range users {
		result[i].User = user
		if summary, ok := counts[user.ID]; ok {
			result[i].Counts = *summary
		}
	}
	return result, nil
}
