package repository

import (
	"github.com/taskdesk/taskdesk-api/internal/models"
)

// Preload names accepted by TaskRepository.FindByID.
const (
	PreloadAssignees     = "Assignments"
	PreloadAssigneeUsers = "Assignments.User"
	PreloadCreator       = "Creator"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create stores a new task together with its ordered assignees
	Create(task *models.Task, assigneeIDs []uint64) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks matching the filter
	List(filter TaskFilter) ([]models.Task, error)

	// Update writes the whole task. A non-nil assigneeIDs replaces the
	// assignee list in the same transaction.
	Update(task *models.Task, assigneeIDs []uint64) error

	// Delete hard deletes a task and its assignments
	Delete(id uint64) error
}

// TaskFilter holds filtering options for listing tasks. NewestFirst orders
// by creation time descending; otherwise tasks come back in insertion order.
type TaskFilter struct {
	AssignedUserID *uint64
	Status         *models.TaskStatus
	NewestFirst    bool
	WithAssignees  bool
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// List returns users ordered by ID, optionally narrowed to one role
	List(role *models.Role) ([]models.User, error)

	// CountByIDs counts how many of the given user IDs exist
	CountByIDs(ids []uint64) (int64, error)

	// Update writes the whole user
	Update(user *models.User) error

	// Delete hard deletes a user. Task assignments referencing the user are kept.
	Delete(id uint64) error
}
