package repository

import (
	"github.com/taskdesk/taskdesk-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task and its assignments in one transaction
func (r *GormTaskRepository) Create(task *models.Task, assigneeIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(task).Error; err != nil {
			return err
		}
		return replaceAssignments(tx, task.ID, assigneeIDs)
	})
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	// Apply preloading if specified
	for _, p := range preload {
		query = preloadTaskRelation(query, p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves tasks matching the filter
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{})

	if filter.AssignedUserID != nil {
		assignmentSubQuery := r.db.Model(&models.TaskAssignment{}).
			Select("1").
			Where("task_assignments.task_id = tasks.id").
			Where("task_assignments.user_id = ?", *filter.AssignedUserID)
		query = query.Where("EXISTS (?)", assignmentSubQuery)
	}
	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}

	if filter.NewestFirst {
		query = query.Order("tasks.created_at DESC").Order("tasks.id DESC")
	} else {
		query = query.Order("tasks.id ASC")
	}

	if filter.WithAssignees {
		query = preloadTaskRelation(query, PreloadAssignees)
		query = preloadTaskRelation(query, PreloadAssigneeUsers)
	}

	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task, assigneeIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(task).Error; err != nil {
			return err
		}
		if assigneeIDs == nil {
			return nil
		}
		return replaceAssignments(tx, task.ID, assigneeIDs)
	})
}

// Delete hard deletes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskAssignment{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Task{}, id).Error
	})
}

// replaceAssignments rewrites the ordered assignee list of a task
func replaceAssignments(tx *gorm.DB, taskID uint64, userIDs []uint64) error {
	if err := tx.Where("task_id = ?", taskID).Delete(&models.TaskAssignment{}).Error; err != nil {
		return err
	}
	if len(userIDs) == 0 {
		return nil
	}

	assignments := make([]models.TaskAssignment, len(userIDs))
	for i, userID := range userIDs {
		assignments[i] = models.TaskAssignment{
			TaskID:   taskID,
			UserID:   userID,
			Position: i,
		}
	}

	return tx.Omit(clause.Associations).Create(&assignments).Error
}

// preloadTaskRelation applies a preload, keeping assignments in list order
func preloadTaskRelation(query *gorm.DB, relation string) *gorm.DB {
	if relation == PreloadAssignees {
		return query.Preload(PreloadAssignees, func(db *gorm.DB) *gorm.DB {
			return db.Order("task_assignments.position ASC")
		})
	}
	return query.Preload(relation)
}
