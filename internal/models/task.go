package models

import (
	"time"

	"gorm.io/datatypes"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "Pending"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusCompleted  TaskStatus = "Completed"
)

// TaskStatuses lists every status in display order.
var TaskStatuses = []TaskStatus{TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted}

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "Low"
	TaskPriorityMedium TaskPriority = "Medium"
	TaskPriorityHigh   TaskPriority = "High"
)

// TaskPriorities lists every priority in ascending order.
var TaskPriorities = []TaskPriority{TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh}

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// TodoItem is one checklist entry embedded in a task.
type TodoItem struct {
	Text      string `json:"task"`
	Completed bool   `json:"completed"`
}

type Task struct {
	ID            uint64                        `gorm:"primarykey" json:"id"`
	Title         string                        `gorm:"type:varchar(255);not null" json:"title"`
	Description   string                        `gorm:"type:text" json:"description"`
	Priority      TaskPriority                  `gorm:"type:varchar(20);not null;default:'Medium'" json:"priority"`
	Status        TaskStatus                    `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	DueDate       time.Time                     `gorm:"not null" json:"dueDate"`
	CreatorID     uint64                        `gorm:"not null" json:"createdBy"`
	Attachments   datatypes.JSONSlice[string]   `json:"attachments"`
	TodoChecklist datatypes.JSONSlice[TodoItem] `json:"todoChecklist"`
	Progress      int                           `gorm:"not null;default:0" json:"progress"`
	CreatedAt     time.Time                     `json:"createdAt"`
	UpdatedAt     time.Time                     `json:"updatedAt"`

	// Relations
	Creator     User             `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Assignments []TaskAssignment `gorm:"foreignKey:TaskID" json:"assignments,omitempty"`
}

// AssigneeIDs returns the assigned user IDs in assignment order.
// Assignments must be loaded ordered by position.
func (t *Task) AssigneeIDs() []uint64 {
	ids := make([]uint64, len(t.Assignments))
	for i, a := range t.Assignments {
		ids[i] = a.UserID
	}
	return ids
}

// IsAssignedTo reports whether userID appears in the task's assignees.
func (t *Task) IsAssignedTo(userID uint64) bool {
	for _, a := range t.Assignments {
		if a.UserID == userID {
			return true
		}
	}
	return false
}

// CompletedTodoCount counts checklist items marked completed.
func (t *Task) CompletedTodoCount() int {
	count := 0
	for _, item := range t.TodoChecklist {
		if item.Completed {
			count++
		}
	}
	return count
}
