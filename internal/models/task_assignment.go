package models

import (
	"time"
)

// TaskAssignment links a task to one assignee. Position keeps the
// assignedTo list in the order it was supplied. Rows survive user deletion.
type TaskAssignment struct {
	TaskID    uint64    `gorm:"primarykey" json:"taskId"`
	UserID    uint64    `gorm:"primarykey" json:"userId"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time `json:"createdAt"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
