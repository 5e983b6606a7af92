// Package access decides what a caller may see and change. Every role check
// in the service layer goes through these functions.
package access

import "github.com/taskdesk/taskdesk-api/internal/models"

// Caller is the authenticated identity attached to a request.
type Caller struct {
	UserID uint64
	Role   models.Role
}

// IsAdmin reports whether the caller holds the admin role.
func (c Caller) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

// CanViewAll reports whether the caller sees every task unfiltered.
func CanViewAll(c Caller) bool {
	return c.IsAdmin()
}

// CanMutateAsAdmin gates creating tasks for others, deleting tasks and
// reassigning arbitrary tasks.
func CanMutateAsAdmin(c Caller) bool {
	return c.IsAdmin()
}

// CanMutateOwnTask reports whether the caller may change task. The task's
// assignments must be loaded.
func CanMutateOwnTask(c Caller, task *models.Task) bool {
	if c.IsAdmin() {
		return true
	}
	return task.IsAssignedTo(c.UserID)
}

// CanViewTask applies the listing scope to a single task.
func CanViewTask(c Caller, task *models.Task) bool {
	return CanViewAll(c) || task.IsAssignedTo(c.UserID)
}

// ScopeUserID returns the assignee a task query must be narrowed to, or nil
// when the caller may see every task.
func ScopeUserID(c Caller) *uint64 {
	if CanViewAll(c) {
		return nil
	}
	id := c.UserID
	return &id
}
