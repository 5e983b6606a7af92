package constants

import "time"

const (
	// ContextKeyUserID is the gin context key holding the caller's user ID.
	ContextKeyUserID       = "user_id"
	// ContextKeyCaller is the gin context key holding the resolved access.Caller.
	ContextKeyCaller       = "caller"
	// ContextKeyTaskID holds the parsed :id route parameter for task routes.
	ContextKeyTaskID       = "task_id"
	// ContextKeyTargetUserID holds the parsed :id route parameter for user routes.
	ContextKeyTargetUserID = "target_user_id"
	// ContextKeyToken is the session key holding the issued session token.
	ContextKeyToken        = "token"

	SessionCookieName = "taskdesk_session"
	SessionMaxAge     = 86400 * 7
)

const (
	MinPasswordLength = 6
	MaxTitleLength    = 255

	// RecentTasksLimit is how many tasks the dashboards list as recent.
	RecentTasksLimit = 10

	// DefaultDueDateOffset is applied when a task is created without a due date.
	DefaultDueDateOffset = 7 * 24 * time.Hour
)
