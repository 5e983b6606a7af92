package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskdesk/taskdesk-api/internal/constants"
	apierrors "github.com/taskdesk/taskdesk-api/internal/errors"
)

// RequireTaskID parses the :id route parameter of task routes
func RequireTaskID() gin.HandlerFunc {
	return requireIDParam(constants.ContextKeyTaskID, "Invalid task ID")
}

// RequireUserID parses the :id route parameter of user routes
func RequireUserID() gin.HandlerFunc {
	return requireIDParam(constants.ContextKeyTargetUserID, "Invalid user ID")
}

// GetTaskID retrieves the task ID parsed by RequireTaskID
func GetTaskID(c *gin.Context) uint64 {
	return c.GetUint64(constants.ContextKeyTaskID)
}

// GetTargetUserID retrieves the user ID parsed by RequireUserID
func GetTargetUserID(c *gin.Context) uint64 {
	return c.GetUint64(constants.ContextKeyTargetUserID)
}

func requireIDParam(contextKey, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil || id == 0 {
			apierrors.BadRequest(c, message)
			return
		}

		c.Set(contextKey, id)
		c.Next()
	}
}
