package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/taskdesk/taskdesk-api/internal/access"
	apierrors "github.com/taskdesk/taskdesk-api/internal/errors"
)

// RequireAdmin rejects callers without the admin role. It must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, exists := GetCaller(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			return
		}

		if !access.CanMutateAsAdmin(caller) {
			apierrors.Forbidden(c, "Only administrators can perform this action")
			return
		}

		c.Next()
	}
}
