package middleware

import (
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/taskdesk/taskdesk-api/internal/access"
	"github.com/taskdesk/taskdesk-api/internal/constants"
	apierrors "github.com/taskdesk/taskdesk-api/internal/errors"
	"github.com/taskdesk/taskdesk-api/internal/models"
)

// Authenticator resolves a session token to the user it was issued for.
type Authenticator interface {
	Authenticate(token string) (*models.User, error)
}

// RequireAuth checks if the user is authenticated via bearer token or session
func RequireAuth(authenticator Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			if stored, ok := sessions.Default(c).Get(constants.ContextKeyToken).(string); ok {
				token = stored
			}
		}

		if token == "" {
			apierrors.Unauthorized(c, "")
			return
		}

		user, err := authenticator.Authenticate(token)
		if err != nil {
			apierrors.Unauthorized(c, "Invalid or expired session")
			return
		}

		// Store identity in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyCaller, access.Caller{UserID: user.ID, Role: user.Role})
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	id, ok := userID.(uint64)
	return id, ok
}

// GetCaller retrieves the authenticated caller from context
func GetCaller(c *gin.Context) (access.Caller, bool) {
	value, exists := c.Get(constants.ContextKeyCaller)
	if !exists {
		return access.Caller{}, false
	}

	caller, ok := value.(access.Caller)
	return caller, ok
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
