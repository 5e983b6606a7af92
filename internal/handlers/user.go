package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskdesk/taskdesk-api/internal/dto"
	apierrors "github.com/taskdesk/taskdesk-api/internal/errors"
	"github.com/taskdesk/taskdesk-api/internal/middleware"
	"github.com/taskdesk/taskdesk-api/internal/services"
)

// UserHandler serves the administrative user endpoints.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// ListUsers returns every member with task counts.
func (h *UserHandler) ListUsers(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	users, err := h.userService.ListUsersWithTaskCounts(caller)
	if err != nil {
		respondUserError(c, "list users", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserWithTaskCountsDTOs(users))
}

// GetUser returns one user with task counts.
func (h *UserHandler) GetUser(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(caller, middleware.GetTargetUserID(c))
	if err != nil {
		respondUserError(c, "get user", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserWithTaskCountsDTO(*user))
}

// DeleteUser removes a user account.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(caller, middleware.GetTargetUserID(c)); err != nil {
		respondUserError(c, "delete user", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User deleted successfully",
	})
}

func respondUserError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrAdminOnly):
		apierrors.Forbidden(c, err.Error())
	default:
		log.Printf("Failed to %s: %v", op, err)
		apierrors.InternalError(c, "")
	}
}
