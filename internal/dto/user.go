package dto

import (
	"time"

	"github.com/taskdesk/taskdesk-api/internal/models"
	"github.com/taskdesk/taskdesk-api/internal/services"
)

// UserDTO represents a user in API responses. The credential hash is never included.
type UserDTO struct {
	ID              uint64      `json:"id"`
	Name            string      `json:"name"`
	Email           string      `json:"email"`
	Role            models.Role `json:"role"`
	ProfileImageURL string      `json:"profileImageUrl"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// UserSummaryDTO is the compact user shape embedded in tasks
type UserSummaryDTO struct {
	ID              uint64 `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	ProfileImageURL string `json:"profileImageUrl"`
}

// AuthResponse is returned by register, login and profile updates
type AuthResponse struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}

// UserWithTaskCountsDTO represents a user with assigned task counts
type UserWithTaskCountsDTO struct {
	UserDTO
	PendingTasks    int `json:"pendingTasks"`
	InProgressTasks int `json:"inProgressTasks"`
	CompletedTasks  int `json:"completedTasks"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:              user.ID,
		Name:            user.Name,
		Email:           user.Email,
		Role:            user.Role,
		ProfileImageURL: user.ProfileImageURL,
		CreatedAt:       user.CreatedAt,
		UpdatedAt:       user.UpdatedAt,
	}
}

// ToUserSummaryDTO converts a User model to UserSummaryDTO
func ToUserSummaryDTO(user models.User) UserSummaryDTO {
	return UserSummaryDTO{
		ID:              user.ID,
		Name:            user.Name,
		Email:           user.Email,
		ProfileImageURL: user.ProfileImageURL,
	}
}

// ToAuthResponse converts a service session to AuthResponse
func ToAuthResponse(session services.Session) AuthResponse {
	return AuthResponse{
		User:  ToUserDTO(*session.User),
		Token: session.Token,
	}
}

// ToUserWithTaskCountsDTO converts a user with counts to its DTO
func ToUserWithTaskCountsDTO(u services.UserWithTaskCounts) UserWithTaskCountsDTO {
	return UserWithTaskCountsDTO{
		UserDTO:         ToUserDTO(u.User),
		PendingTasks:    u.Counts.Pending,
		InProgressTasks: u.Counts.InProgress,
		CompletedTasks:  u.Counts.Completed,
	}
}

// ToUserWithTaskCountsDTOs converts a slice of users with counts
func ToUserWithTaskCountsDTOs(users []services.UserWithTaskCounts) []UserWithTaskCountsDTO {
	result := make([]UserWithTaskCountsDTO, len(users))
	for i, u := range users {
		result[i] = ToUserWithTaskCountsDTO(u)
	}
	return result
}
