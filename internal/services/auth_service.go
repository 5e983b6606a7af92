package services

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/taskdesk/taskdesk-api/internal/auth"
	"github.com/taskdesk/taskdesk-api/internal/constants"
	"github.com/taskdesk/taskdesk-api/internal/models"
	"github.com/taskdesk/taskdesk-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken           = errors.New("email already exists")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrNameRequired         = errors.New("name is required")
	ErrEmailRequired        = errors.New("email is required")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrFailedToCreateUser   = errors.New("failed to create user")
	ErrFailedToIssueToken   = errors.New("failed to issue session token")
)

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo         repository.UserRepository
	tokens           *auth.TokenManager
	adminInviteToken string
}

// NewAuthService creates a new AuthService. An empty adminInviteToken
// disables admin registration.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenManager, adminInviteToken string) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		tokens:           tokens,
		adminInviteToken: adminInviteToken,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Name             string
	Email            string
	Password         string
	ProfileImageURL  string
	AdminInviteToken string
}

// LoginInput represents the credentials needed to authenticate a user.
type LoginInput struct {
	Email    string
	Password string
}

// UpdateProfileInput carries profile changes. Empty fields are left as they are.
type UpdateProfileInput struct {
	Name            string
	Email           string
	Password        string
	ProfileImageURL string
}

// Session is an authenticated user and the token identifying them.
type Session struct {
	User  *models.User
	Token string
}

// Register creates a new user. The admin role is granted when the invite
// token matches.
func (s *AuthService) Register(input RegisterInput) (*Session, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	email := normalizeEmail(input.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if err := s.ensureEmailAvailable(email, 0); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Name:            name,
		Email:           email,
		PasswordHash:    string(hashedPassword),
		ProfileImageURL: strings.TrimSpace(input.ProfileImageURL),
		Role:            s.roleFor(input.AdminInviteToken),
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, ErrFailedToCreateUser
	}

	return s.newSession(user)
}

// Login authenticates a user.
func (s *AuthService) Login(input LoginInput) (*Session, error) {
	user, err := s.userRepo.FindByEmail(normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.newSession(user)
}

// Authenticate resolves a session token to its user.
func (s *AuthService) Authenticate(token string) (*models.User, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.GetUser(claims.UserID)
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(userID uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// UpdateProfile applies profile changes and issues a fresh token.
func (s *AuthService) UpdateProfile(userID uint64, input UpdateProfileInput) (*Session, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		user.Name = name
	}
	if email := normalizeEmail(input.Email); email != "" && email != user.Email {
		if err := s.ensureEmailAvailable(email, user.ID); err != nil {
			return nil, err
		}
		user.Email = email
	}
	if input.Password != "" {
		if len(input.Password) < constants.MinPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, ErrFailedToHashPassword
		}
		user.PasswordHash = string(hashedPassword)
	}
	if image := strings.TrimSpace(input.ProfileImageURL); image != "" {
		user.ProfileImageURL = image
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return s.newSession(user)
}

func (s *AuthService) ensureEmailAvailable(email string, ownerID uint64) error {
	existing, err := s.userRepo.FindByEmail(email)
	if err == nil {
		if existing.ID != ownerID {
			return ErrEmailTaken
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check email: %w", err)
	}
	return nil
}

func (s *AuthService) roleFor(inviteToken string) models.Role {
	if s.adminInviteToken == "" || inviteToken == "" {
		return models.RoleMember
	}
	if subtle.ConstantTimeCompare([]byte(inviteToken), []byte(s.adminInviteToken)) == 1 {
		return models.RoleAdmin
	}
	return models.RoleMember
}

func (s *AuthService) newSession(user *models.User) (*Session, error) {
	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, ErrFailedToIssueToken
	}
	return &Session{User: user, Token: token}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
