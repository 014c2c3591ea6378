// filepath: internal/services/user_service.go
package services

import (
	"errors"
	"fmt"
	"net/mail"
	"unicode/utf8"

	"github.com/Gary0302/Mind-BE/internal/logging"
	"github.com/Gary0302/Mind-BE/internal/models"
	"github.com/Gary0302/Mind-BE/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 8
	maxUsernameLength = 64
)

// Compile-time check to ensure interface is implemented.
var _ UserService = (*userService)(nil)

// userService handles business logic for accounts.
type userService struct {
	Repo *repository.Repository
}

// NewUserService creates a new UserService.
func NewUserService(repo *repository.Repository) *userService {
	return &userService{Repo: repo}
}

// Register validates and creates a new account.
func (s *userService) Register(args repository.UserCreateArgs) (*models.User, error) {
	if _, err := mail.ParseAddress(args.Email); err != nil {
		return nil, fmt.Errorf("%w: invalid email address", ErrValidation)
	}
	if args.Username == "" || utf8.RuneCountInString(args.Username) > maxUsernameLength {
		return nil, fmt.Errorf("%w: username must be 1-%d characters", ErrValidation, maxUsernameLength)
	}
	if len(args.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}

	logging.Log.Debugf("UserService: Attempting to register '%s'", args.Email)
	user, err := s.Repo.CreateUser(&args)
	if err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return nil, fmt.Errorf("%w: email or username already registered", ErrConflict)
		}
		logging.Log.Errorf("UserService: Failed to create user '%s': %v", args.Email, err)
		return nil, fmt.Errorf("failed to create user")
	}
	return user, nil
}

// Authenticate checks credentials and returns the user on success. The error
// never reveals whether the email exists.
func (s *userService) Authenticate(email, password string) (*models.User, error) {
	user, err := s.Repo.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("authentication failed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("authentication failed")
	}
	return user, nil
}

// GetUserByID retrieves a user by their ID.
func (s *userService) GetUserByID(id int64) (*models.User, error) {
	return s.Repo.GetUserByID(id)
}

// GetUserByEmail retrieves a user by their email.
func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	return s.Repo.GetUserByEmail(email)
}

// GetProfile returns the aggregate stats for the profile endpoint.
func (s *userService) GetProfile(userID int64) (*models.ProfileStats, error) {
	user, err := s.Repo.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	stats, err := s.Repo.GetUserStats(userID, 5)
	if err != nil {
		logging.Log.Errorf("UserService: Failed to aggregate stats for user %d: %v", userID, err)
		return nil, fmt.Errorf("failed to aggregate profile stats")
	}
	stats.User = *user
	return stats, nil
}
