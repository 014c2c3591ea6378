// filepath: internal/repository/user_repo.go
package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Gary0302/Mind-BE/internal/logging"
	"github.com/Gary0302/Mind-BE/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// UserCreateArgs is a struct used for creating users in the database layer.
// It is separate from models.User to include the plaintext password for creation.
type UserCreateArgs struct {
	Email    string
	Username string
	Password string
	PlanType string
}

const userColumns = "id, email, username, password_hash, plan_type, created_at"

func scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	if err := row.Scan(&user.ID, &user.Email, &user.Username, &user.PasswordHash, &user.PlanType, &user.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// cacheUser stores a user under both its ID and email keys.
func (s *Repository) cacheUser(user *models.User) {
	s.Cache.Set(fmt.Sprintf("user_by_id_%d", user.ID), user, 5*time.Minute)
	s.Cache.Set(fmt.Sprintf("user_by_email_%s", user.Email), user, 5*time.Minute)
}

// invalidateUser drops all cache keys for a user.
func (s *Repository) invalidateUser(user *models.User) {
	s.Cache.Delete(fmt.Sprintf("user_by_id_%d", user.ID))
	s.Cache.Delete(fmt.Sprintf("user_by_email_%s", user.Email))
}

// CreateUser creates a new user with a bcrypt-hashed password.
func (s *Repository) CreateUser(args *UserCreateArgs) (*models.User, error) {
	logging.Log.Debugf("CreateUser: Hashing password for '%s'", args.Email)
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(args.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	planType := args.PlanType
	if planType == "" {
		planType = "free"
	}

	now := time.Now().UTC()
	query := `
		INSERT INTO users (email, username, password_hash, plan_type, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	result, err := s.DB.Exec(query, args.Email, args.Username, string(hashedPassword), planType, now)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, ErrUserExists
		}
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	logging.Log.Debugf("CreateUser: User '%s' created with ID %d", args.Email, id)

	return &models.User{
		ID:           id,
		Email:        args.Email,
		Username:     args.Username,
		PasswordHash: string(hashedPassword),
		PlanType:     planType,
		CreatedAt:    now,
	}, nil
}

// GetUserByEmail retrieves a user by email, using a cache for performance.
func (s *Repository) GetUserByEmail(email string) (*models.User, error) {
	cacheKey := fmt.Sprintf("user_by_email_%s", email)
	if user, found := s.Cache.Get(cacheKey); found {
		return user.(*models.User), nil
	}

	logging.Log.Debugf("GetUserByEmail: CACHE MISS for '%s'. Querying DB.", email)
	row := s.DB.QueryRow("SELECT "+userColumns+" FROM users WHERE email = ?", email)
	user, err := scanUser(row)
	if err != nil {
		return nil, err
	}

	s.cacheUser(user)
	return user, nil
}

// GetUserByUsername retrieves a user by username. Not cached: username
// lookups only happen on registration conflict checks.
func (s *Repository) GetUserByUsername(username string) (*models.User, error) {
	row := s.DB.QueryRow("SELECT "+userColumns+" FROM users WHERE username = ?", username)
	return scanUser(row)
}

// GetUserByID retrieves a user by ID, using a cache for performance.
func (s *Repository) GetUserByID(id int64) (*models.User, error) {
	cacheKey := fmt.Sprintf("user_by_id_%d", id)
	if user, found := s.Cache.Get(cacheKey); found {
		return user.(*models.User), nil
	}

	logging.Log.Debugf("GetUserByID: CACHE MISS for ID %d. Querying DB.", id)
	row := s.DB.QueryRow("SELECT "+userColumns+" FROM users WHERE id = ?", id)
	user, err := scanUser(row)
	if err != nil {
		return nil, err
	}

	s.cacheUser(user)
	return user, nil
}

// UpdateUserPlan changes a user's plan type.
func (s *Repository) UpdateUserPlan(id int64, planType string) error {
	user, err := s.GetUserByID(id)
	if err != nil {
		return err
	}

	if _, err := s.DB.Exec("UPDATE users SET plan_type = ? WHERE id = ?", planType, id); err != nil {
		return err
	}

	s.invalidateUser(user)
	return nil
}
