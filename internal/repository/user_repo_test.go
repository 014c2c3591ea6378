// filepath: internal/repository/user_repo_test.go
package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func createTestUser(t *testing.T, repo *Repository, email, username string) int64 {
	t.Helper()
	user, err := repo.CreateUser(&UserCreateArgs{
		Email:    email,
		Username: username,
		Password: "supersecret",
	})
	require.NoError(t, err)
	return user.ID
}

func TestUserCRUD(t *testing.T) {
	repo := setupTestDB(t)

	user, err := repo.CreateUser(&UserCreateArgs{
		Email:    "gary@example.com",
		Username: "gary",
		Password: "supersecret",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "free", user.PlanType)

	// Password is stored as a bcrypt hash, never in the clear.
	assert.NotEqual(t, "supersecret", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("supersecret")))

	byEmail, err := repo.GetUserByEmail("gary@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byID, err := repo.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "gary", byID.Username)

	byUsername, err := repo.GetUserByUsername("gary")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byUsername.ID)

	require.NoError(t, repo.UpdateUserPlan(user.ID, "pro"))
	updated, err := repo.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "pro", updated.PlanType)
}

func TestCreateUser_Duplicate(t *testing.T) {
	repo := setupTestDB(t)
	createTestUser(t, repo, "gary@example.com", "gary")

	_, err := repo.CreateUser(&UserCreateArgs{
		Email:    "gary@example.com",
		Username: "other",
		Password: "supersecret",
	})
	assert.ErrorIs(t, err, ErrUserExists)

	_, err = repo.CreateUser(&UserCreateArgs{
		Email:    "other@example.com",
		Username: "gary",
		Password: "supersecret",
	})
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestGetUser_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.GetUserByEmail("nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = repo.GetUserByID(42)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
