// filepath: internal/repository/token_repo_test.go
package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshTokenLifecycle(t *testing.T) {
	repo := setupTestDB(t)
	userID := createTestUser(t, repo, "gary@example.com", "gary")

	require.NoError(t, repo.StoreRefreshToken(userID, "hash-1", time.Now().Add(time.Hour)))

	gotUserID, err := repo.ValidateRefreshToken("hash-1")
	require.NoError(t, err)
	assert.Equal(t, userID, gotUserID)

	require.NoError(t, repo.DeleteRefreshToken("hash-1"))
	_, err = repo.ValidateRefreshToken("hash-1")
	assert.Error(t, err)
}

func TestValidateRefreshToken_Expired(t *testing.T) {
	repo := setupTestDB(t)
	userID := createTestUser(t, repo, "gary@example.com", "gary")

	require.NoError(t, repo.StoreRefreshToken(userID, "stale", time.Now().Add(-time.Minute)))

	_, err := repo.ValidateRefreshToken("stale")
	assert.Error(t, err)
}

func TestDeleteAllRefreshTokensForUser(t *testing.T) {
	repo := setupTestDB(t)
	userID := createTestUser(t, repo, "gary@example.com", "gary")
	otherID := createTestUser(t, repo, "other@example.com", "other")

	require.NoError(t, repo.StoreRefreshToken(userID, "a", time.Now().Add(time.Hour)))
	require.NoError(t, repo.StoreRefreshToken(userID, "b", time.Now().Add(time.Hour)))
	require.NoError(t, repo.StoreRefreshToken(otherID, "c", time.Now().Add(time.Hour)))

	require.NoError(t, repo.DeleteAllRefreshTokensForUser(userID))

	_, err := repo.ValidateRefreshToken("a")
	assert.Error(t, err)
	_, err = repo.ValidateRefreshToken("b")
	assert.Error(t, err)

	// The other user's session survives.
	_, err = repo.ValidateRefreshToken("c")
	assert.NoError(t, err)
}

func TestPurgeExpiredRefreshTokens(t *testing.T) {
	repo := setupTestDB(t)
	userID := createTestUser(t, repo, "gary@example.com", "gary")

	require.NoError(t, repo.StoreRefreshToken(userID, "live", time.Now().Add(time.Hour)))
	require.NoError(t, repo.StoreRefreshToken(userID, "dead-1", time.Now().Add(-time.Hour)))
	require.NoError(t, repo.StoreRefreshToken(userID, "dead-2", time.Now().Add(-time.Minute)))

	purged, err := repo.PurgeExpiredRefreshTokens()
	require.NoError(t, err)
	assert.EqualValues(t, 2, purged)

	_, err = repo.ValidateRefreshToken("live")
	assert.NoError(t, err)
}
