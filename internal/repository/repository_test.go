// filepath: internal/repository/repository_test.go
package repository

import (
	"path/filepath"
	"testing"

	"github.com/Gary0302/Mind-BE/internal/config"
	"github.com/Gary0302/Mind-BE/internal/db/migrations"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func applyTestMigrations(t *testing.T, repo *Repository) {
	t.Helper()
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		t.Fatalf("Failed to set goose dialect: %v", err)
	}
	if err := goose.Up(repo.DB, "."); err != nil {
		t.Fatalf("Failed to apply test migrations: %v", err)
	}
}

func setupTestDB(t *testing.T) *Repository {
	t.Helper()

	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Path: filepath.Join(t.TempDir(), "test_mindbe.db"),
		},
	}

	repo, err := NewRepository(cfg)
	if err != nil {
		t.Fatalf("Failed to create new repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	applyTestMigrations(t, repo)
	return repo
}

func TestNewRepository(t *testing.T) {
	repo := setupTestDB(t)

	tables := []string{"users", "entries", "refresh_tokens"}
	for _, table := range tables {
		var name string
		err := repo.DB.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("Table '%s' was not created: %v", table, err)
		}
	}
}

func TestValidateSchema(t *testing.T) {
	repo := setupTestDB(t)
	assert.NoError(t, repo.ValidateSchema())

	// Roll back one version: the binary must refuse the stale schema.
	require.NoError(t, repo.MigrateDown())
	assert.Error(t, repo.ValidateSchema())
}

func TestEnsureSchemaBootstrapped(t *testing.T) {
	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Path: filepath.Join(t.TempDir(), "fresh.db"),
		},
	}
	repo, err := NewRepository(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	require.NoError(t, repo.EnsureSchemaBootstrapped())
	assert.NoError(t, repo.ValidateSchema())

	// A second call on an up-to-date database is a no-op.
	assert.NoError(t, repo.EnsureSchemaBootstrapped())
}
