// filepath: internal/repository/repository.go
package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Gary0302/Mind-BE/internal/config"
	"github.com/Gary0302/Mind-BE/internal/db/migrations"
	"github.com/Gary0302/Mind-BE/internal/logging"
	"github.com/Masterminds/squirrel"
	"github.com/patrickmn/go-cache"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver
)

// latestSchemaVersion must match the highest embedded goose migration.
const latestSchemaVersion = 2

// Standard errors returned by the repository layer.
var (
	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")
)

// Repository wraps the SQLite handle together with a lookup cache and a
// prepared statement builder.
type Repository struct {
	DB      *sql.DB
	Cache   *cache.Cache
	Builder squirrel.StatementBuilderType
}

// NewRepository opens the SQLite database referenced by the configuration.
func NewRepository(cfg *config.Config) (*Repository, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", cfg.Database.Path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", cfg.Database.Path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database at %s: %w", cfg.Database.Path, err)
	}

	return &Repository{
		DB:      db,
		Cache:   cache.New(5*time.Minute, 10*time.Minute),
		Builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}, nil
}

// Close closes the underlying database handle.
func (s *Repository) Close() error {
	return s.DB.Close()
}

// setupGoose points goose at the embedded migration files.
func setupGoose() error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return nil
}

// MigrateUp migrates the database to the most recent version.
func (s *Repository) MigrateUp() error {
	if err := setupGoose(); err != nil {
		return err
	}
	return goose.Up(s.DB, ".")
}

// MigrateDown rolls the database back by one version.
func (s *Repository) MigrateDown() error {
	if err := setupGoose(); err != nil {
		return err
	}
	return goose.Down(s.DB, ".")
}

// MigrationStatus dumps the migration status for the current database.
func (s *Repository) MigrationStatus() error {
	if err := setupGoose(); err != nil {
		return err
	}
	return goose.Status(s.DB, ".")
}

// EnsureSchemaBootstrapped migrates a completely fresh database to the latest
// schema. Databases that already carry a schema version are left untouched so
// that upgrades stay an explicit operator action ('mindbe migrate up').
func (s *Repository) EnsureSchemaBootstrapped() error {
	if err := setupGoose(); err != nil {
		return err
	}
	current, err := goose.GetDBVersion(s.DB)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current > 0 {
		return nil
	}
	logging.Log.Info("Fresh database detected. Applying schema migrations...")
	return goose.Up(s.DB, ".")
}

// ValidateSchema verifies that the database schema matches the version this
// binary was built against.
func (s *Repository) ValidateSchema() error {
	if err := setupGoose(); err != nil {
		return err
	}
	current, err := goose.GetDBVersion(s.DB)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current != latestSchemaVersion {
		return fmt.Errorf("database schema is outdated (have version %d, want %d): run 'mindbe migrate up'",
			current, latestSchemaVersion)
	}
	return nil
}
