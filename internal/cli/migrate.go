// filepath: internal/cli/migrate.go
package cli

import (
	"fmt"

	"github.com/Gary0302/Mind-BE/internal/repository"

	"github.com/spf13/cobra"
)

// NewMigrateCommand builds the `migrate` command tree. The repository is
// opened lazily inside RunE so PersistentPreRunE has loaded the config first.
func NewMigrateCommand() *cobra.Command {
	var migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database schema versions. Use subcommands 'up', 'down', or 'status'.`,
	}

	var upCmd = &cobra.Command{
		Use:   "up",
		Short: "Migrate the database to the most recent version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRepository(func(repo *repository.Repository) error {
				return repo.MigrateUp()
			})
		},
	}

	var downCmd = &cobra.Command{
		Use:   "down",
		Short: "Roll back the database by one version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRepository(func(repo *repository.Repository) error {
				return repo.MigrateDown()
			})
		},
	}

	var statusCmd = &cobra.Command{
		Use:   "status",
		Short: "Dump the migration status for the current DB",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRepository(func(repo *repository.Repository) error {
				return repo.MigrationStatus()
			})
		},
	}

	// Add subcommands
	migrateCmd.AddCommand(upCmd)
	migrateCmd.AddCommand(downCmd)
	migrateCmd.AddCommand(statusCmd)

	return migrateCmd
}

// withRepository opens the repository, runs fn, and closes it again.
func withRepository(fn func(repo *repository.Repository) error) error {
	repo, err := repository.NewRepository(cfg)
	if err != nil {
		return fmt.Errorf("failed to open repository: %w", err)
	}
	defer repo.Close()
	return fn(repo)
}
