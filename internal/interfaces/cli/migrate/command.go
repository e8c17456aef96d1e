package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"boardsync/internal/infrastructure/config"
	"boardsync/internal/infrastructure/database"
	"boardsync/internal/infrastructure/migration"
	"boardsync/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations including running migrations, rolling back, and checking status.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		Long:  `Apply all pending database migrations to bring the database schema up to date.`,
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Rollback the most recent migration",
		RunE:  runDown,
	}
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		Long:  `Display the current migration version and status of the database.`,
		RunE:  runStatus,
	}
}

func initMigrator() (*migration.Migrator, func(), error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	migrator, err := migration.New(database.Get(), cfg.Database.Driver)
	if err != nil {
		database.Close()
		return nil, nil, err
	}

	cleanup := func() {
		database.Close()
	}
	return migrator, cleanup, nil
}

func runUp(cmd *cobra.Command, args []string) error {
	migrator, cleanup, err := initMigrator()
	if err != nil {
		return err
	}
	defer cleanup()

	return migrator.Up()
}

func runDown(cmd *cobra.Command, args []string) error {
	migrator, cleanup, err := initMigrator()
	if err != nil {
		return err
	}
	defer cleanup()

	return migrator.Down()
}

func runStatus(cmd *cobra.Command, args []string) error {
	migrator, cleanup, err := initMigrator()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := migrator.Status(); err != nil {
		return err
	}

	version, err := migrator.Version()
	if err != nil {
		return err
	}
	fmt.Printf("current version: %d\n", version)
	return nil
}
