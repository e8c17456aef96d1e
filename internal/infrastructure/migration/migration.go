package migration

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	appLogger "boardsync/internal/shared/logger"
)

//go:embed scripts/*.sql
var embedMigrations embed.FS

// Migrator applies the embedded goose migrations against the gorm
// connection's underlying sql.DB.
type Migrator struct {
	db      *sql.DB
	dialect string
}

// New creates a migrator bound to the given connection. driver must match
// the configured database driver ("mysql" or "sqlite").
func New(database *gorm.DB, driver string) (*Migrator, error) {
	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	dialect := driver
	if dialect == "" {
		dialect = "mysql"
	}
	if dialect == "sqlite" {
		dialect = "sqlite3"
	}

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect(dialect); err != nil {
		return nil, fmt.Errorf("failed to set migration dialect: %w", err)
	}

	return &Migrator{db: sqlDB, dialect: dialect}, nil
}

// Up applies all pending migrations.
func (m *Migrator) Up() error {
	if err := goose.Up(m.db, "scripts"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	appLogger.Info("migrations applied")
	return nil
}

// Down rolls back the most recent migration.
func (m *Migrator) Down() error {
	if err := goose.Down(m.db, "scripts"); err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}
	appLogger.Info("migration rolled back")
	return nil
}

// Status prints the status of all migrations.
func (m *Migrator) Status() error {
	if err := goose.Status(m.db, "scripts"); err != nil {
		return fmt.Errorf("failed to get migration status: %w", err)
	}
	return nil
}

// Version returns the current migration version.
func (m *Migrator) Version() (int64, error) {
	version, err := goose.GetDBVersion(m.db)
	if err != nil {
		return 0, fmt.Errorf("failed to get migration version: %w", err)
	}
	return version, nil
}
