package database

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Migrate applies every pending up migration found in dir of fsys.
// An already current schema is not an error.
func Migrate(db *sql.DB, fsys fs.FS, dir string, logger *slog.Logger) error {
	m, err := newMigrator(db, fsys, dir)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("schema up to date")
			return nil
		}
		return fmt.Errorf("migrate up: %w", err)
	}

	version, dirty, _ := m.Version()
	logger.Info("schema migrated", "version", version, "dirty", dirty)
	return nil
}

// Rollback reverts the given number of migrations.
func Rollback(db *sql.DB, fsys fs.FS, dir string, steps int, logger *slog.Logger) error {
	m, err := newMigrator(db, fsys, dir)
	if err != nil {
		return err
	}

	if err := m.Steps(-steps); err != nil {
		return fmt.Errorf("migrate down %d: %w", steps, err)
	}

	version, dirty, _ := m.Version()
	logger.Info("schema rolled back", "version", version, "dirty", dirty)
	return nil
}

func newMigrator(db *sql.DB, fsys fs.FS, dir string) (*migrate.Migrate, error) {
	src, err := iofs.New(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("migration source: %w", err)
	}

	driver, err := migratepgx.WithInstance(db, &migratepgx.Config{})
	if err != nil {
		return nil, fmt.Errorf("migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		return nil, fmt.Errorf("migrator: %w", err)
	}
	return m, nil
}
