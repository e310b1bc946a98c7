// Package infrastructure provides core service initialization for application startup.
// It assembles common dependencies (logging, database, metrics) that domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"

	"github.com/JaimeStill/pledge/internal/config"
	"github.com/JaimeStill/pledge/internal/migrations"
	"github.com/JaimeStill/pledge/pkg/database"
	"github.com/JaimeStill/pledge/pkg/lifecycle"
	"github.com/JaimeStill/pledge/pkg/logging"
	"github.com/JaimeStill/pledge/pkg/metrics"
)

// Infrastructure holds the core systems required by all domain modules.
// Metrics is nil when metrics are disabled.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Metrics   *metrics.Manager

	autoMigrate bool
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := logging.New(&cfg.Logging, cfg.LogAttrs()...)

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	var m *metrics.Manager
	if cfg.Metrics.IsEnabled() {
		m = metrics.New(cfg.Metrics.Namespace)
	}

	return &Infrastructure{
		Lifecycle:   lc,
		Logger:      logger,
		Database:    db,
		Metrics:     m,
		autoMigrate: cfg.Database.Migrates(),
	}, nil
}

// Start initializes all infrastructure systems and registers them with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}

	if i.autoMigrate {
		logger := i.Logger.With("system", "migrate")
		if err := database.Migrate(i.Database.Connection(), migrations.FS, migrations.Dir, logger); err != nil {
			return fmt.Errorf("auto migrate failed: %w", err)
		}
	}
	return nil
}
