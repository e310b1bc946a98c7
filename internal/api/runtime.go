package api

import (
	"github.com/JaimeStill/pledge/internal/config"
	"github.com/JaimeStill/pledge/internal/infrastructure"
	"github.com/JaimeStill/pledge/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
	BasePath   string
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Metrics:   infra.Metrics,
		},
		Pagination: cfg.API.Pagination,
		BasePath:   cfg.API.BasePath,
	}
}
