package api

import (
	"log/slog"

	"github.com/JaimeStill/pledge/internal/auth"
	"github.com/JaimeStill/pledge/internal/users"
	"github.com/JaimeStill/pledge/pkg/middleware"
	"github.com/JaimeStill/pledge/pkg/module"
	"github.com/JaimeStill/pledge/pkg/pagination"
	"github.com/JaimeStill/pledge/pkg/routes"
)

// Mount points within the API namespace and their documentation tags.
const (
	AuthPrefix  = "/auth"
	UsersPrefix = "/users"

	AuthTag  = "authentication"
	UsersTag = "users"
)

// Mounts is the set of route groups served by the API.
type Mounts struct {
	Auth  routes.Group
	Users routes.Group
}

// NewMounts builds the route groups for domain.
func NewMounts(domain *Domain, logger *slog.Logger, pagination pagination.Config) *Mounts {
	return &Mounts{
		Auth:  auth.NewHandler(domain.Auth, logger).Routes(),
		Users: users.NewHandler(domain.Users, logger, pagination).Routes(),
	}
}

// buildRouter mounts every group on a new router. Users routes require a
// bearer token accepted by the auth system.
func buildRouter(runtime *Runtime, domain *Domain, mounts *Mounts) (*module.Router, error) {
	router := module.NewRouter()

	authModule, err := router.MountGroup(AuthPrefix, routes.Compile(mounts.Auth), AuthTag)
	if err != nil {
		return nil, err
	}

	usersModule, err := router.MountGroup(UsersPrefix, routes.Compile(mounts.Users), UsersTag)
	if err != nil {
		return nil, err
	}

	if runtime.Metrics != nil {
		authModule.Use(runtime.Metrics.Middleware(runtime.BasePath + AuthPrefix))
		usersModule.Use(runtime.Metrics.Middleware(runtime.BasePath + UsersPrefix))
	}
	usersModule.Use(middleware.Authenticate(domain.Auth.Authenticate, runtime.Logger))

	return router, nil
}
