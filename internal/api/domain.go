package api

import (
	"github.com/JaimeStill/pledge/internal/auth"
	"github.com/JaimeStill/pledge/internal/config"
	"github.com/JaimeStill/pledge/internal/users"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Users users.System
	Auth  auth.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime, cfg *config.AuthConfig) *Domain {
	usersSys := users.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	authSys := auth.New(
		auth.NewStore(runtime.Database.Connection()),
		usersSys,
		auth.NewTokens(cfg.Secret, cfg.Issuer, cfg.AccessTTLDuration()),
		auth.NewLogSender(runtime.Logger),
		cfg,
		runtime.Logger,
	)

	return &Domain{
		Users: usersSys,
		Auth:  authSys,
	}
}
