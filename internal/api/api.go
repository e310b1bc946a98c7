// Package api assembles the application's HTTP API: the auth and users
// route groups mounted on a nested router, and the generated OpenAPI
// document describing them.
package api

import (
	"fmt"

	"github.com/JaimeStill/pledge/internal/config"
	"github.com/JaimeStill/pledge/internal/infrastructure"
	"github.com/JaimeStill/pledge/pkg/middleware"
	"github.com/JaimeStill/pledge/pkg/module"
	"github.com/JaimeStill/pledge/pkg/openapi"
)

// SpecPath is the document path relative to the API base path.
const SpecPath = "/openapi.json"

// Module is the mounted API together with its rendered document.
type Module struct {
	*module.Module
	Spec []byte
}

// NewModule builds the API module mounted at the configured base path.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime, &cfg.Auth)
	mounts := NewMounts(domain, runtime.Logger, runtime.Pagination)

	router, err := buildRouter(runtime, domain, mounts)
	if err != nil {
		return nil, err
	}

	specBytes, err := openapi.MarshalJSON(BuildSpec(cfg, router))
	if err != nil {
		return nil, fmt.Errorf("marshal spec: %w", err)
	}
	router.HandleNative("GET "+SpecPath, openapi.ServeSpec(specBytes))

	m, err := module.New(cfg.API.BasePath, router)
	if err != nil {
		return nil, err
	}
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(middleware.BodyLimit(cfg.API.MaxBodySizeBytes()))

	return &Module{Module: m, Spec: specBytes}, nil
}
