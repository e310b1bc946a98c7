package main

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/pledge/internal/api"
	"github.com/JaimeStill/pledge/internal/config"
	"github.com/JaimeStill/pledge/internal/infrastructure"
	"github.com/JaimeStill/pledge/pkg/middleware"
	"github.com/JaimeStill/pledge/pkg/module"
	"github.com/JaimeStill/pledge/pkg/routes"
	"github.com/JaimeStill/pledge/web/docs"
)

// DocsPrefix is where the interactive API reference is mounted.
const DocsPrefix = "/docs"

type Modules struct {
	API  *api.Module
	Docs *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, fmt.Errorf("api module: %w", err)
	}

	docsHandler, err := docs.NewHandler(cfg.API.OpenAPI.Title, cfg.API.BasePath+api.SpecPath)
	if err != nil {
		return nil, fmt.Errorf("docs module: %w", err)
	}

	docsModule, err := module.New(DocsPrefix, routes.Compile(docsHandler.Routes()), "documentation")
	if err != nil {
		return nil, fmt.Errorf("docs module: %w", err)
	}
	docsModule.Use(middleware.Logger(infra.Logger))
	if infra.Metrics != nil {
		docsModule.Use(infra.Metrics.Middleware(DocsPrefix))
	}

	return &Modules{
		API:  apiModule,
		Docs: docsModule,
	}, nil
}

// Mount registers every module with router. A duplicate or invalid prefix
// is a startup error.
func (m *Modules) Mount(router *module.Router) error {
	if err := router.Mount(m.API.Module); err != nil {
		return err
	}
	return router.Mount(m.Docs)
}

func buildRouter(infra *infrastructure.Infrastructure, cfg *config.Config) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("NOT READY"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("READY"))
	})

	if infra.Metrics != nil {
		router.HandleNative("GET "+cfg.Metrics.Path, infra.Metrics.Handler().ServeHTTP)
	}

	return router
}
