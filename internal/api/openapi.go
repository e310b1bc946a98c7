package api

import (
	"github.com/JaimeStill/pledge/internal/auth"
	"github.com/JaimeStill/pledge/internal/config"
	"github.com/JaimeStill/pledge/internal/users"
	"github.com/JaimeStill/pledge/pkg/module"
	"github.com/JaimeStill/pledge/pkg/openapi"
	"github.com/JaimeStill/pledge/pkg/routes"
)

// documented is satisfied by groups that expose their route definitions.
type documented interface {
	Group() routes.Group
}

// BuildSpec generates the API document from the modules mounted on router.
// Paths are rooted at the API base path. Operations without tags inherit
// their module's tags.
func BuildSpec(cfg *config.Config, router *module.Router) *openapi.Spec {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.Domain)

	spec.Components.AddSchemas(users.Spec.Schemas())
	spec.Components.AddSchemas(auth.Spec.Schemas())

	for _, m := range router.Modules() {
		d, ok := m.Group().(documented)
		if !ok {
			continue
		}
		addModule(spec, cfg.API.BasePath, m, d.Group())
	}

	return spec
}

func addModule(spec *openapi.Spec, basePath string, m *module.Module, group routes.Group) {
	for _, tag := range m.Tags() {
		spec.AddTag(tag, group.Description)
	}

	group.Walk(func(path string, route routes.Route, tags []string) {
		if route.OpenAPI == nil {
			return
		}

		op := *route.OpenAPI
		if len(op.Tags) == 0 {
			op.Tags = tags
		}
		if len(op.Tags) == 0 {
			op.Tags = m.Tags()
		}

		full := basePath + m.Prefix()
		if path != "/" {
			full += path
		}
		spec.AddOperation(full, route.Method, &op)
	})
}
