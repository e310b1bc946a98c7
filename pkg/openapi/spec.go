package openapi

import (
	"encoding/json"
	"maps"
	"net/http"
	"slices"
	"strings"
)

// NewSpec creates an empty OpenAPI 3.1 document.
func NewSpec(title, version string) *Spec {
	return &Spec{
		OpenAPI:    "3.1.0",
		Info:       &Info{Title: title, Version: version},
		Paths:      make(map[string]*PathItem),
		Components: NewComponents(),
	}
}

// SetDescription sets the API description.
func (s *Spec) SetDescription(desc string) {
	s.Info.Description = desc
}

// AddServer appends a server URL. Empty URLs are ignored.
func (s *Spec) AddServer(url string) {
	if url == "" {
		return
	}
	s.Servers = append(s.Servers, &Server{URL: url})
}

// AddTag registers a tag once; later descriptions fill an empty one.
func (s *Spec) AddTag(name, description string) {
	for _, t := range s.Tags {
		if t.Name == name {
			if t.Description == "" {
				t.Description = description
			}
			return
		}
	}
	s.Tags = append(s.Tags, &Tag{Name: name, Description: description})
}

// AddOperation attaches op to path under the given HTTP method.
// Path wildcards use http.ServeMux syntax, which matches OpenAPI templating
// apart from the "{$}" anchor that is dropped here.
func (s *Spec) AddOperation(path, method string, op *Operation) {
	path = strings.TrimSuffix(path, "{$}")
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	item := s.Paths[path]
	if item == nil {
		item = &PathItem{}
		s.Paths[path] = item
	}

	switch strings.ToUpper(method) {
	case http.MethodGet:
		item.Get = op
	case http.MethodPost:
		item.Post = op
	case http.MethodPut:
		item.Put = op
	case http.MethodPatch:
		item.Patch = op
	case http.MethodDelete:
		item.Delete = op
	}
}

// PathKeys returns the registered paths in sorted order.
func (s *Spec) PathKeys() []string {
	return slices.Sorted(maps.Keys(s.Paths))
}

// NewComponents creates components with the shared error responses.
func NewComponents() *Components {
	errSchema := &Schema{
		Type: "object",
		Properties: map[string]*Schema{
			"error": {Type: "string"},
		},
	}

	c := &Components{
		Schemas: map[string]*Schema{"Error": errSchema},
		Responses: map[string]*Response{
			"BadRequest":      ResponseJSON("Invalid request", "Error"),
			"Unauthorized":    ResponseJSON("Missing or invalid credentials", "Error"),
			"Forbidden":       ResponseJSON("Operation not permitted", "Error"),
			"NotFound":        ResponseJSON("Resource not found", "Error"),
			"Conflict":        ResponseJSON("Resource already exists", "Error"),
			"TooManyRequests": ResponseJSON("Too many attempts", "Error"),
		},
		SecuritySchemes: map[string]*SecurityScheme{
			"bearerAuth": {Type: "http", Scheme: "bearer", BearerFormat: "JWT"},
		},
	}
	return c
}

// AddSchemas merges schemas into the component set.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(c.Schemas, schemas)
}

// MarshalJSON renders the document with indentation.
func MarshalJSON(spec *Spec) ([]byte, error) {
	return json.MarshalIndent(spec, "", "  ")
}

// ServeSpec returns a handler that writes pre-rendered spec bytes.
func ServeSpec(spec []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(spec)
	}
}
