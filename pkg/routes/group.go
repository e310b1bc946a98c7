// Package routes defines route groups: self-contained collections of
// method/pattern handlers owned by a single feature area. Patterns are
// relative to the group, so a group never needs to know where it is mounted.
package routes

import (
	"net/http"

	"github.com/JaimeStill/pledge/pkg/openapi"
)

// Route represents an HTTP route with method, pattern, and handler.
// An empty Pattern addresses the root of the enclosing group.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}

// Group represents a collection of routes under a common relative prefix.
// Groups can contain child groups for hierarchical route organization.
type Group struct {
	Prefix      string
	Tags        []string
	Description string
	Routes      []Route
	Children    []Group
}

// Walk visits every route in the group and its children with the route's
// full relative path and the nearest non-empty tag set.
func (g Group) Walk(fn func(path string, route Route, tags []string)) {
	g.walk("", nil, fn)
}

func (g Group) walk(parent string, parentTags []string, fn func(string, Route, []string)) {
	prefix := parent + g.Prefix
	tags := g.Tags
	if len(tags) == 0 {
		tags = parentTags
	}

	for _, route := range g.Routes {
		path := prefix + route.Pattern
		if path == "" {
			path = "/"
		}
		fn(path, route, tags)
	}

	for _, child := range g.Children {
		child.walk(prefix, tags, fn)
	}
}
