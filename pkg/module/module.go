// Package module composes independently built route groups into a single
// addressable namespace. A Module binds a group to a path prefix; a Router
// dispatches each request to the module with the longest matching prefix.
package module

import (
	"fmt"
	"net/http"
	"net/url"
	"path"
	"slices"
	"strings"

	"github.com/JaimeStill/pledge/pkg/middleware"
)

// Group is the capability a mounted handler collection must provide: serve
// requests addressed relative to its mount point and resolve a relative
// path and method to a handler without serving it.
type Group interface {
	http.Handler
	Resolve(method, path string) (http.Handler, error)
}

// Module binds a Group to a prefix with documentation tags and an
// optional middleware chain.
type Module struct {
	prefix     string
	tags       []string
	group      Group
	middleware middleware.System
}

// New creates a module mounted at prefix. Tags are used for documentation
// grouping only and never take part in dispatch.
// Returns ErrInvalidPrefix if prefix is empty or malformed.
func New(prefix string, group Group, tags ...string) (*Module, error) {
	if err := ValidatePrefix(prefix); err != nil {
		return nil, err
	}
	if group == nil {
		return nil, fmt.Errorf("module %s: nil group", prefix)
	}

	return &Module{
		prefix:     prefix,
		tags:       dedupe(tags),
		group:      group,
		middleware: middleware.New(),
	}, nil
}

// ValidatePrefix reports whether prefix can be used as a mount point. A
// valid prefix starts with "/", has no trailing "/", is already clean
// (no empty, "." or ".." segments) and contains no pattern syntax.
func ValidatePrefix(prefix string) error {
	switch {
	case prefix == "":
		return fmt.Errorf("%w: empty", ErrInvalidPrefix)
	case !strings.HasPrefix(prefix, "/"):
		return fmt.Errorf("%w: %q must start with /", ErrInvalidPrefix, prefix)
	case strings.HasSuffix(prefix, "/"):
		return fmt.Errorf("%w: %q must not end with /", ErrInvalidPrefix, prefix)
	case path.Clean(prefix) != prefix:
		return fmt.Errorf("%w: %q is not a clean path", ErrInvalidPrefix, prefix)
	case strings.ContainsAny(prefix, "{}*?# \t\r\n"):
		return fmt.Errorf("%w: %q contains reserved characters", ErrInvalidPrefix, prefix)
	}
	return nil
}

// Prefix returns the mount prefix.
func (m *Module) Prefix() string {
	return m.prefix
}

// Tags returns a copy of the documentation tags.
func (m *Module) Tags() []string {
	return slices.Clone(m.tags)
}

// Group returns the mounted handler collection.
func (m *Module) Group() Group {
	return m.group
}

// Use appends middleware to the module chain. The first registered
// middleware is the outermost.
func (m *Module) Use(mw func(http.Handler) http.Handler) {
	m.middleware.Use(mw)
}

// Handler returns the group wrapped in the module middleware chain. The
// handler expects paths that are already relative to the prefix.
func (m *Module) Handler() http.Handler {
	return m.middleware.Apply(m.group)
}

// Resolve delegates a relative path to the mounted group.
func (m *Module) Resolve(method, path string) (http.Handler, error) {
	return m.group.Resolve(method, path)
}

// Serve strips the module prefix from the request path and dispatches to
// the module handler.
func (m *Module) Serve(w http.ResponseWriter, r *http.Request) {
	m.Handler().ServeHTTP(w, m.strip(r))
}

// Matches reports whether p falls under the module prefix on a path
// segment boundary: "/users" matches "/users" and "/users/42" but not
// "/usersx".
func (m *Module) Matches(p string) bool {
	return p == m.prefix || strings.HasPrefix(p, m.prefix+"/")
}

func (m *Module) relative(p string) string {
	rel := strings.TrimPrefix(p, m.prefix)
	if rel == "" {
		return "/"
	}
	return rel
}

func (m *Module) strip(r *http.Request) *http.Request {
	r2 := new(http.Request)
	*r2 = *r
	r2.URL = new(url.URL)
	*r2.URL = *r.URL
	r2.URL.Path = m.relative(r.URL.Path)
	if r.URL.RawPath != "" {
		r2.URL.RawPath = m.relative(r.URL.RawPath)
	}
	return r2
}

func dedupe(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t != "" && !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}
