package routes

import (
	"fmt"
	"net/http"
	"net/url"
	"slices"

	"github.com/JaimeStill/pledge/pkg/handlers"
)

// Table is a compiled Group. It dispatches requests with relative paths
// and resolves handlers without serving them.
type Table struct {
	group   Group
	mux     *http.ServeMux
	methods []string
}

// Compile registers every route of the group, including children, on a
// dedicated multiplexer. Compile panics on conflicting patterns, matching
// http.ServeMux registration semantics.
func Compile(group Group) *Table {
	t := &Table{
		group: group,
		mux:   http.NewServeMux(),
	}

	group.Walk(func(path string, route Route, _ []string) {
		t.mux.HandleFunc(route.Method+" "+muxPattern(path, route.Pattern), route.Handler)
		if !slices.Contains(t.methods, route.Method) {
			t.methods = append(t.methods, route.Method)
		}
	})

	return t
}

// Group returns the source group the table was compiled from.
func (t *Table) Group() Group {
	return t.group
}

// Resolve returns the handler registered for method and the relative path.
// The returned handler re-dispatches to the matched route with method and
// path, so wildcard values are available through PathValue regardless of
// the request it is later served with.
// Returns ErrNotFound when no route matches.
func (t *Table) Resolve(method, path string) (http.Handler, error) {
	if _, pattern := t.mux.Handler(probe(method, path)); pattern == "" {
		return nil, fmt.Errorf("%w: %s %s", ErrNotFound, method, path)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r2 := new(http.Request)
		*r2 = *r
		r2.Method = method
		r2.URL = new(url.URL)
		*r2.URL = *r.URL
		r2.URL.Path = path
		r2.URL.RawPath = ""
		t.mux.ServeHTTP(w, r2)
	}), nil
}

// ServeHTTP dispatches to the matching route. Paths no route claims under
// any method are answered with a JSON ErrNotFound body; a path registered
// for other methods keeps the multiplexer's 405 response.
func (t *Table) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if _, pattern := t.mux.Handler(r); pattern == "" && !t.allowsAny(r.URL.Path) {
		handlers.RespondJSON(w, http.StatusNotFound, map[string]string{
			"error": fmt.Errorf("%w: %s %s", ErrNotFound, r.Method, r.URL.Path).Error(),
		})
		return
	}
	t.mux.ServeHTTP(w, r)
}

func (t *Table) allowsAny(path string) bool {
	for _, m := range t.methods {
		if _, pattern := t.mux.Handler(probe(m, path)); pattern != "" {
			return true
		}
	}
	return false
}

func probe(method, path string) *http.Request {
	return &http.Request{
		Method: method,
		URL:    &url.URL{Path: path},
	}
}

// muxPattern anchors group-root routes so they do not act as subtree matches.
func muxPattern(path, pattern string) string {
	if pattern == "" && (path == "/" || path == "") {
		return "/{$}"
	}
	return path
}
