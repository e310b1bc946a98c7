package module

import (
	"fmt"
	"net/http"
	"net/url"
	"path"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/JaimeStill/pledge/pkg/handlers"
)

type mount struct {
	module  *Module
	handler http.Handler
}

// Router is a route aggregator. Modules are mounted during initialization;
// the first request (or an explicit Seal) freezes the mount table, after
// which it is read without locking from any number of goroutines.
//
// A Router satisfies Group, so routers can be mounted inside routers.
type Router struct {
	native  *http.ServeMux
	modules []*Module

	once   sync.Once
	sealed atomic.Bool
	table  []mount
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{
		native: http.NewServeMux(),
	}
}

// HandleNative registers a handler on the fallback multiplexer, used when
// no module prefix matches. Patterns follow http.ServeMux syntax.
func (r *Router) HandleNative(pattern string, handler http.HandlerFunc) {
	r.native.HandleFunc(pattern, handler)
}

// Mount adds a module to the router.
// Returns ErrDuplicatePrefix if the prefix is already mounted, leaving the
// existing mount untouched, and ErrSealed once the router has been sealed.
func (r *Router) Mount(m *Module) error {
	if m == nil {
		return fmt.Errorf("%w: nil module", ErrInvalidPrefix)
	}
	if err := ValidatePrefix(m.prefix); err != nil {
		return err
	}
	if m.group == nil {
		return fmt.Errorf("module %s: nil group", m.prefix)
	}
	if r.sealed.Load() {
		return fmt.Errorf("%w: cannot mount %s", ErrSealed, m.prefix)
	}
	for _, existing := range r.modules {
		if existing.prefix == m.prefix {
			return fmt.Errorf("%w: %s", ErrDuplicatePrefix, m.prefix)
		}
	}

	r.modules = append(r.modules, m)
	return nil
}

// MountGroup creates a module for group at prefix and mounts it.
func (r *Router) MountGroup(prefix string, group Group, tags ...string) (*Module, error) {
	m, err := New(prefix, group, tags...)
	if err != nil {
		return nil, err
	}
	if err := r.Mount(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Modules returns the mounted modules in registration order.
func (r *Router) Modules() []*Module {
	return slices.Clone(r.modules)
}

// Seal freezes the mount table. Further calls to Mount fail with ErrSealed.
// Seal is idempotent and is invoked implicitly by ServeHTTP and Resolve.
func (r *Router) Seal() {
	r.once.Do(func() {
		r.sealed.Store(true)

		table := make([]mount, 0, len(r.modules))
		for _, m := range r.modules {
			table = append(table, mount{module: m, handler: m.Handler()})
		}
		slices.SortStableFunc(table, func(a, b mount) int {
			return len(b.module.prefix) - len(a.module.prefix)
		})
		r.table = table
	})
}

// Sealed reports whether the mount table is frozen.
func (r *Router) Sealed() bool {
	return r.sealed.Load()
}

// Resolve finds the module with the longest prefix matching path, strips
// the prefix and delegates the remainder to the module's group. Paths no
// module claims are resolved against the native multiplexer.
// Returns ErrNotFound if nothing matches or the group reports not-found.
func (r *Router) Resolve(method, path string) (http.Handler, error) {
	r.Seal()
	p := normalize(path)

	if mt, ok := r.match(p); ok {
		h, err := mt.module.Resolve(method, mt.module.relative(p))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrNotFound, mt.module.prefix, err)
		}
		return h, nil
	}

	h, pattern := r.native.Handler(&http.Request{Method: method, URL: &url.URL{Path: p}})
	if pattern == "" {
		return nil, fmt.Errorf("%w: %s %s", ErrNotFound, method, p)
	}
	return h, nil
}

// ServeHTTP dispatches the request to the module with the longest matching
// prefix, falling back to native routes. The path is cleaned and trailing
// slashes are trimmed before matching.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.Seal()

	p := normalize(req.URL.Path)
	if p != req.URL.Path {
		req = withPath(req, p)
	}

	if mt, ok := r.match(p); ok {
		mt.handler.ServeHTTP(w, mt.module.strip(req))
		return
	}

	if _, pattern := r.native.Handler(req); pattern != "" {
		r.native.ServeHTTP(w, req)
		return
	}

	handlers.RespondJSON(w, http.StatusNotFound, map[string]string{
		"error": fmt.Errorf("%w: %s %s", ErrNotFound, req.Method, p).Error(),
	})
}

func (r *Router) match(p string) (mount, bool) {
	for _, mt := range r.table {
		if mt.module.Matches(p) {
			return mt, true
		}
	}
	return mount{}, false
}

// normalize returns the clean, rooted form of p without a trailing slash,
// so "/api/auth//code/" and "/api/users/../auth/code" both become
// "/api/auth/code".
func normalize(p string) string {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

func withPath(r *http.Request, p string) *http.Request {
	r2 := new(http.Request)
	*r2 = *r
	r2.URL = new(url.URL)
	*r2.URL = *r.URL
	r2.URL.Path = p
	r2.URL.RawPath = ""
	return r2
}
