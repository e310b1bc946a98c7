package module_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/JaimeStill/pledge/pkg/module"
	"github.com/JaimeStill/pledge/pkg/routes"
)

func TestRouter_HandleNative(t *testing.T) {
	r := module.NewRouter()

	r.HandleNative("GET /healthz", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("ok"))
	})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	resp := w.Result()
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if string(body) != "ok" {
		t.Errorf("body = %q, want %q", string(body), "ok")
	}

	if _, err := r.Resolve(http.MethodGet, "/healthz"); err != nil {
		t.Errorf("Resolve(/healthz) error = %v", err)
	}
}

func TestRouter_ModulePrefixStripping(t *testing.T) {
	r := module.NewRouter()

	handler := &funcGroup{serve: func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(req.URL.Path))
	}}

	if _, err := r.MountGroup("/api", handler); err != nil {
		t.Fatalf("MountGroup() error = %v", err)
	}

	tests := []struct {
		name     string
		path     string
		wantPath string
	}{
		{"module root", "/api", "/"},
		{"module root trailing slash", "/api/", "/"},
		{"single segment", "/api/users", "/users"},
		{"trailing slash trimmed", "/api/users/", "/users"},
		{"nested path", "/api/users/42/sessions", "/users/42/sessions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if got := w.Body.String(); got != tt.wantPath {
				t.Errorf("path = %q, want %q", got, tt.wantPath)
			}
		})
	}
}

func TestRouter_MountAfterSeal(t *testing.T) {
	r := module.NewRouter()
	if _, err := r.MountGroup("/auth", &echoGroup{name: "auth"}); err != nil {
		t.Fatalf("MountGroup() error = %v", err)
	}

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/auth/login", nil))

	if !r.Sealed() {
		t.Fatal("router not sealed after serving")
	}

	_, err := r.MountGroup("/users", &echoGroup{name: "users"})
	if !errors.Is(err, module.ErrSealed) {
		t.Errorf("MountGroup() after seal error = %v, want ErrSealed", err)
	}
	if n := len(r.Modules()); n != 1 {
		t.Errorf("len(Modules()) = %d, want 1", n)
	}
}

func TestRouter_MountNil(t *testing.T) {
	r := module.NewRouter()
	if err := r.Mount(nil); !errors.Is(err, module.ErrInvalidPrefix) {
		t.Errorf("Mount(nil) error = %v, want ErrInvalidPrefix", err)
	}

	if err := r.Mount(&module.Module{}); !errors.Is(err, module.ErrInvalidPrefix) {
		t.Errorf("Mount(zero Module) error = %v, want ErrInvalidPrefix", err)
	}
	if n := len(r.Modules()); n != 0 {
		t.Errorf("len(Modules()) = %d, want 0", n)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/anything", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestRouter_RegistrationOrderIndependent(t *testing.T) {
	build := func(prefixes ...string) *module.Router {
		r := module.NewRouter()
		for _, p := range prefixes {
			if _, err := r.MountGroup(p, &echoGroup{name: p}); err != nil {
				t.Fatalf("MountGroup(%q) error = %v", p, err)
			}
		}
		return r
	}

	forward := build("/users", "/users/admin")
	reverse := build("/users/admin", "/users")

	for _, path := range []string{"/users/1", "/users/admin/1", "/users/admin"} {
		h1, err1 := forward.Resolve(http.MethodGet, path)
		h2, err2 := reverse.Resolve(http.MethodGet, path)
		if err1 != nil || err2 != nil {
			t.Fatalf("Resolve(%q) errors = %v, %v", path, err1, err2)
		}
		if b1, b2 := body(t, h1), body(t, h2); b1 != b2 {
			t.Errorf("Resolve(%q) = %q and %q, want identical", path, b1, b2)
		}
	}
}

func TestRouter_GroupNotFound(t *testing.T) {
	group := routes.Compile(routes.Group{
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/login", Handler: func(w http.ResponseWriter, r *http.Request) {}},
		},
	})

	r := module.NewRouter()
	if _, err := r.MountGroup("/auth", group, "authentication"); err != nil {
		t.Fatalf("MountGroup() error = %v", err)
	}

	if _, err := r.Resolve(http.MethodPost, "/auth/login"); err != nil {
		t.Errorf("Resolve(POST /auth/login) error = %v", err)
	}

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"unknown route", http.MethodPost, "/auth/logout"},
		{"wrong method", http.MethodGet, "/auth/login"},
		{"group root", http.MethodGet, "/auth"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Resolve(tt.method, tt.path)
			if !errors.Is(err, module.ErrNotFound) {
				t.Errorf("error = %v, want ErrNotFound", err)
			}
			if !errors.Is(err, routes.ErrNotFound) {
				t.Errorf("error = %v, want wrapped routes.ErrNotFound", err)
			}
		})
	}
}

func TestRouter_Nested(t *testing.T) {
	inner := module.NewRouter()
	if _, err := inner.MountGroup("/users", &echoGroup{name: "users"}, "users"); err != nil {
		t.Fatalf("inner MountGroup() error = %v", err)
	}

	outer := module.NewRouter()
	if _, err := outer.MountGroup("/api", inner); err != nil {
		t.Fatalf("outer MountGroup() error = %v", err)
	}

	h, err := outer.Resolve(http.MethodGet, "/api/users/42")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got := body(t, h); got != "users GET /42" {
		t.Errorf("body = %q, want %q", got, "users GET /42")
	}

	w := httptest.NewRecorder()
	outer.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/42", nil))
	if got := w.Body.String(); got != "users GET /42" {
		t.Errorf("served body = %q, want %q", got, "users GET /42")
	}

	if _, err := outer.Resolve(http.MethodGet, "/api/unknown"); !errors.Is(err, module.ErrNotFound) {
		t.Errorf("Resolve(/api/unknown) error = %v, want ErrNotFound", err)
	}
}

func TestRouter_ConcurrentResolve(t *testing.T) {
	r := module.NewRouter()
	r.MountGroup("/auth", &echoGroup{name: "auth"})
	r.MountGroup("/users", &echoGroup{name: "users"})
	r.Seal()

	var wg sync.WaitGroup
	for i := range 32 {
		wg.Go(func() {
			path := "/auth/login"
			want := "auth GET /login"
			if i%2 == 0 {
				path, want = "/users/1", "users GET /1"
			}

			h, err := r.Resolve(http.MethodGet, path)
			if err != nil {
				t.Errorf("Resolve(%q) error = %v", path, err)
				return
			}
			if got := body(t, h); got != want {
				t.Errorf("Resolve(%q) = %q, want %q", path, got, want)
			}
		})
	}
	wg.Wait()
}

func cleanPathRouter(t *testing.T) *module.Router {
	t.Helper()

	echo := func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.Method + " " + r.URL.Path + " " + r.PathValue("id")))
	}

	inner := module.NewRouter()
	auth := routes.Compile(routes.Group{
		Routes: []routes.Route{{Method: "POST", Pattern: "/code", Handler: echo}},
	})
	users := routes.Compile(routes.Group{
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/me", Handler: echo},
			{Method: "GET", Pattern: "/{id}", Handler: echo},
		},
	})
	if _, err := inner.MountGroup("/auth", auth); err != nil {
		t.Fatalf("MountGroup(/auth) error = %v", err)
	}
	if _, err := inner.MountGroup("/users", users); err != nil {
		t.Fatalf("MountGroup(/users) error = %v", err)
	}

	outer := module.NewRouter()
	if _, err := outer.MountGroup("/api", inner); err != nil {
		t.Fatalf("MountGroup(/api) error = %v", err)
	}
	return outer
}

func TestRouter_CleansPaths(t *testing.T) {
	r := cleanPathRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		want   string
	}{
		{"double slash", http.MethodPost, "/api/auth//code", "POST /code "},
		{"dot segment", http.MethodPost, "/api/./auth/code", "POST /code "},
		{"parent segment crosses mounts", http.MethodGet, "/api/auth/../users/me", "GET /me "},
		{"parent segment above root", http.MethodGet, "/../api/users/7", "GET /7 7"},
		{"trailing slashes", http.MethodGet, "/api/users/7//", "GET /7 7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, "/", nil)
			req.URL.Path = tt.path
			r.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d (Location %q)", w.Code, http.StatusOK, w.Header().Get("Location"))
			}
			if got := w.Body.String(); got != tt.want {
				t.Errorf("served body = %q, want %q", got, tt.want)
			}

			h, err := r.Resolve(tt.method, tt.path)
			if err != nil {
				t.Fatalf("Resolve(%s %s) error = %v", tt.method, tt.path, err)
			}
			rw := httptest.NewRecorder()
			h.ServeHTTP(rw, httptest.NewRequest(tt.method, "/", nil))
			if got := rw.Body.String(); got != tt.want {
				t.Errorf("resolved body = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRouter_GroupNotFoundJSON(t *testing.T) {
	r := cleanPathRouter(t)

	for _, path := range []string{"/api/auth/nope", "/api/users/7/deep", "/api/missing"} {
		t.Run(path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, nil))

			if w.Code != http.StatusNotFound {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}
		})
	}
}
