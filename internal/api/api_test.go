package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/JaimeStill/pledge/internal/api"
	"github.com/JaimeStill/pledge/internal/config"
	"github.com/JaimeStill/pledge/internal/infrastructure"
	"github.com/JaimeStill/pledge/pkg/module"
)

const testConfig = `
domain = "http://localhost:8000"

[database]
name = "pledge"
user = "pledge"

[logging]
level = "error"

[api.cors]
enabled = true
origins = ["http://localhost:5173"]

[auth]
secret = "0123456789abcdef0123456789abcdef"
`

func newModule(t *testing.T) *api.Module {
	t.Helper()

	cfg, err := config.Parse([]byte(testConfig))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		t.Fatalf("infrastructure.New() error = %v", err)
	}

	m, err := api.NewModule(cfg, infra)
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}
	return m
}

type document struct {
	Servers []struct {
		URL string `json:"url"`
	} `json:"servers"`
	Tags []struct {
		Name string `json:"name"`
	} `json:"tags"`
	Paths map[string]map[string]struct {
		Tags     []string              `json:"tags"`
		Security []map[string][]string `json:"security"`
	} `json:"paths"`
}

func TestNewModule_Spec(t *testing.T) {
	m := newModule(t)

	if m.Prefix() != "/api" {
		t.Errorf("Prefix() = %q, want /api", m.Prefix())
	}

	var doc document
	if err := json.Unmarshal(m.Spec, &doc); err != nil {
		t.Fatalf("unmarshal spec: %v", err)
	}

	if len(doc.Servers) != 1 || doc.Servers[0].URL != "http://localhost:8000" {
		t.Errorf("servers = %+v", doc.Servers)
	}

	var tags []string
	for _, tag := range doc.Tags {
		tags = append(tags, tag.Name)
	}
	if !slices.Equal(tags, []string{api.AuthTag, api.UsersTag}) {
		t.Errorf("tags = %v", tags)
	}

	tests := []struct {
		path   string
		method string
		tag    string
		secure bool
	}{
		{"/api/auth/code", "post", api.AuthTag, false},
		{"/api/auth/verify", "post", api.AuthTag, false},
		{"/api/auth/refresh", "post", api.AuthTag, false},
		{"/api/auth/logout", "post", api.AuthTag, false},
		{"/api/users", "get", api.UsersTag, true},
		{"/api/users/search", "post", api.UsersTag, true},
		{"/api/users/me", "get", api.UsersTag, true},
		{"/api/users/{id}", "get", api.UsersTag, true},
		{"/api/users/{id}", "put", api.UsersTag, true},
		{"/api/users/{id}", "delete", api.UsersTag, true},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			op, ok := doc.Paths[tt.path][tt.method]
			if !ok {
				t.Fatal("operation missing")
			}
			if !slices.Equal(op.Tags, []string{tt.tag}) {
				t.Errorf("tags = %v, want [%s]", op.Tags, tt.tag)
			}
			if secure := len(op.Security) > 0; secure != tt.secure {
				t.Errorf("secured = %v, want %v", secure, tt.secure)
			}
		})
	}

	if len(doc.Paths) != 8 {
		t.Errorf("len(paths) = %d, want 8", len(doc.Paths))
	}
}

func TestNewModule_Serve(t *testing.T) {
	m := newModule(t)

	router := module.NewRouter()
	if err := router.Mount(m.Module); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}

	tests := []struct {
		name   string
		method string
		target string
		status int
	}{
		{"spec", http.MethodGet, "/api/openapi.json", http.StatusOK},
		{"users require a token", http.MethodGet, "/api/users/me", http.StatusUnauthorized},
		{"users root requires a token", http.MethodGet, "/api/users/", http.StatusUnauthorized},
		{"invalid auth body", http.MethodPost, "/api/auth/code", http.StatusBadRequest},
		{"wrong method", http.MethodGet, "/api/auth/code", http.StatusMethodNotAllowed},
		{"unknown module", http.MethodGet, "/api/payments", http.StatusNotFound},
		{"unknown auth route", http.MethodPost, "/api/auth/nope", http.StatusNotFound},
		{"double slash reaches auth", http.MethodPost, "/api/auth//code", http.StatusBadRequest},
		{"parent segment reaches users", http.MethodGet, "/api/auth/../users/me", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(tt.method, tt.target, nil))
			if w.Code != tt.status {
				t.Errorf("status = %d, want %d, body = %s", w.Code, tt.status, w.Body)
			}
		})
	}

	t.Run("group not found is json", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/auth/nope", nil))

		if ct := w.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}

		var body map[string]string
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["error"] == "" {
			t.Error("error message is empty")
		}
	})

	t.Run("cors preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/users/me", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		req.Header.Set("Access-Control-Request-Headers", "Authorization")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
			t.Errorf("Access-Control-Allow-Origin = %q", got)
		}
	})
}
