package openapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/JaimeStill/pledge/pkg/openapi"
)

func TestSpec_AddOperation(t *testing.T) {
	spec := openapi.NewSpec("Pledge API", "1.0.0")

	list := &openapi.Operation{Summary: "List users"}
	find := &openapi.Operation{Summary: "Find user"}
	update := &openapi.Operation{Summary: "Update user"}

	spec.AddOperation("/api/users/{$}", http.MethodGet, list)
	spec.AddOperation("/api/users/{id}", http.MethodGet, find)
	spec.AddOperation("/api/users/{id}/", "put", update)

	want := []string{"/api/users", "/api/users/{id}"}
	if got := spec.PathKeys(); !slices.Equal(got, want) {
		t.Fatalf("PathKeys() = %v, want %v", got, want)
	}

	if spec.Paths["/api/users"].Get != list {
		t.Error("list operation not registered under GET /api/users")
	}
	item := spec.Paths["/api/users/{id}"]
	if item.Get != find || item.Put != update {
		t.Error("operations not merged onto /api/users/{id}")
	}
}

func TestSpec_AddTag(t *testing.T) {
	spec := openapi.NewSpec("Pledge API", "1.0.0")

	spec.AddTag("users", "")
	spec.AddTag("users", "User profiles")
	spec.AddTag("users", "ignored")
	spec.AddTag("authentication", "")

	if len(spec.Tags) != 2 {
		t.Fatalf("len(Tags) = %d, want 2", len(spec.Tags))
	}
	if spec.Tags[0].Description != "User profiles" {
		t.Errorf("Tags[0].Description = %q, want %q", spec.Tags[0].Description, "User profiles")
	}
}

func TestSpec_AddServer(t *testing.T) {
	spec := openapi.NewSpec("Pledge API", "1.0.0")
	spec.AddServer("")
	spec.AddServer("http://localhost:8080")

	if len(spec.Servers) != 1 || spec.Servers[0].URL != "http://localhost:8080" {
		t.Errorf("Servers = %+v", spec.Servers)
	}
}

func TestMarshalJSON(t *testing.T) {
	spec := openapi.NewSpec("Pledge API", "1.0.0")
	spec.AddOperation("/api/users/{id}", http.MethodDelete, &openapi.Operation{
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "User ID")},
		Responses: map[int]*openapi.Response{
			204: {Description: "Deleted"},
			404: openapi.ResponseRef("NotFound"),
		},
		Security: openapi.BearerAuth,
	})

	data, err := openapi.MarshalJSON(spec)
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}

	var doc struct {
		OpenAPI string `json:"openapi"`
		Paths   map[string]map[string]struct {
			Responses map[string]struct {
				Ref string `json:"$ref"`
			} `json:"responses"`
		} `json:"paths"`
		Components struct {
			Responses       map[string]any `json:"responses"`
			SecuritySchemes map[string]any `json:"securitySchemes"`
		} `json:"components"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if doc.OpenAPI != "3.1.0" {
		t.Errorf("openapi = %q, want 3.1.0", doc.OpenAPI)
	}
	op, ok := doc.Paths["/api/users/{id}"]["delete"]
	if !ok {
		t.Fatal("delete operation missing from paths")
	}
	if op.Responses["404"].Ref != "#/components/responses/NotFound" {
		t.Errorf("404 ref = %q", op.Responses["404"].Ref)
	}
	for _, name := range []string{"BadRequest", "Unauthorized", "NotFound", "TooManyRequests"} {
		if _, ok := doc.Components.Responses[name]; !ok {
			t.Errorf("component response %s missing", name)
		}
	}
	if _, ok := doc.Components.SecuritySchemes["bearerAuth"]; !ok {
		t.Error("bearerAuth security scheme missing")
	}
}

func TestServeSpec(t *testing.T) {
	body := []byte(`{"openapi":"3.1.0"}`)
	w := httptest.NewRecorder()

	openapi.ServeSpec(body)(w, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if w.Body.String() != string(body) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestConfig_Finalize(t *testing.T) {
	t.Setenv("TEST_OPENAPI_TITLE", "Pledge Staging")

	cfg := &openapi.Config{}
	if err := cfg.Finalize(&openapi.ConfigEnv{Title: "TEST_OPENAPI_TITLE"}); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.Title != "Pledge Staging" {
		t.Errorf("Title = %q, want env override", cfg.Title)
	}
	if cfg.Description == "" {
		t.Error("Description default not applied")
	}
}
