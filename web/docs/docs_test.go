package docs_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/pledge/pkg/routes"
	"github.com/JaimeStill/pledge/web/docs"
)

func TestHandler(t *testing.T) {
	h, err := docs.NewHandler(`Pledge <API>`, "/api/openapi.json")
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}

	table := routes.Compile(h.Routes())

	w := httptest.NewRecorder()
	table.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}

	body := w.Body.String()
	for _, want := range []string{
		`<title>Pledge &lt;API&gt;</title>`,
		`data-url="/api/openapi.json"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}

	if _, err := table.Resolve(http.MethodGet, "/assets/app.js"); err == nil {
		t.Error("Resolve() of unknown path succeeded")
	}
}
