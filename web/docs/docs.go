// Package docs provides the interactive API documentation page using Scalar UI.
package docs

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/JaimeStill/pledge/pkg/routes"
)

var page = template.Must(template.New("docs").Parse(`<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
</head>
<body>
  <script id="api-reference" data-url="{{.SpecURL}}"></script>
  <script src="https://cdn.jsdelivr.net/npm/@scalar/api-reference"></script>
</body>
</html>
`))

// Handler serves the Scalar API documentation interface.
type Handler struct {
	index []byte
}

// NewHandler renders the documentation page for the document at specURL.
func NewHandler(title, specURL string) (*Handler, error) {
	var buf bytes.Buffer
	err := page.Execute(&buf, struct{ Title, SpecURL string }{title, specURL})
	if err != nil {
		return nil, err
	}
	return &Handler{index: buf.Bytes()}, nil
}

// Routes returns the route group for documentation endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Description: "Interactive API documentation powered by Scalar",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.serveIndex},
		},
	}
}

func (h *Handler) serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(h.index)
}
