package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

// PageTemplate is the name of the search page template.
const PageTemplate = "index.html"

//go:embed templates/*.html
var templateFS embed.FS

// Page is the data rendered by the search page template.
type Page struct {
	State
	Types      []SearchTypeOption
	SearchPath string
}

// NewPage wraps a view snapshot for rendering.
func NewPage(state State) Page {
	return Page{
		State:      state,
		Types:      SearchTypes,
		SearchPath: searchPath,
	}
}

// Renderer renders the UI templates; it satisfies echo.Renderer.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("ui").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse ui templates: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

// Render executes the named template.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

var _ echo.Renderer = (*Renderer)(nil)
