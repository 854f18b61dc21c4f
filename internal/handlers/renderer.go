package handlers

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"github.com/labstack/echo/v4"

	"expense-console/internal/report"
)

// Renderer adapts html/template to Echo's Renderer interface. Templates are
// parsed once at startup from the embedded filesystem.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses all templates under the given filesystem
func NewRenderer(templatesFS fs.FS) (*Renderer, error) {
	funcs := template.FuncMap{
		"currency": report.FormatCurrency,
		"add":      func(a, b int) int { return a + b },
		"add_f":    func(a, b float64) float64 { return a + b },
		// Bar chart geometry: bars are 28 wide on a 36 pitch, offset past
		// the Y axis, inside a canvas with a 10px top margin.
		"bar_x":       func(i int) float64 { return 50 + float64(i)*36 },
		"bar_label_x": func(i int) float64 { return 52 + float64(i)*36 },
		"bar_y":       func(height, area float64) float64 { return 10 + area - height },
	}

	tmpl, err := template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

// Render implements echo.Renderer
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
