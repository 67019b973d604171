// Package render builds the site's HTML pages from templates compiled
// into the binary.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

type Renderer struct {
	templates map[string]*template.Template
}

// New parses every page template against the base layout. It panics on
// a malformed template, which can only happen at build time.
func New() *Renderer {
	templates := make(map[string]*template.Template)
	pages := []string{"home.html", "post.html", "login.html", "admin.html"}

	funcs := template.FuncMap{
		"markdown": Markdown,
	}

	for _, page := range pages {
		templates[page] = template.Must(
			template.New("").Funcs(funcs).ParseFS(templateFS,
				"templates/base.html",
				"templates/"+page,
			))
	}

	return &Renderer{templates: templates}
}

// Render writes the named page wrapped in the base layout.
func (r *Renderer) Render(w io.Writer, page string, data map[string]any) error {
	t, ok := r.templates[page]
	if !ok {
		return fmt.Errorf("unknown template %q", page)
	}
	return t.ExecuteTemplate(w, "base", data)
}
