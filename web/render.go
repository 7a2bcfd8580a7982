// Package web renders the catalog's HTML pages from embedded templates.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strings"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Renderer holds one parsed template set per page, each combined with the
// shared base layout at startup so a bad template fails at boot, not on
// first request.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page template against the base layout.
func NewRenderer() (*Renderer, error) {
	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded templates: %w", err)
	}

	pages := make(map[string]*template.Template)
	for _, entry := range entries {
		name := entry.Name()
		if name == "base.tmpl" || !strings.HasSuffix(name, ".tmpl") {
			continue
		}
		t, err := template.ParseFS(templateFS, "templates/base.tmpl", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		pages[strings.TrimSuffix(name, ".tmpl")] = t
	}
	return &Renderer{pages: pages}, nil
}

// HTML writes the named page with the given data context. The context is a
// plain map; every page expects at least a "Title" key.
func (rd *Renderer) HTML(w http.ResponseWriter, status int, page string, data map[string]any) {
	t, ok := rd.pages[page]
	if !ok {
		log.Printf("render: unknown page %q", page)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// render to a buffer first so a template fault never sends half a page
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		log.Printf("render: failed to execute page %q: %v", page, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
