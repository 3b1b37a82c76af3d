// Package view renders the embedded HTML templates. Every page shares
// one layout (header, navigation, flash messages); the per-page
// template fills the content block.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"qualifaize-web/internal/nav"
	"qualifaize-web/internal/session"
	"qualifaize-web/internal/util"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{
	"signin",
	"signup",
	"dashboard",
	"account",
	"interview",
	"history",
	"documents",
	"users",
	"error",
}

// Page is the data every template render receives.
type Page struct {
	Title         string
	Authenticated bool
	Username      string
	Nav           []nav.Group
	Flashes       []session.Flash
	ActivePath    string
	Content       any
}

type Renderer struct {
	pages map[string]*template.Template
}

func New() (*Renderer, error) {
	funcs := template.FuncMap{
		"formatDate":     util.FormatDate,
		"formatDateTime": util.FormatDateTime,
		"truncate":       util.Truncate,
		"roleDisplay":    util.RoleDisplay,
		"formatDuration": util.FormatDuration,
		"percent": func(v float64) string {
			return fmt.Sprintf("%.1f%%", v)
		},
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(
			templateFS,
			"templates/layout.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &Renderer{pages: pages}, nil
}

// Render writes the page, buffering first so a template failure can
// still produce a clean 500 instead of a half-written body.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data Page) {
	tmpl, ok := r.pages[page]
	if !ok {
		slog.Error("unknown page template", "page", page)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		slog.Error("template render failed", "page", page, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
