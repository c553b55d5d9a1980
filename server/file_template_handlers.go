package server

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"
)

//go:embed templates/*
var templateFiles embed.FS

const contentTypeHTML = "text/html; charset=utf-8"

// ParseTemplate parses one page template together with the shared
// layout. Pages define a "content" block rendered inside the layout.
func ParseTemplate(page string) (*template.Template, error) {
	return template.ParseFS(templateFiles, "templates/layout.html", "templates/"+page)
}

// render executes the layout with the given data; failures degrade to a
// plain 500, never a panic.
func render(w http.ResponseWriter, tmpl *template.Template, data any) {
	if tmpl == nil {
		http.Error(w, "page template unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentTypeHTML)
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		log.Err(err).Msg("failed to render template")
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}
