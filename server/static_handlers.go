package server

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/rs/zerolog/log"
)

//go:embed static/*
var staticFiles embed.FS

// StaticFileHandler serves the embedded stylesheets (GET /css/{file})
func (s *Server) StaticFileHandler() http.HandlerFunc {
	cssFS, err := fs.Sub(staticFiles, "static/css")
	if err != nil {
		log.Err(err).Msg("Failed to open embedded css directory")
	}
	fileServer := http.FileServerFS(cssFS)

	return func(w http.ResponseWriter, r *http.Request) {
		if cssFS == nil {
			http.NotFound(w, r)
			return
		}
		r.URL.Path = "/" + r.PathValue("file")
		fileServer.ServeHTTP(w, r)
	}
}
