package server

import (
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/agrovision/portal/nav"
)

// HomeHandler renders the authenticated landing page (GET /home)
func (s *Server) HomeHandler() http.HandlerFunc {
	homeTmpl, err := ParseTemplate("home.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse home template")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		render(w, homeTmpl, s.pageData(r))
	}
}

// ContactHandler renders the contact page (GET /contact)
func (s *Server) ContactHandler() http.HandlerFunc {
	contactTmpl, err := ParseTemplate("contact.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse contact template")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		render(w, contactTmpl, s.pageData(r))
	}
}

// UnauthorizedHandler renders the access-denied page (GET /403)
func (s *Server) UnauthorizedHandler() http.HandlerFunc {
	deniedTmpl, err := ParseTemplate("unauthorized.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse unauthorized template")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		render(w, deniedTmpl, s.pageData(r))
	}
}

// NotFoundHandler renders the fallback page for unknown routes
func (s *Server) NotFoundHandler() http.HandlerFunc {
	notFoundTmpl, err := ParseTemplate("not_found.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse not-found template")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		render(w, notFoundTmpl, s.pageData(r))
	}
}

// loadingTmpl is shared by the route guard when a capability check lands
// while the catalog is still being fetched.
var loadingTmpl = func() *template.Template {
	t, err := ParseTemplate("loading.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse loading template")
	}
	return t
}()

func (s *Server) renderLoadingPage(w http.ResponseWriter, r *http.Request) {
	render(w, loadingTmpl, s.pageData(r))
}

// NavGroupJSON is the wire shape of one navigation group (GET /api/nav)
type NavGroupJSON struct {
	Label string        `json:"label"`
	Items []NavItemJSON `json:"items"`
}

// NavItemJSON is a single navigation entry
type NavItemJSON struct {
	To    string `json:"to"`
	Label string `json:"label"`
}

// NavHandler returns the permission-derived navigation tree as JSON.
// Unauthenticated callers get a 401 rather than a redirect since this is
// an API surface.
func (s *Server) NavHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		sessionID := SessionID(r)
		if !s.deps.Sessions.Authenticated(sessionID) {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "not authenticated"})
			return
		}

		catalog := s.sessionCatalog(r, sessionID)
		groups := nav.Build(catalog.Objects())
		payload := make([]NavGroupJSON, 0, len(groups))
		for _, group := range groups {
			items := make([]NavItemJSON, 0, len(group.Items))
			for _, item := range group.Items {
				items = append(items, NavItemJSON{To: item.To, Label: item.Label})
			}
			payload = append(payload, NavGroupJSON{Label: group.Label, Items: items})
		}
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			log.Err(err).Msg("failed to encode navigation response")
		}
	}
}
