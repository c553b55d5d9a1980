package server

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/agrovision/portal/access"
	"github.com/agrovision/portal/branding"
	"github.com/agrovision/portal/internal/i18n"
	"github.com/agrovision/portal/nav"
	"github.com/agrovision/portal/session"
)

// PageData is the shared view model every page template renders with.
type PageData struct {
	AppName       string
	Lang          string
	Theme         string
	Authenticated bool
	Branding      *branding.Organization
	Brandings     []*branding.Organization
	Nav           []nav.Group
	Error         string
	Next          string

	catalog *access.Catalog
}

// T translates a message key in the page's resolved language.
func (d PageData) T(key string) string {
	return i18n.T(d.Lang, key)
}

// HasAccess is the permission gate for templates: nothing renders for a
// capability the session's catalog does not carry (including while the
// catalog is still loading).
func (d PageData) HasAccess(name string) bool {
	if d.catalog == nil {
		return false
	}
	return d.catalog.HasAccess(name)
}

func (s *Server) pageData(r *http.Request) PageData {
	sessionID := SessionID(r)
	sess := s.deps.Sessions.Session(sessionID)

	theme := sess.Theme
	if theme == "" {
		theme = session.ThemeLight
	}

	org, err := s.deps.Branding.Get(sess.Organization)
	if err != nil {
		org = s.deps.Branding.Default()
	}

	data := PageData{
		AppName:       s.config.GetAppName(),
		Lang:          i18n.Match(sess.Language, r.Header.Get("Accept-Language")),
		Theme:         theme,
		Authenticated: sess.Authenticated(),
		Branding:      org,
		Brandings:     s.deps.Branding.List(),
	}

	if data.Authenticated {
		data.catalog = s.sessionCatalog(r, sessionID)
		data.Nav = nav.Build(data.catalog.Objects())
	}
	return data
}

// sessionCatalog returns the session's catalog, fetching it on first
// use after a restart. While a fetch is in flight the catalog is empty
// (fail-closed), so menus simply render nothing yet.
func (s *Server) sessionCatalog(r *http.Request, sessionID string) *access.Catalog {
	catalog := s.deps.Catalogs.Catalog(sessionID)
	if catalog.Loading() {
		err := catalog.Refresh(r.Context(), s.deps.Sessions.Authenticated(sessionID))
		if err != nil && !errors.Is(err, access.ErrRefreshInFlight) {
			log.Warn().Err(err).Msg("catalog refresh failed while building page data")
		}
	}
	return catalog
}
