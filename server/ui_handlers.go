package server

import (
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"

	"github.com/agrovision/portal/internal/i18n"
	"github.com/agrovision/portal/session"
)

// ThemeUpdateHandler persists the light/dark preference (POST /ui/theme)
func (s *Server) ThemeUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		theme := r.FormValue("theme")
		if theme != session.ThemeLight && theme != session.ThemeDark {
			http.Error(w, "unknown theme", http.StatusBadRequest)
			return
		}
		s.updatePreference(w, r, func(sess *session.Session) {
			sess.Theme = theme
		})
	}
}

// LanguageUpdateHandler persists the language preference (POST /ui/language)
func (s *Server) LanguageUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := r.FormValue("language")
		if !i18n.Supported(lang) {
			http.Error(w, "unsupported language", http.StatusBadRequest)
			return
		}
		s.updatePreference(w, r, func(sess *session.Session) {
			sess.Language = lang
		})
	}
}

// OrganizationUpdateHandler persists the branding organization
// (POST /ui/organization). Only known presets are accepted.
func (s *Server) OrganizationUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.FormValue("organization")
		if _, err := s.deps.Branding.Get(name); err != nil {
			http.Error(w, "unknown organization", http.StatusBadRequest)
			return
		}
		s.updatePreference(w, r, func(sess *session.Session) {
			sess.Organization = name
		})
	}
}

// updatePreference applies a mutation to the request's session and sends
// the browser back where it came from. Only the local path of the
// Referer is used, never a full URL the client controls.
func (s *Server) updatePreference(w http.ResponseWriter, r *http.Request, fn func(*session.Session)) {
	if err := s.deps.Sessions.UpdatePreferences(SessionID(r), fn); err != nil {
		log.Err(err).Msg("failed to update session preference")
		http.Error(w, "failed to save preference", http.StatusInternalServerError)
		return
	}

	target := "/"
	if ref, err := url.Parse(r.Referer()); err == nil {
		if local := sanitizeNext(ref.RequestURI()); local != "" {
			target = local
		}
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
