package server

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/agrovision/portal/access"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeySessionID stores the browser session ID
	ContextKeySessionID ContextKey = "session_id"
)

const (
	// sessionCookieName identifies the browser session across reloads
	sessionCookieName = "portal_session_id"
	// pendingCookieName tracks the step-1 login result awaiting organization selection
	pendingCookieName = "pending_login_id"
)

// EnsureSession gives every request a stable session ID, minting one on
// first contact. Nothing is persisted until the session stores a token
// or a preference.
func (s *Server) EnsureSession() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			sessionID := ""
			if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
				sessionID = cookie.Value
			}
			if sessionID == "" {
				sessionID = uuid.New().String()
				s.setSessionCookie(w, r, sessionID)
			}
			ctx := context.WithValue(r.Context(), ContextKeySessionID, sessionID)
			next(w, r.WithContext(ctx))
		}
	}
}

// RequireAuth redirects unauthenticated sessions to the login page,
// preserving the originally requested location for post-login return.
func (s *Server) RequireAuth() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			sessionID := SessionID(r)
			if sessionID == "" || !s.deps.Sessions.Authenticated(sessionID) {
				http.Redirect(w, r, RouteLogin+"?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
				return
			}
			next(w, r)
		}
	}
}

// RequireCapability gates a route on the session's access catalog: the
// route renders only when some MENU access object carries the required
// href. An unloaded catalog is fetched on demand; while another request
// holds the fetch, a neutral loading page renders instead of a
// redirect. Denial is a redirect to the unauthorized page, with no
// return path.
func (s *Server) RequireCapability(requiredHref string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			sessionID := SessionID(r)
			catalog := s.deps.Catalogs.Catalog(sessionID)

			if catalog.Loading() {
				err := catalog.Refresh(r.Context(), s.deps.Sessions.Authenticated(sessionID))
				if errors.Is(err, access.ErrRefreshInFlight) {
					s.renderLoadingPage(w, r)
					return
				}
				if err != nil {
					// Fail-closed: the cleared catalog denies below.
					log.Warn().Err(err).Str("href", requiredHref).Msg("catalog refresh failed during route guard")
				}
			}

			if !catalog.AllowsRoute(requiredHref) {
				http.Redirect(w, r, RouteUnauthorized, http.StatusSeeOther)
				return
			}
			next(w, r)
		}
	}
}

// RedirectIfAuthenticated is the inverse guard for authentication-only
// pages: an already-authenticated session is sent straight to the
// default landing route instead of seeing the login form again.
func (s *Server) RedirectIfAuthenticated() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			sessionID := SessionID(r)
			if sessionID != "" && s.deps.Sessions.Authenticated(sessionID) {
				http.Redirect(w, r, s.config.GetDefaultLandingRoute(), http.StatusSeeOther)
				return
			}
			next(w, r)
		}
	}
}

// SessionID returns the browser session ID injected by EnsureSession.
func SessionID(r *http.Request) string {
	id, _ := r.Context().Value(ContextKeySessionID).(string)
	return id
}

func (s *Server) setSessionCookie(w http.ResponseWriter, r *http.Request, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.config.GetSessionMaxAge().Seconds()),
	})
}

func (s *Server) setPendingCookie(w http.ResponseWriter, r *http.Request, pendingID string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     pendingCookieName,
		Value:    pendingID,
		Path:     "/",
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}
