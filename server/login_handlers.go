package server

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/agrovision/portal/backend"
	errs "github.com/agrovision/portal/internal/errors"
	"github.com/agrovision/portal/server/pendinglogin"
)

// LoginPageData contains data for rendering the credentials page
type LoginPageData struct {
	PageData
	Username string
}

// OrgSelectPageData contains data for rendering the organization-selection page
type OrgSelectPageData struct {
	PageData
	Username      string
	Organizations []backend.Organization
}

// LoginPageHandler displays the credentials step (GET / and GET /login)
func (s *Server) LoginPageHandler() http.HandlerFunc {
	loginTmpl, err := ParseTemplate("login.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse login template")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		data := LoginPageData{
			PageData: s.pageData(r),
			Username: r.URL.Query().Get("username"),
		}
		data.Error = translateError(data.PageData, r.URL.Query().Get("error"))
		data.Next = sanitizeNext(r.URL.Query().Get("next"))
		render(w, loginTmpl, data)
	}
}

// LoginSubmissionHandler processes the credentials form (POST /auth/login).
// Success moves the flow to organization selection; failure stays on the
// credentials step with an inline error and nothing persisted.
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		username := r.FormValue("username")
		password := r.FormValue("password")
		next := sanitizeNext(r.FormValue("next"))

		if username == "" || password == "" {
			s.redirectLoginError(w, r, "fields_required", username, next)
			return
		}

		result, err := s.deps.Sessions.LoginStep1(r.Context(), username, password)
		if err != nil {
			switch {
			case errs.Is(err, errs.ErrBackendUnavailable):
				s.redirectLoginError(w, r, "backend_unavailable", username, next)
			default:
				s.redirectLoginError(w, r, "invalid_credentials", username, next)
			}
			return
		}

		pendingID := uuid.New().String()
		if err := s.deps.Pending.Upsert(pendingID, pendinglogin.Pending{
			UserID:        result.UserID,
			Username:      username,
			Organizations: result.Organizations,
		}); err != nil {
			log.Err(err).Msg("failed to store pending login")
			s.redirectLoginError(w, r, "backend_unavailable", username, next)
			return
		}

		ttl := int(s.config.GetPendingLoginTTL().Seconds())
		s.setPendingCookie(w, r, pendingID, ttl)
		redirectSuccess(w, r, withNext(RouteLoginSelect, next))
	}
}

// SelectOrganizationPageHandler displays the organization-selection step
// (GET /login/select-organization). A missing or expired pending login
// sends the user back to the credentials step.
func (s *Server) SelectOrganizationPageHandler() http.HandlerFunc {
	selectTmpl, err := ParseTemplate("select_organization.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse organization-selection template")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		pending, _, err := s.pendingLogin(r)
		if err != nil {
			redirectSuccess(w, r, RouteLogin+"?error=session_expired")
			return
		}

		data := OrgSelectPageData{
			PageData:      s.pageData(r),
			Username:      pending.Username,
			Organizations: pending.Organizations,
		}
		data.Error = translateError(data.PageData, r.URL.Query().Get("error"))
		data.Next = sanitizeNext(r.URL.Query().Get("next"))
		render(w, selectTmpl, data)
	}
}

// SelectOrganizationSubmissionHandler completes the login
// (POST /auth/select-organization): the chosen organization is exchanged
// for tokens, the catalog is refreshed, and the user lands on the
// originally requested page. Failure keeps the step-1 result valid for
// retry.
func (s *Server) SelectOrganizationSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		next := sanitizeNext(r.FormValue("next"))

		pending, pendingID, err := s.pendingLogin(r)
		if err != nil {
			redirectSuccess(w, r, RouteLogin+"?error=session_expired")
			return
		}

		organizationID, err := strconv.ParseInt(r.FormValue("organization_id"), 10, 64)
		if err != nil {
			redirectSuccess(w, r, withNext(RouteLoginSelect+"?error=organization_rejected", next))
			return
		}

		sessionID := SessionID(r)
		if err := s.deps.Sessions.LoginStep2(r.Context(), sessionID, pending.UserID, organizationID); err != nil {
			errKey := "organization_rejected"
			if errs.Is(err, errs.ErrBackendUnavailable) {
				errKey = "backend_unavailable"
			}
			redirectSuccess(w, r, withNext(RouteLoginSelect+"?error="+errKey, next))
			return
		}

		// Token issued: the transient step-1 result is discarded and the
		// catalog refreshes now that authentication flipped true.
		_ = s.deps.Pending.Delete(pendingID)
		s.setPendingCookie(w, r, "", -1)
		if err := s.deps.Catalogs.Catalog(sessionID).Refresh(r.Context(), true); err != nil {
			log.Warn().Err(err).Msg("catalog refresh after login failed")
		}

		if next == "" {
			next = s.config.GetDefaultLandingRoute()
		}
		redirectSuccess(w, r, next)
	}
}

// LoginBackHandler steps back from organization selection to credential
// re-entry without a full restart (POST /auth/login/back).
func (s *Server) LoginBackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		next := sanitizeNext(r.FormValue("next"))

		username := ""
		if pending, pendingID, err := s.pendingLogin(r); err == nil {
			username = pending.Username
			_ = s.deps.Pending.Delete(pendingID)
		}
		s.setPendingCookie(w, r, "", -1)

		target := RouteLogin
		if username != "" {
			target += "?username=" + url.QueryEscape(username)
		}
		redirectSuccess(w, r, withNext(target, next))
	}
}

// LogoutHandler clears the persisted tokens and drops the session's
// catalog (GET /auth/logout). Preferences survive: theme, language and
// branding outlive a logout.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := SessionID(r)
		if err := s.deps.Sessions.Logout(sessionID); err != nil {
			log.Err(err).Msg("logout failed to clear session tokens")
		}
		s.deps.Catalogs.Drop(sessionID)
		redirectSuccess(w, r, RouteLogin)
	}
}

// pendingLogin resolves the step-1 result bound to the request's pending cookie.
func (s *Server) pendingLogin(r *http.Request) (pendinglogin.Pending, string, error) {
	cookie, err := r.Cookie(pendingCookieName)
	if err != nil || cookie.Value == "" {
		return pendinglogin.Pending{}, "", errs.ErrPendingLoginNotFound
	}
	pending, err := s.deps.Pending.Get(cookie.Value)
	if err != nil {
		return pendinglogin.Pending{}, "", err
	}
	return pending, cookie.Value, nil
}

func (s *Server) redirectLoginError(w http.ResponseWriter, r *http.Request, errKey, username, next string) {
	target := RouteLogin + "?error=" + url.QueryEscape(errKey)
	if username != "" {
		target += "&username=" + url.QueryEscape(username)
	}
	redirectSuccess(w, r, withNext(target, next))
}

// translateError maps an error key from the query string onto the page
// language; unknown keys pass through untouched.
func translateError(data PageData, errKey string) string {
	if errKey == "" {
		return ""
	}
	return data.T(errKey)
}

// sanitizeNext keeps post-login return targets local to the portal.
func sanitizeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return ""
	}
	return next
}

func withNext(target, next string) string {
	if next == "" {
		return target
	}
	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}
	return target + sep + "next=" + url.QueryEscape(next)
}

func redirectSuccess(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusSeeOther)
}
