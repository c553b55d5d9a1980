// Package session holds the per-browser session: the bearer token pair
// issued by the two-step login plus the portal preferences that used to
// live in browser storage (organization branding, theme, language).
package session

import "time"

// Theme values persisted per session.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Session is one browser session. A session is authenticated iff it
// holds an access token; the token is not revalidated against the
// backend on restore, staleness surfaces on the first failing API call.
type Session struct {
	AccessToken  string    `json:"access_token,omitempty"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	Organization string    `json:"organization,omitempty"` // selected branding organization
	Theme        string    `json:"theme,omitempty"`
	Language     string    `json:"language,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

// Authenticated reports whether the session holds an access token.
func (s Session) Authenticated() bool {
	return s.AccessToken != ""
}
