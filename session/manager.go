package session

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/agrovision/portal/backend"
	errs "github.com/agrovision/portal/internal/errors"
	"github.com/agrovision/portal/internal/utils"
)

// API is the slice of the backend client the session store needs.
type API interface {
	LoginStep1(ctx context.Context, username, password string) (*backend.Step1Result, error)
	LoginStep2(ctx context.Context, userID, organizationID int64) (*backend.TokenPair, error)
}

// Manager drives the session lifecycle: the two-step login that issues
// tokens, logout, and the per-session preference updates.
type Manager struct {
	repo    Repo
	api     API
	nowFunc func() time.Time
}

type ManagerOption func(*Manager)

// WithNowFunc sets the now time function (primarily for testing)
func WithNowFunc(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowFunc = now
	}
}

func NewManager(repo Repo, api API, options ...ManagerOption) (*Manager, error) {
	if repo == nil {
		return nil, errors.New("[NewManager] session repo is required")
	}
	if api == nil {
		return nil, errors.New("[NewManager] backend API is required")
	}

	m := &Manager{
		repo:    repo,
		api:     api,
		nowFunc: time.Now,
	}
	for _, opt := range options {
		opt(m)
	}
	return m, nil
}

// LoginStep1 forwards the credentials to the backend. Nothing is
// persisted; the step-1 result is transient until step 2 completes.
func (m *Manager) LoginStep1(ctx context.Context, username, password string) (*backend.Step1Result, error) {
	result, err := m.api.LoginStep1(ctx, username, password)
	if err != nil {
		return nil, errors.Wrap(err, "[Manager.LoginStep1] backend login")
	}
	return result, nil
}

// LoginStep2 exchanges the chosen organization for a token pair and
// persists it, flipping the session to authenticated. Preferences stored
// on the session (theme, language, branding) are preserved.
func (m *Manager) LoginStep2(ctx context.Context, sessionID string, userID, organizationID int64) error {
	pair, err := m.api.LoginStep2(ctx, userID, organizationID)
	if err != nil {
		return errors.Wrap(err, "[Manager.LoginStep2] backend select-organization")
	}

	sess, err := m.repo.Get(sessionID)
	if err != nil && !errs.Is(err, errs.ErrSessionNotFound) {
		return errors.Wrap(err, "[Manager.LoginStep2] reading session")
	}

	sess.AccessToken = pair.Access
	sess.RefreshToken = pair.Refresh
	sess.CreatedAt = m.nowFunc()
	if err := m.repo.Upsert(sessionID, sess); err != nil {
		return errors.Wrap(err, "[Manager.LoginStep2] persisting session")
	}
	return nil
}

// Logout clears the persisted tokens. It always succeeds locally: a
// missing session or a repo read failure still leaves the session
// unauthenticated, so both are swallowed after logging.
func (m *Manager) Logout(sessionID string) error {
	sess, err := m.repo.Get(sessionID)
	if err != nil {
		if !errs.Is(err, errs.ErrSessionNotFound) {
			log.Warn().Err(err).Msg("[Manager.Logout] reading session")
		}
		return nil
	}

	sess.AccessToken = ""
	sess.RefreshToken = ""
	if err := m.repo.Upsert(sessionID, sess); err != nil {
		return errors.Wrap(err, "[Manager.Logout] persisting session")
	}
	return nil
}

// Authenticated reports whether the session holds an access token. The
// token is not revalidated; an already-expired token is only logged.
func (m *Manager) Authenticated(sessionID string) bool {
	sess, err := m.repo.Get(sessionID)
	if err != nil {
		return false
	}
	if !sess.Authenticated() {
		return false
	}
	if exp := utils.Value(TokenExpiry(sess.AccessToken)); !exp.IsZero() && exp.Before(m.nowFunc()) {
		log.Debug().Time("expired_at", exp).Msg("stored access token already expired, keeping optimistic session")
	}
	return true
}

// Session returns the stored session, or a zero session when none exists
// yet (a fresh browser).
func (m *Manager) Session(sessionID string) Session {
	sess, err := m.repo.Get(sessionID)
	if err != nil {
		return Session{}
	}
	return sess
}

// AccessToken implements backend.TokenProvider: it is read on every
// authenticated backend call so token swaps are picked up immediately.
func (m *Manager) AccessToken(sessionID string) (string, error) {
	sess, err := m.repo.Get(sessionID)
	if err != nil {
		if errs.Is(err, errs.ErrSessionNotFound) {
			return "", nil
		}
		return "", errors.Wrap(err, "[Manager.AccessToken] reading session")
	}
	return sess.AccessToken, nil
}

// UpdatePreferences mutates the stored preferences through fn, creating
// the session record if it does not exist yet.
func (m *Manager) UpdatePreferences(sessionID string, fn func(*Session)) error {
	sess, err := m.repo.Get(sessionID)
	if err != nil && !errs.Is(err, errs.ErrSessionNotFound) {
		return errors.Wrap(err, "[Manager.UpdatePreferences] reading session")
	}
	fn(&sess)
	return errors.Wrap(m.repo.Upsert(sessionID, sess), "[Manager.UpdatePreferences] persisting session")
}

// TokenExpiry pulls the exp claim out of a JWT access token without
// verifying the signature (the backend owns the signing key; the portal
// only reports staleness). Nil when the token is not a JWT or carries no
// expiry.
func TokenExpiry(rawToken string) *time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(rawToken, claims); err != nil {
		return nil
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	return utils.Ptr(exp.Time)
}
