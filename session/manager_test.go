package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/agrovision/portal/backend"
	errs "github.com/agrovision/portal/internal/errors"
	"github.com/agrovision/portal/session"
	"github.com/agrovision/portal/session/repofakes"
)

const testSessionID = "session-1"

// fakeAPI is an in-memory session.API
type fakeAPI struct {
	step1Result *backend.Step1Result
	step1Err    error
	step2Pair   *backend.TokenPair
	step2Err    error
}

func (f *fakeAPI) LoginStep1(ctx context.Context, username, password string) (*backend.Step1Result, error) {
	return f.step1Result, f.step1Err
}

func (f *fakeAPI) LoginStep2(ctx context.Context, userID, organizationID int64) (*backend.TokenPair, error) {
	return f.step2Pair, f.step2Err
}

func newManager(t *testing.T, api *fakeAPI) (*session.Manager, *repofakes.FakeSessionRepo) {
	t.Helper()
	repo := repofakes.NewFakeSessionRepo()
	manager, err := session.NewManager(repo, api)
	require.NoError(t, err)
	return manager, repo
}

func TestLoginStep1PersistsNothing(t *testing.T) {
	t.Run("success stays transient", func(t *testing.T) {
		api := &fakeAPI{step1Result: &backend.Step1Result{
			UserID:        42,
			Organizations: []backend.Organization{{ID: 1, Name: "Fricke"}},
		}}
		manager, repo := newManager(t, api)

		result, err := manager.LoginStep1(context.Background(), "user@example.com", "secret")
		require.NoError(t, err)
		require.Equal(t, int64(42), result.UserID)
		require.Len(t, result.Organizations, 1)

		_, err = repo.Get(testSessionID)
		require.ErrorIs(t, err, errs.ErrSessionNotFound)
		require.False(t, manager.Authenticated(testSessionID))
	})

	t.Run("failure propagates the sentinel", func(t *testing.T) {
		api := &fakeAPI{step1Err: errs.ErrInvalidCredentials}
		manager, _ := newManager(t, api)

		_, err := manager.LoginStep1(context.Background(), "user@example.com", "wrong")
		require.ErrorIs(t, err, errs.ErrInvalidCredentials)
		require.False(t, manager.Authenticated(testSessionID))
	})
}

func TestLoginStep2(t *testing.T) {
	t.Run("persists the token pair and authenticates", func(t *testing.T) {
		api := &fakeAPI{step2Pair: &backend.TokenPair{Access: "access-token", Refresh: "refresh-token"}}
		manager, _ := newManager(t, api)

		require.NoError(t, manager.LoginStep2(context.Background(), testSessionID, 42, 1))
		require.True(t, manager.Authenticated(testSessionID))

		sess := manager.Session(testSessionID)
		require.Equal(t, "access-token", sess.AccessToken)
		require.Equal(t, "refresh-token", sess.RefreshToken)
	})

	t.Run("preserves stored preferences", func(t *testing.T) {
		api := &fakeAPI{step2Pair: &backend.TokenPair{Access: "access-token", Refresh: "refresh-token"}}
		manager, _ := newManager(t, api)
		require.NoError(t, manager.UpdatePreferences(testSessionID, func(s *session.Session) {
			s.Theme = session.ThemeDark
			s.Language = "en"
		}))

		require.NoError(t, manager.LoginStep2(context.Background(), testSessionID, 42, 1))

		sess := manager.Session(testSessionID)
		require.Equal(t, session.ThemeDark, sess.Theme)
		require.Equal(t, "en", sess.Language)
	})

	t.Run("rejection leaves the session unauthenticated", func(t *testing.T) {
		api := &fakeAPI{step2Err: errs.ErrOrganizationRejected}
		manager, _ := newManager(t, api)

		err := manager.LoginStep2(context.Background(), testSessionID, 42, 99)
		require.ErrorIs(t, err, errs.ErrOrganizationRejected)
		require.False(t, manager.Authenticated(testSessionID))
	})
}

func TestLogout(t *testing.T) {
	api := &fakeAPI{step2Pair: &backend.TokenPair{Access: "access-token", Refresh: "refresh-token"}}
	manager, _ := newManager(t, api)

	t.Run("clears tokens but keeps preferences", func(t *testing.T) {
		require.NoError(t, manager.UpdatePreferences(testSessionID, func(s *session.Session) {
			s.Theme = session.ThemeDark
		}))
		require.NoError(t, manager.LoginStep2(context.Background(), testSessionID, 42, 1))
		require.True(t, manager.Authenticated(testSessionID))

		require.NoError(t, manager.Logout(testSessionID))
		require.False(t, manager.Authenticated(testSessionID))

		sess := manager.Session(testSessionID)
		require.Empty(t, sess.AccessToken)
		require.Empty(t, sess.RefreshToken)
		require.Equal(t, session.ThemeDark, sess.Theme)
	})

	t.Run("missing session logs out cleanly", func(t *testing.T) {
		require.NoError(t, manager.Logout("never-seen"))
	})
}

func TestAuthenticatedIsOptimisticAboutExpiry(t *testing.T) {
	// A stored token past its exp claim still counts as authenticated;
	// staleness surfaces on the first failing backend call instead.
	expired := signedToken(t, time.Now().Add(-time.Hour))
	api := &fakeAPI{step2Pair: &backend.TokenPair{Access: expired, Refresh: "refresh-token"}}
	manager, _ := newManager(t, api)

	require.NoError(t, manager.LoginStep2(context.Background(), testSessionID, 42, 1))
	require.True(t, manager.Authenticated(testSessionID))
}

func TestTokenExpiry(t *testing.T) {
	t.Run("reads the exp claim without verification", func(t *testing.T) {
		wantExpiry := time.Now().Add(30 * time.Minute).Truncate(time.Second)
		got := session.TokenExpiry(signedToken(t, wantExpiry))
		require.NotNil(t, got)
		require.True(t, wantExpiry.Equal(*got))
	})

	t.Run("opaque tokens have no expiry", func(t *testing.T) {
		require.Nil(t, session.TokenExpiry("not-a-jwt"))
	})
}

func TestUpdatePreferencesCreatesSession(t *testing.T) {
	manager, repo := newManager(t, &fakeAPI{})

	require.NoError(t, manager.UpdatePreferences(testSessionID, func(s *session.Session) {
		s.Organization = "Balmer"
	}))

	sess, err := repo.Get(testSessionID)
	require.NoError(t, err)
	require.Equal(t, "Balmer", sess.Organization)
	require.False(t, sess.Authenticated())
}

func TestNewManagerValidation(t *testing.T) {
	_, err := session.NewManager(nil, &fakeAPI{})
	require.Error(t, err)

	_, err = session.NewManager(repofakes.NewFakeSessionRepo(), nil)
	require.Error(t, err)
}

func signedToken(t *testing.T, expiry time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "42",
		"exp": expiry.Unix(),
	})
	signed, err := token.SignedString([]byte("test-signing-key"))
	require.NoError(t, err)
	return signed
}
