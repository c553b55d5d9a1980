package backend

import (
	"github.com/pkg/errors"
	"golang.org/x/oauth2"

	errs "github.com/agrovision/portal/internal/errors"
)

// sessionTokenSource reads the persisted access token on every call, so
// a token swapped by a re-login is picked up without rebuilding clients.
type sessionTokenSource struct {
	sessionID string
	tokens    TokenProvider
}

var _ oauth2.TokenSource = sessionTokenSource{}

func (s sessionTokenSource) Token() (*oauth2.Token, error) {
	if s.tokens == nil {
		return nil, errors.New("[sessionTokenSource] no token provider configured")
	}
	token, err := s.tokens.AccessToken(s.sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "[sessionTokenSource] reading access token")
	}
	if token == "" {
		return nil, errs.ErrNotAuthenticated
	}
	return &oauth2.Token{AccessToken: token, TokenType: "Bearer"}, nil
}
