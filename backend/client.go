// Package backend is the HTTP client for the remote API that performs
// the real authentication, authorization and data retrieval. The portal
// is a thin layer in front of it: requests are forwarded, responses are
// mapped onto the portal's error taxonomy, nothing is retried.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/agrovision/portal/access"
	"github.com/agrovision/portal/internal/config"
	errs "github.com/agrovision/portal/internal/errors"
)

const (
	loginPath              = "/login/"
	selectOrganizationPath = "/login/select-organization/"
	accessObjectsPath      = "/ui/access-objects/"
)

// TokenProvider exposes the persisted access token of a session so the
// bearer header can be attached to authenticated calls.
type TokenProvider interface {
	AccessToken(sessionID string) (string, error)
}

// Organization is one selectable organization returned by login step 1.
type Organization struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Step1Result is transient: it only lives between step 1 and step 2 of
// the login flow.
type Step1Result struct {
	UserID        int64          `json:"user_id"`
	Organizations []Organization `json:"organizations"`
}

// TokenPair is the bearer token pair issued by login step 2.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenProvider
}

type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client (for tests).
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func New(cfg config.BackendConfig, tokens TokenProvider, options ...ClientOption) *Client {
	c := &Client{
		baseURL:    cfg.GetBackendBaseURL(),
		httpClient: http.DefaultClient,
		tokens:     tokens,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// LoginStep1 submits the credentials. A 4xx response means the backend
// rejected them; a transport failure is reported as unavailability.
func (c *Client) LoginStep1(ctx context.Context, username, password string) (*Step1Result, error) {
	body := map[string]string{"username": username, "password": password}
	var result Step1Result
	if err := c.postJSON(ctx, c.httpClient, loginPath, body, &result, errs.ErrInvalidCredentials); err != nil {
		return nil, errors.Wrap(err, "[Client.LoginStep1] login request")
	}
	return &result, nil
}

// LoginStep2 exchanges the step-1 user ID and the chosen organization
// for a bearer token pair.
func (c *Client) LoginStep2(ctx context.Context, userID, organizationID int64) (*TokenPair, error) {
	body := map[string]int64{"user_id": userID, "organization_id": organizationID}
	var pair TokenPair
	if err := c.postJSON(ctx, c.httpClient, selectOrganizationPath, body, &pair, errs.ErrOrganizationRejected); err != nil {
		return nil, errors.Wrap(err, "[Client.LoginStep2] select-organization request")
	}
	return &pair, nil
}

// AccessObjects fetches the full access-object list for a session. The
// bearer header is attached by the oauth2 transport reading the session's
// persisted access token.
func (c *Client) AccessObjects(ctx context.Context, sessionID string) ([]access.Object, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+accessObjectsPath, nil)
	if err != nil {
		return nil, errors.Wrap(err, "[Client.AccessObjects] building request")
	}

	resp, err := c.authClient(ctx, sessionID).Do(req)
	if err != nil {
		if errs.Is(err, errs.ErrNotAuthenticated) {
			return nil, errors.Wrap(errs.ErrNotAuthenticated, "[Client.AccessObjects] no session token")
		}
		return nil, errors.Wrap(errs.ErrBackendUnavailable, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		drain(resp.Body)
		return nil, errors.Wrapf(errs.ErrBackendUnavailable, "[Client.AccessObjects] status %d", resp.StatusCode)
	}

	var objects []access.Object
	if err := json.NewDecoder(resp.Body).Decode(&objects); err != nil {
		return nil, errors.Wrap(err, "[Client.AccessObjects] decoding response")
	}
	return objects, nil
}

// ObjectFetcher binds AccessObjects to one session, satisfying
// access.Fetcher for the catalog registry.
func (c *Client) ObjectFetcher(sessionID string) access.Fetcher {
	return fetcherFunc(func(ctx context.Context) ([]access.Object, error) {
		return c.AccessObjects(ctx, sessionID)
	})
}

type fetcherFunc func(ctx context.Context) ([]access.Object, error)

func (f fetcherFunc) AccessObjects(ctx context.Context) ([]access.Object, error) {
	return f(ctx)
}

// authClient wraps the HTTP client with the oauth2 transport so every
// request carries the session's current bearer token.
func (c *Client) authClient(ctx context.Context, sessionID string) *http.Client {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	return oauth2.NewClient(ctx, sessionTokenSource{sessionID: sessionID, tokens: c.tokens})
}

// postJSON posts body to path and decodes the response into out. A 4xx
// status maps onto rejectErr, anything else non-2xx plus transport
// failures map onto ErrBackendUnavailable.
func (c *Client) postJSON(ctx context.Context, hc *http.Client, path string, body, out any, rejectErr error) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "encoding request body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("backend request failed")
		return errors.Wrap(errs.ErrBackendUnavailable, err.Error())
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode <= 299:
		return errors.Wrap(json.NewDecoder(resp.Body).Decode(out), "decoding response")
	case resp.StatusCode >= 400 && resp.StatusCode <= 499:
		drain(resp.Body)
		return errors.Wrapf(rejectErr, "status %d", resp.StatusCode)
	default:
		drain(resp.Body)
		return errors.Wrapf(errs.ErrBackendUnavailable, "status %d", resp.StatusCode)
	}
}

func drain(r io.Reader) {
	_, _ = io.Copy(io.Discard, io.LimitReader(r, 4096))
}
