package repofakes

import (
	"sync"

	"github.com/pkg/errors"

	errs "github.com/agrovision/portal/internal/errors"
	"github.com/agrovision/portal/session"
)

// FakeSessionRepo is an in-memory implementation of session.Repo
type FakeSessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]session.Session
}

var _ session.Repo = (*FakeSessionRepo)(nil)

func NewFakeSessionRepo() *FakeSessionRepo {
	return &FakeSessionRepo{sessions: make(map[string]session.Session)}
}

func (r *FakeSessionRepo) Upsert(sessionID string, sess session.Session) error {
	if sessionID == "" {
		return errors.New("sessionID is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sessionID] = sess
	return nil
}

func (r *FakeSessionRepo) Get(sessionID string) (session.Session, error) {
	if sessionID == "" {
		return session.Session{}, errors.New("sessionID is required")
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	sess, ok := r.sessions[sessionID]
	if !ok {
		return session.Session{}, errs.ErrSessionNotFound
	}
	return sess, nil
}

func (r *FakeSessionRepo) Delete(sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
	return nil
}
