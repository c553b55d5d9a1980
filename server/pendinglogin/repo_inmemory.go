package pendinglogin

import (
	"sync"
	"time"

	"github.com/pkg/errors"

	errs "github.com/agrovision/portal/internal/errors"
)

// InMemoryRepo is an in-memory implementation of Repo with TTL-bound
// entries. Expired entries are removed on access.
type InMemoryRepo struct {
	mu      sync.RWMutex
	pending map[string]Pending
	ttl     time.Duration
	nowFunc func() time.Time
}

var _ Repo = (*InMemoryRepo)(nil)

type Option func(*InMemoryRepo)

// WithNowFunc sets the now time function (primarily for testing)
func WithNowFunc(now func() time.Time) Option {
	return func(r *InMemoryRepo) {
		r.nowFunc = now
	}
}

func NewInMemoryRepo(ttl time.Duration, options ...Option) *InMemoryRepo {
	r := &InMemoryRepo{
		pending: make(map[string]Pending),
		ttl:     ttl,
		nowFunc: time.Now,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *InMemoryRepo) Upsert(pendingID string, pending Pending) error {
	if pendingID == "" {
		return errors.New("pendingID is required")
	}
	if pending.CreatedAt.IsZero() {
		pending.CreatedAt = r.nowFunc()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending[pendingID] = pending
	return nil
}

func (r *InMemoryRepo) Get(pendingID string) (Pending, error) {
	if pendingID == "" {
		return Pending{}, errors.New("pendingID is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pending[pendingID]
	if !ok {
		return Pending{}, errs.ErrPendingLoginNotFound
	}
	if r.nowFunc().Sub(p.CreatedAt) > r.ttl {
		delete(r.pending, pendingID)
		return Pending{}, errs.ErrPendingLoginExpired
	}
	return p, nil
}

func (r *InMemoryRepo) Delete(pendingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pending, pendingID)
	return nil
}
