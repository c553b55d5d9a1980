package branding

import (
	"sync"

	"github.com/pkg/errors"

	errs "github.com/agrovision/portal/internal/errors"
)

// InMemoryRepo is an in-memory Repo seeded with the shipped presets.
// Order of registration is preserved for dropdown rendering.
type InMemoryRepo struct {
	mu    sync.RWMutex
	order []string
	orgs  map[string]*Organization
}

var _ Repo = (*InMemoryRepo)(nil)

// NewInMemoryRepo creates a repo seeded with the built-in organization
// presets. The first preset is the default.
func NewInMemoryRepo() *InMemoryRepo {
	r := &InMemoryRepo{orgs: make(map[string]*Organization)}
	r.add(&Organization{
		Name:    "Fricke",
		CSSFile: "/css/fricke.css",
		Icon:    "/icons/fricke.png",
		Site:    "https://www.loja.fricke.com.br/",
	})
	r.add(&Organization{
		Name:    "Balmer",
		CSSFile: "/css/balmer.css",
		Icon:    "/icons/balmer.png",
		Site:    "https://balmer.com.br/",
	})
	return r
}

func (r *InMemoryRepo) add(org *Organization) {
	r.order = append(r.order, org.Name)
	r.orgs[org.Name] = org
}

func (r *InMemoryRepo) Get(name string) (*Organization, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	org, ok := r.orgs[name]
	if !ok {
		return nil, errors.Wrap(errs.ErrOrganizationUnknown, name)
	}
	return org, nil
}

func (r *InMemoryRepo) List() []*Organization {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Organization, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.orgs[name])
	}
	return out
}

func (r *InMemoryRepo) Default() *Organization {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.order) == 0 {
		return &Organization{}
	}
	return r.orgs[r.order[0]]
}
