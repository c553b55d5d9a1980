package access

import "sync"

// Registry keys catalogs by session ID. A catalog's lifecycle is tied
// one-to-one to authentication transitions: it is refreshed when login
// completes and dropped on logout.
type Registry struct {
	mu         sync.RWMutex
	catalogs   map[string]*Catalog
	newFetcher func(sessionID string) Fetcher
}

// NewRegistry creates a registry; newFetcher builds the session-bound
// fetcher used the first time a catalog is requested for a session.
func NewRegistry(newFetcher func(sessionID string) Fetcher) *Registry {
	return &Registry{
		catalogs:   make(map[string]*Catalog),
		newFetcher: newFetcher,
	}
}

// Catalog returns the catalog for sessionID, creating an unloaded one on
// first sight.
func (r *Registry) Catalog(sessionID string) *Catalog {
	r.mu.RLock()
	c, ok := r.catalogs[sessionID]
	r.mu.RUnlock()
	if ok {
		return c
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.catalogs[sessionID]; ok {
		return c
	}
	c = NewCatalog(r.newFetcher(sessionID))
	r.catalogs[sessionID] = c
	return c
}

// Drop clears and removes the session's catalog. No stale permissions
// survive a logout, even with a fetch in flight.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	c, ok := r.catalogs[sessionID]
	delete(r.catalogs, sessionID)
	r.mu.Unlock()
	if ok {
		c.Clear()
	}
}
