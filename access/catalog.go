package access

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// ErrRefreshInFlight is returned by Refresh when another caller is
// already fetching; the catalog stays in its loading state.
var ErrRefreshInFlight = errors.New("catalog refresh already in flight")

// Fetcher retrieves the full access-object list for one session.
type Fetcher interface {
	AccessObjects(ctx context.Context) ([]Object, error)
}

// Catalog holds the access objects one session is permitted to see.
// Every lookup is fail-closed: no access while loading, no access after
// a failed fetch, no access when unauthenticated.
type Catalog struct {
	mu       sync.Mutex
	fetcher  Fetcher
	objects  []Object
	loaded   bool
	fetching bool
	gen      uint64 // bumped on Clear so an in-flight fetch result is dropped
}

func NewCatalog(fetcher Fetcher) *Catalog {
	return &Catalog{fetcher: fetcher}
}

// Refresh replaces the catalog wholesale. When authenticated is false no
// network call is made and the catalog is forced empty. On fetch failure
// the catalog is cleared rather than left stale, and stays unloaded so a
// later navigation retries the fetch.
func (c *Catalog) Refresh(ctx context.Context, authenticated bool) error {
	c.mu.Lock()
	if !authenticated {
		c.clearLocked()
		c.mu.Unlock()
		return nil
	}
	if c.fetching {
		c.mu.Unlock()
		return ErrRefreshInFlight
	}
	c.fetching = true
	gen := c.gen
	c.mu.Unlock()

	objects, err := c.fetcher.AccessObjects(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		// Cleared (logout) while the fetch was in flight; drop the response.
		return nil
	}
	c.fetching = false
	if err != nil {
		// Stay unloaded so the next navigation retries the fetch; the
		// current request is denied fail-closed.
		c.loaded = false
		c.objects = nil
		log.Warn().Err(err).Msg("[Catalog.Refresh] access-object fetch failed, catalog cleared")
		return errors.Wrap(err, "[Catalog.Refresh] fetching access objects")
	}
	c.loaded = true
	c.objects = objects
	return nil
}

// Clear empties the catalog immediately, including while a fetch is in
// flight (the late response is discarded).
func (c *Catalog) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearLocked()
}

func (c *Catalog) clearLocked() {
	c.gen++
	c.objects = nil
	c.loaded = true
	c.fetching = false
}

// Loading reports whether the catalog content cannot be trusted yet:
// either nothing has been fetched or a refresh is in progress.
func (c *Catalog) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.loaded || c.fetching
}

// HasAccess reports whether some catalog entry's name equals name by
// exact string match. False while loading.
func (c *Catalog) HasAccess(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded || c.fetching {
		return false
	}
	for _, obj := range c.objects {
		if obj.Name == name {
			return true
		}
	}
	return false
}

// AllowsRoute reports whether some MENU entry's metadata href equals the
// route's required capability. False while loading.
func (c *Catalog) AllowsRoute(href string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded || c.fetching {
		return false
	}
	for _, obj := range c.objects {
		if obj.Type == TypeMenu && obj.Metadata.Href() == href {
			return true
		}
	}
	return false
}

// Objects returns a copy of the current object list.
func (c *Catalog) Objects() []Object {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Object, len(c.objects))
	copy(out, c.objects)
	return out
}
