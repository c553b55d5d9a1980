// Package pendinglogin stores the transient step-1 login result between
// credential submission and organization selection. Entries are bound
// to a short-lived cookie and expire so an abandoned selection cannot be
// resumed indefinitely.
package pendinglogin

import (
	"time"

	"github.com/agrovision/portal/backend"
)

// Pending is one step-1 result awaiting organization selection.
type Pending struct {
	UserID        int64
	Username      string // kept for prefill when the user steps back
	Organizations []backend.Organization
	CreatedAt     time.Time
}

type Repo interface {
	Upsert(pendingID string, pending Pending) error
	Get(pendingID string) (Pending, error)
	Delete(pendingID string) error
}
