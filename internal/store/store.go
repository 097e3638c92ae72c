// Package store owns in-memory honeypot session state.
package store

import (
	"github.com/decoylab/honeypot/internal/domain"
)

// SessionStore is the interface the controller uses for session state.
// Implementations must serialize all access touching the same identifier:
// the whole get-mutate-evict sequence for one event runs under exclusion.
type SessionStore interface {
	// Update runs fn with exclusive access to the session for id, creating
	// a dormant session first if none exists. If fn returns true the
	// session is evicted before Update returns.
	Update(id string, fn func(s *domain.Session) (evict bool))

	// Evict removes the session for id. Safe no-op on unknown ids.
	Evict(id string)

	// Peek returns a snapshot of the session for id, if present.
	Peek(id string) (domain.Session, bool)

	// Len returns the number of live sessions.
	Len() int
}
