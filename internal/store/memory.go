package store

import (
	"sync"

	"github.com/decoylab/honeypot/internal/domain"
)

// Memory is a mutex-guarded in-process SessionStore. A single lock covers
// the whole get-mutate-evict sequence, so two events for the same
// identifier can never interleave mid-update. Sessions have no TTL:
// entries below the termination threshold live until evicted or the
// process exits.
type Memory struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
}

var _ SessionStore = (*Memory)(nil)

// NewMemory creates an empty in-memory session store.
func NewMemory() *Memory {
	return &Memory{sessions: make(map[string]*domain.Session)}
}

// Update runs fn with exclusive access to the session for id, creating a
// dormant session first if none exists. If fn returns true the session is
// removed before Update returns; a later event with the same id starts
// fresh.
func (m *Memory) Update(id string, fn func(s *domain.Session) (evict bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		s = domain.NewSession(id)
		m.sessions[id] = s
	}

	if fn(s) {
		delete(m.sessions, id)
	}
}

// Evict removes the session for id. Safe no-op on unknown ids.
func (m *Memory) Evict(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Peek returns a snapshot of the session for id, if present.
func (m *Memory) Peek(id string) (domain.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return domain.Session{}, false
	}
	return s.Snapshot(), true
}

// Len returns the number of live sessions.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
