package domain

// Session holds the mutable state for one honeypot conversation. All
// fields are owned by the session store, which serializes access; nothing
// outside an Update closure may touch a live session.
type Session struct {
	ID           string
	ScamDetected bool
	AgentActive  bool
	MessageCount int
	Intelligence *IntelligenceRecord
}

// NewSession returns a dormant session for id.
func NewSession(id string) *Session {
	return &Session{
		ID:           id,
		Intelligence: NewIntelligenceRecord(),
	}
}

// Activate flips the session into the active decoy state. One-way:
// ScamDetected and AgentActive move together and never revert.
func (s *Session) Activate() {
	s.ScamDetected = true
	s.AgentActive = true
}

// Snapshot returns a deep copy that stays valid after the session is
// evicted from the store.
func (s *Session) Snapshot() Session {
	snap := *s
	snap.Intelligence = s.Intelligence.Clone()
	return snap
}
