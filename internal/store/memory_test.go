package store

import (
	"sync"
	"testing"

	"github.com/decoylab/honeypot/internal/domain"
)

func TestUpdateCreatesDormantSession(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	m.Update("s1", func(s *domain.Session) bool {
		if s.ID != "s1" {
			t.Errorf("session ID = %q, want s1", s.ID)
		}
		if s.ScamDetected || s.AgentActive || s.MessageCount != 0 {
			t.Errorf("new session not dormant: %+v", s)
		}
		if s.Intelligence == nil {
			t.Error("new session has nil intelligence record")
		}
		return false
	})

	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
}

func TestUpdateReturnsSameSession(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	m.Update("s1", func(s *domain.Session) bool {
		s.MessageCount++
		return false
	})
	m.Update("s1", func(s *domain.Session) bool {
		if s.MessageCount != 1 {
			t.Errorf("MessageCount = %d, want 1", s.MessageCount)
		}
		return false
	})
}

func TestUpdateEvicts(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	m.Update("s1", func(s *domain.Session) bool {
		s.Activate()
		return true
	})

	if _, ok := m.Peek("s1"); ok {
		t.Error("session still present after evicting Update")
	}

	// Same identifier starts over from dormant state.
	m.Update("s1", func(s *domain.Session) bool {
		if s.ScamDetected || s.MessageCount != 0 {
			t.Errorf("reused identifier did not start fresh: %+v", s)
		}
		return false
	})
}

func TestEvictUnknownIsNoop(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	m.Evict("never-seen")

	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}
}

func TestPeekReturnsSnapshot(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	m.Update("s1", func(s *domain.Session) bool {
		s.Intelligence.UPIIDs = append(s.Intelligence.UPIIDs, "scam@bank")
		return false
	})

	snap, ok := m.Peek("s1")
	if !ok {
		t.Fatal("Peek found no session")
	}
	snap.Intelligence.UPIIDs[0] = "mutated"

	live, _ := m.Peek("s1")
	if live.Intelligence.UPIIDs[0] != "scam@bank" {
		t.Error("mutating a Peek snapshot leaked into the live session")
	}
}

func TestUpdateSerializesSameIdentifier(t *testing.T) {
	t.Parallel()

	const events = 200
	m := NewMemory()

	var wg sync.WaitGroup
	for i := 0; i < events; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Update("shared", func(s *domain.Session) bool {
				s.MessageCount++
				return false
			})
		}()
	}
	wg.Wait()

	snap, ok := m.Peek("shared")
	if !ok {
		t.Fatal("session missing after concurrent updates")
	}
	if snap.MessageCount != events {
		t.Errorf("MessageCount = %d, want %d (lost updates)", snap.MessageCount, events)
	}
}
