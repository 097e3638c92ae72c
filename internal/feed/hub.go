// Package feed streams session lifecycle events to operator clients.
package feed

import (
	"log/slog"
	"sync"
)

// Event types published on the operator feed.
const (
	EventActivated = "session_activated"
	EventReply     = "agent_reply"
	EventEnded     = "session_ended"
)

// Event is one entry on the operator feed.
type Event struct {
	Type         string `json:"type"`
	SessionID    string `json:"sessionId"`
	MessageCount int    `json:"messageCount"`
	Detail       string `json:"detail,omitempty"`
	Timestamp    int64  `json:"timestamp"`
}

// Hub fans events out to subscribers. Publishing never blocks: a slow
// subscriber drops events rather than stalling message processing.
type Hub struct {
	mu     sync.RWMutex
	subs   map[int64]chan Event
	nextID int64
	buffer int
}

// NewHub creates a hub whose subscriber channels buffer up to buffer
// events each.
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = 64
	}
	return &Hub{
		subs:   make(map[int64]chan Event),
		buffer: buffer,
	}
}

// Subscribe registers a new subscriber. The returned cancel func removes
// the subscription and closes the channel; it is safe to call more than
// once.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	ch := make(chan Event, h.buffer)
	h.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers ev to every subscriber that has buffer space.
func (h *Hub) Publish(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, ch := range h.subs {
		select {
		case ch <- ev:
		default:
			slog.Debug("feed subscriber queue full, dropping event",
				"subscriber", id, "type", ev.Type, "session_id", ev.SessionID)
		}
	}
}

// Subscribers returns the current subscriber count.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
