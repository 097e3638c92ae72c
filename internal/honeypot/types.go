package honeypot

import (
	"github.com/decoylab/honeypot/internal/domain"
)

// Event is one inbound message for a session. Metadata is opaque
// passthrough; only the length of ConversationHistory is consumed.
type Event struct {
	SessionID           string           `json:"sessionId"`
	Message             domain.Message   `json:"message"`
	ConversationHistory []domain.Message `json:"conversationHistory,omitempty"`
	Metadata            map[string]any   `json:"metadata,omitempty"`
}

// Status classifies the outcome of one processed event.
type Status string

const (
	// StatusIgnored means the session is dormant and no reply was issued.
	StatusIgnored Status = "ignored"
	// StatusReply means the decoy agent produced a scripted reply.
	StatusReply Status = "reply"
	// StatusEnded means the session hit the termination threshold and was
	// reported and evicted.
	StatusEnded Status = "ended"
)

// Result is the outcome of processing one inbound event.
type Result struct {
	Status  Status          `json:"status"`
	Reason  string          `json:"reason,omitempty"`
	Reply   *domain.Message `json:"reply,omitempty"`
	Message string          `json:"message,omitempty"`
}
