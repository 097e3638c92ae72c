// Package domain contains core domain types for the honeypot service.
package domain

// Sender identifies which party authored a message.
type Sender string

const (
	// SenderScammer marks text authored by the adversarial party.
	SenderScammer Sender = "scammer"
	// SenderAgent marks text authored by the decoy agent.
	SenderAgent Sender = "agent"
)

// Valid reports whether the sender is one of the two known roles.
func (s Sender) Valid() bool {
	return s == SenderScammer || s == SenderAgent
}

// Message is a single conversation entry.
type Message struct {
	Sender    Sender `json:"sender"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}
