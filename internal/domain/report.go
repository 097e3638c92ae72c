package domain

// FinalReport is the summary pushed to the external collector when a
// session terminates.
type FinalReport struct {
	SessionID              string              `json:"sessionId"`
	ScamDetected           bool                `json:"scamDetected"`
	TotalMessagesExchanged int                 `json:"totalMessagesExchanged"`
	ExtractedIntelligence  *IntelligenceRecord `json:"extractedIntelligence"`
	AgentNotes             string              `json:"agentNotes"`
}
