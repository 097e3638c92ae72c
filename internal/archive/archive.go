// Package archive persists final session reports locally so harvested
// intelligence stays queryable when the external collector is unreachable.
package archive

import (
	"context"
	"time"

	"github.com/decoylab/honeypot/internal/domain"
)

// Archive records terminated-session reports. Writes are best-effort from
// the caller's perspective: a failed save is logged, never fatal.
type Archive interface {
	// SaveReport records a final report and whether collector delivery
	// succeeded.
	SaveReport(ctx context.Context, rep *domain.FinalReport, delivered bool) error

	// RecentReports returns up to limit reports, newest first.
	RecentReports(ctx context.Context, limit int) ([]*StoredReport, error)

	// Ping verifies the archive is reachable.
	Ping(ctx context.Context) error

	// Close releases the underlying database.
	Close() error
}

// StoredReport is one archived report row.
type StoredReport struct {
	SessionID              string                     `json:"sessionId"`
	ScamDetected           bool                       `json:"scamDetected"`
	TotalMessagesExchanged int                        `json:"totalMessagesExchanged"`
	ExtractedIntelligence  *domain.IntelligenceRecord `json:"extractedIntelligence"`
	AgentNotes             string                     `json:"agentNotes"`
	Delivered              bool                       `json:"delivered"`
	ReportedAt             time.Time                  `json:"reportedAt"`
}
