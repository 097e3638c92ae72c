// Package report delivers final session summaries to the external collector.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/decoylab/honeypot/internal/domain"
)

// AgentNotes is the static analyst note attached to every final report.
const AgentNotes = "Scammer used urgency, fear tactics and payment redirection"

// DefaultTimeout bounds a single delivery attempt.
const DefaultTimeout = 5 * time.Second

// Sink receives the final summary for a terminated session. Delivery is
// best-effort: callers log the returned error and move on — no retries,
// no dead-letter queue.
type Sink interface {
	Deliver(ctx context.Context, rep *domain.FinalReport) error
}

// HTTPSink posts reports as JSON to a collector endpoint.
type HTTPSink struct {
	url     string
	timeout time.Duration
	client  *http.Client
}

var _ Sink = (*HTTPSink)(nil)

// NewHTTPSink creates a sink for the given collector URL. timeout <= 0
// falls back to DefaultTimeout.
func NewHTTPSink(url string, timeout time.Duration) *HTTPSink {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPSink{
		url:     url,
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
	}
}

// Deliver posts the report to the collector, bounded by the sink timeout.
func (s *HTTPSink) Deliver(ctx context.Context, rep *domain.FinalReport) error {
	body, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build collector request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("post report: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("failed to close collector response body", "error", closeErr)
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("collector returned status %d", resp.StatusCode)
	}
	return nil
}
