package report

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/decoylab/honeypot/internal/domain"
)

func sampleReport() *domain.FinalReport {
	rec := domain.NewIntelligenceRecord()
	rec.UPIIDs = append(rec.UPIIDs, "scam@bank")
	return &domain.FinalReport{
		SessionID:              "sess-1",
		ScamDetected:           true,
		TotalMessagesExchanged: 8,
		ExtractedIntelligence:  rec,
		AgentNotes:             AgentNotes,
	}
}

func TestHTTPSinkDeliverPostsJSON(t *testing.T) {
	t.Parallel()

	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sink := NewHTTPSink(srv.URL, time.Second)
	if err := sink.Deliver(context.Background(), sampleReport()); err != nil {
		t.Fatalf("Deliver failed: %v", err)
	}

	if got["sessionId"] != "sess-1" {
		t.Errorf("sessionId = %v, want sess-1", got["sessionId"])
	}
	if got["totalMessagesExchanged"] != float64(8) {
		t.Errorf("totalMessagesExchanged = %v, want 8", got["totalMessagesExchanged"])
	}
	if got["agentNotes"] != AgentNotes {
		t.Errorf("agentNotes = %v, want fixed note", got["agentNotes"])
	}
	intel, ok := got["extractedIntelligence"].(map[string]any)
	if !ok {
		t.Fatalf("extractedIntelligence missing: %v", got)
	}
	// Empty sequences must serialize as [], not null.
	if _, ok := intel["bankAccounts"].([]any); !ok {
		t.Errorf("bankAccounts = %v, want empty array", intel["bankAccounts"])
	}
}

func TestHTTPSinkDeliverNon2xx(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	sink := NewHTTPSink(srv.URL, time.Second)
	if err := sink.Deliver(context.Background(), sampleReport()); err == nil {
		t.Fatal("expected error on non-2xx collector response")
	}
}

func TestHTTPSinkDeliverTimeout(t *testing.T) {
	t.Parallel()

	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	sink := NewHTTPSink(srv.URL, 50*time.Millisecond)
	start := time.Now()
	err := sink.Deliver(context.Background(), sampleReport())
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("delivery blocked for %v, want bounded timeout", elapsed)
	}
}
