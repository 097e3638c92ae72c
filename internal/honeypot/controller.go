// Package honeypot implements the decoy conversation state machine: each
// inbound message moves its session through dormant, active, and
// terminated states while intelligence accumulates from scammer text.
package honeypot

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/decoylab/honeypot/internal/archive"
	"github.com/decoylab/honeypot/internal/detect"
	"github.com/decoylab/honeypot/internal/domain"
	"github.com/decoylab/honeypot/internal/feed"
	"github.com/decoylab/honeypot/internal/intel"
	"github.com/decoylab/honeypot/internal/report"
	"github.com/decoylab/honeypot/internal/script"
	"github.com/decoylab/honeypot/internal/store"
)

// DefaultThreshold is the message count at which a session terminates.
const DefaultThreshold = 8

const (
	ignoredReason = "No scam intent detected yet"
	endedMessage  = "Honeypot session completed"
)

// Publisher receives feed events from the controller.
type Publisher interface {
	Publish(ev feed.Event)
}

// Controller orchestrates one inbound-message event at a time per
// session: store update, extraction, detection, lifecycle decision, and
// termination reporting.
type Controller struct {
	store     store.SessionStore
	sink      report.Sink
	archive   archive.Archive
	pub       Publisher
	threshold int

	wg sync.WaitGroup
}

// New creates a controller. archive and pub may be nil; threshold <= 0
// falls back to DefaultThreshold.
func New(st store.SessionStore, sink report.Sink, arch archive.Archive, pub Publisher, threshold int) *Controller {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Controller{
		store:     st,
		sink:      sink,
		archive:   arch,
		pub:       pub,
		threshold: threshold,
	}
}

// HandleMessage runs one inbound event through the session lifecycle and
// returns the outcome. The store update runs under the session lock; the
// final report is dispatched after the lock is released, so a slow or
// failing collector cannot corrupt session state.
func (c *Controller) HandleMessage(ctx context.Context, ev Event) Result {
	var (
		res       Result
		snapshot  domain.Session
		count     int
		activated bool
		ended     bool
	)

	c.store.Update(ev.SessionID, func(s *domain.Session) bool {
		s.MessageCount++
		count = s.MessageCount

		// Only adversarial text is scanned; agent-authored messages never
		// contribute to intelligence.
		if ev.Message.Sender == domain.SenderScammer {
			intel.Extract(ev.Message.Text, s.Intelligence)
		}

		if !s.ScamDetected && detect.IsScamSignal(ev.Message.Text) {
			s.Activate()
			activated = true
		}

		if !s.AgentActive {
			res = Result{Status: StatusIgnored, Reason: ignoredReason}
			return false
		}

		// The event that reaches the threshold produces Ended, not a
		// reply, even when it is the event that first activated the
		// session.
		if s.MessageCount >= c.threshold {
			snapshot = s.Snapshot()
			ended = true
			res = Result{Status: StatusEnded, Message: endedMessage}
			return true
		}

		res = Result{
			Status: StatusReply,
			Reply: &domain.Message{
				Sender:    domain.SenderAgent,
				Text:      script.NextReply(len(ev.ConversationHistory)),
				Timestamp: time.Now().Unix(),
			},
		}
		return false
	})

	if activated {
		slog.Info("Scam detected, decoy agent engaged",
			"session_id", ev.SessionID, "message_count", count)
		c.publish(feed.Event{
			Type:         feed.EventActivated,
			SessionID:    ev.SessionID,
			MessageCount: count,
			Detail:       ev.Message.Text,
			Timestamp:    time.Now().Unix(),
		})
	}

	switch res.Status {
	case StatusReply:
		c.publish(feed.Event{
			Type:         feed.EventReply,
			SessionID:    ev.SessionID,
			MessageCount: count,
			Detail:       res.Reply.Text,
			Timestamp:    time.Now().Unix(),
		})
	case StatusEnded:
		slog.Info("Honeypot session terminated",
			"session_id", ev.SessionID, "message_count", count)
		c.publish(feed.Event{
			Type:         feed.EventEnded,
			SessionID:    ev.SessionID,
			MessageCount: count,
			Timestamp:    time.Now().Unix(),
		})
	}

	if ended {
		c.dispatchReport(snapshot)
	}
	return res
}

func (c *Controller) publish(ev feed.Event) {
	if c.pub != nil {
		c.pub.Publish(ev)
	}
}

// dispatchReport pushes the final summary on a detached goroutine. The
// session is already evicted, so sink and archive failures only surface
// in logs.
func (c *Controller) dispatchReport(s domain.Session) {
	rep := &domain.FinalReport{
		SessionID:              s.ID,
		ScamDetected:           s.ScamDetected,
		TotalMessagesExchanged: s.MessageCount,
		ExtractedIntelligence:  s.Intelligence,
		AgentNotes:             report.AgentNotes,
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		ctx := context.Background()
		delivered := true
		if err := c.sink.Deliver(ctx, rep); err != nil {
			delivered = false
			slog.Warn("Final report delivery failed",
				"session_id", rep.SessionID, "error", err)
		}
		if c.archive != nil {
			if err := c.archive.SaveReport(ctx, rep, delivered); err != nil {
				slog.Warn("Failed to archive final report",
					"session_id", rep.SessionID, "error", err)
			}
		}
	}()
}

// Close waits for in-flight report deliveries to finish. Call on
// shutdown after the HTTP server has stopped accepting events.
func (c *Controller) Close() {
	c.wg.Wait()
}
