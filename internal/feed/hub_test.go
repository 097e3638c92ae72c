package feed

import "testing"

func TestHubPublishReachesAllSubscribers(t *testing.T) {
	t.Parallel()

	h := NewHub(4)
	ch1, cancel1 := h.Subscribe()
	defer cancel1()
	ch2, cancel2 := h.Subscribe()
	defer cancel2()

	h.Publish(Event{Type: EventActivated, SessionID: "s1"})

	for i, ch := range []<-chan Event{ch1, ch2} {
		select {
		case ev := <-ch:
			if ev.SessionID != "s1" || ev.Type != EventActivated {
				t.Errorf("subscriber %d got %+v", i, ev)
			}
		default:
			t.Errorf("subscriber %d received nothing", i)
		}
	}
}

func TestHubDropsOnFullBuffer(t *testing.T) {
	t.Parallel()

	h := NewHub(1)
	ch, cancel := h.Subscribe()
	defer cancel()

	h.Publish(Event{Type: EventReply, SessionID: "a"})
	h.Publish(Event{Type: EventReply, SessionID: "b"}) // dropped, buffer full

	ev := <-ch
	if ev.SessionID != "a" {
		t.Errorf("got %+v, want first event", ev)
	}
	select {
	case ev := <-ch:
		t.Errorf("unexpected second event %+v", ev)
	default:
	}
}

func TestHubCancelRemovesSubscriber(t *testing.T) {
	t.Parallel()

	h := NewHub(4)
	ch, cancel := h.Subscribe()

	cancel()
	cancel() // safe to call twice

	if h.Subscribers() != 0 {
		t.Errorf("Subscribers() = %d, want 0", h.Subscribers())
	}
	if _, ok := <-ch; ok {
		t.Error("channel should be closed after cancel")
	}

	// Publishing after cancel must not panic.
	h.Publish(Event{Type: EventEnded, SessionID: "s1"})
}
