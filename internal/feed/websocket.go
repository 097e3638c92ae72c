package feed

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
)

const writeTimeout = 5 * time.Second

// WebSocketHandler upgrades operator connections and relays hub events.
type WebSocketHandler struct {
	hub *Hub
}

// NewWebSocketHandler creates a handler streaming from hub.
func NewWebSocketHandler(hub *Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// ServeHTTP implements http.Handler for the WebSocket upgrade.
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		slog.Error("Failed to accept feed WebSocket", "error", err, "ip", r.RemoteAddr)
		return
	}
	defer func() {
		if closeErr := ws.Close(websocket.StatusNormalClosure, "feed closed"); closeErr != nil {
			slog.Debug("Failed to close feed websocket", "error", closeErr)
		}
	}()

	events, cancel := h.hub.Subscribe()
	defer cancel()

	slog.Info("Feed subscriber connected", "ip", r.RemoteAddr)

	// Reads are discarded; CloseRead surfaces client disconnects via ctx.
	ctx := ws.CloseRead(r.Context())

	for {
		select {
		case <-ctx.Done():
			slog.Info("Feed subscriber disconnected", "ip", r.RemoteAddr)
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := h.writeEvent(ctx, ws, ev); err != nil {
				slog.Debug("Failed to write feed event", "error", err)
				return
			}
		}
	}
}

func (h *WebSocketHandler) writeEvent(ctx context.Context, ws *websocket.Conn, ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return ws.Write(writeCtx, websocket.MessageText, data)
}
