package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/decoylab/honeypot/internal/archive"
	"github.com/decoylab/honeypot/internal/honeypot"
	"github.com/decoylab/honeypot/internal/store"
	"github.com/go-chi/chi/v5"
)

// maxRequestBodySize caps inbound message bodies (1MB).
const maxRequestBodySize = 1 << 20

const (
	defaultReportsLimit = 20
	maxReportsLimit     = 100
)

// HoneypotHandler serves the honeypot message endpoint and the operator
// read APIs.
type HoneypotHandler struct {
	controller *honeypot.Controller
	archive    archive.Archive
	store      store.SessionStore
}

// NewHoneypotHandler creates the handler. arch may be nil when the report
// archive is disabled.
func NewHoneypotHandler(controller *honeypot.Controller, arch archive.Archive, st store.SessionStore) *HoneypotHandler {
	return &HoneypotHandler{
		controller: controller,
		archive:    arch,
		store:      st,
	}
}

// RegisterRoutes registers honeypot routes.
func (h *HoneypotHandler) RegisterRoutes(r chi.Router) {
	r.Post("/honeypot/message", h.HandleMessage)
	r.Get("/api/reports", h.HandleReports)
	r.Get("/api/stats", h.HandleStats)
}

// HandleMessage handles POST /honeypot/message. Malformed input is
// rejected here; the controller is never called without a session
// identifier and message text.
func (h *HoneypotHandler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	var ev honeypot.Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if ev.SessionID == "" {
		Error(w, http.StatusBadRequest, "sessionId is required")
		return
	}
	if ev.Message.Text == "" {
		Error(w, http.StatusBadRequest, "message text is required")
		return
	}
	if !ev.Message.Sender.Valid() {
		Error(w, http.StatusBadRequest, `message sender must be "scammer" or "agent"`)
		return
	}

	res := h.controller.HandleMessage(r.Context(), ev)
	JSON(w, http.StatusOK, res)
}

// HandleReports handles GET /api/reports?limit=N.
func (h *HoneypotHandler) HandleReports(w http.ResponseWriter, r *http.Request) {
	if h.archive == nil {
		Error(w, http.StatusNotFound, "report archive disabled")
		return
	}

	limit := defaultReportsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			Error(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxReportsLimit)
	}

	reports, err := h.archive.RecentReports(r.Context(), limit)
	if err != nil {
		slog.Error("Failed to load archived reports", "error", err)
		Error(w, http.StatusInternalServerError, "failed to load reports")
		return
	}
	if reports == nil {
		reports = []*archive.StoredReport{}
	}
	JSON(w, http.StatusOK, map[string]any{"reports": reports})
}

// HandleStats handles GET /api/stats.
func (h *HoneypotHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]int{"activeSessions": h.store.Len()})
}
