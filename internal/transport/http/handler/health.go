package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// HealthHandler handles health-check endpoints.
type HealthHandler struct {
	now func() time.Time
}

// NewHealthHandler returns a handler reading the server clock from now.
// A nil now uses time.Now.
func NewHealthHandler(now func() time.Time) *HealthHandler {
	if now == nil {
		now = time.Now
	}
	return &HealthHandler{now: now}
}

// Ping answers "ping" with pong and "time" with the server clock, which the
// dashboard compares against its own to detect skew in relative-time labels.
func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	switch chi.URLParam(r, "action") {
	case "ping":
		writeJSON(w, http.StatusOK, MessageEnvelope{Message: "pong"})
	case "time":
		writeJSON(w, http.StatusOK, MessageEnvelope{Message: h.now().UTC().Format(time.RFC3339)})
	default:
		writeError(w, http.StatusBadRequest, "unknown action")
	}
}
