package handler

import (
	"encoding/json"
	"net/http"

	"github.com/crowdfund-dashboard/internal/application/notification"
	"github.com/crowdfund-dashboard/internal/domain"
	"github.com/crowdfund-dashboard/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
)

// NotificationHandler handles notification endpoints.
type NotificationHandler struct {
	svc notification.Service
}

func NewNotificationHandler(svc notification.Service) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// Feed serves the merged drawer feed.
func (h *NotificationHandler) Feed(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromRequest(r)
	if !ok {
		httpError(w, domain.ErrUnauthorized)
		return
	}
	feed, err := h.svc.Feed(r.Context(), p)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DataEnvelope{Data: feed})
}

func (h *NotificationHandler) ListPersonal(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromRequest(r)
	if !ok {
		httpError(w, domain.ErrUnauthorized)
		return
	}
	recs, err := h.svc.ListPersonal(r.Context(), p)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DataEnvelope{Data: nonNil(recs)})
}

func (h *NotificationHandler) ListBroadcast(w http.ResponseWriter, r *http.Request) {
	recs, err := h.svc.ListBroadcast(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DataEnvelope{Data: nonNil(recs)})
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromRequest(r)
	if !ok {
		httpError(w, domain.ErrUnauthorized)
		return
	}
	n, err := h.svc.MarkAsRead(r.Context(), chi.URLParam(r, "id"), p)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (h *NotificationHandler) PublishBroadcast(w http.ResponseWriter, r *http.Request) {
	var input domain.BroadcastInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	n, err := h.svc.PublishBroadcast(r.Context(), input)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, n)
}

func nonNil(recs []domain.NotificationRecord) []domain.NotificationRecord {
	if recs == nil {
		return []domain.NotificationRecord{}
	}
	return recs
}
