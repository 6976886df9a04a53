package handler

import (
	"net/http"

	"github.com/crowdfund-dashboard/internal/application/navigation"
	"github.com/crowdfund-dashboard/internal/domain"
	"github.com/crowdfund-dashboard/internal/transport/http/middleware"
)

type NavigationHandler struct {
	svc navigation.Service
}

func NewNavigationHandler(svc navigation.Service) *NavigationHandler {
	return &NavigationHandler{svc: svc}
}

// Menu returns the sidebar for the caller's role.
func (h *NavigationHandler) Menu(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromRequest(r)
	if !ok {
		httpError(w, domain.ErrUnauthorized)
		return
	}
	items, err := h.svc.Menu(p.Role)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DataEnvelope{Data: items})
}
