package handler

import (
	"errors"
	"net/http"

	"github.com/crowdfund-dashboard/internal/application/investment"
	"github.com/crowdfund-dashboard/internal/domain"
	"github.com/crowdfund-dashboard/internal/transport/http/middleware"
)

// InvestmentHandler serves the "My Investment" page data.
type InvestmentHandler struct {
	svc investment.Service
}

func NewInvestmentHandler(svc investment.Service) *InvestmentHandler {
	return &InvestmentHandler{svc: svc}
}

func (h *InvestmentHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromRequest(r)
	if !ok {
		httpError(w, domain.ErrUnauthorized)
		return
	}
	d, err := h.svc.Dashboard(r.Context(), p, parseQuery(r))
	if err != nil {
		investmentError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *InvestmentHandler) Export(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromRequest(r)
	if !ok {
		httpError(w, domain.ErrUnauthorized)
		return
	}
	res, err := h.svc.Export(r.Context(), p, parseQuery(r))
	if err != nil {
		investmentError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// parseQuery reads search, range and fund from the query string.
func parseQuery(r *http.Request) investment.Query {
	q := r.URL.Query()
	return investment.Query{
		Search: q.Get("search"),
		Range:  q.Get("range"),
		FundID: q.Get("fund"),
	}
}

func investmentError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrLoad) {
		writeError(w, http.StatusInternalServerError, "could not load investments")
		return
	}
	httpError(w, err)
}
