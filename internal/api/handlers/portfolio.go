package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/api/response"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/service"
)

// PortfolioHandler handles portfolio-related HTTP requests
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// State returns the whole treasury snapshot.
//
// Endpoint: GET /api/state
// Response: 200 OK with model.Snapshot, proposal status derived for now
func (h *PortfolioHandler) State(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.portfolioService.State())
}

// Assets returns the holdings.
//
// Endpoint: GET /api/portfolio/assets
// Response: 200 OK with []model.Asset
func (h *PortfolioHandler) Assets(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.portfolioService.GetAssets())
}

// KPIs returns the headline figures.
//
// Endpoint: GET /api/portfolio/kpis
// Response: 200 OK with model.KPIs
func (h *PortfolioHandler) KPIs(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.portfolioService.GetKPIs())
}

// Nav returns the daily NAV history, oldest first.
//
// Endpoint: GET /api/portfolio/nav
// Response: 200 OK with []model.NavPoint
func (h *PortfolioHandler) Nav(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.portfolioService.GetNavHistory())
}

// Transactions returns the transaction history, newest first.
//
// Endpoint: GET /api/portfolio/transactions
// Response: 200 OK with []model.Transaction
func (h *PortfolioHandler) Transactions(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.portfolioService.GetTransactions())
}

// ExportTransactions streams the transaction report as CSV.
//
// Endpoint: GET /api/portfolio/transactions/export
// Response: 200 OK text/csv attachment
// Error: 500 Internal Server Error if the report cannot be written
func (h *PortfolioHandler) ExportTransactions(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.portfolioService.WriteTransactionsCSV(&buf); err != nil {
		respondServiceError(w, r, "failed to export transactions", err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "transactions.csv"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// Rebalance revalues the holdings to the target allocation.
//
// Endpoint: POST /api/portfolio/rebalance
// Response: 200 OK with []model.Asset
// Error: 500 Internal Server Error if the new state cannot be persisted
func (h *PortfolioHandler) Rebalance(w http.ResponseWriter, r *http.Request) {
	assets, err := h.portfolioService.Rebalance(r.Context())
	if err != nil {
		respondServiceError(w, r, "failed to rebalance", err)
		return
	}
	response.RespondJSON(w, http.StatusOK, assets)
}

// Optimize derives target weights from the agent's risk tolerance.
//
// Endpoint: POST /api/portfolio/optimize
// Response: 200 OK with the new target allocation
// Error: 500 Internal Server Error if the new state cannot be persisted
func (h *PortfolioHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	target, err := h.portfolioService.Optimize(r.Context())
	if err != nil {
		respondServiceError(w, r, "failed to optimize portfolio", err)
		return
	}
	response.RespondJSON(w, http.StatusOK, target)
}
