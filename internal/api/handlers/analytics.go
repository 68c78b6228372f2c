package handlers

import (
	"net/http"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/api/response"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/service"
)

// AnalyticsHandler serves risk, forecasts and anomalies.
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// Get returns the last computed analytics.
//
// Endpoint: GET /api/analytics
// Response: 200 OK with model.AnalyticsResult
func (h *AnalyticsHandler) Get(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.analyticsService.Get())
}

// Compute recomputes the analytics.
//
// Endpoint: POST /api/analytics/compute
// Response: 200 OK with model.AnalyticsResult
func (h *AnalyticsHandler) Compute(w http.ResponseWriter, r *http.Request) {
	result, err := h.analyticsService.Compute(r.Context())
	if err != nil {
		respondServiceError(w, r, "failed to compute analytics", err)
		return
	}
	response.RespondJSON(w, http.StatusOK, result)
}
