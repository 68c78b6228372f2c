package handlers

import (
	"context"
	"net/http"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/api/response"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/service"
)

// IntelligenceHandler serves market intelligence and the wallet-driven generators.
type IntelligenceHandler struct {
	intelligenceService *service.IntelligenceService
}

// NewIntelligenceHandler creates a new IntelligenceHandler.
func NewIntelligenceHandler(intelligenceService *service.IntelligenceService) *IntelligenceHandler {
	return &IntelligenceHandler{intelligenceService: intelligenceService}
}

// Market returns the current market signals.
//
// Endpoint: GET /api/intelligence/market
// Response: 200 OK with model.MarketIntelligence
func (h *IntelligenceHandler) Market(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.intelligenceService.GetMarket())
}

// RefreshMarket draws fresh market signals.
//
// Endpoint: POST /api/intelligence/market/refresh
// Response: 200 OK with model.MarketIntelligence
func (h *IntelligenceHandler) RefreshMarket(w http.ResponseWriter, r *http.Request) {
	mi, err := h.intelligenceService.RefreshMarket(r.Context())
	if err != nil {
		respondServiceError(w, r, "failed to refresh market intelligence", err)
		return
	}
	response.RespondJSON(w, http.StatusOK, mi)
}

// Lists returns all four generated lists.
//
// Endpoint: GET /api/intelligence
// Response: 200 OK with service.IntelligenceLists
func (h *IntelligenceHandler) Lists(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.intelligenceService.GetLists())
}

// RefreshAll regenerates all four lists.
//
// Endpoint: POST /api/intelligence/refresh
// Response: 200 OK with service.IntelligenceLists
func (h *IntelligenceHandler) RefreshAll(w http.ResponseWriter, r *http.Request) {
	lists, err := h.intelligenceService.RefreshAll(r.Context())
	if err != nil {
		respondServiceError(w, r, "failed to refresh intelligence", err)
		return
	}
	response.RespondJSON(w, http.StatusOK, lists)
}

// Insights returns the AI insights.
//
// Endpoint: GET /api/intelligence/insights
func (h *IntelligenceHandler) Insights(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.intelligenceService.GetLists().Insights)
}

// News returns the news items.
//
// Endpoint: GET /api/intelligence/news
func (h *IntelligenceHandler) News(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.intelligenceService.GetLists().News)
}

// Recommendations returns the token recommendations.
//
// Endpoint: GET /api/intelligence/recommendations
func (h *IntelligenceHandler) Recommendations(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.intelligenceService.GetLists().Recommendations)
}

// Trends returns the market trends.
//
// Endpoint: GET /api/intelligence/trends
func (h *IntelligenceHandler) Trends(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.intelligenceService.GetLists().Trends)
}

// GenerateInsights regenerates the AI insights.
//
// Endpoint: POST /api/intelligence/insights
// Response: 200 OK with []model.AIInsight, empty without a connected wallet on real data
func (h *IntelligenceHandler) GenerateInsights(w http.ResponseWriter, r *http.Request) {
	generate(w, r, "failed to generate insights", h.intelligenceService.GenerateInsights)
}

// GenerateNews regenerates the news items.
//
// Endpoint: POST /api/intelligence/news
func (h *IntelligenceHandler) GenerateNews(w http.ResponseWriter, r *http.Request) {
	generate(w, r, "failed to generate news", h.intelligenceService.GenerateNews)
}

// GenerateRecommendations regenerates the token recommendations.
//
// Endpoint: POST /api/intelligence/recommendations
func (h *IntelligenceHandler) GenerateRecommendations(w http.ResponseWriter, r *http.Request) {
	generate(w, r, "failed to generate recommendations", h.intelligenceService.GenerateRecommendations)
}

// GenerateTrends regenerates the market trends.
//
// Endpoint: POST /api/intelligence/trends
func (h *IntelligenceHandler) GenerateTrends(w http.ResponseWriter, r *http.Request) {
	generate(w, r, "failed to generate trends", h.intelligenceService.GenerateTrends)
}

func generate[T any](w http.ResponseWriter, r *http.Request, message string, fn func(context.Context) ([]T, error)) {
	items, err := fn(r.Context())
	if err != nil {
		respondServiceError(w, r, message, err)
		return
	}
	response.RespondJSON(w, http.StatusOK, items)
}
