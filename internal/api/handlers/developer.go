package handlers

import (
	"net/http"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/api/request"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/api/response"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/service"
)

// DeveloperHandler serves the activity log behind the API key middleware.
type DeveloperHandler struct {
	DeveloperService *service.DeveloperService
}

func NewDeveloperHandler(developerService *service.DeveloperService) *DeveloperHandler {
	return &DeveloperHandler{DeveloperService: developerService}
}

// GetLogs returns the activity log, filtered and paginated.
//
// Endpoint: GET /api/developer/logs?level=&category=&startDate=&endDate=&source=&message=&sortDir=&cursor=&perPage=
// Response: 200 OK with model.LogResponse
// Error: 400 Bad Request for invalid filters, 500 if the log cannot be read
func (h *DeveloperHandler) GetLogs(w http.ResponseWriter, r *http.Request) {
	filters, err := request.ParseLogFilters(r.URL.Query())
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "Invalid filter parameters", err.Error())
		return
	}

	logs, err := h.DeveloperService.GetLogs(r.Context(), filters)
	if err != nil {
		respondServiceError(w, r, "Failed to retrieve logs", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, logs)
}
