package handlers

import (
	"net/http"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/api/request"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/api/response"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/service"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/validation"
)

// ScenarioHandler handles the stress scenario.
type ScenarioHandler struct {
	scenarioService *service.ScenarioService
}

// NewScenarioHandler creates a new ScenarioHandler.
func NewScenarioHandler(scenarioService *service.ScenarioService) *ScenarioHandler {
	return &ScenarioHandler{scenarioService: scenarioService}
}

// Get returns the scenario configuration and its last result.
//
// Endpoint: GET /api/scenario
// Response: 200 OK with service.ScenarioState
func (h *ScenarioHandler) Get(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.scenarioService.Get())
}

// Update changes the shock parameters present in the body.
//
// Endpoint: PUT /api/scenario
// Request: request.UpdateScenarioRequest
// Response: 200 OK with model.ScenarioConfig
// Error: 400 Bad Request on validation failure
func (h *ScenarioHandler) Update(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateScenarioRequest](r)
	if err == nil {
		err = validation.ValidateUpdateScenario(req)
	}
	if err != nil {
		respondServiceError(w, r, "invalid scenario", err)
		return
	}

	cfg, err := h.scenarioService.Update(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, "failed to update scenario", err)
		return
	}
	response.RespondJSON(w, http.StatusOK, cfg)
}

// Run evaluates the scenario.
//
// Endpoint: POST /api/scenario/run
// Response: 200 OK with model.ScenarioResult
func (h *ScenarioHandler) Run(w http.ResponseWriter, r *http.Request) {
	result, err := h.scenarioService.Run(r.Context())
	if err != nil {
		respondServiceError(w, r, "failed to run scenario", err)
		return
	}
	response.RespondJSON(w, http.StatusOK, result)
}
