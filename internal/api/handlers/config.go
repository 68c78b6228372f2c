package handlers

import (
	"net/http"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/api/request"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/api/response"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/service"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/validation"
)

// ConfigHandler handles agent, policy and target configuration.
type ConfigHandler struct {
	configService *service.ConfigService
}

// NewConfigHandler creates a new ConfigHandler.
func NewConfigHandler(configService *service.ConfigService) *ConfigHandler {
	return &ConfigHandler{configService: configService}
}

// GetAgent returns the agent configuration.
//
// Endpoint: GET /api/config/agent
// Response: 200 OK with model.AgentConfig
func (h *ConfigHandler) GetAgent(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.configService.GetAgentConfig())
}

// UpdateAgent applies the fields present in the body.
//
// Endpoint: PUT /api/config/agent
// Request: request.UpdateAgentConfigRequest
// Response: 200 OK with model.AgentConfig
// Error: 400 Bad Request on validation failure
func (h *ConfigHandler) UpdateAgent(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateAgentConfigRequest](r)
	if err == nil {
		err = validation.ValidateUpdateAgentConfig(req)
	}
	if err != nil {
		respondServiceError(w, r, "invalid agent configuration", err)
		return
	}

	cfg, err := h.configService.UpdateAgentConfig(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, "failed to update agent configuration", err)
		return
	}
	response.RespondJSON(w, http.StatusOK, cfg)
}

// GetPolicy returns the policy thresholds.
//
// Endpoint: GET /api/config/policy
// Response: 200 OK with model.PolicyConfig
func (h *ConfigHandler) GetPolicy(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.configService.GetPolicyConfig())
}

// UpdatePolicy applies the thresholds present in the body.
//
// Endpoint: PUT /api/config/policy
// Request: request.UpdatePolicyConfigRequest
// Response: 200 OK with model.PolicyConfig
// Error: 400 Bad Request on validation failure
func (h *ConfigHandler) UpdatePolicy(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdatePolicyConfigRequest](r)
	if err == nil {
		err = validation.ValidateUpdatePolicyConfig(req)
	}
	if err != nil {
		respondServiceError(w, r, "invalid policy configuration", err)
		return
	}

	cfg, err := h.configService.UpdatePolicyConfig(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, "failed to update policy configuration", err)
		return
	}
	response.RespondJSON(w, http.StatusOK, cfg)
}

// GetTarget returns the target allocation.
//
// Endpoint: GET /api/config/target
// Response: 200 OK with symbol to percent
func (h *ConfigHandler) GetTarget(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.configService.GetTargetAllocation())
}

// SetTarget replaces the target allocation.
//
// Endpoint: PUT /api/config/target
// Request: request.SetTargetAllocationRequest
// Response: 200 OK with the stored allocation
// Error: 400 Bad Request on validation failure
func (h *ConfigHandler) SetTarget(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SetTargetAllocationRequest](r)
	if err == nil {
		err = validation.ValidateTargetAllocation(req)
	}
	if err != nil {
		respondServiceError(w, r, "invalid target allocation", err)
		return
	}

	target, err := h.configService.SetTargetAllocation(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, "failed to set target allocation", err)
		return
	}
	response.RespondJSON(w, http.StatusOK, target)
}

// Export returns the configuration document as a download.
//
// Endpoint: GET /api/config/export
// Response: 200 OK with model.ConfigDocument, 2-space indented
func (h *ConfigHandler) Export(w http.ResponseWriter, r *http.Request) {
	data, err := h.configService.ExportConfig()
	if err != nil {
		respondServiceError(w, r, "failed to export configuration", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="treasury-config.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// ImportResponse reports whether an import was applied.
type ImportResponse struct {
	Imported bool `json:"imported"`
}

// Import applies a configuration document sent as the raw body. Malformed documents are
// answered with imported=false.
//
// Endpoint: POST /api/config/import
// Response: 200 OK with ImportResponse
// Error: 500 Internal Server Error if the new state cannot be persisted
func (h *ConfigHandler) Import(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(w, r)
	if err != nil {
		respondServiceError(w, r, "failed to read configuration", err)
		return
	}
	imported, err := h.configService.ImportConfig(r.Context(), data)
	if err != nil {
		respondServiceError(w, r, "failed to import configuration", err)
		return
	}
	response.RespondJSON(w, http.StatusOK, ImportResponse{Imported: imported})
}

// Suggestions returns the agent hints.
//
// Endpoint: GET /api/config/suggestions
// Response: 200 OK with []string
func (h *ConfigHandler) Suggestions(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.configService.GetSuggestions())
}

// RefreshSuggestions regenerates the agent hints.
//
// Endpoint: POST /api/config/suggestions/refresh
// Response: 200 OK with []string
func (h *ConfigHandler) RefreshSuggestions(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.configService.RefreshSuggestions(r.Context())
	if err != nil {
		respondServiceError(w, r, "failed to refresh suggestions", err)
		return
	}
	response.RespondJSON(w, http.StatusOK, suggestions)
}
