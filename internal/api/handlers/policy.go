package handlers

import (
	"net/http"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/api/response"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/service"
)

// PolicyHandler runs the policy engine.
type PolicyHandler struct {
	policyService *service.PolicyService
}

// NewPolicyHandler creates a new PolicyHandler.
func NewPolicyHandler(policyService *service.PolicyService) *PolicyHandler {
	return &PolicyHandler{policyService: policyService}
}

// Run evaluates the policy against the current state.
//
// Endpoint: POST /api/policy/run
// Response: 200 OK with model.PolicyDecision
func (h *PolicyHandler) Run(w http.ResponseWriter, r *http.Request) {
	decision, err := h.policyService.Run(r.Context())
	if err != nil {
		respondServiceError(w, r, "failed to run policy", err)
		return
	}
	response.RespondJSON(w, http.StatusOK, decision)
}

// Log returns past decisions, newest first.
//
// Endpoint: GET /api/policy/log
// Response: 200 OK with []model.PolicyDecision
func (h *PolicyHandler) Log(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.policyService.GetLog())
}
