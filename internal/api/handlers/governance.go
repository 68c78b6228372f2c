package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/api/request"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/api/response"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/service"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/validation"
)

// GovernanceHandler handles proposals and votes.
type GovernanceHandler struct {
	governanceService *service.GovernanceService
}

// NewGovernanceHandler creates a new GovernanceHandler.
func NewGovernanceHandler(governanceService *service.GovernanceService) *GovernanceHandler {
	return &GovernanceHandler{governanceService: governanceService}
}

// List returns the proposals, newest first.
//
// Endpoint: GET /api/governance/proposals
// Response: 200 OK with []model.GovernanceProposal
func (h *GovernanceHandler) List(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.governanceService.ListProposals())
}

// Create opens a proposal.
//
// Endpoint: POST /api/governance/proposals
// Request: request.CreateProposalRequest
// Response: 201 Created with model.GovernanceProposal
// Error: 400 Bad Request on validation failure
func (h *GovernanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateProposalRequest](r)
	if err == nil {
		err = validation.ValidateCreateProposal(req)
	}
	if err != nil {
		respondServiceError(w, r, "invalid proposal", err)
		return
	}

	proposal, err := h.governanceService.CreateProposal(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, "failed to create proposal", err)
		return
	}
	response.RespondJSON(w, http.StatusCreated, proposal)
}

// Vote casts a vote on a proposal.
//
// Endpoint: POST /api/governance/proposals/{proposalID}/vote
// Request: request.VoteRequest
// Response: 200 OK with the updated model.GovernanceProposal
// Error: 400 Bad Request on validation failure, 404 for an unknown proposal,
// 409 Conflict when the deadline has passed
func (h *GovernanceHandler) Vote(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.VoteRequest](r)
	if err == nil {
		err = validation.ValidateVote(req)
	}
	if err != nil {
		respondServiceError(w, r, "invalid vote", err)
		return
	}

	proposal, err := h.governanceService.Vote(r.Context(), chi.URLParam(r, "proposalID"), req)
	if err != nil {
		respondServiceError(w, r, "failed to vote", err)
		return
	}
	response.RespondJSON(w, http.StatusOK, proposal)
}
