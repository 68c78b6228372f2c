package handlers

import (
	"net/http"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/api/request"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/api/response"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/service"
)

// SessionHandler toggles the demo session flag.
type SessionHandler struct {
	sessionService *service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// SessionResponse reports the session flag.
type SessionResponse struct {
	Authenticated bool `json:"authenticated"`
}

// Status returns the session flag.
//
// Endpoint: GET /api/session
// Response: 200 OK with SessionResponse
func (h *SessionHandler) Status(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, SessionResponse{Authenticated: h.sessionService.IsAuthenticated()})
}

// Login marks the session authenticated. Any non-blank password is accepted.
//
// Endpoint: POST /api/session/login
// Request: request.LoginRequest
// Response: 200 OK with SessionResponse
// Error: 401 Unauthorized for a blank password
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.LoginRequest](r)
	if err != nil {
		respondServiceError(w, r, "invalid login request", err)
		return
	}
	if err := h.sessionService.Login(r.Context(), req); err != nil {
		respondServiceError(w, r, "failed to log in", err)
		return
	}
	response.RespondJSON(w, http.StatusOK, SessionResponse{Authenticated: true})
}

// Logout clears the session flag.
//
// Endpoint: POST /api/session/logout
// Response: 204 No Content
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionService.Logout(r.Context()); err != nil {
		respondServiceError(w, r, "failed to log out", err)
		return
	}
	response.RespondNoContent(w)
}
