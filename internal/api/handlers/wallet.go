package handlers

import (
	"net/http"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/api/request"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/api/response"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/service"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/validation"
)

// WalletHandler handles the wallet overlay.
type WalletHandler struct {
	walletService *service.WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletService *service.WalletService) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

// Get returns the wallet state.
//
// Endpoint: GET /api/wallet
// Response: 200 OK with service.WalletState
func (h *WalletHandler) Get(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.walletService.Get())
}

// SetConnection records a connection or a disconnection.
//
// Endpoint: PUT /api/wallet/connection
// Request: request.SetWalletConnectionRequest
// Response: 200 OK with service.WalletState
// Error: 400 Bad Request on validation failure
func (h *WalletHandler) SetConnection(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SetWalletConnectionRequest](r)
	if err == nil {
		err = validation.ValidateSetWalletConnection(req)
	}
	if err != nil {
		respondServiceError(w, r, "invalid wallet connection", err)
		return
	}

	state, err := h.walletService.SetConnection(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, "failed to update wallet connection", err)
		return
	}
	response.RespondJSON(w, http.StatusOK, state)
}

// UpdateAssets stores holdings reported by the client.
//
// Endpoint: PUT /api/wallet/assets
// Request: request.UpdateWalletAssetsRequest
// Response: 200 OK with service.WalletState
// Error: 400 Bad Request on validation failure
func (h *WalletHandler) UpdateAssets(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateWalletAssetsRequest](r)
	if err == nil {
		err = validation.ValidateUpdateWalletAssets(req)
	}
	if err != nil {
		respondServiceError(w, r, "invalid wallet assets", err)
		return
	}

	state, err := h.walletService.UpdateAssets(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, "failed to update wallet assets", err)
		return
	}
	response.RespondJSON(w, http.StatusOK, state)
}

// Sync reads the holdings from the chain.
//
// Endpoint: POST /api/wallet/sync
// Response: 200 OK with service.WalletState
// Error: 409 Conflict without a connected wallet, 400 for a chain without an RPC endpoint,
// 502 Bad Gateway when the chain read fails
func (h *WalletHandler) Sync(w http.ResponseWriter, r *http.Request) {
	state, err := h.walletService.Sync(r.Context())
	if err != nil {
		respondServiceError(w, r, "failed to sync wallet", err)
		return
	}
	response.RespondJSON(w, http.StatusOK, state)
}

// ToggleDataSource switches between wallet and demo data.
//
// Endpoint: POST /api/wallet/data-source/toggle
// Response: 200 OK with service.WalletState
func (h *WalletHandler) ToggleDataSource(w http.ResponseWriter, r *http.Request) {
	state, err := h.walletService.ToggleDataSource(r.Context())
	if err != nil {
		respondServiceError(w, r, "failed to toggle data source", err)
		return
	}
	response.RespondJSON(w, http.StatusOK, state)
}
