// Package handlers adapts HTTP requests to the treasury services.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/api/response"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/apperrors"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/validation"
)

// maxBodyBytes bounds every request body, including raw config imports.
const maxBodyBytes = 1 << 20

// errInvalidBody marks a request body that is not valid JSON for its type.
var errInvalidBody = errors.New("invalid request body")

// parseJSON decodes the request body into T.
func parseJSON[T any](r *http.Request) (T, error) {
	var v T
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&v); err != nil {
		return v, fmt.Errorf("%w: %w", errInvalidBody, err)
	}
	return v, nil
}

// readBody returns the raw request body.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidBody, err)
	}
	return data, nil
}

// respondServiceError maps an error to its HTTP status. Unknown errors are logged and
// reported as 500 with message.
func respondServiceError(w http.ResponseWriter, r *http.Request, message string, err error) {
	var fieldErr *validation.Error
	switch {
	case errors.As(err, &fieldErr):
		response.RespondError(w, http.StatusBadRequest, "validation failed", fieldErr.Fields)
	case errors.Is(err, errInvalidBody):
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
	case errors.Is(err, apperrors.ErrProposalNotFound):
		response.RespondError(w, http.StatusNotFound, "proposal not found", err.Error())
	case errors.Is(err, apperrors.ErrProposalClosed):
		response.RespondError(w, http.StatusConflict, "proposal is closed", err.Error())
	case errors.Is(err, apperrors.ErrInvalidVoteChoice),
		errors.Is(err, apperrors.ErrInvalidConfig),
		errors.Is(err, apperrors.ErrInvalidUUID),
		errors.Is(err, apperrors.ErrInvalidCursor),
		errors.Is(err, apperrors.ErrInvalidDateRange),
		errors.Is(err, apperrors.ErrUnsupportedChain):
		response.RespondError(w, http.StatusBadRequest, message, err.Error())
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		response.RespondError(w, http.StatusUnauthorized, "invalid credentials", "")
	case errors.Is(err, apperrors.ErrWalletNotConnected):
		response.RespondError(w, http.StatusConflict, "wallet not connected", "")
	case errors.Is(err, apperrors.ErrFailedToSyncWallet):
		response.RespondError(w, http.StatusBadGateway, message, err.Error())
	default:
		slog.ErrorContext(r.Context(), message, "path", r.URL.Path, "error", err)
		response.RespondError(w, http.StatusInternalServerError, message, err.Error())
	}
}
