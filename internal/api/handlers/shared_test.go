package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/api/request"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/apperrors"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/validation"
)

// TestParseJSON tests the generic body decoder.
// This is an internal test (package handlers, not handlers_test) because
// parseJSON is unexported.
func TestParseJSON(t *testing.T) {
	t.Run("decodes into the target type", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(`{"choice":"for","power":2.5}`))

		got, err := parseJSON[request.VoteRequest](req)

		if err != nil {
			t.Fatalf("parseJSON() returned unexpected error: %v", err)
		}
		if got.Choice != "for" || got.Power == nil || *got.Power != 2.5 {
			t.Errorf("Unexpected result %+v", got)
		}
	})

	t.Run("malformed body is an invalid body error", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(`{"choice":`))

		_, err := parseJSON[request.VoteRequest](req)

		if !errors.Is(err, errInvalidBody) {
			t.Errorf("Expected errInvalidBody, got %v", err)
		}
	})
}

// TestRespondServiceError tests the error to status mapping shared by every handler.
func TestRespondServiceError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", &validation.Error{Fields: map[string]string{"title": "title is required"}}, http.StatusBadRequest},
		{"invalid body", fmt.Errorf("%w: eof", errInvalidBody), http.StatusBadRequest},
		{"not found", fmt.Errorf("failed to vote: %w", apperrors.ErrProposalNotFound), http.StatusNotFound},
		{"closed", fmt.Errorf("failed to vote: %w", apperrors.ErrProposalClosed), http.StatusConflict},
		{"credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{"wallet not connected", apperrors.ErrWalletNotConnected, http.StatusConflict},
		{"unsupported chain", apperrors.ErrUnsupportedChain, http.StatusBadRequest},
		{"sync failure", fmt.Errorf("%w: timeout", apperrors.ErrFailedToSyncWallet), http.StatusBadGateway},
		{"persist failure", apperrors.ErrFailedToPersistState, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/test", nil)

			respondServiceError(w, r, "operation failed", tt.err)

			if w.Code != tt.status {
				t.Errorf("Expected %d, got %d", tt.status, w.Code)
			}
			var body map[string]any
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("Failed to decode error body: %v", err)
			}
			if body["error"] == "" {
				t.Error("Expected an error message")
			}
		})
	}

	t.Run("validation details carry the field messages", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/test", nil)

		respondServiceError(w, r, "operation failed", &validation.Error{Fields: map[string]string{"choice": "bad"}})

		var body struct {
			Details map[string]string `json:"details"`
		}
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&body)
		if body.Details["choice"] != "bad" {
			t.Errorf("Expected field details, got %v", body.Details)
		}
	})
}
