// Package middleware holds the chi middleware shared by the treasury routes.
package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/api/response"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/validation"
)

// RequireUUIDParam rejects requests whose route parameter param is missing or not a UUID.
//
//	r.Route("/{proposalID}", func(r chi.Router) {
//	    r.Use(middleware.RequireUUIDParam("proposalID"))
//	    r.Post("/vote", handler.Vote)
//	})
func RequireUUIDParam(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := chi.URLParam(r, param)
			if id == "" {
				response.RespondError(w, http.StatusBadRequest, param+" is required", "")
				return
			}
			if err := validation.ValidateUUID(id); err != nil {
				response.RespondError(w, http.StatusBadRequest, "invalid "+param, err.Error())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
