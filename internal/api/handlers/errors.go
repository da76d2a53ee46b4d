package handlers

import (
	"errors"
	"net/http"

	"github.com/baharkarakas/biblioteca-backend/internal/api/httpx"
	"github.com/baharkarakas/biblioteca-backend/internal/services"
)

// writeServiceError maps the service error taxonomy onto HTTP.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.Is(err, services.ErrOutOfStock):
		httpx.WriteError(w, http.StatusConflict, "out_of_stock", err.Error(), nil)
	case errors.Is(err, services.ErrInvalidState):
		httpx.WriteError(w, http.StatusUnprocessableEntity, "invalid_state", err.Error(), nil)
	case errors.Is(err, services.ErrConflict):
		httpx.WriteError(w, http.StatusConflict, "conflict", err.Error(), nil)
	case errors.Is(err, services.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", nil)
	default:
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", err.Error(), nil)
	}
}
