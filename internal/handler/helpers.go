package handler

import (
	"errors"
	"net/http"

	"clientsim/internal/domain"
	"clientsim/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrGateway):
		httputil.RespondError(w, http.StatusBadGateway, err.Error())
	default:
		// Storage and anything unexpected stay opaque to the caller.
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// pathParam extracts a path parameter and responds with 400 if it is empty.
// Returns the value and whether the caller should continue.
func pathParam(w http.ResponseWriter, r *http.Request, name, label string) (string, bool) {
	value := r.PathValue(name)
	if value == "" {
		httputil.RespondError(w, http.StatusBadRequest, label+" is required")
		return "", false
	}
	return value, true
}
