package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/podger/valuation/internal/adapter/http/dto"
	"github.com/podger/valuation/internal/domain"
	"github.com/podger/valuation/internal/usecase"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{Message: message})
}

// mapDomainError maps domain errors to HTTP status codes. Only errors
// caused by the request itself are client errors; anything unexpected
// during processing stays a 500.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidEntry):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrBalanceMismatch):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrTooManyEntries):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
