package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/podger/valuation/internal/adapter/http/dto"
	"github.com/podger/valuation/internal/domain"
	"github.com/podger/valuation/internal/usecase"
)

// ValuationService defines the behavior needed by ValuationHandler.
type ValuationService interface {
	Compute(ctx context.Context, entries []domain.Entry) (*usecase.Valuation, error)
}

// ValuationHandler handles valuation HTTP requests.
type ValuationHandler struct {
	valuationUC ValuationService
}

// NewValuationHandler creates a new ValuationHandler.
func NewValuationHandler(valuationUC ValuationService) *ValuationHandler {
	return &ValuationHandler{valuationUC: valuationUC}
}

// Compute replays the posted journal and returns the resulting valuation.
func (h *ValuationHandler) Compute(w http.ResponseWriter, r *http.Request) {
	var req dto.ComputeValuationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	entries, err := req.ToDomain()
	if err != nil {
		writeError(w, mapDomainError(err), err.Error())
		return
	}

	valuation, err := h.valuationUC.Compute(r.Context(), entries)
	if err != nil {
		writeError(w, mapDomainError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ValuationFromDomain(valuation))
}
