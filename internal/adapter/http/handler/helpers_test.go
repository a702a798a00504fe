package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/podger/valuation/internal/domain"
	"github.com/podger/valuation/internal/usecase"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrInvalidEntry, http.StatusBadRequest},
		{domain.ErrBalanceMismatch, http.StatusBadRequest},
		{fmt.Errorf("entry 2: %w", domain.ErrBalanceMismatch), http.StatusBadRequest},
		{usecase.ErrTooManyEntries, http.StatusBadRequest},
		{domain.ErrCurrencyMismatch, http.StatusInternalServerError},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := mapDomainError(tt.err); got != tt.want {
			t.Errorf("mapDomainError(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, http.StatusBadRequest, "something went wrong")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON content type, got %q", ct)
	}
	if body := rec.Body.String(); body != "{\"message\":\"something went wrong\"}\n" {
		t.Errorf("unexpected body %q", body)
	}
}
