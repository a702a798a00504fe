package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/podger/valuation/internal/adapter/http/dto"
	"github.com/podger/valuation/internal/domain"
	"github.com/podger/valuation/internal/usecase"
	"github.com/podger/valuation/internal/usecase/mocks"
)

type stubValuationService struct {
	computeFunc func(ctx context.Context, entries []domain.Entry) (*usecase.Valuation, error)
}

func (s *stubValuationService) Compute(ctx context.Context, entries []domain.Entry) (*usecase.Valuation, error) {
	return s.computeFunc(ctx, entries)
}

func TestValuationHandler_Compute(t *testing.T) {
	uc := usecase.NewValuationUseCase(mocks.NewMockIDGenerator(), nil, 0)
	h := NewValuationHandler(uc)

	body := `{
		"entries": [
			{
				"date": "2018-04-08",
				"documentId": "2018/001",
				"assetId": "2018/001",
				"description": "Gran cassa",
				"debit": {"amount": "1500.00", "currency": "EUR"},
				"balance": {"amount": "1500.00", "currency": "EUR"}
			},
			{
				"date": "2018-12-31",
				"documentId": "2018/002",
				"description": "Annual equipment depreciation 5%",
				"credit": {"amount": "75.00", "currency": "EUR"},
				"balance": {"amount": "1425.00", "currency": "EUR"}
			}
		]
	}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/valuations", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Compute(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.ValuationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if resp.Balance.Amount != "1425.00" || resp.Balance.Currency != "EUR" {
		t.Errorf("unexpected balance %+v", resp.Balance)
	}
	if resp.ID == "" {
		t.Error("expected a generated valuation id")
	}
	if len(resp.Assets) != 1 {
		t.Errorf("expected one asset, got %d", len(resp.Assets))
	}
}

func TestValuationHandler_ComputeInvalidBody(t *testing.T) {
	h := NewValuationHandler(&stubValuationService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/valuations", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.Compute(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if resp.Message == "" {
		t.Error("expected an error message")
	}
}

func TestValuationHandler_ComputeInvalidEntry(t *testing.T) {
	h := NewValuationHandler(&stubValuationService{})

	body := `{"entries":[{"date":"2018-04-08","documentId":"2018/001","description":"Nothing"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/valuations", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Compute(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestValuationHandler_ComputeBalanceMismatch(t *testing.T) {
	uc := usecase.NewValuationUseCase(mocks.NewMockIDGenerator(), nil, 0)
	h := NewValuationHandler(uc)

	body := `{
		"entries": [
			{
				"date": "2018-04-08",
				"documentId": "2018/001",
				"assetId": "2018/001",
				"description": "Gran cassa",
				"debit": {"amount": "1500.00", "currency": "EUR"},
				"balance": {"amount": "9999.00", "currency": "EUR"}
			}
		]
	}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/valuations", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Compute(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if !strings.Contains(resp.Message, "entry 1") {
		t.Errorf("expected message to name the entry, got %q", resp.Message)
	}
}

func TestValuationHandler_ComputeInternalError(t *testing.T) {
	h := NewValuationHandler(&stubValuationService{
		computeFunc: func(ctx context.Context, entries []domain.Entry) (*usecase.Valuation, error) {
			return nil, errors.New("boom")
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/valuations", strings.NewReader(`{"entries":[]}`))
	rec := httptest.NewRecorder()
	h.Compute(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
