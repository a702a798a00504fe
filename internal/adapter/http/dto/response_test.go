package dto_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/podger/valuation/internal/adapter/http/dto"
	"github.com/podger/valuation/internal/domain"
	"github.com/podger/valuation/internal/usecase"
)

func TestValuationFromDomain(t *testing.T) {
	account := domain.NewAccount()

	debit, err := domain.NewMoney(decimal.RequireFromString("1500.00"), domain.EUR)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entry, err := domain.NewEntry(domain.EntryInput{
		Date: "2018-04-08", DocumentID: "2018/001", AssetID: "2018/001", Description: "Gran cassa",
		Debit:   &debit,
		Balance: &debit,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := account.AddEntry(entry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp := dto.ValuationFromDomain(&usecase.Valuation{ID: "01ARZ3NDEKTSV4RRFFQ69G5FAV", Account: account})

	if resp.ID != "01ARZ3NDEKTSV4RRFFQ69G5FAV" {
		t.Errorf("unexpected id %q", resp.ID)
	}
	if resp.Balance.Amount != "1500.00" || resp.Balance.Currency != "EUR" {
		t.Errorf("unexpected balance %+v", resp.Balance)
	}
	if len(resp.Assets) != 1 {
		t.Fatalf("expected one asset, got %d", len(resp.Assets))
	}

	asset := resp.Assets[0]
	if asset.ID != "2018/001" || asset.Name != "Gran cassa" || asset.Type != "asset" {
		t.Errorf("unexpected asset %+v", asset)
	}
	if asset.Debit.Amount != "1500.00" || asset.Credit.Amount != "0.00" {
		t.Errorf("unexpected asset amounts %+v", asset)
	}
	if len(asset.Entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(asset.Entries))
	}
	if asset.Entries[0].Balance.Amount != "1500.00" {
		t.Errorf("unexpected entry balance %+v", asset.Entries[0].Balance)
	}
}

func TestValuationResponse_JSONShape(t *testing.T) {
	resp := dto.ValuationResponse{
		ID: "test",
		Balance: dto.MoneyResponse{
			Amount:   "105.12",
			Currency: "EUR",
		},
		Assets: []*dto.AssetResponse{},
	}

	encoded, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{`"id":"test"`, `"amount":"105.12"`, `"currency":"EUR"`, `"assets":[]`} {
		if !strings.Contains(string(encoded), want) {
			t.Errorf("expected JSON to contain %s, got %s", want, encoded)
		}
	}
}

func TestAssetEntryResponse_OmitsAbsentSides(t *testing.T) {
	entry := dto.AssetEntryResponse{
		Date:        "2018-12-31",
		DocumentID:  "2018/002",
		Description: "Annual equipment depreciation 5%",
		Credit:      &dto.MoneyResponse{Amount: "75.00", Currency: "EUR"},
		Balance:     dto.MoneyResponse{Amount: "1425.00", Currency: "EUR"},
	}

	encoded, err := json.Marshal(entry)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(string(encoded), `"debit"`) {
		t.Errorf("expected absent debit to be omitted, got %s", encoded)
	}
	if strings.Contains(string(encoded), `"assetId"`) {
		t.Errorf("expected absent assetId to be omitted, got %s", encoded)
	}
	if !strings.Contains(string(encoded), `"documentId":"2018/002"`) {
		t.Errorf("expected camelCase documentId, got %s", encoded)
	}
}
