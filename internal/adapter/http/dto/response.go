package dto

import (
	"github.com/podger/valuation/internal/domain"
	"github.com/podger/valuation/internal/usecase"
)

// ValuationResponse represents a computed valuation in API responses.
type ValuationResponse struct {
	ID      string           `json:"id"`
	Balance MoneyResponse    `json:"balance"`
	Assets  []*AssetResponse `json:"assets"`
}

// MoneyResponse renders an amount at its currency's full precision.
type MoneyResponse struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// AssetResponse represents a tracked asset in API responses.
type AssetResponse struct {
	ID      string                `json:"id"`
	Name    string                `json:"name"`
	Type    string                `json:"type"`
	Debit   MoneyResponse         `json:"debit"`
	Credit  MoneyResponse         `json:"credit"`
	Balance MoneyResponse         `json:"balance"`
	Entries []*AssetEntryResponse `json:"entries"`
}

// AssetEntryResponse represents a line of an asset's history.
type AssetEntryResponse struct {
	Date        string              `json:"date"`
	DocumentID  string              `json:"documentId"`
	AssetID     string              `json:"assetId,omitempty"`
	Description string              `json:"description"`
	Debit       *MoneyResponse      `json:"debit,omitempty"`
	Credit      *MoneyResponse      `json:"credit,omitempty"`
	Conversion  *ConversionResponse `json:"currencyConversion,omitempty"`
	Balance     MoneyResponse       `json:"balance"`
}

// ConversionResponse represents a currency conversion in API responses.
type ConversionResponse struct {
	From string `json:"from"`
	To   string `json:"to"`
	Rate string `json:"rate"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Message string `json:"message"`
}

// MoneyFromDomain converts a monetary value to its response form.
func MoneyFromDomain(m domain.Money) MoneyResponse {
	return MoneyResponse{
		Amount:   m.Amount().StringFixed(m.Currency().Exponent),
		Currency: m.Currency().Code,
	}
}

func moneyPtrFromDomain(m *domain.Money) *MoneyResponse {
	if m == nil {
		return nil
	}
	resp := MoneyFromDomain(*m)
	return &resp
}

// ValuationFromDomain converts a computed valuation to its response form.
func ValuationFromDomain(v *usecase.Valuation) *ValuationResponse {
	assets := v.Account.Assets()
	responses := make([]*AssetResponse, len(assets))
	for i, asset := range assets {
		responses[i] = AssetFromDomain(asset)
	}
	return &ValuationResponse{
		ID:      v.ID,
		Balance: MoneyFromDomain(v.Account.Balance()),
		Assets:  responses,
	}
}

// AssetFromDomain converts a domain asset to its response form.
func AssetFromDomain(a *domain.Asset) *AssetResponse {
	entries := a.Entries()
	responses := make([]*AssetEntryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = assetEntryFromDomain(entry)
	}
	return &AssetResponse{
		ID:      a.ID(),
		Name:    a.Name(),
		Type:    string(a.Type()),
		Debit:   MoneyFromDomain(a.Debit()),
		Credit:  MoneyFromDomain(a.Credit()),
		Balance: MoneyFromDomain(a.Balance()),
		Entries: responses,
	}
}

func assetEntryFromDomain(e domain.AssetEntry) *AssetEntryResponse {
	resp := &AssetEntryResponse{
		Date:        e.Date,
		DocumentID:  e.DocumentID,
		AssetID:     e.AssetID,
		Description: e.Description,
		Debit:       moneyPtrFromDomain(e.Debit),
		Credit:      moneyPtrFromDomain(e.Credit),
		Balance:     MoneyFromDomain(e.Balance),
	}
	if e.Conversion != nil {
		resp.Conversion = &ConversionResponse{
			From: e.Conversion.From.Code,
			To:   e.Conversion.To.Code,
			Rate: e.Conversion.Rate.String(),
		}
	}
	return resp
}
