package dto

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/podger/valuation/internal/domain"
)

// ComputeValuationRequest represents a request to value an account.
type ComputeValuationRequest struct {
	Entries []EntryRequest `json:"entries"`
}

// EntryRequest represents a single journal entry in a request.
type EntryRequest struct {
	Date        string           `json:"date"`
	DocumentID  string           `json:"documentId"`
	AssetID     string           `json:"assetId,omitempty"`
	Description string           `json:"description"`
	Debit       *MoneyValue      `json:"debit,omitempty"`
	Credit      *MoneyValue      `json:"credit,omitempty"`
	Balance     *MoneyValue      `json:"balance,omitempty"`
	Conversion  *ConversionValue `json:"currencyConversion,omitempty"`
}

// MoneyValue represents a monetary amount on the wire. The amount is
// accepted both as a JSON string and as a JSON number.
type MoneyValue struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency CurrencyValue   `json:"currency"`
}

// CurrencyValue accepts either a plain currency code string or an
// object carrying an explicit exponent.
type CurrencyValue struct {
	Code     string
	Exponent *int32
}

type currencyObject struct {
	Code     string `json:"code"`
	Exponent *int32 `json:"exponent"`
}

func (c *CurrencyValue) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var code string
		if err := json.Unmarshal(data, &code); err != nil {
			return err
		}
		c.Code = code
		c.Exponent = nil
		return nil
	}

	var obj currencyObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	c.Code = obj.Code
	c.Exponent = obj.Exponent
	return nil
}

func (c CurrencyValue) MarshalJSON() ([]byte, error) {
	if c.Exponent == nil {
		return json.Marshal(c.Code)
	}
	return json.Marshal(currencyObject{Code: c.Code, Exponent: c.Exponent})
}

// ToDomain resolves the currency value against the known currencies.
func (c CurrencyValue) ToDomain() (domain.Currency, error) {
	if c.Exponent != nil {
		return domain.NewCurrency(c.Code, *c.Exponent)
	}
	return domain.CurrencyOf(c.Code)
}

// ToDomain converts the wire amount into a rounded monetary value.
func (m MoneyValue) ToDomain() (domain.Money, error) {
	currency, err := m.Currency.ToDomain()
	if err != nil {
		return domain.Money{}, err
	}
	return domain.NewMoney(m.Amount, currency)
}

// ConversionValue represents a currency conversion instruction.
type ConversionValue struct {
	From CurrencyValue   `json:"from"`
	To   CurrencyValue   `json:"to"`
	Rate decimal.Decimal `json:"rate"`
}

// ToDomain converts the request entries into domain entries. A failure
// names the offending entry position and field.
func (r *ComputeValuationRequest) ToDomain() ([]domain.Entry, error) {
	entries := make([]domain.Entry, 0, len(r.Entries))
	for i, req := range r.Entries {
		entry, err := req.toDomain()
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r *EntryRequest) toDomain() (domain.Entry, error) {
	input := domain.EntryInput{
		Date:        r.Date,
		DocumentID:  r.DocumentID,
		AssetID:     r.AssetID,
		Description: r.Description,
	}

	var err error
	if input.Debit, err = moneyField(r.Debit, "debit"); err != nil {
		return domain.Entry{}, err
	}
	if input.Credit, err = moneyField(r.Credit, "credit"); err != nil {
		return domain.Entry{}, err
	}
	if input.Balance, err = moneyField(r.Balance, "balance"); err != nil {
		return domain.Entry{}, err
	}

	if r.Conversion != nil {
		from, err := r.Conversion.From.ToDomain()
		if err != nil {
			return domain.Entry{}, fmt.Errorf("%w: invalid conversion source: %v", domain.ErrInvalidEntry, err)
		}
		to, err := r.Conversion.To.ToDomain()
		if err != nil {
			return domain.Entry{}, fmt.Errorf("%w: invalid conversion target: %v", domain.ErrInvalidEntry, err)
		}
		input.Conversion = &domain.Conversion{From: from, To: to, Rate: r.Conversion.Rate}
	}

	return domain.NewEntry(input)
}

func moneyField(value *MoneyValue, name string) (*domain.Money, error) {
	if value == nil {
		return nil, nil
	}
	money, err := value.ToDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid %s: %v", domain.ErrInvalidEntry, name, err)
	}
	return &money, nil
}
