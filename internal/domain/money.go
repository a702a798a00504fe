package domain

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency identifies an ISO 4217 currency together with its exponent,
// the number of digits after the decimal separator. Two currencies are
// equal iff both code and exponent match; the same code with different
// exponents is a different currency.
type Currency struct {
	Code     string
	Exponent int32
}

// Well-known currencies. Exponent 2 covers everything this service has
// historically needed; JPY demonstrates a zero exponent.
var (
	EUR = Currency{Code: "EUR", Exponent: 2}
	USD = Currency{Code: "USD", Exponent: 2}
	FIM = Currency{Code: "FIM", Exponent: 2}
	DKK = Currency{Code: "DKK", Exponent: 2}
	JPY = Currency{Code: "JPY", Exponent: 0}
)

var currencyExponents = map[string]int32{
	"EUR": 2,
	"USD": 2,
	"FIM": 2,
	"DKK": 2,
	"JPY": 0,
}

// CurrencyOf resolves a currency by its code. Unknown codes default to
// exponent 2.
func CurrencyOf(code string) (Currency, error) {
	if code == "" {
		return Currency{}, fmt.Errorf("%w: undefined currency", ErrInvalidCurrency)
	}
	exponent, ok := currencyExponents[code]
	if !ok {
		exponent = 2
	}
	return Currency{Code: code, Exponent: exponent}, nil
}

// NewCurrency creates a currency with an explicit exponent.
func NewCurrency(code string, exponent int32) (Currency, error) {
	if code == "" {
		return Currency{}, fmt.Errorf("%w: undefined currency", ErrInvalidCurrency)
	}
	if exponent < 0 {
		return Currency{}, fmt.Errorf("%w: negative exponent %d", ErrInvalidCurrency, exponent)
	}
	return Currency{Code: code, Exponent: exponent}, nil
}

// Equal reports whether both code and exponent match.
func (c Currency) Equal(other Currency) bool {
	return c.Code == other.Code && c.Exponent == other.Exponent
}

func (c Currency) String() string {
	return c.Code
}

// Money is an exact decimal amount in a specific currency. The amount is
// always stored rounded to the currency exponent, and every operation
// returns a new value.
//
// Adapted from Martin Fowler's Money pattern (Patterns of Enterprise
// Application Architecture, pp. 488-495) on top of shopspring/decimal.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// NewMoney creates a Money value, rounding the amount to the currency
// exponent (half away from zero).
func NewMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	if currency.Code == "" {
		return Money{}, fmt.Errorf("%w: undefined currency", ErrInvalidCurrency)
	}
	return Money{amount: amount.Round(currency.Exponent), currency: currency}, nil
}

// Zero returns a zero amount in the given currency.
func Zero(currency Currency) Money {
	return Money{amount: decimal.Zero, currency: currency}
}

// Amount returns the exact decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency of the amount.
func (m Money) Currency() Currency {
	return m.currency
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// Add returns m + other. Both values must share the same currency.
func (m Money) Add(other Money) (Money, error) {
	if err := m.checkSameCurrency(other); err != nil {
		return Money{}, err
	}
	return m.withAmount(m.amount.Add(other.amount)), nil
}

// Sub returns m - other. Both values must share the same currency.
func (m Money) Sub(other Money) (Money, error) {
	if err := m.checkSameCurrency(other); err != nil {
		return Money{}, err
	}
	return m.withAmount(m.amount.Sub(other.amount)), nil
}

// Mul multiplies the amount by a scalar. No currency check applies.
func (m Money) Mul(factor decimal.Decimal) Money {
	return m.withAmount(m.amount.Mul(factor))
}

// Div divides the amount by a scalar. No currency check applies. The
// result is rounded to the currency exponent; use Allocate to split an
// amount without losing minor units.
func (m Money) Div(divisor decimal.Decimal) Money {
	return m.withAmount(m.amount.Div(divisor))
}

// ConvertTo re-expresses the amount in the target currency at the given
// rate. The product is rounded at the source currency's exponent before
// it is reinterpreted under the target currency; a conversion-declared
// balance is later back-solved against this rounding, so the asymmetry
// is intentional.
func (m Money) ConvertTo(target Currency, rate decimal.Decimal) (Money, error) {
	return NewMoney(m.amount.Mul(rate).Round(m.currency.Exponent), target)
}

// Equal reports whether amount and currency both match.
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount) && m.currency.Equal(other.currency)
}

// String renders the amount with exactly exponent decimals, e.g. "12.30 EUR".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(m.currency.Exponent), m.currency)
}

// MarshalJSON renders a Money as {"amount":"12.30","currency":"EUR"},
// with the amount carrying exactly exponent decimal digits.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Amount   string `json:"amount"`
		Currency string `json:"currency"`
	}{
		Amount:   m.amount.StringFixed(m.currency.Exponent),
		Currency: m.currency.Code,
	})
}

func (m Money) checkSameCurrency(other Money) error {
	if !m.currency.Equal(other.currency) {
		return fmt.Errorf("%w: expected a money value in %s but got %s", ErrCurrencyMismatch, m.currency, other.currency)
	}
	return nil
}

// withAmount keeps the currency and re-rounds the given amount to its
// exponent.
func (m Money) withAmount(amount decimal.Decimal) Money {
	return Money{amount: amount.Round(m.currency.Exponent), currency: m.currency}
}
