package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AccountType tells which side of an account carries its balance.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
)

// balanceSign returns the factor applied to debit-credit to derive a
// balance for this account type.
func (t AccountType) balanceSign() decimal.Decimal {
	if t == AccountTypeLiability {
		return decimal.NewFromInt(-1)
	}
	return decimal.NewFromInt(1)
}

// EntryKind is the classification of an accounting entry, resolved once
// when the entry is built instead of re-deriving it from which fields
// happen to be present.
type EntryKind int

const (
	// EntryDirect books a debit and/or credit against a single asset.
	EntryDirect EntryKind = iota + 1
	// EntryDepreciation spreads a credit across all assets with a
	// positive balance, proportionally to those balances.
	EntryDepreciation
	// EntryConversion re-expresses every asset in a new currency while
	// preserving each asset's share of the declared balance.
	EntryConversion
)

// Conversion describes a currency conversion applied to the whole account.
type Conversion struct {
	From Currency
	To   Currency
	Rate decimal.Decimal
}

// Entry is a single accounting entry, already classified and validated.
// Build one with NewEntry.
type Entry struct {
	Kind        EntryKind
	Date        string
	DocumentID  string
	AssetID     string
	Description string
	Debit       *Money
	Credit      *Money
	Balance     *Money
	Conversion  *Conversion
}

// EntryInput carries the raw fields of an entry before classification.
type EntryInput struct {
	Date        string
	DocumentID  string
	AssetID     string
	Description string
	Debit       *Money
	Credit      *Money
	Balance     *Money
	Conversion  *Conversion
}

// NewEntry classifies and validates an entry. Classification precedence
// is fixed: an asset id makes a direct entry, otherwise a credit makes a
// depreciation, otherwise a conversion makes a conversion entry. Anything
// else is rejected.
func NewEntry(input EntryInput) (Entry, error) {
	entry := Entry{
		Date:        input.Date,
		DocumentID:  input.DocumentID,
		AssetID:     input.AssetID,
		Description: input.Description,
		Debit:       input.Debit,
		Credit:      input.Credit,
		Balance:     input.Balance,
		Conversion:  input.Conversion,
	}

	switch {
	case input.AssetID != "":
		if input.Debit == nil && input.Credit == nil {
			return Entry{}, fmt.Errorf("%w: %s has an asset id but neither debit nor credit", ErrInvalidEntry, entry)
		}
		entry.Kind = EntryDirect
	case input.Credit != nil:
		entry.Kind = EntryDepreciation
	case input.Conversion != nil:
		if input.Balance == nil {
			return Entry{}, fmt.Errorf("%w: %s converts currency without a declared balance", ErrInvalidEntry, entry)
		}
		entry.Kind = EntryConversion
	default:
		return Entry{}, fmt.Errorf("%w: unknown entry shape on %s", ErrInvalidEntry, entry)
	}

	return entry, nil
}

// currency resolves the currency an entry is expressed in, preferring the
// declared balance over credit over debit.
func (e Entry) currency() (Currency, error) {
	switch {
	case e.Balance != nil:
		return e.Balance.Currency(), nil
	case e.Credit != nil:
		return e.Credit.Currency(), nil
	case e.Debit != nil:
		return e.Debit.Currency(), nil
	}
	return Currency{}, fmt.Errorf("%w: undefined currency on %s", ErrInvalidEntry, e)
}

func (e Entry) String() string {
	return fmt.Sprintf("Entry{%s %s}", e.Date, e.Description)
}
