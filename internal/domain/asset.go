package domain

import (
	"fmt"
)

// AssetEntry is an entry as applied to a single asset, stamped with the
// asset's balance right after it was applied.
type AssetEntry struct {
	Date        string
	DocumentID  string
	AssetID     string
	Description string
	Debit       *Money
	Credit      *Money
	Conversion  *Conversion
	Balance     Money
}

// Asset is the sub-ledger of a single depreciable asset. It accumulates
// debit and credit totals and keeps the chronological history of applied
// entries. Assets are mutated only through Account.AddEntry.
type Asset struct {
	id      string
	name    string
	typ     AccountType
	debit   Money
	credit  Money
	entries []AssetEntry
}

// NewAsset creates an empty asset ledger in the given currency.
func NewAsset(id, name string, currency Currency, typ AccountType) (*Asset, error) {
	if typ != AccountTypeAsset && typ != AccountTypeLiability {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAssetType, typ)
	}
	zero := Zero(currency)
	return &Asset{
		id:     id,
		name:   name,
		typ:    typ,
		debit:  zero,
		credit: zero,
	}, nil
}

// ID returns the asset id.
func (a *Asset) ID() string { return a.id }

// Name returns the asset name, set from the first entry that referenced it.
func (a *Asset) Name() string { return a.name }

// Type returns the account type the asset inherited at creation time.
func (a *Asset) Type() AccountType { return a.typ }

// Debit returns the cumulative debit total.
func (a *Asset) Debit() Money { return a.debit }

// Credit returns the cumulative credit total.
func (a *Asset) Credit() Money { return a.credit }

// Currency returns the currency the asset is currently expressed in.
func (a *Asset) Currency() Currency { return a.debit.Currency() }

// Balance derives the signed balance: debit-credit for assets,
// credit-debit for liabilities.
func (a *Asset) Balance() Money {
	amount := a.debit.Amount().Sub(a.credit.Amount()).Mul(a.typ.balanceSign())
	return Money{amount: amount, currency: a.debit.Currency()}
}

// Entries returns a copy of the ordered entry history.
func (a *Asset) Entries() []AssetEntry {
	entries := make([]AssetEntry, len(a.entries))
	copy(entries, a.entries)
	return entries
}

// Apply mutates the asset with one entry and appends it to the history
// stamped with the resulting balance.
func (a *Asset) Apply(entry Entry) error {
	if entry.Conversion != nil {
		if err := a.convertCurrency(entry); err != nil {
			return err
		}
	} else {
		if entry.Debit != nil {
			debit, err := a.debit.Add(*entry.Debit)
			if err != nil {
				return err
			}
			a.debit = debit
		}
		if entry.Credit != nil {
			credit, err := a.credit.Add(*entry.Credit)
			if err != nil {
				return err
			}
			a.credit = credit
		}
	}

	a.entries = append(a.entries, AssetEntry{
		Date:        entry.Date,
		DocumentID:  entry.DocumentID,
		AssetID:     entry.AssetID,
		Description: entry.Description,
		Debit:       entry.Debit,
		Credit:      entry.Credit,
		Conversion:  entry.Conversion,
		Balance:     a.Balance(),
	})
	return nil
}

// convertCurrency re-expresses the asset in the conversion's target
// currency. The credit total is converted at the rate; the debit total is
// then back-solved from the entry's allocated balance so the asset's
// balance lands on its share exactly despite independent rounding.
func (a *Asset) convertCurrency(entry Entry) error {
	if !a.Currency().Equal(entry.Conversion.From) {
		return fmt.Errorf("%w: expected conversion from %s but was from %s",
			ErrCurrencyMismatch, a.Currency(), entry.Conversion.From)
	}
	if entry.Balance == nil {
		return fmt.Errorf("conversion entry without balance on asset %s", a.id)
	}

	credit, err := a.credit.ConvertTo(entry.Conversion.To, entry.Conversion.Rate)
	if err != nil {
		return err
	}
	debit, err := entry.Balance.Mul(a.typ.balanceSign()).Add(credit)
	if err != nil {
		return err
	}

	a.credit = credit
	a.debit = debit
	return nil
}

func (a *Asset) String() string {
	return fmt.Sprintf("Asset{%s %s %s}", a.id, a.name, a.Balance())
}

// clone deep-copies the asset so an entry can be applied tentatively.
func (a *Asset) clone() *Asset {
	entries := make([]AssetEntry, len(a.entries))
	copy(entries, a.entries)
	clone := *a
	clone.entries = entries
	return &clone
}
