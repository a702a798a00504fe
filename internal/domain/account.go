package domain

import (
	"fmt"
)

// Account is the aggregate root of a valuation: a set of asset
// sub-ledgers in a single currency. The currency and account type are
// fixed by the first entry; every later entry is classified and applied
// through AddEntry, which verifies the declared balance afterwards.
//
// An Account is not safe for concurrent use. A server embedding it must
// allocate one Account per computation.
type Account struct {
	currency Currency
	typ      AccountType
	assets   map[string]*Asset
	order    []string
}

// NewAccount creates an empty account. The default currency is
// overwritten by the first entry.
func NewAccount() *Account {
	return &Account{
		currency: EUR,
		typ:      AccountTypeAsset,
		assets:   make(map[string]*Asset),
	}
}

// IsEmpty reports whether no asset has been created yet.
func (a *Account) IsEmpty() bool {
	return len(a.order) == 0
}

// Currency returns the account currency.
func (a *Account) Currency() Currency {
	return a.currency
}

// Type returns the account type derived from the first entry.
func (a *Account) Type() AccountType {
	return a.typ
}

// Assets returns the assets in creation order.
func (a *Account) Assets() []*Asset {
	assets := make([]*Asset, 0, len(a.order))
	for _, id := range a.order {
		assets = append(assets, a.assets[id])
	}
	return assets
}

// Asset returns the asset with the given id, if present.
func (a *Account) Asset(id string) (*Asset, bool) {
	asset, ok := a.assets[id]
	return asset, ok
}

// Balance sums all asset balances. An empty account balances to zero in
// the account currency.
func (a *Account) Balance() Money {
	total := Zero(a.currency)
	for _, id := range a.order {
		total.amount = total.amount.Add(a.assets[id].Balance().amount)
	}
	return total
}

// AddEntry applies one entry to the account. The entry is applied to a
// snapshot which replaces the account state only when everything
// succeeded, so a failed entry (including a failed balance check in the
// middle of a sweep) leaves the account unchanged.
func (a *Account) AddEntry(entry Entry) error {
	next := a.clone()
	if err := next.apply(entry); err != nil {
		return err
	}
	*a = *next
	return nil
}

func (a *Account) apply(entry Entry) error {
	if a.IsEmpty() {
		currency, err := entry.currency()
		if err != nil {
			return err
		}
		typ, err := accountTypeOf(entry)
		if err != nil {
			return err
		}
		a.currency = currency
		a.typ = typ
	}

	var err error
	switch entry.Kind {
	case EntryDirect:
		err = a.applyDirect(entry)
	case EntryDepreciation:
		err = a.applyDepreciation(entry)
	case EntryConversion:
		err = a.applyConversion(entry)
	default:
		err = fmt.Errorf("%w: unknown entry kind on %s", ErrInvalidEntry, entry)
	}
	if err != nil {
		return err
	}

	return a.checkDeclaredBalance(entry)
}

// applyDirect books the entry on a single asset, creating it on first
// reference with the entry description as its name.
func (a *Account) applyDirect(entry Entry) error {
	asset, ok := a.assets[entry.AssetID]
	if !ok {
		created, err := NewAsset(entry.AssetID, entry.Description, a.currency, a.typ)
		if err != nil {
			return err
		}
		asset = created
		a.assets[asset.id] = asset
		a.order = append(a.order, asset.id)
	}

	return asset.Apply(Entry{
		Kind:        EntryDirect,
		Date:        entry.Date,
		DocumentID:  entry.DocumentID,
		AssetID:     entry.AssetID,
		Description: entry.Description,
		Debit:       entry.Debit,
		Credit:      entry.Credit,
	})
}

// applyDepreciation spreads the credit across all assets with a positive
// balance, proportionally to those balances. With no qualifying asset the
// entry is a no-op apart from the balance check.
func (a *Account) applyDepreciation(entry Entry) error {
	ratios := a.positiveBalanceRatios()
	if len(ratios) == 0 {
		return nil
	}

	allocations, err := entry.Credit.Allocate(ratios)
	if err != nil {
		return err
	}

	for _, allocation := range allocations {
		asset, ok := a.assets[allocation.Key]
		if !ok {
			return fmt.Errorf("%w: %s while applying depreciation", ErrAssetNotFound, allocation.Key)
		}

		amount := allocation.Amount
		err := asset.Apply(Entry{
			Kind:        EntryDepreciation,
			Date:        entry.Date,
			DocumentID:  entry.DocumentID,
			AssetID:     allocation.Key,
			Description: entry.Description,
			Credit:      &amount,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// applyConversion switches the account to the target currency and
// allocates the declared post-conversion balance across the assets by
// their pre-conversion positive balances, so no minor unit is lost in
// the conversion.
func (a *Account) applyConversion(entry Entry) error {
	a.currency = entry.Conversion.To

	ratios := a.positiveBalanceRatios()
	if len(ratios) == 0 {
		return nil
	}

	allocations, err := entry.Balance.Allocate(ratios)
	if err != nil {
		return err
	}

	for _, allocation := range allocations {
		asset, ok := a.assets[allocation.Key]
		if !ok {
			return fmt.Errorf("%w: %s while applying conversion", ErrAssetNotFound, allocation.Key)
		}

		balance := allocation.Amount
		err := asset.Apply(Entry{
			Kind:        EntryConversion,
			Date:        entry.Date,
			DocumentID:  entry.DocumentID,
			AssetID:     allocation.Key,
			Description: entry.Description,
			Conversion:  entry.Conversion,
			Balance:     &balance,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// positiveBalanceRatios weighs every asset with a positive balance by
// that balance, in asset creation order.
func (a *Account) positiveBalanceRatios() []Ratio {
	var ratios []Ratio
	for _, id := range a.order {
		balance := a.assets[id].Balance()
		if balance.Amount().IsPositive() {
			ratios = append(ratios, Ratio{Key: id, Weight: balance.Amount()})
		}
	}
	return ratios
}

// checkDeclaredBalance enforces the postcondition: when the entry
// declared a balance, the recomputed total must equal it exactly.
func (a *Account) checkDeclaredBalance(entry Entry) error {
	if entry.Balance == nil {
		return nil
	}
	total := a.Balance()
	if !total.Equal(*entry.Balance) {
		return fmt.Errorf("%w: expected assets total to equal %s balance %s but was %s",
			ErrBalanceMismatch, entry, entry.Balance, total)
	}
	return nil
}

// accountTypeOf derives the account type from the first entry: a debit
// opens an asset account, a credit a liability account.
func accountTypeOf(entry Entry) (AccountType, error) {
	switch {
	case entry.Debit != nil && entry.Credit == nil:
		return AccountTypeAsset, nil
	case entry.Debit == nil && entry.Credit != nil:
		return AccountTypeLiability, nil
	}
	return "", fmt.Errorf("%w: first entry must be either a debit or a credit entry", ErrInvalidEntry)
}

// clone deep-copies the account so an entry can be applied tentatively
// and committed only on success.
func (a *Account) clone() *Account {
	assets := make(map[string]*Asset, len(a.assets))
	for id, asset := range a.assets {
		assets[id] = asset.clone()
	}
	order := make([]string, len(a.order))
	copy(order, a.order)
	return &Account{
		currency: a.currency,
		typ:      a.typ,
		assets:   assets,
		order:    order,
	}
}
