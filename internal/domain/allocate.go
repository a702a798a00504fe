package domain

import (
	"github.com/shopspring/decimal"
)

// Ratio is one weighted recipient of an allocation. Slice order is
// significant: remainder units are handed out in slice order.
type Ratio struct {
	Key    string
	Weight decimal.Decimal
}

// Allocation is one recipient's share of an allocated amount.
type Allocation struct {
	Key    string
	Amount Money
}

// Allocate splits the amount across the given ratios so that the results
// sum to the amount exactly, with no minor unit lost or duplicated.
//
// The split happens in integer minor units. Each key first receives the
// floor of its exact proportional share. Leftover units then go to the
// keys whose own share would have rounded up, in order, and only after
// that one unit each to the remaining keys. Compared to handing the whole
// remainder to the first key, this keeps repeated allocations (decades of
// annual depreciation) from piling every leftover cent onto the oldest
// asset. Allocating 1.00 by [1, 2] gives [0.33, 0.67], not [0.34, 0.66].
func (m Money) Allocate(ratios []Ratio) ([]Allocation, error) {
	if len(ratios) == 0 {
		return nil, ErrNoRatios
	}

	sumOfWeights := decimal.Zero
	for _, r := range ratios {
		sumOfWeights = sumOfWeights.Add(r.Weight)
	}
	if sumOfWeights.IsZero() {
		return nil, ErrZeroWeights
	}

	// The amount is stored rounded to the exponent, so shifting yields an
	// exact integer number of minor units.
	units := m.amount.Shift(m.currency.Exponent)

	one := decimal.NewFromInt(1)
	shares := make([]decimal.Decimal, len(ratios))
	roundsUp := make([]bool, len(ratios))
	leftover := units

	for i, r := range ratios {
		scaled := units.Mul(r.Weight)
		quotient, remainder := scaled.QuoRem(sumOfWeights, 0)
		shares[i] = quotient
		// share would round up iff its fraction is at least one half
		roundsUp[i] = remainder.Add(remainder).Cmp(sumOfWeights) >= 0
		leftover = leftover.Sub(quotient)
	}

	for i := range shares {
		if !leftover.IsPositive() {
			break
		}
		if roundsUp[i] {
			shares[i] = shares[i].Add(one)
			leftover = leftover.Sub(one)
		}
	}

	// More leftover units than keys that round up: hand out one unit each
	// in order until nothing remains.
	for i := 0; leftover.IsPositive() && i < len(shares); i++ {
		shares[i] = shares[i].Add(one)
		leftover = leftover.Sub(one)
	}

	allocations := make([]Allocation, len(ratios))
	for i, r := range ratios {
		allocations[i] = Allocation{
			Key:    r.Key,
			Amount: Money{amount: shares[i].Shift(-m.currency.Exponent), currency: m.currency},
		}
	}
	return allocations, nil
}
