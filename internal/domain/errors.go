package domain

import "errors"

var (
	// Money errors
	ErrInvalidCurrency  = errors.New("invalid currency")
	ErrCurrencyMismatch = errors.New("currency mismatch")

	// Allocation errors
	ErrNoRatios    = errors.New("no allocation ratios defined")
	ErrZeroWeights = errors.New("allocation weights sum to zero")

	// Entry errors. These are caller mistakes and map to a client error
	// at the HTTP boundary; everything else is a server error.
	ErrInvalidEntry    = errors.New("invalid entry")
	ErrBalanceMismatch = errors.New("balance mismatch")

	// Internal consistency errors
	ErrAssetNotFound    = errors.New("asset not found")
	ErrInvalidAssetType = errors.New("invalid asset type")
)
