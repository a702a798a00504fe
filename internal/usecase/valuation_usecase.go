package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/podger/valuation/internal/domain"
	"github.com/podger/valuation/internal/infrastructure/metrics"
)

var (
	// ErrTooManyEntries is returned when a request exceeds the entry limit.
	ErrTooManyEntries = errors.New("too many entries in valuation request")
)

// ValuationUseCase replays journal entries into an account valuation.
type ValuationUseCase struct {
	idGen      IDGenerator
	metrics    *metrics.Metrics
	maxEntries int
}

// NewValuationUseCase creates a new ValuationUseCase.
func NewValuationUseCase(idGen IDGenerator, metrics *metrics.Metrics, maxEntries int) *ValuationUseCase {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &ValuationUseCase{
		idGen:      idGen,
		metrics:    metrics,
		maxEntries: maxEntries,
	}
}

// Valuation is the result of replaying a journal.
type Valuation struct {
	ID      string
	Account *domain.Account
}

// Compute replays the entries in order against a fresh account.
// Entries are validated as they are applied; the first failure aborts
// the computation and reports the offending entry position.
func (uc *ValuationUseCase) Compute(ctx context.Context, entries []domain.Entry) (*Valuation, error) {
	start := time.Now()

	if len(entries) > uc.maxEntries {
		uc.countError(ErrTooManyEntries)
		return nil, fmt.Errorf("%w: %d entries, limit is %d", ErrTooManyEntries, len(entries), uc.maxEntries)
	}

	account := domain.NewAccount()
	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := account.AddEntry(entry); err != nil {
			uc.countError(err)
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
	}

	if uc.metrics != nil {
		uc.metrics.ValuationsComputed.Inc()
		uc.metrics.EntriesApplied.Add(float64(len(entries)))
		uc.metrics.AssetsPerValuation.Observe(float64(len(account.Assets())))
		uc.metrics.ValuationDuration.Observe(time.Since(start).Seconds())
	}

	return &Valuation{
		ID:      uc.idGen.Generate(),
		Account: account,
	}, nil
}

func (uc *ValuationUseCase) countError(err error) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.ValuationErrors.WithLabelValues(errorType(err)).Inc()
}

func errorType(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidEntry):
		return "invalid_entry"
	case errors.Is(err, domain.ErrBalanceMismatch):
		return "balance_mismatch"
	case errors.Is(err, domain.ErrCurrencyMismatch):
		return "currency_mismatch"
	case errors.Is(err, ErrTooManyEntries):
		return "too_many_entries"
	default:
		return "internal"
	}
}
