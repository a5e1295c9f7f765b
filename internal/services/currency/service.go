// Package currency converts amounts between currencies through a VND pivot.
//
// The rate provider only quotes "currency → VND", so every pair is resolved
// from one or two VND legs: direct for X→VND, inverted for VND→X, and the
// ratio of both legs otherwise.
package currency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fincatch/fincatch/internal/common"
	"github.com/fincatch/fincatch/internal/interfaces"
)

// ErrRateUnavailable is returned when the provider has no samples for a
// requested pair and window.
var ErrRateUnavailable = errors.New("exchange rate unavailable")

const pivotCurrency = "VND"

// Service implements interfaces.CurrencyService.
type Service struct {
	market interfaces.MarketDataProvider
	cache  *RateCache
	logger *common.Logger
	now    func() time.Time // injectable clock for testing
}

// NewService creates a currency service. The cache is only consulted for
// current-moment lookups; historical lookups always hit the provider.
func NewService(market interfaces.MarketDataProvider, cache *RateCache, logger *common.Logger) *Service {
	if cache == nil {
		cache = NewRateCache(common.FreshnessExchangeRate)
	}
	return &Service{
		market: market,
		cache:  cache,
		logger: logger,
		now:    time.Now,
	}
}

// SetClock overrides the service clock. Intended for tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// GetExchangeRate returns the rate from one currency to another.
func (s *Service) GetExchangeRate(ctx context.Context, from, to string, asOf *time.Time) (float64, error) {
	if from == to {
		return 1, nil
	}

	current := asOf == nil
	if current {
		if rate, ok := s.cache.Get(from, to); ok {
			return rate, nil
		}
	}

	at := s.now()
	if asOf != nil {
		at = *asOf
	}

	var rate float64
	switch {
	case to == pivotCurrency:
		legFrom, err := s.rateToVND(ctx, from, at)
		if err != nil {
			return 0, err
		}
		rate = legFrom
	case from == pivotCurrency:
		legTo, err := s.rateToVND(ctx, to, at)
		if err != nil {
			return 0, err
		}
		rate = 1 / legTo
	default:
		legFrom, err := s.rateToVND(ctx, from, at)
		if err != nil {
			return 0, err
		}
		legTo, err := s.rateToVND(ctx, to, at)
		if err != nil {
			return 0, err
		}
		rate = legFrom / legTo
	}

	if current {
		s.cache.Put(from, to, rate)
	}

	return rate, nil
}

// Convert multiplies amount by the exchange rate. No rounding is applied;
// callers format for display.
func (s *Service) Convert(ctx context.Context, amount float64, from, to string, asOf *time.Time) (float64, error) {
	rate, err := s.GetExchangeRate(ctx, from, to, asOf)
	if err != nil {
		return 0, err
	}
	return amount * rate, nil
}

// rateToVND fetches the sell rate for one currency against VND from the most
// recent sample in a 1-hour window ending at the target instant.
func (s *Service) rateToVND(ctx context.Context, code string, at time.Time) (float64, error) {
	points, err := s.market.ExchangeRates(ctx, code, at.Add(-common.QuoteWindow), at)
	if err != nil {
		return 0, fmt.Errorf("%w: %s→VND: %v", ErrRateUnavailable, code, err)
	}
	if len(points) == 0 {
		return 0, fmt.Errorf("%w: no samples for %s→VND at %s", ErrRateUnavailable, code, at.Format(time.RFC3339))
	}

	latest := points[0]
	for _, p := range points[1:] {
		if p.Timestamp > latest.Timestamp {
			latest = p
		}
	}
	if latest.Sell <= 0 {
		return 0, fmt.Errorf("%w: non-positive sell rate for %s→VND", ErrRateUnavailable, code)
	}
	return latest.Sell, nil
}
