// Package interfaces defines service contracts for fincatch
package interfaces

import (
	"context"
	"time"

	"github.com/fincatch/fincatch/internal/models"
)

// CurrencyService converts amounts between currencies through the VND pivot.
type CurrencyService interface {
	// GetExchangeRate returns the rate from one currency to another. A nil
	// asOf means "now" and is served from a short-lived cache; historical
	// lookups always hit the provider.
	GetExchangeRate(ctx context.Context, from, to string, asOf *time.Time) (float64, error)

	// Convert multiplies amount by the exchange rate. No rounding is applied.
	Convert(ctx context.Context, amount float64, from, to string, asOf *time.Time) (float64, error)
}

// PerformanceService computes portfolio valuations.
type PerformanceService interface {
	// ComputePerformance prices every entry as of now in the display
	// currency. Returns (nil, nil) for an empty entry set. Any per-entry
	// failure aborts the whole computation: callers must treat a nil result
	// as "no data", not zero performance.
	ComputePerformance(ctx context.Context, entries []*models.PortfolioEntry, displayCurrency string) (*models.PortfolioPerformance, error)

	// BuildHistory produces a base-100 normalized portfolio value series
	// sampled every intervalDays between start and end (end always included).
	// Individual entry pricing failures degrade that entry's contribution to
	// zero for the affected sample; the series itself still succeeds.
	BuildHistory(ctx context.Context, entries []*models.PortfolioEntry, start, end time.Time, displayCurrency string, intervalDays int) ([]models.PerformancePoint, error)

	// CompareBenchmark builds the portfolio series and the benchmark's own
	// base-100 series side by side. Returns (nil, nil) when either series is
	// empty — insufficient data, not an error.
	CompareBenchmark(ctx context.Context, entries []*models.PortfolioEntry, benchmark models.Benchmark, start, end time.Time, displayCurrency string) (*models.PortfolioBenchmarkComparison, error)
}
