// Package interfaces defines service contracts for fincatch
package interfaces

import (
	"context"
	"time"

	"github.com/fincatch/fincatch/internal/models"
)

// StockClient provides historical candles for a stock symbol.
type StockClient interface {
	// GetHistory retrieves daily candles for symbol between from and to.
	GetHistory(ctx context.Context, symbol string, from, to time.Time) (*models.StockHistory, error)

	// Source returns the provider identifier (e.g. "ssi").
	Source() string
}

// GoldClient provides historical buy/sell quotes for a gold price series.
type GoldClient interface {
	// GetPrices retrieves gold ticks for the series between from and to.
	// Prices are native VND.
	GetPrices(ctx context.Context, goldType string, from, to time.Time) (*models.GoldHistory, error)

	// Source returns the provider identifier (e.g. "sjc").
	Source() string
}

// RateClient provides exchange rates for one currency against VND.
// The provider only quotes currency→VND; cross rates are derived by the
// currency service through the VND pivot.
type RateClient interface {
	// GetRates retrieves rate samples for currencyCode between from and to.
	GetRates(ctx context.Context, currencyCode string, from, to time.Time) ([]models.RatePoint, error)
}

// MarketDataProvider routes market data requests to per-source clients.
type MarketDataProvider interface {
	// StockHistory fetches candles from the named source, or the default
	// source when source is empty.
	StockHistory(ctx context.Context, symbol, source string, from, to time.Time) (*models.StockHistory, error)

	// GoldPrices fetches gold ticks from the named source, or the default
	// source when source is empty.
	GoldPrices(ctx context.Context, goldType, source string, from, to time.Time) (*models.GoldHistory, error)

	// ExchangeRates fetches currency→VND rate samples.
	ExchangeRates(ctx context.Context, currencyCode string, from, to time.Time) ([]models.RatePoint, error)
}
