// Package performance computes current and historical portfolio valuations.
package performance

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fincatch/fincatch/internal/common"
	"github.com/fincatch/fincatch/internal/interfaces"
	"github.com/fincatch/fincatch/internal/models"
	"github.com/fincatch/fincatch/internal/services/valuation"
)

// maxConcurrentEntries bounds parallel per-entry pricing in the aggregator
// and per-timestamp sampling in the history builder.
const maxConcurrentEntries = 4

// Service implements interfaces.PerformanceService.
type Service struct {
	market   interfaces.MarketDataProvider
	currency interfaces.CurrencyService
	storage  interfaces.StorageManager
	pricers  map[models.AssetType]valuation.Pricer
	logger   *common.Logger
	now      func() time.Time // injectable clock for testing
}

// NewService creates a performance service.
func NewService(market interfaces.MarketDataProvider, currency interfaces.CurrencyService, storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{
		market:   market,
		currency: currency,
		storage:  storage,
		pricers:  valuation.NewPricers(market),
		logger:   logger,
		now:      time.Now,
	}
}

// SetClock overrides the service clock. Intended for tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// ComputePerformance prices every entry as of now in the display currency.
//
// Entries are priced concurrently but assembled in input order. Any per-entry
// failure aborts the whole computation — callers must show "no data" for a
// nil result, not zero performance. An empty entry set returns (nil, nil).
func (s *Service) ComputePerformance(ctx context.Context, entries []*models.PortfolioEntry, displayCurrency string) (*models.PortfolioPerformance, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	asOf := s.now()
	results := make([]models.EntryPerformance, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentEntries)
	for i, entry := range entries {
		g.Go(func() error {
			perf, err := s.computeEntry(gctx, entry, displayCurrency, asOf)
			if err != nil {
				return fmt.Errorf("entry %s (%s): %w", entry.ID, entry.Symbol, err)
			}
			results[i] = *perf
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Warn().Err(err).Msg("Portfolio performance computation aborted")
		return nil, err
	}

	perf := &models.PortfolioPerformance{
		Currency:           displayCurrency,
		EntriesPerformance: results,
	}
	for _, ep := range results {
		perf.TotalValue += ep.CurrentValue
		perf.TotalCost += ep.TotalCost
		perf.TotalGainLoss += ep.GainLoss
	}
	if perf.TotalCost > 0 {
		perf.TotalGainLossPercentage = perf.TotalGainLoss / perf.TotalCost * 100
	}

	return perf, nil
}

// computeEntry prices one entry in the display currency.
func (s *Service) computeEntry(ctx context.Context, entry *models.PortfolioEntry, displayCurrency string, asOf time.Time) (*models.EntryPerformance, error) {
	pricer, ok := s.pricers[entry.AssetType]
	if !ok {
		return nil, fmt.Errorf("no pricer for asset type %q", entry.AssetType)
	}

	quote, err := pricer.Price(ctx, entry, asOf)
	if err != nil {
		return nil, err
	}

	currentPriceDisplay, err := s.currency.Convert(ctx, quote.Amount, quote.Currency, displayCurrency, nil)
	if err != nil {
		return nil, err
	}

	unit := entry.EffectiveGoldUnit()
	quantity := valuation.NormalizeQuantity(entry.Quantity, unit, entry.AssetType)
	purchasePrice := valuation.NormalizePurchasePrice(entry.PurchasePrice, unit, entry.AssetType)

	purchasePriceDisplay, err := s.currency.Convert(ctx, purchasePrice, entry.Currency, displayCurrency, nil)
	if err != nil {
		return nil, err
	}

	feesDisplay := 0.0
	if entry.TransactionFees > 0 {
		feesDisplay, err = s.currency.Convert(ctx, entry.TransactionFees, entry.Currency, displayCurrency, nil)
		if err != nil {
			return nil, err
		}
	}

	currentValue := currentPriceDisplay * quantity
	totalCost := purchasePriceDisplay*quantity + feesDisplay

	couponIncome := 0.0
	if entry.AssetType == models.AssetTypeBond {
		couponIncome, err = s.sumCouponIncome(ctx, entry, displayCurrency)
		if err != nil {
			return nil, err
		}
	}

	gainLoss := currentValue - totalCost + couponIncome
	gainLossPct := 0.0
	if totalCost > 0 {
		gainLossPct = gainLoss / totalCost * 100
	}

	exchangeRate := 1.0
	if quote.Currency != displayCurrency && quote.Amount > 0 {
		exchangeRate = currentPriceDisplay / quote.Amount
	}

	return &models.EntryPerformance{
		Entry:              entry,
		CurrentPrice:       currentPriceDisplay,
		PurchasePrice:      purchasePriceDisplay,
		CurrentValue:       currentValue,
		TotalCost:          totalCost,
		CouponIncome:       couponIncome,
		GainLoss:           gainLoss,
		GainLossPercentage: gainLossPct,
		PriceSource:        quote.Source,
		ExchangeRate:       exchangeRate,
	}, nil
}

// sumCouponIncome converts and sums all coupon payments recorded against a
// bond entry. Payments are summed without deduplication.
func (s *Service) sumCouponIncome(ctx context.Context, entry *models.PortfolioEntry, displayCurrency string) (float64, error) {
	payments, err := s.storage.CouponStorage().ListPayments(ctx, entry.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to list coupon payments: %w", err)
	}

	total := 0.0
	for _, p := range payments {
		amount, err := s.currency.Convert(ctx, p.Amount, p.Currency, displayCurrency, nil)
		if err != nil {
			return 0, err
		}
		total += amount
	}
	return total, nil
}
