package performance

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fincatch/fincatch/internal/models"
	"github.com/fincatch/fincatch/internal/services/valuation"
)

// BuildHistory produces a base-100 normalized portfolio value series sampled
// every intervalDays between start and end. The final sample is forced to end
// exactly even when the interval doesn't align.
//
// Per-entry pricing failures at a sample are logged and contribute zero to
// that sample — the series is best effort, unlike ComputePerformance. The
// first sample with a nonzero total establishes the 100 baseline; samples
// before it report 100 ("no data yet").
func (s *Service) BuildHistory(ctx context.Context, entries []*models.PortfolioEntry, start, end time.Time, displayCurrency string, intervalDays int) ([]models.PerformancePoint, error) {
	if intervalDays <= 0 {
		intervalDays = 1
	}

	var timestamps []time.Time
	for ts := start; !ts.After(end); ts = ts.AddDate(0, 0, intervalDays) {
		timestamps = append(timestamps, ts)
	}
	if len(timestamps) == 0 || !timestamps[len(timestamps)-1].Equal(end) {
		timestamps = append(timestamps, end)
	}

	totals := make([]float64, len(timestamps))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentEntries)
	for i, ts := range timestamps {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			totals[i] = s.sampleTotal(gctx, entries, ts, displayCurrency)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	points := make([]models.PerformancePoint, len(timestamps))
	initialValue := 0.0
	for i, ts := range timestamps {
		value := 100.0
		if initialValue == 0 && totals[i] > 0 {
			initialValue = totals[i]
		}
		if initialValue > 0 {
			value = totals[i] / initialValue * 100
		}
		points[i] = models.PerformancePoint{Timestamp: ts.Unix(), Value: value}
	}

	return points, nil
}

// sampleTotal values every entry held at ts, in the display currency.
// Failures degrade the entry's contribution to zero for this sample.
func (s *Service) sampleTotal(ctx context.Context, entries []*models.PortfolioEntry, ts time.Time, displayCurrency string) float64 {
	asOf := ts
	total := 0.0

	for _, entry := range entries {
		if entry.PurchaseDate > ts.Unix() {
			continue
		}
		// Historical gold sampling only supports the SJC series.
		if entry.AssetType == models.AssetTypeGold && entry.Source != "" && entry.Source != "sjc" {
			continue
		}

		pricer, ok := s.pricers[entry.AssetType]
		if !ok {
			continue
		}

		quote, err := pricer.Price(ctx, entry, ts)
		if err != nil {
			s.logger.Debug().Err(err).
				Str("entry", entry.ID).
				Str("symbol", entry.Symbol).
				Time("at", ts).
				Msg("Historical price fetch failed, entry contributes zero")
			continue
		}

		priceDisplay, err := s.currency.Convert(ctx, quote.Amount, quote.Currency, displayCurrency, &asOf)
		if err != nil {
			s.logger.Debug().Err(err).
				Str("entry", entry.ID).
				Time("at", ts).
				Msg("Historical rate fetch failed, entry contributes zero")
			continue
		}

		quantity := valuation.NormalizeQuantity(entry.Quantity, entry.EffectiveGoldUnit(), entry.AssetType)
		total += priceDisplay * quantity
	}

	return total
}
