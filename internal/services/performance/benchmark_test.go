package performance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fincatch/fincatch/internal/models"
)

func TestCompareBenchmark_NormalizesOnFirstClose(t *testing.T) {
	day := func(d int) int64 { return historyStart.AddDate(0, 0, d).Unix() }
	market := &stubMarket{stockFn: func(sym string, from, to time.Time) (*models.StockHistory, error) {
		if sym == "VNINDEX" {
			return &models.StockHistory{
				Symbol: "VNINDEX",
				Data: []models.Candle{
					{Timestamp: day(0), Close: 1.2},
					{Timestamp: day(1), Close: 1.26},
					{Timestamp: day(2), Close: 1.32},
				},
				Metadata: models.SeriesMetadata{PriceScale: 1000},
			}, nil
		}
		days := to.Sub(historyStart).Hours() / 24
		return &models.StockHistory{
			Symbol: sym,
			Data:   []models.Candle{{Timestamp: to.Unix(), Close: 100 + days}},
		}, nil
	}}
	svc := newTestPerformanceService(market, &stubCurrency{}, nil)

	entries := []*models.PortfolioEntry{stockEntry("e1", "AAPL", historyStart)}
	end := historyStart.AddDate(0, 0, 2)

	comparison, err := svc.CompareBenchmark(context.Background(), entries,
		models.Benchmark{Symbol: "VNINDEX"}, historyStart, end, "USD")
	require.NoError(t, err)
	require.NotNil(t, comparison)

	require.Len(t, comparison.BenchmarkData, 3)
	assert.InDelta(t, 100, comparison.BenchmarkData[0].Value, 1e-9)
	assert.InDelta(t, 105, comparison.BenchmarkData[1].Value, 1e-9)
	assert.InDelta(t, 110, comparison.BenchmarkData[2].Value, 1e-9)

	// Portfolio rose 100→102, benchmark 100→110.
	assert.InDelta(t, 2, comparison.PortfolioReturn, 1e-9)
	assert.InDelta(t, 10, comparison.BenchmarkReturn, 1e-9)
	assert.InDelta(t, -8, comparison.Outperformance, 1e-9)
}

func TestCompareBenchmark_EmptyBenchmarkSeries(t *testing.T) {
	svc := newTestPerformanceService(rampMarket("AAPL"), &stubCurrency{}, nil)
	entries := []*models.PortfolioEntry{stockEntry("e1", "AAPL", historyStart)}
	end := historyStart.AddDate(0, 0, 2)

	comparison, err := svc.CompareBenchmark(context.Background(), entries,
		models.Benchmark{Symbol: "VNINDEX"}, historyStart, end, "USD")
	require.NoError(t, err)
	assert.Nil(t, comparison, "insufficient data is not an error")
}

func TestCompareBenchmark_ZeroFirstClose(t *testing.T) {
	market := &stubMarket{stockFn: func(sym string, from, to time.Time) (*models.StockHistory, error) {
		if sym == "VNINDEX" {
			return &models.StockHistory{
				Symbol: "VNINDEX",
				Data:   []models.Candle{{Timestamp: historyStart.Unix(), Close: 0}},
			}, nil
		}
		return &models.StockHistory{
			Symbol: sym,
			Data:   []models.Candle{{Timestamp: to.Unix(), Close: 100}},
		}, nil
	}}
	svc := newTestPerformanceService(market, &stubCurrency{}, nil)
	entries := []*models.PortfolioEntry{stockEntry("e1", "AAPL", historyStart)}
	end := historyStart.AddDate(0, 0, 2)

	comparison, err := svc.CompareBenchmark(context.Background(), entries,
		models.Benchmark{Symbol: "VNINDEX"}, historyStart, end, "USD")
	require.NoError(t, err)
	assert.Nil(t, comparison, "a zero first close cannot anchor the baseline")
}
