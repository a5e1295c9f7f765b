package performance

import (
	"context"
	"fmt"
	"time"

	"github.com/fincatch/fincatch/internal/models"
)

// CompareBenchmark builds the portfolio's base-100 series and the benchmark
// instrument's own base-100 series side by side.
//
// The benchmark series is normalized on its own first close (scaled by the
// provider's price scale, not currency-converted). Returns (nil, nil) when
// either series is empty — insufficient data, not an error.
func (s *Service) CompareBenchmark(ctx context.Context, entries []*models.PortfolioEntry, benchmark models.Benchmark, start, end time.Time, displayCurrency string) (*models.PortfolioBenchmarkComparison, error) {
	portfolioData, err := s.BuildHistory(ctx, entries, start, end, displayCurrency, 1)
	if err != nil {
		return nil, err
	}

	benchmarkData, err := s.benchmarkSeries(ctx, benchmark, start, end)
	if err != nil {
		return nil, err
	}

	if len(portfolioData) == 0 || len(benchmarkData) == 0 {
		s.logger.Info().
			Str("benchmark", benchmark.Symbol).
			Int("portfolio_samples", len(portfolioData)).
			Int("benchmark_samples", len(benchmarkData)).
			Msg("Insufficient data for benchmark comparison")
		return nil, nil
	}

	portfolioReturn := portfolioData[len(portfolioData)-1].Value - 100
	benchmarkReturn := benchmarkData[len(benchmarkData)-1].Value - 100

	return &models.PortfolioBenchmarkComparison{
		Benchmark:       benchmark,
		PortfolioData:   portfolioData,
		BenchmarkData:   benchmarkData,
		PortfolioReturn: portfolioReturn,
		BenchmarkReturn: benchmarkReturn,
		Outperformance:  portfolioReturn - benchmarkReturn,
	}, nil
}

// benchmarkSeries normalizes the benchmark's daily closes to 100 at its first
// sample.
func (s *Service) benchmarkSeries(ctx context.Context, benchmark models.Benchmark, start, end time.Time) ([]models.PerformancePoint, error) {
	history, err := s.market.StockHistory(ctx, benchmark.Symbol, benchmark.Source, start, end)
	if err != nil {
		return nil, fmt.Errorf("benchmark %s: %w", benchmark.Symbol, err)
	}
	if len(history.Data) == 0 {
		return nil, nil
	}

	scale := history.Metadata.Scale()
	first := history.Data[0].Close * scale
	if first <= 0 {
		return nil, nil
	}

	points := make([]models.PerformancePoint, len(history.Data))
	for i, candle := range history.Data {
		points[i] = models.PerformancePoint{
			Timestamp: candle.Timestamp,
			Value:     candle.Close * scale / first * 100,
		}
	}
	return points, nil
}
