// Package models defines data structures for fincatch
package models

// Price source provenance tags for bond pricing modes. Stock and gold entries
// record the provider name instead.
const (
	PriceSourceCalculated = "calculated"
	PriceSourceManual     = "manual"
	PriceSourceFaceValue  = "faceValue"
	PriceSourcePurchase   = "purchasePrice"
)

// EntryPerformance is one entry's computed valuation in the display currency.
// All monetary fields are display-currency and per-base-unit normalized.
type EntryPerformance struct {
	Entry              *PortfolioEntry `json:"entry"`
	CurrentPrice       float64         `json:"current_price"`
	PurchasePrice      float64         `json:"purchase_price"`
	CurrentValue       float64         `json:"current_value"`
	TotalCost          float64         `json:"total_cost"`
	CouponIncome       float64         `json:"coupon_income,omitempty"` // bonds only
	GainLoss           float64         `json:"gain_loss"`
	GainLossPercentage float64         `json:"gain_loss_percentage"`
	PriceSource        string          `json:"price_source"`
	ExchangeRate       float64         `json:"exchange_rate"` // 1.0 if no conversion occurred
}

// PortfolioPerformance is the aggregate valuation over all entries.
// EntriesPerformance mirrors the input entry order.
type PortfolioPerformance struct {
	TotalValue              float64            `json:"total_value"`
	TotalCost               float64            `json:"total_cost"`
	TotalGainLoss           float64            `json:"total_gain_loss"`
	TotalGainLossPercentage float64            `json:"total_gain_loss_percentage"`
	Currency                string             `json:"currency"`
	EntriesPerformance      []EntryPerformance `json:"entries_performance"`
}

// PerformancePoint is one sample of a base-100 normalized time series.
type PerformancePoint struct {
	Timestamp int64   `json:"timestamp"` // Unix seconds
	Value     float64 `json:"value"`
}

// Benchmark identifies the instrument a portfolio is compared against.
type Benchmark struct {
	Symbol string `json:"symbol"`
	Source string `json:"source,omitempty"`
	Name   string `json:"name,omitempty"`
}

// PortfolioBenchmarkComparison holds two independently base-100 normalized
// series and their relative returns. Returns are lastValue - 100.
type PortfolioBenchmarkComparison struct {
	Benchmark       Benchmark          `json:"benchmark"`
	PortfolioData   []PerformancePoint `json:"portfolio_data"`
	BenchmarkData   []PerformancePoint `json:"benchmark_data"`
	PortfolioReturn float64            `json:"portfolio_return"`
	BenchmarkReturn float64            `json:"benchmark_return"`
	Outperformance  float64            `json:"outperformance"`
}
