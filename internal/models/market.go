// Package models defines data structures for fincatch
package models

// SeriesMetadata carries provider metadata attached to a price series.
type SeriesMetadata struct {
	PriceScale float64 `json:"price_scale,omitempty"`
}

// Scale returns the multiplier to apply to raw prices, defaulting to 1.
func (m SeriesMetadata) Scale() float64 {
	if m.PriceScale > 0 {
		return m.PriceScale
	}
	return 1
}

// Candle is a single OHLCV bar from a stock history provider.
type Candle struct {
	Timestamp int64   `json:"timestamp"` // Unix seconds
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

// StockHistory is a provider response for a stock symbol over a window.
// The last candle's Close times Metadata.Scale() is the current price.
type StockHistory struct {
	Symbol   string         `json:"symbol"`
	Data     []Candle       `json:"data"`
	Metadata SeriesMetadata `json:"metadata"`
}

// LastClose returns the scaled close of the most recent candle, or false when
// the series is empty.
func (h *StockHistory) LastClose() (float64, bool) {
	if h == nil || len(h.Data) == 0 {
		return 0, false
	}
	return h.Data[len(h.Data)-1].Close * h.Metadata.Scale(), true
}

// GoldTick is a single buy/sell quote from a gold price provider.
// Prices are native VND.
type GoldTick struct {
	Timestamp  int64   `json:"timestamp"` // Unix seconds
	Sell       float64 `json:"sell"`
	Buy        float64 `json:"buy"`
	TypeName   string  `json:"type_name,omitempty"`
	BranchName string  `json:"branch_name,omitempty"`
}

// GoldHistory is a provider response for a gold price series over a window.
// The last tick's Sell times Metadata.Scale() is the current price.
type GoldHistory struct {
	GoldType string         `json:"gold_type"`
	Data     []GoldTick     `json:"data"`
	Metadata SeriesMetadata `json:"metadata"`
}

// LastSell returns the scaled sell price of the most recent tick, or false
// when the series is empty.
func (h *GoldHistory) LastSell() (float64, bool) {
	if h == nil || len(h.Data) == 0 {
		return 0, false
	}
	return h.Data[len(h.Data)-1].Sell * h.Metadata.Scale(), true
}

// RatePoint is a single buy/sell exchange-rate sample for one currency
// against VND.
type RatePoint struct {
	Timestamp int64   `json:"timestamp"` // Unix seconds
	Sell      float64 `json:"sell"`
	Buy       float64 `json:"buy"`
}
