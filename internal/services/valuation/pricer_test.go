package valuation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fincatch/fincatch/internal/models"
)

// stubMarket returns canned histories for pricer tests.
type stubMarket struct {
	stock     *models.StockHistory
	stockErr  error
	gold      *models.GoldHistory
	goldErr   error
	lastStock string
	lastGold  string
}

func (m *stubMarket) StockHistory(ctx context.Context, symbol, source string, from, to time.Time) (*models.StockHistory, error) {
	m.lastStock = symbol
	return m.stock, m.stockErr
}

func (m *stubMarket) GoldPrices(ctx context.Context, goldType, source string, from, to time.Time) (*models.GoldHistory, error) {
	m.lastGold = goldType
	return m.gold, m.goldErr
}

func (m *stubMarket) ExchangeRates(ctx context.Context, currencyCode string, from, to time.Time) ([]models.RatePoint, error) {
	return nil, errors.New("not used")
}

func float64Ptr(v float64) *float64 { return &v }

func TestStockPricer_LastScaledClose(t *testing.T) {
	market := &stubMarket{stock: &models.StockHistory{
		Symbol: "VNM",
		Data: []models.Candle{
			{Timestamp: 100, Close: 60.1},
			{Timestamp: 200, Close: 61.5},
		},
		Metadata: models.SeriesMetadata{PriceScale: 1000},
	}}

	p := &StockPricer{market: market}
	quote, err := p.Price(context.Background(), &models.PortfolioEntry{Symbol: "VNM", Currency: "VND"}, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !approxEqual(quote.Amount, 61500, 1e-9) {
		t.Errorf("quote = %v, want 61500", quote.Amount)
	}
	if quote.Currency != "VND" {
		t.Errorf("currency = %q, want VND", quote.Currency)
	}
	if quote.Source != "ssi" {
		t.Errorf("source = %q, want default ssi", quote.Source)
	}
}

func TestStockPricer_EmptyHistory(t *testing.T) {
	market := &stubMarket{stock: &models.StockHistory{Symbol: "VNM"}}

	p := &StockPricer{market: market}
	_, err := p.Price(context.Background(), &models.PortfolioEntry{Symbol: "VNM", Currency: "VND"}, time.Now())
	if !errors.Is(err, ErrPriceUnavailable) {
		t.Errorf("error = %v, want ErrPriceUnavailable", err)
	}
}

func TestGoldPricer_LastSellNativeVND(t *testing.T) {
	market := &stubMarket{gold: &models.GoldHistory{
		GoldType: "1",
		Data: []models.GoldTick{
			{Timestamp: 100, Sell: 84_000_000, Buy: 82_000_000},
			{Timestamp: 200, Sell: 85_500_000, Buy: 83_500_000},
		},
	}}

	p := &GoldPricer{market: market}
	entry := &models.PortfolioEntry{Symbol: "SJC", GoldType: "1", Currency: "VND"}
	quote, err := p.Price(context.Background(), entry, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !approxEqual(quote.Amount, 85_500_000, 1e-6) {
		t.Errorf("quote = %v, want 85,500,000", quote.Amount)
	}
	if quote.Currency != "VND" {
		t.Errorf("gold quotes are native VND, got %q", quote.Currency)
	}
	if market.lastGold != "1" {
		t.Errorf("queried gold type %q, want 1", market.lastGold)
	}
}

func TestGoldPricer_FallsBackToSymbol(t *testing.T) {
	market := &stubMarket{gold: &models.GoldHistory{
		Data: []models.GoldTick{{Timestamp: 100, Sell: 85_000_000}},
	}}

	p := &GoldPricer{market: market}
	entry := &models.PortfolioEntry{Symbol: "SJC", Currency: "VND"}
	if _, err := p.Price(context.Background(), entry, time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if market.lastGold != "SJC" {
		t.Errorf("queried gold type %q, want the symbol SJC", market.lastGold)
	}
}

func TestBondPricer_CalculatedMode(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	entry := &models.PortfolioEntry{
		AssetType:       models.AssetTypeBond,
		Symbol:          "VN0001",
		Currency:        "VND",
		FaceValue:       1_000_000,
		CouponRate:      8,
		YTM:             float64Ptr(6),
		MaturityDate:    now.Add(100 * 24 * time.Hour).Unix(),
		CouponFrequency: models.CouponAnnual,
	}

	p := &BondPricer{}
	quote, err := p.Price(context.Background(), entry, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Source != models.PriceSourceCalculated {
		t.Errorf("source = %q, want %q", quote.Source, models.PriceSourceCalculated)
	}
	want, _ := BondPresentValue(1_000_000, 8, 6, entry.MaturityDate, models.CouponAnnual, now)
	if !approxEqual(quote.Amount, want, 1e-9) {
		t.Errorf("quote = %v, want %v", quote.Amount, want)
	}
}

func TestBondPricer_DirectModeUsesManualPrice(t *testing.T) {
	entry := &models.PortfolioEntry{
		AssetType:          models.AssetTypeBond,
		Symbol:             "VN0001",
		Currency:           "VND",
		FaceValue:          1_000_000,
		CurrentMarketPrice: float64Ptr(980_000),
	}

	p := &BondPricer{}
	quote, err := p.Price(context.Background(), entry, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Amount != 980_000 {
		t.Errorf("quote = %v, want the manual price 980,000", quote.Amount)
	}
	if quote.Source != models.PriceSourceManual {
		t.Errorf("source = %q, want %q", quote.Source, models.PriceSourceManual)
	}
}

func TestBondPricer_FaceValueFallback(t *testing.T) {
	entry := &models.PortfolioEntry{
		AssetType: models.AssetTypeBond,
		Symbol:    "VN0001",
		Currency:  "VND",
		FaceValue: 1_000_000,
	}

	p := &BondPricer{}
	quote, err := p.Price(context.Background(), entry, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Amount != 1_000_000 || quote.Source != models.PriceSourceFaceValue {
		t.Errorf("quote = %v (%q), want 1,000,000 (%q)", quote.Amount, quote.Source, models.PriceSourceFaceValue)
	}
}

func TestBondPricer_PurchasePriceLastResort(t *testing.T) {
	entry := &models.PortfolioEntry{
		AssetType:     models.AssetTypeBond,
		Symbol:        "VN0001",
		Currency:      "VND",
		PurchasePrice: 950_000,
	}

	p := &BondPricer{}
	quote, err := p.Price(context.Background(), entry, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Amount != 950_000 || quote.Source != models.PriceSourcePurchase {
		t.Errorf("quote = %v (%q), want 950,000 (%q)", quote.Amount, quote.Source, models.PriceSourcePurchase)
	}
}

func TestBondPricer_CalculatedBeatsManual(t *testing.T) {
	// When the calculation inputs are complete, the manual price is ignored.
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	entry := &models.PortfolioEntry{
		AssetType:          models.AssetTypeBond,
		Symbol:             "VN0001",
		Currency:           "VND",
		FaceValue:          1_000_000,
		CouponRate:         8,
		YTM:                float64Ptr(6),
		MaturityDate:       now.AddDate(2, 0, 0).Unix(),
		CouponFrequency:    models.CouponSemiannual,
		CurrentMarketPrice: float64Ptr(980_000),
	}

	p := &BondPricer{}
	quote, err := p.Price(context.Background(), entry, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Source != models.PriceSourceCalculated {
		t.Errorf("source = %q, want %q", quote.Source, models.PriceSourceCalculated)
	}
}
