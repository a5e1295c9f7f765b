package valuation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fincatch/fincatch/internal/common"
	"github.com/fincatch/fincatch/internal/interfaces"
	"github.com/fincatch/fincatch/internal/models"
)

// ErrPriceUnavailable is returned when a provider has no samples for the
// requested window.
var ErrPriceUnavailable = errors.New("price unavailable")

// Quote is a priced holding in its native currency, with provenance.
type Quote struct {
	Amount   float64
	Currency string
	Source   string
}

// Pricer prices one holding as of a given instant.
type Pricer interface {
	Price(ctx context.Context, entry *models.PortfolioEntry, asOf time.Time) (*Quote, error)
}

// NewPricers returns the pricing strategy for each asset type.
func NewPricers(market interfaces.MarketDataProvider) map[models.AssetType]Pricer {
	return map[models.AssetType]Pricer{
		models.AssetTypeStock: &StockPricer{market: market},
		models.AssetTypeGold:  &GoldPricer{market: market},
		models.AssetTypeBond:  &BondPricer{},
	}
}

// StockPricer prices stock entries from the last close in a 1-day window
// ending at the pricing instant. Quotes are in the entry's currency.
type StockPricer struct {
	market interfaces.MarketDataProvider
}

func (p *StockPricer) Price(ctx context.Context, entry *models.PortfolioEntry, asOf time.Time) (*Quote, error) {
	history, err := p.market.StockHistory(ctx, entry.Symbol, entry.Source, asOf.Add(-common.HistoryWindow), asOf)
	if err != nil {
		return nil, fmt.Errorf("stock %s: %w", entry.Symbol, err)
	}
	price, ok := history.LastClose()
	if !ok {
		return nil, fmt.Errorf("%w: stock %s has no candles in window ending %s", ErrPriceUnavailable, entry.Symbol, asOf.Format(time.RFC3339))
	}

	source := entry.Source
	if source == "" {
		source = "ssi"
	}
	return &Quote{Amount: price, Currency: entry.Currency, Source: source}, nil
}

// GoldPricer prices gold entries from the last sell price in a 1-day window
// ending at the pricing instant. Gold quotes are native VND, per tael.
type GoldPricer struct {
	market interfaces.MarketDataProvider
}

func (p *GoldPricer) Price(ctx context.Context, entry *models.PortfolioEntry, asOf time.Time) (*Quote, error) {
	goldType := entry.GoldType
	if goldType == "" {
		goldType = entry.Symbol
	}
	history, err := p.market.GoldPrices(ctx, goldType, entry.Source, asOf.Add(-common.HistoryWindow), asOf)
	if err != nil {
		return nil, fmt.Errorf("gold %s: %w", goldType, err)
	}
	price, ok := history.LastSell()
	if !ok {
		return nil, fmt.Errorf("%w: gold %s has no ticks in window ending %s", ErrPriceUnavailable, goldType, asOf.Format(time.RFC3339))
	}

	source := entry.Source
	if source == "" {
		source = "sjc"
	}
	return &Quote{Amount: price, Currency: "VND", Source: source}, nil
}

// BondPricer prices bond entries without any external fetch. The fallback
// chain is: present-value formula when the full calculation inputs are
// present, then the manual market price, then face value, then purchase
// price — with the mode recorded as the quote source.
type BondPricer struct{}

func (p *BondPricer) Price(ctx context.Context, entry *models.PortfolioEntry, asOf time.Time) (*Quote, error) {
	switch {
	case entry.HasBondCalculationInputs():
		value, err := BondPresentValue(entry.FaceValue, entry.CouponRate, *entry.YTM, entry.MaturityDate, entry.CouponFrequency, asOf)
		if err != nil {
			return nil, fmt.Errorf("bond %s: %w", entry.Symbol, err)
		}
		return &Quote{Amount: value, Currency: entry.Currency, Source: models.PriceSourceCalculated}, nil
	case entry.CurrentMarketPrice != nil:
		return &Quote{Amount: *entry.CurrentMarketPrice, Currency: entry.Currency, Source: models.PriceSourceManual}, nil
	case entry.FaceValue > 0:
		return &Quote{Amount: entry.FaceValue, Currency: entry.Currency, Source: models.PriceSourceFaceValue}, nil
	default:
		return &Quote{Amount: entry.PurchasePrice, Currency: entry.Currency, Source: models.PriceSourcePurchase}, nil
	}
}
