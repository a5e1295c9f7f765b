// Package clients routes market data requests to per-source clients
package clients

import (
	"context"
	"fmt"
	"time"

	"github.com/fincatch/fincatch/internal/interfaces"
	"github.com/fincatch/fincatch/internal/models"
)

// Provider implements interfaces.MarketDataProvider over a set of registered
// source clients. Unknown sources are an error; an empty source falls back to
// the default client.
type Provider struct {
	stocks       map[string]interfaces.StockClient
	golds        map[string]interfaces.GoldClient
	rates        interfaces.RateClient
	defaultStock string
	defaultGold  string
}

// NewProvider creates a provider with the given default clients.
func NewProvider(stock interfaces.StockClient, gold interfaces.GoldClient, rates interfaces.RateClient) *Provider {
	p := &Provider{
		stocks: make(map[string]interfaces.StockClient),
		golds:  make(map[string]interfaces.GoldClient),
		rates:  rates,
	}
	if stock != nil {
		p.stocks[stock.Source()] = stock
		p.defaultStock = stock.Source()
	}
	if gold != nil {
		p.golds[gold.Source()] = gold
		p.defaultGold = gold.Source()
	}
	return p
}

// RegisterStockClient adds an additional stock source.
func (p *Provider) RegisterStockClient(c interfaces.StockClient) {
	p.stocks[c.Source()] = c
}

// RegisterGoldClient adds an additional gold source.
func (p *Provider) RegisterGoldClient(c interfaces.GoldClient) {
	p.golds[c.Source()] = c
}

// StockHistory fetches candles from the named source.
func (p *Provider) StockHistory(ctx context.Context, symbol, source string, from, to time.Time) (*models.StockHistory, error) {
	if source == "" {
		source = p.defaultStock
	}
	client, ok := p.stocks[source]
	if !ok {
		return nil, fmt.Errorf("unknown stock source %q", source)
	}
	return client.GetHistory(ctx, symbol, from, to)
}

// GoldPrices fetches gold ticks from the named source.
func (p *Provider) GoldPrices(ctx context.Context, goldType, source string, from, to time.Time) (*models.GoldHistory, error) {
	if source == "" {
		source = p.defaultGold
	}
	client, ok := p.golds[source]
	if !ok {
		return nil, fmt.Errorf("unknown gold source %q", source)
	}
	return client.GetPrices(ctx, goldType, from, to)
}

// ExchangeRates fetches currency→VND rate samples.
func (p *Provider) ExchangeRates(ctx context.Context, currencyCode string, from, to time.Time) ([]models.RatePoint, error) {
	return p.rates.GetRates(ctx, currencyCode, from, to)
}
