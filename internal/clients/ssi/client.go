// Package ssi provides a client for the SSI iBoard charts API
package ssi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/fincatch/fincatch/internal/common"
	"github.com/fincatch/fincatch/internal/models"
)

const (
	DefaultBaseURL   = "https://iboard-api.ssi.com.vn"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 10 // requests per second

	// SSI quotes Vietnamese stocks in thousands of VND.
	priceScale = 1000
)

// Client fetches stock history from SSI.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new SSI client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Source returns the provider identifier.
func (c *Client) Source() string {
	return "ssi"
}

// historyResponse is the TradingView-style array response from SSI.
type historyResponse struct {
	Status     string    `json:"s"`
	Timestamps []int64   `json:"t"`
	Open       []float64 `json:"o"`
	High       []float64 `json:"h"`
	Low        []float64 `json:"l"`
	Close      []float64 `json:"c"`
	Volume     []float64 `json:"v"`
}

// GetHistory retrieves daily candles for a symbol.
func (c *Client) GetHistory(ctx context.Context, symbol string, from, to time.Time) (*models.StockHistory, error) {
	if err := validateWindow(symbol, from, to); err != nil {
		return nil, err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("resolution", "1D")
	params.Set("symbol", symbol)
	params.Set("from", strconv.FormatInt(from.Unix(), 10))
	params.Set("to", strconv.FormatInt(to.Unix(), 10))

	reqURL := fmt.Sprintf("%s/statistics/charts/history?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Origin", "https://iboard.ssi.com.vn")
	req.Header.Set("Referer", "https://iboard.ssi.com.vn/")

	c.logger.Debug().Str("symbol", symbol).Msg("SSI history request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &common.APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   "/statistics/charts/history",
		}
	}

	var raw historyResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode SSI response: %w", err)
	}

	if raw.Status != "ok" && raw.Status != "" {
		return nil, fmt.Errorf("SSI returned status %q for %s", raw.Status, symbol)
	}

	history := &models.StockHistory{
		Symbol:   symbol,
		Data:     make([]models.Candle, 0, len(raw.Timestamps)),
		Metadata: models.SeriesMetadata{PriceScale: priceScale},
	}

	for i, ts := range raw.Timestamps {
		candle := models.Candle{Timestamp: ts}
		if i < len(raw.Open) {
			candle.Open = raw.Open[i]
		}
		if i < len(raw.High) {
			candle.High = raw.High[i]
		}
		if i < len(raw.Low) {
			candle.Low = raw.Low[i]
		}
		if i < len(raw.Close) {
			candle.Close = raw.Close[i]
		}
		if i < len(raw.Volume) {
			candle.Volume = raw.Volume[i]
		}
		history.Data = append(history.Data, candle)
	}

	return history, nil
}

// validateWindow mirrors the request validation of the original data gateway:
// non-empty symbol, from < to, non-negative, window capped at 180 days.
func validateWindow(symbol string, from, to time.Time) error {
	if symbol == "" {
		return fmt.Errorf("symbol cannot be empty")
	}
	if from.Unix() < 0 || to.Unix() < 0 {
		return fmt.Errorf("timestamps must be positive")
	}
	if !from.Before(to) {
		return fmt.Errorf("'from' must be before 'to'")
	}
	if days := int(to.Sub(from).Hours() / 24); days > 180 {
		return fmt.Errorf("date range exceeds maximum limit of 180 days, requested: %d days", days)
	}
	return nil
}
