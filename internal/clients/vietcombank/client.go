// Package vietcombank provides a client for Vietcombank exchange rates
package vietcombank

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/fincatch/fincatch/internal/common"
	"github.com/fincatch/fincatch/internal/models"
)

const (
	DefaultBaseURL   = "https://www.vietcombank.com.vn"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second
)

// Client fetches currency→VND exchange rates from Vietcombank.
// The bank publishes one rate sheet per day; a window fetch requests each day
// in the range and filters for the requested currency.
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

// NewClient creates a new Vietcombank client
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

// rateSheetResponse is the daily exchange-rate sheet.
type rateSheetResponse struct {
	Data []rateSheetItem `json:"Data"`
}

// rateSheetItem uses the bank's short field names: "cash" and "transfer" are
// the buy-cash and buy-transfer rates.
type rateSheetItem struct {
	CurrencyCode string `json:"currencyCode"`
	CurrencyName string `json:"currencyName"`
	BuyCash      string `json:"cash"`
	BuyTransfer  string `json:"transfer"`
	Sell         string `json:"sell"`
}

// GetRates retrieves rate samples for a currency between from and to.
// Days where the provider has no sheet (weekends, holidays) are skipped.
func (c *Client) GetRates(ctx context.Context, currencyCode string, from, to time.Time) ([]models.RatePoint, error) {
	if currencyCode == "" {
		return nil, fmt.Errorf("currency code cannot be empty")
	}
	if from.After(to) {
		return nil, fmt.Errorf("'from' must not be after 'to'")
	}
	if days := int(to.Sub(from).Hours() / 24); days > 180 {
		return nil, fmt.Errorf("date range exceeds maximum limit of 180 days, requested: %d days", days)
	}

	var points []models.RatePoint
	for day := from.UTC().Truncate(24 * time.Hour); !day.After(to); day = day.AddDate(0, 0, 1) {
		sample, err := c.fetchDay(ctx, currencyCode, day)
		if err != nil {
			c.logger.Debug().Err(err).Str("date", day.Format("2006-01-02")).Msg("Vietcombank day fetch failed")
			continue
		}
		if sample != nil {
			points = append(points, *sample)
		}
	}

	return points, nil
}

// fetchDay fetches one day's rate sheet and extracts the requested currency.
// Returns (nil, nil) when the currency is not on that day's sheet.
func (c *Client) fetchDay(ctx context.Context, currencyCode string, day time.Time) (*models.RatePoint, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	reqURL := fmt.Sprintf("%s/api/exchangerates?date=%s", c.baseURL, day.Format("2006-01-02"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

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
			Endpoint:   "/api/exchangerates",
		}
	}

	var raw rateSheetResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode Vietcombank response: %w", err)
	}

	for _, item := range raw.Data {
		if item.CurrencyCode != currencyCode {
			continue
		}
		sell, err := strconv.ParseFloat(item.Sell, 64)
		if err != nil {
			return nil, fmt.Errorf("unparseable sell rate %q for %s: %w", item.Sell, currencyCode, err)
		}
		buy, _ := strconv.ParseFloat(item.BuyTransfer, 64)
		return &models.RatePoint{
			Timestamp: day.Unix(),
			Sell:      sell,
			Buy:       buy,
		}, nil
	}

	return nil, nil
}
