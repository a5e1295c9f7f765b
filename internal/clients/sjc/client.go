// Package sjc provides a client for the SJC gold price service
package sjc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/fincatch/fincatch/internal/common"
	"github.com/fincatch/fincatch/internal/models"
)

const (
	DefaultBaseURL   = "https://sjc.com.vn"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second

	servicePath = "/GoldPrice/Services/PriceService.ashx"

	// SJC publishes full VND per tael for every gold type; no scaling.
	priceScale = 1
)

// Client fetches gold prices from SJC.
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

// NewClient creates a new SJC client
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
	return "sjc"
}

// priceHistoryResponse is the SJC price service envelope.
type priceHistoryResponse struct {
	Success bool             `json:"success"`
	Data    []priceHistoryItem `json:"data"`
}

// priceHistoryItem carries the numeric BuyValue/SellValue fields; the service
// also sends comma-grouped display strings (Buy/Sell) which we ignore.
type priceHistoryItem struct {
	GroupDate  string  `json:"GroupDate"` // .NET JSON date: /Date(1762275600000)/
	TypeName   string  `json:"TypeName"`
	BranchName string  `json:"BranchName"`
	BuyValue   float64 `json:"BuyValue"`
	SellValue  float64 `json:"SellValue"`
}

// GetPrices retrieves gold buy/sell quotes for a price series. Prices are
// native VND.
func (c *Client) GetPrices(ctx context.Context, goldType string, from, to time.Time) (*models.GoldHistory, error) {
	if goldType == "" {
		return nil, fmt.Errorf("gold type cannot be empty")
	}
	if !from.Before(to) {
		return nil, fmt.Errorf("'from' must be before 'to'")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("method", "GetGoldPriceHistory")
	form.Set("goldPriceId", goldType)
	form.Set("fromDate", from.Format("02/01/2006"))
	form.Set("toDate", to.Format("02/01/2006"))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+servicePath, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Origin", "https://sjc.com.vn")
	req.Header.Set("Referer", "https://sjc.com.vn/bieu-do-gia-vang")

	c.logger.Debug().Str("goldType", goldType).Msg("SJC price request")

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
			Endpoint:   servicePath,
		}
	}

	var raw priceHistoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode SJC response: %w", err)
	}

	if !raw.Success {
		return nil, fmt.Errorf("SJC returned an unsuccessful response for gold type %s", goldType)
	}

	history := &models.GoldHistory{
		GoldType: goldType,
		Data:     make([]models.GoldTick, 0, len(raw.Data)),
		Metadata: models.SeriesMetadata{PriceScale: priceScale},
	}

	for _, item := range raw.Data {
		history.Data = append(history.Data, models.GoldTick{
			Timestamp:  parseDotNetDate(item.GroupDate),
			Sell:       item.SellValue,
			Buy:        item.BuyValue,
			TypeName:   item.TypeName,
			BranchName: item.BranchName,
		})
	}

	return history, nil
}

// parseDotNetDate extracts Unix seconds from the .NET JSON date format
// "/Date(1762275600000)/". Returns 0 when the value is malformed.
func parseDotNetDate(s string) int64 {
	start := strings.Index(s, "(")
	end := strings.Index(s, ")")
	if start < 0 || end < 0 || end <= start+1 {
		return 0
	}
	millis, err := strconv.ParseInt(s[start+1:end], 10, 64)
	if err != nil {
		return 0
	}
	return millis / 1000
}
