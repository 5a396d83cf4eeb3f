package kalshi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/time/rate"

	"github.com/wonny/brier-terminal/backend/pkg/httputil"
	"github.com/wonny/brier-terminal/backend/pkg/logger"
)

// Kalshi public API: 10 req/sec for basic tier, stay below
const requestsPerSecond = 5

// Client reads open markets from the Kalshi trade API
// ⭐ SSOT: Kalshi API 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	limiter    *rate.Limiter
	logger     *logger.Logger
	baseURL    string
}

// Market is the subset of a Kalshi market we normalize
type Market struct {
	Ticker        string `json:"ticker"`
	Title         string `json:"title"`
	LastPrice     int    `json:"last_price"`     // cents
	PreviousPrice int    `json:"previous_price"` // cents, 24h ago
	Volume        int64  `json:"volume"`         // contracts
}

type marketsResponse struct {
	Markets []Market `json:"markets"`
	Cursor  string   `json:"cursor"`
}

// NewClient creates a new Kalshi client
func NewClient(httpClient *httputil.Client, baseURL string, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
		logger:     log,
		baseURL:    baseURL,
	}
}

// FetchOpenMarkets returns up to limit open markets
func (c *Client) FetchOpenMarkets(ctx context.Context, limit int) ([]Market, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait failed: %w", err)
	}

	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("status", "open")

	fullURL := fmt.Sprintf("%s/markets?%s", c.baseURL, params.Encode())

	resp, err := c.httpClient.Get(ctx, fullURL)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var body marketsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode markets: %w", err)
	}

	c.logger.WithField("count", len(body.Markets)).Debug("Fetched Kalshi markets")
	return body.Markets, nil
}

// MarketURL returns the public page of a market
func MarketURL(ticker string) string {
	return "https://kalshi.com/markets/" + ticker
}
