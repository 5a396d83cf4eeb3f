package polymarket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"github.com/wonny/brier-terminal/backend/pkg/httputil"
	"github.com/wonny/brier-terminal/backend/pkg/logger"
)

// Gamma API: conservative 5 req/sec
const requestsPerSecond = 5

// Client reads active events from the Polymarket Gamma API
// ⭐ SSOT: Polymarket API 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	limiter    *rate.Limiter
	logger     *logger.Logger
	baseURL    string
}

// Event is the subset of a Gamma event we normalize
type Event struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Slug   string  `json:"slug"`
	Volume Number `json:"volume"`

	Markets []EventMarket `json:"markets"`
}

// EventMarket is a binary market nested in an event
type EventMarket struct {
	Question          string `json:"question"`
	LastTradePrice    Number `json:"lastTradePrice"`    // 0..1
	OneDayPriceChange Number `json:"oneDayPriceChange"` // 0..1 delta
}

// LeadMarket returns the first nested market, if any
func (e Event) LeadMarket() (EventMarket, bool) {
	if len(e.Markets) == 0 {
		return EventMarket{}, false
	}
	return e.Markets[0], true
}

// Number accepts both JSON numbers and numeric strings (Gamma mixes them)
type Number float64

// UnmarshalJSON implements json.Unmarshaler
func (n *Number) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("parse number %q: %w", s, err)
	}
	*n = Number(v)
	return nil
}

// NewClient creates a new Polymarket client
func NewClient(httpClient *httputil.Client, baseURL string, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
		logger:     log,
		baseURL:    baseURL,
	}
}

// FetchActiveEvents returns open events sorted by volume
func (c *Client) FetchActiveEvents(ctx context.Context, limit int) ([]Event, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait failed: %w", err)
	}

	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("active", "true")
	params.Set("closed", "false")
	params.Set("order", "volume")
	params.Set("ascending", "false")

	fullURL := fmt.Sprintf("%s/events?%s", c.baseURL, params.Encode())

	resp, err := c.httpClient.Get(ctx, fullURL)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var events []Event
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}

	c.logger.WithField("count", len(events)).Debug("Fetched Polymarket events")
	return events, nil
}

// EventURL returns the public page of an event
func EventURL(slug string) string {
	return "https://polymarket.com/event/" + slug
}
