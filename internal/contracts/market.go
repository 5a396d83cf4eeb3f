package contracts

// Platform is the venue a market is listed on
type Platform string

const (
	PlatformPolymarket Platform = "Polymarket"
	PlatformKalshi     Platform = "Kalshi"
)

// Market is a normalized prediction market
type Market struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Platform   Platform  `json:"platform"`
	Outcome    string    `json:"outcome"`
	Price      float64   `json:"price"`     // cents
	Change24h  float64   `json:"change24h"` // percentage
	Trend7d    []float64 `json:"trend7d"`   // 7 points for sparkline
	Volume     string    `json:"volume"`
	URL        string    `json:"url"`
	IsArbGroup bool      `json:"isArbGroup,omitempty"`
	Category   string    `json:"category"` // Crypto | Politics | Economy | Science
}
