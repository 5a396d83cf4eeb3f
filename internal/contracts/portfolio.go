package contracts

import "time"

// MockUserID owns the demo positions every wallet can see
const MockUserID = "mock-user"

// PortfolioPosition is an open position in a market
type PortfolioPosition struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	MarketID     string    `json:"market_id"`
	MarketTitle  string    `json:"market_title"`
	PositionType string    `json:"position_type"` // YES | NO
	Shares       float64   `json:"shares"`
	AvgPrice     float64   `json:"avg_price"`     // cents
	CurrentPrice float64   `json:"current_price"` // cents
	CreatedAt    time.Time `json:"created_at"`
}

// UnrealizedPnL returns the mark-to-market PnL in dollars
func (p *PortfolioPosition) UnrealizedPnL() float64 {
	return (p.CurrentPrice - p.AvgPrice) * p.Shares / 100
}

// CashoutRequest closes a position
type CashoutRequest struct {
	PositionID string  `json:"positionId"`
	ClosePrice float64 `json:"closePrice"`
	PnL        float64 `json:"pnl"`
}

// CashoutResult is returned after a position is closed
type CashoutResult struct {
	Success     bool    `json:"success"`
	Message     string  `json:"message"`
	RealizedPnL float64 `json:"realizedPnL"`
}
