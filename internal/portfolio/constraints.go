package portfolio

import (
	"fmt"
	"slices"
)

// Position sides
const (
	SideYes = "YES"
	SideNo  = "NO"
)

// Constraints defines what a position may look like
// ⭐ SSOT: 포지션 제약조건은 여기서만
type Constraints struct {
	MinPrice  float64  // 최소 가격 (cents)
	MaxPrice  float64  // 최대 가격 (cents)
	MaxShares float64  // 포지션당 최대 수량
	BlackList []string // 거래 불가 마켓
}

// IsBlackListed checks if a market is closed for new positions
func (c *Constraints) IsBlackListed(marketID string) bool {
	return slices.Contains(c.BlackList, marketID)
}

// Check validates a position against the constraints
func (c *Constraints) Check(side, marketID string, shares, avgPrice, currentPrice float64) error {
	if side != SideYes && side != SideNo {
		return fmt.Errorf("position_type must be %s or %s, got %q", SideYes, SideNo, side)
	}
	if marketID == "" {
		return fmt.Errorf("market_id is required")
	}
	if c.IsBlackListed(marketID) {
		return fmt.Errorf("market %s is not tradable", marketID)
	}
	if shares <= 0 || shares > c.MaxShares {
		return fmt.Errorf("shares must be in (0, %.0f], got %v", c.MaxShares, shares)
	}
	for _, p := range []float64{avgPrice, currentPrice} {
		if p < c.MinPrice || p > c.MaxPrice {
			return fmt.Errorf("price must be in [%.0f, %.0f] cents, got %v", c.MinPrice, c.MaxPrice, p)
		}
	}
	return nil
}

// DefaultConstraints returns default constraint configuration
func DefaultConstraints() Constraints {
	return Constraints{
		MinPrice:  0,
		MaxPrice:  100,       // binary contracts settle at 100c
		MaxShares: 1_000_000, // 포지션당 최대 100만주
		BlackList: []string{},
	}
}
