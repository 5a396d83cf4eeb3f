package portfolio

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/wonny/brier-terminal/backend/internal/contracts"
	"github.com/wonny/brier-terminal/backend/pkg/id"
	"github.com/wonny/brier-terminal/backend/pkg/logger"
)

// CashoutMessage is returned on every successful cash out
const CashoutMessage = "Position closed successfully"

// Service manages the positions of the connected wallet
type Service struct {
	repo        contracts.PortfolioRepository
	constraints Constraints
	logger      *logger.Logger
	now         func() time.Time
	newID       func() string
}

// NewService creates a portfolio service
func NewService(repo contracts.PortfolioRepository, log *logger.Logger) *Service {
	return &Service{
		repo:        repo,
		constraints: DefaultConstraints(),
		logger:      log.WithComponent("portfolio"),
		now:         time.Now,
		newID:       func() string { return id.WithPrefix("pos") },
	}
}

// WithConstraints overrides the default constraints
func (s *Service) WithConstraints(c Constraints) *Service {
	s.constraints = c
	return s
}

// List returns the positions visible to wallet: its own plus the shared demo
// positions. An empty wallet sees nothing.
func (s *Service) List(ctx context.Context, wallet string) ([]contracts.PortfolioPosition, error) {
	if wallet == "" {
		return []contracts.PortfolioPosition{}, nil
	}

	all, err := s.repo.ListPositions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list positions: %w", err)
	}

	out := make([]contracts.PortfolioPosition, 0, len(all))
	for _, p := range all {
		if p.UserID == wallet || p.UserID == contracts.MockUserID {
			out = append(out, p)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

// Open stores a new position. Fields left empty get defaults: a fresh pos_ id,
// the mock user and the current time.
func (s *Service) Open(ctx context.Context, pos contracts.PortfolioPosition) (*contracts.PortfolioPosition, error) {
	if pos.ID == "" {
		pos.ID = s.newID()
	}
	if pos.UserID == "" {
		pos.UserID = contracts.MockUserID
	}
	if pos.CreatedAt.IsZero() {
		pos.CreatedAt = s.now().UTC()
	}
	if pos.CurrentPrice == 0 {
		pos.CurrentPrice = pos.AvgPrice
	}

	if err := s.constraints.Check(pos.PositionType, pos.MarketID, pos.Shares, pos.AvgPrice, pos.CurrentPrice); err != nil {
		return nil, fmt.Errorf("invalid position: %w", err)
	}

	if err := s.repo.SavePosition(ctx, pos); err != nil {
		return nil, fmt.Errorf("save position: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"position_id": pos.ID,
		"market_id":   pos.MarketID,
		"side":        pos.PositionType,
		"shares":      pos.Shares,
	}).Info("Position opened")

	return &pos, nil
}

// Cashout closes a position and reports the realized PnL supplied by the
// client. A position that no longer exists is not an error.
func (s *Service) Cashout(ctx context.Context, req contracts.CashoutRequest) (*contracts.CashoutResult, error) {
	if req.PositionID == "" {
		return nil, fmt.Errorf("positionId is required")
	}

	if err := s.repo.DeletePosition(ctx, req.PositionID); err != nil {
		return nil, fmt.Errorf("delete position: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"position_id": req.PositionID,
		"close_price": req.ClosePrice,
		"pnl":         req.PnL,
	}).Info("Position cashed out")

	return &contracts.CashoutResult{
		Success:     true,
		Message:     CashoutMessage,
		RealizedPnL: req.PnL,
	}, nil
}

// EnsureSeeded writes the demo positions when the store holds none
func (s *Service) EnsureSeeded(ctx context.Context) error {
	existing, err := s.repo.ListPositions(ctx)
	if err != nil {
		return fmt.Errorf("list positions: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for _, p := range DemoPositions(s.now().UTC()) {
		if err := s.repo.SavePosition(ctx, p); err != nil {
			return fmt.Errorf("seed position %s: %w", p.ID, err)
		}
	}

	s.logger.Info("Seeded demo portfolio")
	return nil
}

// DemoPositions returns the positions shown to every connected wallet
func DemoPositions(at time.Time) []contracts.PortfolioPosition {
	return []contracts.PortfolioPosition{
		{
			ID:           "pos-1",
			UserID:       contracts.MockUserID,
			MarketID:     "mock-1",
			MarketTitle:  "Will Bitcoin hit $100k in 2024?",
			PositionType: SideYes,
			Shares:       1500,
			AvgPrice:     28,
			CurrentPrice: 32,
			CreatedAt:    at,
		},
		{
			ID:           "pos-2",
			UserID:       contracts.MockUserID,
			MarketID:     "mock-3",
			MarketTitle:  "2024 US Presidential Election Winner",
			PositionType: SideNo,
			Shares:       500,
			AvgPrice:     55,
			CurrentPrice: 48,
			CreatedAt:    at,
		},
	}
}
