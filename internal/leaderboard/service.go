package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wonny/brier-terminal/backend/internal/contracts"
	"github.com/wonny/brier-terminal/backend/pkg/logger"
	"github.com/wonny/brier-terminal/backend/pkg/redis"
)

// ErrEmptyLeaderboard is returned when there is nobody to rank
var ErrEmptyLeaderboard = errors.New("leaderboard is empty")

var cacheKey = redis.LeaderboardKey()

// Cache is the read-through cache in front of the repository
type Cache interface {
	GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, fn func() (interface{}, error)) error
	Delete(ctx context.Context, key string) error
}

// RefreshResult summarizes a rank update
type RefreshResult struct {
	TopTrader   string                   `json:"topTrader"`
	Count       int                      `json:"count"`
	UpdatedAt   time.Time                `json:"updatedAt"`
	Leaderboard []contracts.TraderRecord `json:"-"`
}

// Service serves ranked standings and runs the rank update
// ⭐ SSOT: 리더보드 조회/갱신은 이 서비스에서만
type Service struct {
	repo      contracts.LeaderboardRepository
	perturber *Perturber
	roster    []contracts.TraderRecord
	cache     Cache
	cacheTTL  time.Duration
	logger    *logger.Logger
}

// NewService creates a leaderboard service. cache may be nil; a zero
// cacheTTL uses redis.TTLLeaderboard.
func NewService(repo contracts.LeaderboardRepository, perturber *Perturber, cache Cache, cacheTTL time.Duration, log *logger.Logger) *Service {
	if cacheTTL <= 0 {
		cacheTTL = redis.TTLLeaderboard
	}
	return &Service{
		repo:      repo,
		perturber: perturber,
		roster:    SeedRoster(),
		cache:     cache,
		cacheTTL:  cacheTTL,
		logger:    log.WithComponent("leaderboard"),
	}
}

// WithRoster replaces the baseline roster the rank update jitters around
func (s *Service) WithRoster(roster []contracts.TraderRecord) *Service {
	s.roster = Rank(roster)
	return s
}

// EnsureSeeded writes the baseline roster when the store has no board yet
func (s *Service) EnsureSeeded(ctx context.Context) error {
	current, err := s.repo.ListLeaderboard(ctx)
	if err != nil {
		return fmt.Errorf("list leaderboard: %w", err)
	}
	if len(current) > 0 {
		return nil
	}

	if err := s.repo.ReplaceLeaderboard(ctx, s.roster); err != nil {
		return fmt.Errorf("seed leaderboard: %w", err)
	}

	s.logger.WithField("count", len(s.roster)).Info("Seeded leaderboard")
	return nil
}

// Standings returns the stored board ranked by PnL, with the caller merged in when user is set
func (s *Service) Standings(ctx context.Context, user *UserEntry) ([]contracts.TraderRecord, error) {
	base, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	return Merge(base, user), nil
}

// Refresh jitters the roster, ranks it and replaces the stored board
func (s *Service) Refresh(ctx context.Context) (*RefreshResult, error) {
	if len(s.roster) == 0 {
		return nil, ErrEmptyLeaderboard
	}

	s.logger.Info("Starting rank update")

	board := s.perturber.PerturbAndRank(s.roster)

	if err := s.repo.ReplaceLeaderboard(ctx, board); err != nil {
		return nil, fmt.Errorf("replace leaderboard: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, cacheKey); err != nil {
			// Stale cache expires on its own TTL
			s.logger.WithError(err).Warn("Failed to invalidate leaderboard cache")
		}
	}

	result := &RefreshResult{
		TopTrader:   board[0].Name,
		Count:       len(board),
		UpdatedAt:   time.Now(),
		Leaderboard: board,
	}

	s.logger.WithFields(map[string]interface{}{
		"top_trader": result.TopTrader,
		"count":      result.Count,
	}).Info("Leaderboard updated")

	return result, nil
}

// load reads the board through the cache
func (s *Service) load(ctx context.Context) ([]contracts.TraderRecord, error) {
	list := func() (interface{}, error) {
		records, err := s.repo.ListLeaderboard(ctx)
		if err != nil {
			return nil, fmt.Errorf("list leaderboard: %w", err)
		}
		return records, nil
	}

	if s.cache == nil {
		v, err := list()
		if err != nil {
			return nil, err
		}
		return v.([]contracts.TraderRecord), nil
	}

	var records []contracts.TraderRecord
	if err := s.cache.GetOrSet(ctx, cacheKey, &records, s.cacheTTL, list); err != nil {
		return nil, err
	}
	return records, nil
}
