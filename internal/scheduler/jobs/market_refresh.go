package jobs

import (
	"context"
	"fmt"

	"github.com/wonny/brier-terminal/backend/internal/contracts"
	"github.com/wonny/brier-terminal/backend/pkg/logger"
)

// MarketRefresher rebuilds the cached market list
type MarketRefresher interface {
	Live() bool
	Refresh(ctx context.Context) ([]contracts.Market, error)
}

// MarketRefreshJob keeps the market cache warm
type MarketRefreshJob struct {
	markets  MarketRefresher
	schedule string
	logger   *logger.Logger
}

// NewMarketRefreshJob creates a new market refresh job
func NewMarketRefreshJob(markets MarketRefresher, schedule string, log *logger.Logger) *MarketRefreshJob {
	return &MarketRefreshJob{
		markets:  markets,
		schedule: schedule,
		logger:   log,
	}
}

// Name returns the job name
func (j *MarketRefreshJob) Name() string {
	return "market_refresh"
}

// Schedule returns the cron schedule (every 30 seconds by default)
func (j *MarketRefreshJob) Schedule() string {
	return j.schedule
}

// Run executes the market refresh. The static catalog never goes stale.
func (j *MarketRefreshJob) Run(ctx context.Context) error {
	if !j.markets.Live() {
		return nil
	}

	list, err := j.markets.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("market refresh: %w", err)
	}

	j.logger.WithField("markets", len(list)).Debug("Market cache refreshed")
	return nil
}
