package jobs

import (
	"context"
	"fmt"

	"github.com/wonny/brier-terminal/backend/internal/leaderboard"
	"github.com/wonny/brier-terminal/backend/pkg/logger"
)

// RankRefresher perturbs and stores the leaderboard
type RankRefresher interface {
	Refresh(ctx context.Context) (*leaderboard.RefreshResult, error)
}

// RankUpdateJob re-ranks the leaderboard once a day
type RankUpdateJob struct {
	refresher RankRefresher
	schedule  string
	logger    *logger.Logger
}

// NewRankUpdateJob creates a new rank update job
func NewRankUpdateJob(refresher RankRefresher, schedule string, log *logger.Logger) *RankUpdateJob {
	return &RankUpdateJob{
		refresher: refresher,
		schedule:  schedule,
		logger:    log,
	}
}

// Name returns the job name
func (j *RankUpdateJob) Name() string {
	return "rank_update"
}

// Schedule returns the cron schedule (daily at midnight by default)
func (j *RankUpdateJob) Schedule() string {
	return j.schedule
}

// Run executes the rank update
func (j *RankUpdateJob) Run(ctx context.Context) error {
	result, err := j.refresher.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("rank update: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"top_trader": result.TopTrader,
		"traders":    result.Count,
	}).Info("Scheduled rank update completed")

	return nil
}
