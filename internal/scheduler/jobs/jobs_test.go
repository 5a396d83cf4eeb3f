package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/brier-terminal/backend/internal/contracts"
	"github.com/wonny/brier-terminal/backend/internal/leaderboard"
	"github.com/wonny/brier-terminal/backend/pkg/logger"
)

type stubRefresher struct {
	calls int
	err   error
}

func (s *stubRefresher) Refresh(ctx context.Context) (*leaderboard.RefreshResult, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &leaderboard.RefreshResult{TopTrader: "Wintermute_Exec", Count: 10}, nil
}

type stubScanner struct{ err error }

func (s stubScanner) Scan(ctx context.Context) ([]contracts.WhaleTransaction, error) {
	if s.err != nil {
		return nil, s.err
	}
	return make([]contracts.WhaleTransaction, 5), nil
}

type stubMarkets struct {
	live  bool
	calls int
}

func (s *stubMarkets) Live() bool { return s.live }

func (s *stubMarkets) Refresh(ctx context.Context) ([]contracts.Market, error) {
	s.calls++
	return []contracts.Market{{ID: "poly-1"}}, nil
}

func TestRankUpdateJob(t *testing.T) {
	ref := &stubRefresher{}
	job := NewRankUpdateJob(ref, "0 0 0 * * *", logger.Nop())

	assert.Equal(t, "rank_update", job.Name())
	assert.Equal(t, "0 0 0 * * *", job.Schedule())
	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, 1, ref.calls)

	ref.err = leaderboard.ErrEmptyLeaderboard
	err := job.Run(context.Background())
	assert.ErrorIs(t, err, leaderboard.ErrEmptyLeaderboard)
}

func TestWhaleScanJob(t *testing.T) {
	job := NewWhaleScanJob(stubScanner{}, "0 */1 * * * *", logger.Nop())

	assert.Equal(t, "whale_scan", job.Name())
	assert.NoError(t, job.Run(context.Background()))

	failing := NewWhaleScanJob(stubScanner{err: errors.New("insert failed")}, "0 */1 * * * *", logger.Nop())
	assert.ErrorContains(t, failing.Run(context.Background()), "insert failed")
}

func TestMarketRefreshJob(t *testing.T) {
	markets := &stubMarkets{}
	job := NewMarketRefreshJob(markets, "*/30 * * * * *", logger.Nop())

	assert.Equal(t, "market_refresh", job.Name())

	// Catalog mode is a no-op
	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, 0, markets.calls)

	markets.live = true
	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, 1, markets.calls)
}
