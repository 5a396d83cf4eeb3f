package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/brier-terminal/backend/internal/contracts"
	"github.com/wonny/brier-terminal/backend/internal/leaderboard"
	"github.com/wonny/brier-terminal/backend/internal/portfolio"
	"github.com/wonny/brier-terminal/backend/internal/scheduler"
	"github.com/wonny/brier-terminal/backend/internal/store"
	"github.com/wonny/brier-terminal/backend/internal/whales"
	"github.com/wonny/brier-terminal/backend/pkg/logger"
)

var errBoom = errors.New("boom")

// stubLeaderboard records the user entry it was asked for
type stubLeaderboard struct {
	gotUser *leaderboard.UserEntry
	err     error
}

func (s *stubLeaderboard) Standings(ctx context.Context, user *leaderboard.UserEntry) ([]contracts.TraderRecord, error) {
	s.gotUser = user
	if s.err != nil {
		return nil, s.err
	}
	return leaderboard.Merge(leaderboard.SeedRoster()[:3], user), nil
}

func (s *stubLeaderboard) Refresh(ctx context.Context) (*leaderboard.RefreshResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &leaderboard.RefreshResult{TopTrader: "Wintermute_Exec", Count: 10}, nil
}

type stubFeed struct {
	trades   []contracts.WhaleTransaction
	gotLimit int
	err      error
}

func (s *stubFeed) Scan(ctx context.Context) ([]contracts.WhaleTransaction, error) {
	return s.trades, s.err
}

func (s *stubFeed) Recent(ctx context.Context, limit int) ([]contracts.WhaleTransaction, error) {
	s.gotLimit = limit
	return s.trades, s.err
}

type stubMarkets struct{ err error }

func (s stubMarkets) List(ctx context.Context) ([]contracts.Market, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []contracts.Market{{ID: "mock-1", Platform: contracts.PlatformPolymarket}}, nil
}

type stubStats struct{}

func (stubStats) GetJobStats() []scheduler.JobStats {
	return []scheduler.JobStats{{JobName: "rank_update", Schedule: "0 0 0 * * *"}}
}

func do(h http.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestGetLeaderboard_InjectsUser(t *testing.T) {
	svc := &stubLeaderboard{}
	h := NewLeaderboardHandler(svc, logger.Nop())

	rec := do(h.GetLeaderboard, http.MethodGet, "/api/leaderboard?userWallet=0xABCDEF1234&userPnL=900000", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var board []contracts.TraderRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &board))
	require.Len(t, board, 4)

	assert.Equal(t, "YOU (0xABCD)", board[1].Name)
	assert.Equal(t, 2, board[1].Rank)
	assert.True(t, board[1].IsUser)
	assert.Equal(t, &leaderboard.UserEntry{Wallet: "0xABCDEF1234", PnL: 900000}, svc.gotUser)
}

func TestGetLeaderboard_SkipsUser(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"no params", ""},
		{"wallet only", "?userWallet=0xabc"},
		{"pnl only", "?userPnL=100"},
		{"not a number", "?userWallet=0xabc&userPnL=lots"},
		{"NaN", "?userWallet=0xabc&userPnL=NaN"},
		{"Inf", "?userWallet=0xabc&userPnL=Inf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubLeaderboard{}
			h := NewLeaderboardHandler(svc, logger.Nop())

			rec := do(h.GetLeaderboard, http.MethodGet, "/api/leaderboard"+tt.query, "")
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Nil(t, svc.gotUser)
		})
	}
}

func TestGetLeaderboard_Error(t *testing.T) {
	h := NewLeaderboardHandler(&stubLeaderboard{err: errBoom}, logger.Nop())

	rec := do(h.GetLeaderboard, http.MethodGet, "/api/leaderboard", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, msgLeaderboardFailed, decodeError(t, rec))
}

func TestRankUpdate(t *testing.T) {
	h := NewCronHandler(&stubLeaderboard{}, &stubFeed{}, logger.Nop())

	rec := do(h.RankUpdate, http.MethodGet, "/api/cron/rank-update", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"Leaderboard updated","topTrader":"Wintermute_Exec"}`, rec.Body.String())

	failing := NewCronHandler(&stubLeaderboard{err: errBoom}, &stubFeed{}, logger.Nop())
	rec = do(failing.RankUpdate, http.MethodGet, "/api/cron/rank-update", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Rank Update Failed"}`, rec.Body.String())
}

func TestCronRoutes_LogStartOnce(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, "test")

	mem := store.NewMemory()
	lb := leaderboard.NewService(mem, leaderboard.NewPerturber(nil, 10000, 1), nil, 0, log)
	require.NoError(t, lb.EnsureSeeded(ctx))
	feed := whales.NewFeed(whales.NewScanner(nil, 3), mem, nil, log)
	h := NewCronHandler(lb, feed, log)

	require.Equal(t, http.StatusOK, do(h.RankUpdate, http.MethodGet, "/api/cron/rank-update", "").Code)
	require.Equal(t, http.StatusOK, do(h.WhaleScan, http.MethodGet, "/api/cron/whale-scan", "").Code)

	assert.Equal(t, 1, strings.Count(buf.String(), "Starting rank update"))
	assert.Equal(t, 1, strings.Count(buf.String(), "Starting whale scan"))
}

func TestWhaleScan(t *testing.T) {
	feed := &stubFeed{trades: make([]contracts.WhaleTransaction, 5)}
	h := NewCronHandler(&stubLeaderboard{}, feed, logger.Nop())

	rec := do(h.WhaleScan, http.MethodGet, "/api/cron/whale-scan", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool                         `json:"success"`
		Message string                       `json:"message"`
		Trades  []contracts.WhaleTransaction `json:"trades"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "Indexed 5 trades", body.Message)
	assert.Len(t, body.Trades, 5)

	feed.err = errBoom
	rec = do(h.WhaleScan, http.MethodGet, "/api/cron/whale-scan", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Whale Scan Failed"}`, rec.Body.String())
}

func TestGetWhales(t *testing.T) {
	feed := &stubFeed{trades: []contracts.WhaleTransaction{{ID: "tx_2"}, {ID: "tx_1"}}}
	h := NewWhaleHandler(feed, logger.Nop())

	rec := do(h.GetWhales, http.MethodGet, "/api/whales?limit=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, feed.gotLimit)

	rec = do(h.GetWhales, http.MethodGet, "/api/whales?limit=-4", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, feed.gotLimit)

	feed.err = errBoom
	rec = do(h.GetWhales, http.MethodGet, "/api/whales", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to fetch data"}`, rec.Body.String())
}

func TestGetWallet(t *testing.T) {
	h := NewWhaleHandler(&stubFeed{}, logger.Nop())
	r := mux.NewRouter()
	r.HandleFunc("/api/wallets/{address}", h.GetWallet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/wallets/0x9d...ff", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"tier":"gold"`)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/wallets/0xnobody", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetMarkets(t *testing.T) {
	rec := do(NewMarketHandler(stubMarkets{}, logger.Nop()).GetMarkets, http.MethodGet, "/api/markets", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "public, max-age=10", rec.Header().Get("Cache-Control"))

	rec = do(NewMarketHandler(stubMarkets{err: errBoom}, logger.Nop()).GetMarkets, http.MethodGet, "/api/markets", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, msgMarketsFailed, decodeError(t, rec))
}

func newPortfolioHandler(t *testing.T) *PortfolioHandler {
	t.Helper()
	svc := portfolio.NewService(store.NewMemory(), logger.Nop())
	require.NoError(t, svc.EnsureSeeded(context.Background()))
	return NewPortfolioHandler(svc, logger.Nop())
}

func TestPortfolio_List(t *testing.T) {
	h := newPortfolioHandler(t)

	rec := do(h.GetPortfolio, http.MethodGet, "/api/user/portfolio", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = do(h.GetPortfolio, http.MethodGet, "/api/user/portfolio?walletAddress=0xabc", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var positions []contracts.PortfolioPosition
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &positions))
	assert.Len(t, positions, 2)
}

func TestPortfolio_Open(t *testing.T) {
	h := newPortfolioHandler(t)

	rec := do(h.OpenPosition, http.MethodPost, "/api/user/portfolio",
		`{"market_id":"mock-2","market_title":"Fed Interest Rate Cut in March?","position_type":"YES","shares":100,"avg_price":15}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var pos contracts.PortfolioPosition
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pos))
	assert.True(t, strings.HasPrefix(pos.ID, "pos_"))
	assert.Equal(t, contracts.MockUserID, pos.UserID)
	assert.False(t, pos.CreatedAt.IsZero())

	rec = do(h.OpenPosition, http.MethodPost, "/api/user/portfolio", `{not json`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to save position"}`, rec.Body.String())

	rec = do(h.OpenPosition, http.MethodPost, "/api/user/portfolio", `{"market_id":"mock-2","position_type":"MAYBE","shares":1}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestPortfolio_Cashout(t *testing.T) {
	h := newPortfolioHandler(t)

	rec := do(h.Cashout, http.MethodPost, "/api/user/portfolio/cashout", `{"positionId":"pos-1","closePrice":32,"pnl":60}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"Position closed successfully","realizedPnL":60}`, rec.Body.String())

	rec = do(h.Cashout, http.MethodPost, "/api/user/portfolio/cashout", `nope`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to process cash out"}`, rec.Body.String())
}

func TestSchedulerJobs(t *testing.T) {
	rec := do(NewSchedulerHandler(nil).GetJobs, http.MethodGet, "/api/scheduler/jobs", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"embedded":false,"jobs":[]}`, rec.Body.String())

	rec = do(NewSchedulerHandler(stubStats{}).GetJobs, http.MethodGet, "/api/scheduler/jobs", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"job_name":"rank_update"`)
}
