package handlers

import (
	"context"
	"math"
	"net/http"
	"strconv"

	"github.com/wonny/brier-terminal/backend/internal/contracts"
	"github.com/wonny/brier-terminal/backend/internal/leaderboard"
	"github.com/wonny/brier-terminal/backend/pkg/logger"
)

// LeaderboardService serves ranked standings
type LeaderboardService interface {
	Standings(ctx context.Context, user *leaderboard.UserEntry) ([]contracts.TraderRecord, error)
	Refresh(ctx context.Context) (*leaderboard.RefreshResult, error)
}

// LeaderboardHandler handles leaderboard API endpoints
// ⭐ SSOT: 리더보드 API 핸들러는 이 구조체에서만
type LeaderboardHandler struct {
	service LeaderboardService
	logger  *logger.Logger
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(service LeaderboardService, log *logger.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{
		service: service,
		logger:  log,
	}
}

// GetLeaderboard returns the ranked board, with the caller mixed in when
// both userWallet and userPnL are given
// GET /api/leaderboard?userWallet=0x...&userPnL=150000
func (h *LeaderboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user := h.parseUser(r)

	board, err := h.service.Standings(ctx, user)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get leaderboard")
		respondError(w, http.StatusInternalServerError, msgLeaderboardFailed)
		return
	}

	respondJSON(w, http.StatusOK, board)
}

// parseUser returns nil unless both parameters are present and the pnl is a
// finite number
func (h *LeaderboardHandler) parseUser(r *http.Request) *leaderboard.UserEntry {
	query := r.URL.Query()
	wallet := query.Get("userWallet")
	rawPnL := query.Get("userPnL")

	if wallet == "" || rawPnL == "" {
		return nil
	}

	pnl, err := strconv.ParseFloat(rawPnL, 64)
	if err != nil || math.IsNaN(pnl) || math.IsInf(pnl, 0) {
		h.logger.WithFields(map[string]interface{}{
			"wallet":  wallet,
			"userPnL": rawPnL,
		}).Warn("Ignoring malformed userPnL")
		return nil
	}

	return &leaderboard.UserEntry{Wallet: wallet, PnL: pnl}
}
