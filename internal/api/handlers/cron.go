package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/wonny/brier-terminal/backend/internal/contracts"
	"github.com/wonny/brier-terminal/backend/pkg/logger"
)

// WhaleFeed indexes and serves whale trades
type WhaleFeed interface {
	Scan(ctx context.Context) ([]contracts.WhaleTransaction, error)
	Recent(ctx context.Context, limit int) ([]contracts.WhaleTransaction, error)
}

// CronHandler exposes the scheduled jobs as HTTP triggers
type CronHandler struct {
	leaderboard LeaderboardService
	whales      WhaleFeed
	logger      *logger.Logger
}

// NewCronHandler creates a new cron handler
func NewCronHandler(lb LeaderboardService, whales WhaleFeed, log *logger.Logger) *CronHandler {
	return &CronHandler{
		leaderboard: lb,
		whales:      whales,
		logger:      log.WithComponent("cron"),
	}
}

// RankUpdate perturbs and re-ranks the leaderboard
// GET /api/cron/rank-update
func (h *CronHandler) RankUpdate(w http.ResponseWriter, r *http.Request) {
	result, err := h.leaderboard.Refresh(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Rank update failed")
		respondError(w, http.StatusInternalServerError, msgRankUpdateFailed)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"message":   "Leaderboard updated",
		"topTrader": result.TopTrader,
	})
}

// WhaleScan indexes a batch of whale trades
// GET /api/cron/whale-scan
func (h *CronHandler) WhaleScan(w http.ResponseWriter, r *http.Request) {
	trades, err := h.whales.Scan(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Whale scan failed")
		respondError(w, http.StatusInternalServerError, msgWhaleScanFailed)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf("Indexed %d trades", len(trades)),
		"trades":  trades,
	})
}
