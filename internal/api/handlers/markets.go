package handlers

import (
	"context"
	"net/http"

	"github.com/wonny/brier-terminal/backend/internal/contracts"
	"github.com/wonny/brier-terminal/backend/pkg/logger"
)

// MarketLister serves the unified market list
type MarketLister interface {
	List(ctx context.Context) ([]contracts.Market, error)
}

// MarketHandler handles market API endpoints
type MarketHandler struct {
	markets MarketLister
	logger  *logger.Logger
}

// NewMarketHandler creates a new market handler
func NewMarketHandler(markets MarketLister, log *logger.Logger) *MarketHandler {
	return &MarketHandler{
		markets: markets,
		logger:  log,
	}
}

// GetMarkets returns markets with affiliate links
// GET /api/markets
func (h *MarketHandler) GetMarkets(w http.ResponseWriter, r *http.Request) {
	list, err := h.markets.List(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to fetch markets")
		respondError(w, http.StatusInternalServerError, msgMarketsFailed)
		return
	}

	// Mirrors the ISR window of the dashboard
	w.Header().Set("Cache-Control", "public, max-age=10")
	respondJSON(w, http.StatusOK, list)
}
