package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/wonny/brier-terminal/backend/internal/whales"
	"github.com/wonny/brier-terminal/backend/pkg/logger"
)

// WhaleHandler handles whale feed API endpoints
type WhaleHandler struct {
	feed   WhaleFeed
	logger *logger.Logger
}

// NewWhaleHandler creates a new whale handler
func NewWhaleHandler(feed WhaleFeed, log *logger.Logger) *WhaleHandler {
	return &WhaleHandler{
		feed:   feed,
		logger: log,
	}
}

// GetWhales returns indexed trades, newest first
// GET /api/whales?limit=50
func (h *WhaleHandler) GetWhales(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	trades, err := h.feed.Recent(r.Context(), limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to fetch whale data")
		respondError(w, http.StatusInternalServerError, msgWhalesFailed)
		return
	}

	respondJSON(w, http.StatusOK, trades)
}

// GetWallet returns the label of a known wallet
// GET /api/wallets/{address}
func (h *WhaleHandler) GetWallet(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["address"]

	info, ok := whales.LookupWallet(address)
	if !ok {
		respondError(w, http.StatusNotFound, msgWalletNotFound)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"address": address,
		"name":    info.Name,
		"tier":    info.Tier,
	})
}
