package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/wonny/brier-terminal/backend/internal/contracts"
	"github.com/wonny/brier-terminal/backend/pkg/logger"
)

// maxBodyBytes caps request bodies of the portfolio endpoints
const maxBodyBytes = 1 << 16

// PortfolioService manages user positions
type PortfolioService interface {
	List(ctx context.Context, wallet string) ([]contracts.PortfolioPosition, error)
	Open(ctx context.Context, pos contracts.PortfolioPosition) (*contracts.PortfolioPosition, error)
	Cashout(ctx context.Context, req contracts.CashoutRequest) (*contracts.CashoutResult, error)
}

// PortfolioHandler handles portfolio API endpoints
// ⭐ SSOT: 포트폴리오 API 핸들러는 이 구조체에서만
type PortfolioHandler struct {
	service PortfolioService
	logger  *logger.Logger
}

// NewPortfolioHandler creates a new portfolio handler
func NewPortfolioHandler(service PortfolioService, log *logger.Logger) *PortfolioHandler {
	return &PortfolioHandler{
		service: service,
		logger:  log,
	}
}

// GetPortfolio returns the positions of a wallet
// GET /api/user/portfolio?walletAddress=0x...
func (h *PortfolioHandler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	wallet := r.URL.Query().Get("walletAddress")

	positions, err := h.service.List(r.Context(), wallet)
	if err != nil {
		h.logger.WithError(err).Error("Failed to fetch portfolio")
		respondError(w, http.StatusInternalServerError, msgPortfolioFailed)
		return
	}

	respondJSON(w, http.StatusOK, positions)
}

// OpenPosition stores a new position
// POST /api/user/portfolio
func (h *PortfolioHandler) OpenPosition(w http.ResponseWriter, r *http.Request) {
	var pos contracts.PortfolioPosition
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&pos); err != nil {
		h.logger.WithError(err).Warn("Invalid position body")
		respondError(w, http.StatusInternalServerError, msgSaveFailed)
		return
	}

	saved, err := h.service.Open(r.Context(), pos)
	if err != nil {
		h.logger.WithError(err).Error("Failed to save position")
		respondError(w, http.StatusInternalServerError, msgSaveFailed)
		return
	}

	respondJSON(w, http.StatusOK, saved)
}

// Cashout closes a position
// POST /api/user/portfolio/cashout
func (h *PortfolioHandler) Cashout(w http.ResponseWriter, r *http.Request) {
	var req contracts.CashoutRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.logger.WithError(err).Warn("Invalid cashout body")
		respondError(w, http.StatusInternalServerError, msgCashoutFailed)
		return
	}

	result, err := h.service.Cashout(r.Context(), req)
	if err != nil {
		h.logger.WithError(err).Error("Failed to process cash out")
		respondError(w, http.StatusInternalServerError, msgCashoutFailed)
		return
	}

	respondJSON(w, http.StatusOK, result)
}
