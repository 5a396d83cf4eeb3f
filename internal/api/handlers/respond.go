package handlers

import (
	"encoding/json"
	"net/http"
)

// Error messages returned to clients. Details stay in the server log.
const (
	msgLeaderboardFailed = "Failed to fetch leaderboard"
	msgRankUpdateFailed  = "Rank Update Failed"
	msgWhaleScanFailed   = "Whale Scan Failed"
	msgWhalesFailed      = "Failed to fetch data"
	msgMarketsFailed     = "Failed to fetch markets"
	msgWalletNotFound    = "Wallet not found"
	msgPortfolioFailed   = "Failed to fetch portfolio"
	msgSaveFailed        = "Failed to save position"
	msgCashoutFailed     = "Failed to process cash out"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
