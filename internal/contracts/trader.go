package contracts

// TraderRecord is a single leaderboard row
// ⭐ SSOT: 리더보드 행 정의는 여기서만
type TraderRecord struct {
	Name       string  `json:"name"`
	PnL        float64 `json:"pnl"`
	WinRate    float64 `json:"winRate"`    // 0-100
	BrierScore float64 `json:"brierScore"` // 0-100, displayed as higher = better
	Rank       int     `json:"rank"`       // 1-based, recomputed every call
	IsUser     bool    `json:"isUser,omitempty"`
}

// IsTopRanked checks if the trader is in top N ranks
func (r *TraderRecord) IsTopRanked(n int) bool {
	return r.Rank <= n && r.Rank > 0
}
