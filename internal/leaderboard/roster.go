package leaderboard

import "github.com/wonny/brier-terminal/backend/internal/contracts"

// seedRoster is the demo trader set the rank update jitters around
var seedRoster = []contracts.TraderRecord{
	{Name: "Wintermute_Exec", PnL: 1245000, WinRate: 88.5, BrierScore: 98.2},
	{Name: "Paradigm_Intern", PnL: 850000, WinRate: 76.2, BrierScore: 94.5},
	{Name: "Vitalik_Burner", PnL: 620000, WinRate: 72.1, BrierScore: 91.0},
	{Name: "SBF_Ghost", PnL: 450000, WinRate: 68.4, BrierScore: 88.7},
	{Name: "Alameda_Research", PnL: 320000, WinRate: 65.9, BrierScore: 85.2},
	{Name: "GCR_Classic", PnL: 280000, WinRate: 64.2, BrierScore: 84.1},
	{Name: "Cobie_Substack", PnL: 210000, WinRate: 62.8, BrierScore: 82.5},
	{Name: "Hsaka_Trades", PnL: 180000, WinRate: 61.5, BrierScore: 81.0},
	{Name: "Pentoshi_WAGMI", PnL: 150000, WinRate: 59.8, BrierScore: 79.5},
	{Name: "Rookie_Trader", PnL: 120000, WinRate: 58.2, BrierScore: 78.0},
}

// SeedRoster returns a ranked copy of the demo roster
func SeedRoster() []contracts.TraderRecord {
	return Rank(seedRoster)
}
