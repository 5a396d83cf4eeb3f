// Package leaderboard ranks traders by realized PnL and keeps the stored board fresh.
package leaderboard

import (
	"sort"

	"github.com/wonny/brier-terminal/backend/internal/contracts"
)

const (
	userLabelPrefixLen = 6

	// Synthetic user entry scores (display only)
	userWinRate    = 100.0
	userBrierScore = 92.5
)

// UserEntry is the caller's own performance injected into the board
type UserEntry struct {
	Wallet string
	PnL    float64
}

// Rank returns a copy of records ordered by PnL descending with ranks 1..N.
// Equal PnL keeps input order.
// ⭐ SSOT: 순위 계산은 이 함수에서만
func Rank(records []contracts.TraderRecord) []contracts.TraderRecord {
	ranked := make([]contracts.TraderRecord, len(records))
	copy(ranked, records)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].PnL > ranked[j].PnL
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	return ranked
}

// Merge appends the synthetic user record (when user is non-nil) after base and ranks the result.
// The user ranks after any base record with the same PnL.
func Merge(base []contracts.TraderRecord, user *UserEntry) []contracts.TraderRecord {
	if user == nil {
		return Rank(base)
	}

	merged := make([]contracts.TraderRecord, 0, len(base)+1)
	merged = append(merged, base...)
	merged = append(merged, NewUserRecord(*user))

	return Rank(merged)
}

// NewUserRecord builds the synthetic leaderboard row for a wallet
func NewUserRecord(user UserEntry) contracts.TraderRecord {
	return contracts.TraderRecord{
		Name:       UserLabel(user.Wallet),
		PnL:        user.PnL,
		WinRate:    userWinRate,
		BrierScore: userBrierScore,
		IsUser:     true,
	}
}

// UserLabel renders a wallet as "YOU (<first 6 chars>)"
func UserLabel(wallet string) string {
	prefix := []rune(wallet)
	if len(prefix) > userLabelPrefixLen {
		prefix = prefix[:userLabelPrefixLen]
	}
	return "YOU (" + string(prefix) + ")"
}
