package leaderboard

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/brier-terminal/backend/internal/contracts"
)

func records(pnls ...float64) []contracts.TraderRecord {
	out := make([]contracts.TraderRecord, len(pnls))
	for i, p := range pnls {
		out[i] = contracts.TraderRecord{Name: string(rune('A' + i)), PnL: p}
	}
	return out
}

func assertRankInvariants(t *testing.T, ranked []contracts.TraderRecord) {
	t.Helper()

	for i, r := range ranked {
		assert.Equal(t, i+1, r.Rank, "ranks must be contiguous from 1")
	}
	for i := range ranked {
		for j := range ranked {
			if ranked[i].PnL > ranked[j].PnL {
				assert.Less(t, ranked[i].Rank, ranked[j].Rank)
			}
		}
	}
}

func TestRank_ContiguousAndOrdered(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	for n := 0; n < 25; n++ {
		pnls := make([]float64, n)
		for i := range pnls {
			// Negative PnL and duplicates included
			pnls[i] = float64(rng.IntN(200) - 100)
		}

		ranked := Rank(records(pnls...))
		require.Len(t, ranked, n)
		assertRankInvariants(t, ranked)
	}
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	in := records(1, 3, 2)
	_ = Rank(in)

	assert.Equal(t, 1.0, in[0].PnL)
	assert.Equal(t, 0, in[0].Rank)
}

func TestRank_TiesKeepInputOrder(t *testing.T) {
	in := []contracts.TraderRecord{
		{Name: "first", PnL: 100},
		{Name: "second", PnL: 200},
		{Name: "third", PnL: 100},
	}

	ranked := Rank(in)

	assert.Equal(t, []string{"second", "first", "third"}, names(ranked))
}

func TestMerge_ConcreteScenario(t *testing.T) {
	base := []contracts.TraderRecord{
		{Name: "Wintermute_Exec", PnL: 1245000},
		{Name: "Paradigm_Intern", PnL: 850000},
		{Name: "Vitalik_Burner", PnL: 620000},
	}

	merged := Merge(base, &UserEntry{Wallet: "0xABCDEF1234", PnL: 900000})

	require.Len(t, merged, 4)
	assert.Equal(t, []float64{1245000, 900000, 850000, 620000}, pnls(merged))
	assert.Equal(t, 2, merged[1].Rank)
	assert.True(t, merged[1].IsUser)
	assert.Equal(t, "YOU (0xABCD)", merged[1].Name)
	assert.Equal(t, 100.0, merged[1].WinRate)
	assert.Equal(t, 92.5, merged[1].BrierScore)
	assertRankInvariants(t, merged)
}

func TestMerge_UserExtremes(t *testing.T) {
	base := SeedRoster()

	top := Merge(base, &UserEntry{Wallet: "0x1", PnL: 10_000_000})
	assert.True(t, top[0].IsUser)
	assert.Equal(t, 1, top[0].Rank)

	bottom := Merge(base, &UserEntry{Wallet: "0x1", PnL: -50})
	last := bottom[len(bottom)-1]
	assert.True(t, last.IsUser)
	assert.Equal(t, len(base)+1, last.Rank)
}

func TestMerge_UserTiesRankAfterBase(t *testing.T) {
	base := records(300, 200, 100)

	merged := Merge(base, &UserEntry{Wallet: "0xfeed", PnL: 200})

	assert.Equal(t, "B", merged[1].Name)
	assert.True(t, merged[2].IsUser)
	assert.Equal(t, 3, merged[2].Rank)
}

func TestMerge_NilUser(t *testing.T) {
	merged := Merge(records(1, 2), nil)

	require.Len(t, merged, 2)
	for _, r := range merged {
		assert.False(t, r.IsUser)
	}
	assertRankInvariants(t, merged)
}

func TestUserLabel(t *testing.T) {
	tests := []struct {
		wallet string
		want   string
	}{
		{"0x3fa9b2c4d5", "YOU (0x3fa9)"},
		{"0x3f", "YOU (0x3f)"},
		{"", "YOU ()"},
		{"0x3fa9", "YOU (0x3fa9)"},
	}

	for _, tt := range tests {
		t.Run(tt.wallet, func(t *testing.T) {
			assert.Equal(t, tt.want, UserLabel(tt.wallet))
		})
	}
}

func TestSeedRoster(t *testing.T) {
	roster := SeedRoster()

	require.Len(t, roster, 10)
	assert.Equal(t, "Wintermute_Exec", roster[0].Name)
	assert.Equal(t, "Rookie_Trader", roster[9].Name)
	assertRankInvariants(t, roster)
}

func names(rs []contracts.TraderRecord) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Name
	}
	return out
}

func pnls(rs []contracts.TraderRecord) []float64 {
	out := make([]float64, len(rs))
	for i, r := range rs {
		out[i] = r.PnL
	}
	return out
}
