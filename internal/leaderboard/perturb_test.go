package leaderboard

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/brier-terminal/backend/internal/contracts"
)

// fixedSource replays values in a loop
type fixedSource struct {
	values []float64
	i      int
}

func (f *fixedSource) Float64() float64 {
	v := f.values[f.i%len(f.values)]
	f.i++
	return v
}

func TestPerturb_PnLDeltaBounds(t *testing.T) {
	base := []contracts.TraderRecord{{Name: "a", PnL: 1000, WinRate: 50, BrierScore: 50}}

	tests := []struct {
		name      string
		draw      float64
		wantDelta float64
	}{
		{"lowest draw", 0, -5000},
		{"middle draw", 0.5, 0},
		{"highest draw", 0.99999999, 4999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPerturber(&fixedSource{values: []float64{tt.draw, 0.5, 0.5}}, 10000, 1.0)
			out := p.Perturb(base)
			assert.Equal(t, base[0].PnL+tt.wantDelta, out[0].PnL)
			// PnL stays an integer offset
			assert.Equal(t, math.Trunc(out[0].PnL), out[0].PnL)
		})
	}
}

func TestPerturb_ScoresClamped(t *testing.T) {
	base := []contracts.TraderRecord{
		{Name: "ceiling", PnL: 1, WinRate: 99.9, BrierScore: 100},
		{Name: "floor", PnL: 2, WinRate: 0.1, BrierScore: 0},
	}

	// Upward draws for the first record, downward for the second
	src := &fixedSource{values: []float64{0.5, 0.999, 0.999, 0.5, 0, 0}}
	out := NewPerturber(src, 10000, 1.0).Perturb(base)

	assert.Equal(t, 100.0, out[0].WinRate)
	assert.Equal(t, 100.0, out[0].BrierScore)
	assert.Equal(t, 0.0, out[1].WinRate)
	assert.Equal(t, 0.0, out[1].BrierScore)
}

func TestPerturb_ScoresAlwaysInRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7))
	p := NewPerturber(rng, 10000, 50)

	board := SeedRoster()
	for i := 0; i < 500; i++ {
		board = p.PerturbAndRank(board)
		for _, r := range board {
			require.GreaterOrEqual(t, r.WinRate, 0.0)
			require.LessOrEqual(t, r.WinRate, 100.0)
			require.GreaterOrEqual(t, r.BrierScore, 0.0)
			require.LessOrEqual(t, r.BrierScore, 100.0)
		}
		assertRankInvariants(t, board)
	}
}

func TestPerturb_KeepsNamesAndDoesNotMutate(t *testing.T) {
	base := SeedRoster()
	out := NewPerturber(rand.New(rand.NewPCG(1, 1)), 10000, 1.0).Perturb(base)

	require.Len(t, out, len(base))
	for i := range base {
		assert.Equal(t, base[i].Name, out[i].Name)
		assert.InDelta(t, base[i].PnL, out[i].PnL, 5000)
	}
	assert.Equal(t, 1245000.0, base[0].PnL)
}

func TestNewPerturber_DefaultsToGlobalSource(t *testing.T) {
	p := NewPerturber(nil, 10000, 1.0)
	assert.Equal(t, GlobalSource, p.src)
}
