package leaderboard

import (
	"math"
	"math/rand/v2"

	"github.com/wonny/brier-terminal/backend/internal/contracts"
)

// RandomSource yields uniform floats in [0, 1)
type RandomSource interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// GlobalSource is backed by the goroutine-safe math/rand/v2 top-level generator
var GlobalSource RandomSource = globalSource{}

// Perturber jitters trader stats so the demo board looks live
type Perturber struct {
	src         RandomSource
	pnlSpread   int
	scoreSpread float64
}

// NewPerturber creates a perturber.
// pnlSpread 10000 yields integer PnL deltas in [-5000, 4999];
// scoreSpread 1.0 yields score deltas in [-0.5, 0.5).
func NewPerturber(src RandomSource, pnlSpread int, scoreSpread float64) *Perturber {
	if src == nil {
		src = GlobalSource
	}
	return &Perturber{
		src:         src,
		pnlSpread:   pnlSpread,
		scoreSpread: scoreSpread,
	}
}

// Perturb returns jittered copies of records. Ranks are not reassigned.
func (p *Perturber) Perturb(records []contracts.TraderRecord) []contracts.TraderRecord {
	out := make([]contracts.TraderRecord, len(records))
	half := float64(p.pnlSpread / 2)

	for i, rec := range records {
		rec.PnL += math.Floor(p.src.Float64()*float64(p.pnlSpread)) - half
		rec.WinRate = clampPercent(rec.WinRate + (p.src.Float64()-0.5)*p.scoreSpread)
		rec.BrierScore = clampPercent(rec.BrierScore + (p.src.Float64()-0.5)*p.scoreSpread)
		out[i] = rec
	}

	return out
}

// PerturbAndRank jitters then ranks
func (p *Perturber) PerturbAndRank(records []contracts.TraderRecord) []contracts.TraderRecord {
	return Rank(p.Perturb(records))
}

func clampPercent(v float64) float64 {
	return math.Min(100, math.Max(0, v))
}
