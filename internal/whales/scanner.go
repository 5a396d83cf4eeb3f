package whales

import (
	"math/rand/v2"
	"time"

	"github.com/wonny/brier-terminal/backend/internal/contracts"
	"github.com/wonny/brier-terminal/backend/pkg/id"
)

const (
	minTradeAmount  = 10_000
	tradeAmountSpan = 1_000_000 // amounts fall in [10k, 1.01M)
)

// RandomSource yields uniform floats in [0, 1)
type RandomSource interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

type watchedWallet struct {
	address string
	name    string
	known   bool
}

var (
	watchedWallets = []watchedWallet{
		{address: "0x3f...a9", name: "Wintermute", known: true},
		{address: "0x1c...44", name: "Paradigm", known: true},
		{address: "0x9d...ff", name: "Unknown Whale"},
		{address: "0x7a...b2", name: "Unknown Whale"},
		{address: "0x4e...11", name: "Unknown Whale"},
	}

	watchedTickers = []string{
		"BTC_100K_2024",
		"ETH_FLIPPENING",
		"SOL_ETF_APPROVAL",
		"FED_RATE_DEC",
		"US_ELECTION_2028",
	}

	whaleActions = []contracts.WhaleAction{
		contracts.ActionBuyYes,
		contracts.ActionBuyNo,
		contracts.ActionSellYes,
		contracts.ActionSellNo,
	}
)

// Scanner simulates an on-chain scan for large prediction-market trades
type Scanner struct {
	src       RandomSource
	batchSize int
	now       func() time.Time
	newID     func() string
}

// NewScanner creates a scanner producing batchSize trades per scan.
// A nil src uses the global math/rand generator.
func NewScanner(src RandomSource, batchSize int) *Scanner {
	if src == nil {
		src = globalSource{}
	}
	return &Scanner{
		src:       src,
		batchSize: batchSize,
		now:       time.Now,
		newID:     func() string { return id.WithPrefix("tx") },
	}
}

// Scan returns one batch of trades
func (s *Scanner) Scan() []contracts.WhaleTransaction {
	trades := make([]contracts.WhaleTransaction, 0, s.batchSize)
	now := s.now().UTC()

	for i := 0; i < s.batchSize; i++ {
		wallet := watchedWallets[s.pick(len(watchedWallets))]
		ticker := watchedTickers[s.pick(len(watchedTickers))]
		action := whaleActions[s.pick(len(whaleActions))]

		trade := contracts.WhaleTransaction{
			ID:              s.newID(),
			WalletAddress:   wallet.address,
			IsKnownWhale:    wallet.known,
			WhaleName:       wallet.name,
			Action:          action,
			MarketTicker:    ticker,
			Amount:          int64(s.src.Float64()*tradeAmountSpan) + minTradeAmount,
			Timestamp:       now,
			MarketSentiment: s.pick(100),
		}

		// Label table wins over the scan-time name
		if info, ok := LookupWallet(wallet.address); ok {
			trade.IsKnownWhale = true
			trade.WhaleName = info.Name
			trade.WhaleTier = info.Tier
		}

		trades = append(trades, trade)
	}

	return trades
}

// pick returns an index in [0, n)
func (s *Scanner) pick(n int) int {
	i := int(s.src.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
