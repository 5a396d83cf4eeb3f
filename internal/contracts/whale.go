package contracts

import "time"

// WhaleAction is the side of a whale trade
type WhaleAction string

const (
	ActionBuyYes  WhaleAction = "BUY_YES"
	ActionBuyNo   WhaleAction = "BUY_NO"
	ActionSellYes WhaleAction = "SELL_YES"
	ActionSellNo  WhaleAction = "SELL_NO"
)

// WhaleTransaction is one indexed large trade
type WhaleTransaction struct {
	ID              string      `json:"id"`
	WalletAddress   string      `json:"walletAddress"`
	IsKnownWhale    bool        `json:"isKnownWhale"`
	WhaleName       string      `json:"whaleName"`
	WhaleTier       string      `json:"whaleTier,omitempty"` // gold | blue
	Action          WhaleAction `json:"action"`
	MarketTicker    string      `json:"marketTicker"`
	Amount          int64       `json:"amount"` // USD
	Timestamp       time.Time   `json:"timestamp"`
	MarketSentiment int         `json:"marketSentiment"` // 0-99
}

// WalletInfo is the public label of a known wallet
type WalletInfo struct {
	Name string `json:"name"`
	Tier string `json:"tier"`
}
