package whales

import "github.com/wonny/brier-terminal/backend/internal/contracts"

// Wallet tiers
const (
	TierGold = "gold"
	TierBlue = "blue"
)

// knownWallets labels market makers, funds and notable whales
var knownWallets = map[string]contracts.WalletInfo{
	// Market makers & funds
	"0x3f...a9": {Name: "Wintermute", Tier: TierGold},
	"0x1c...44": {Name: "Paradigm", Tier: TierGold},
	"0x9d...ff": {Name: "Alameda (Legacy)", Tier: TierGold},
	"0x88...21": {Name: "Jump Trading", Tier: TierGold},
	"0x55...ab": {Name: "GSR Markets", Tier: TierGold},

	// Notable individuals
	"0x77...11": {Name: "Vitalik.eth", Tier: TierGold},
	"0xaa...bb": {Name: "Whale 0xAA", Tier: TierBlue},
	"0xcc...dd": {Name: "Whale 0xCC", Tier: TierBlue},
	"0xee...ff": {Name: "Whale 0xEE", Tier: TierBlue},
}

// LookupWallet returns the public label of a known wallet
func LookupWallet(address string) (contracts.WalletInfo, bool) {
	info, ok := knownWallets[address]
	return info, ok
}
