package markets

import "github.com/wonny/brier-terminal/backend/internal/contracts"

// Categories shown on the dashboard
const (
	CategoryCrypto   = "Crypto"
	CategoryPolitics = "Politics"
	CategoryEconomy  = "Economy"
	CategoryScience  = "Science"
)

// catalog is served whenever live feeds are off or unavailable
var catalog = []contracts.Market{
	{
		ID:         "mock-1",
		Title:      "Will Bitcoin hit $100k in 2024?",
		Platform:   contracts.PlatformPolymarket,
		Outcome:    "Yes",
		Price:      32,
		Change24h:  5.4,
		Trend7d:    []float64{28, 29, 31, 30, 32, 33, 32},
		Volume:     "$12.5M",
		URL:        "https://polymarket.com/event/bitcoin-100k-2024",
		IsArbGroup: true,
		Category:   CategoryCrypto,
	},
	{
		ID:        "mock-2",
		Title:     "Fed Interest Rate Cut in March?",
		Platform:  contracts.PlatformKalshi,
		Outcome:   "Yes",
		Price:     15,
		Change24h: -2.1,
		Trend7d:   []float64{18, 17, 16, 16, 15, 14, 15},
		Volume:    "$4.2M",
		URL:       "https://kalshi.com/markets/fed-rate-cut",
		Category:  CategoryEconomy,
	},
	{
		ID:        "mock-3",
		Title:     "2024 US Presidential Election Winner",
		Platform:  contracts.PlatformPolymarket,
		Outcome:   "Trump",
		Price:     48,
		Change24h: 1.2,
		Trend7d:   []float64{45, 46, 46, 47, 47, 48, 48},
		Volume:    "$45M",
		URL:       "https://polymarket.com/event/us-election-2024",
		Category:  CategoryPolitics,
	},
	{
		ID:        "mock-4",
		Title:     "SpaceX Starship Reach Orbit?",
		Platform:  contracts.PlatformKalshi,
		Outcome:   "Yes",
		Price:     85,
		Change24h: 0.5,
		Trend7d:   []float64{82, 83, 84, 84, 85, 85, 85},
		Volume:    "$890K",
		URL:       "https://kalshi.com/markets/spacex-orbit",
		Category:  CategoryScience,
	},
	{
		ID:        "mock-5",
		Title:     "Ethereum to flip Bitcoin Market Cap?",
		Platform:  contracts.PlatformPolymarket,
		Outcome:   "No",
		Price:     92,
		Change24h: 0.8,
		Trend7d:   []float64{90, 91, 91, 92, 92, 93, 92},
		Volume:    "$8.1M",
		URL:       "https://polymarket.com/event/eth-flippening",
		Category:  CategoryCrypto,
	},
	{
		ID:        "mock-6",
		Title:     "US Recession in 2024?",
		Platform:  contracts.PlatformKalshi,
		Outcome:   "No",
		Price:     65,
		Change24h: -1.5,
		Trend7d:   []float64{68, 67, 66, 66, 65, 64, 65},
		Volume:    "$2.3M",
		URL:       "https://kalshi.com/markets/us-recession-2024",
		Category:  CategoryEconomy,
	},
}

// Catalog returns a deep copy of the static market list
func Catalog() []contracts.Market {
	out := make([]contracts.Market, len(catalog))
	for i, m := range catalog {
		m.Trend7d = append([]float64(nil), m.Trend7d...)
		out[i] = m
	}
	return out
}
