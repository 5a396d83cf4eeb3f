package markets

import (
	"fmt"
	"math"
	"strings"

	"github.com/wonny/brier-terminal/backend/internal/contracts"
	"github.com/wonny/brier-terminal/backend/internal/external/kalshi"
	"github.com/wonny/brier-terminal/backend/internal/external/polymarket"
)

// AffiliateLink appends the referral parameter of the platform to url
func AffiliateLink(url string, platform contracts.Platform) string {
	separator := "?"
	if strings.Contains(url, "?") {
		separator = "&"
	}

	param := "referral=brier"
	if platform == contracts.PlatformPolymarket {
		param = "r=brier"
	}

	return url + separator + param
}

// withAffiliateLinks rewrites every market url in place
func withAffiliateLinks(list []contracts.Market) []contracts.Market {
	for i := range list {
		list[i].URL = AffiliateLink(list[i].URL, list[i].Platform)
	}
	return list
}

// FormatVolume renders a USD amount the way the dashboard shows it ($12.5M, $890K)
func FormatVolume(usd float64) string {
	switch {
	case usd >= 1_000_000:
		return fmt.Sprintf("$%.1fM", usd/1_000_000)
	case usd >= 1_000:
		return fmt.Sprintf("$%.0fK", usd/1_000)
	default:
		return fmt.Sprintf("$%.0f", usd)
	}
}

// flatTrend is used when a feed carries no price history
func flatTrend(price float64) []float64 {
	trend := make([]float64, 7)
	for i := range trend {
		trend[i] = price
	}
	return trend
}

func fromPolymarket(e polymarket.Event) contracts.Market {
	var price, change float64
	if lead, ok := e.LeadMarket(); ok {
		price = math.Round(float64(lead.LastTradePrice) * 100)
		change = math.Round(float64(lead.OneDayPriceChange)*1000) / 10
	}

	return contracts.Market{
		ID:        "poly-" + e.ID,
		Title:     e.Title,
		Platform:  contracts.PlatformPolymarket,
		Outcome:   "Yes",
		Price:     price,
		Change24h: change,
		Trend7d:   flatTrend(price),
		Volume:    FormatVolume(float64(e.Volume)),
		URL:       polymarket.EventURL(e.Slug),
		Category:  CategoryCrypto,
	}
}

func fromKalshi(m kalshi.Market) contracts.Market {
	price := float64(m.LastPrice)

	var change float64
	if m.PreviousPrice > 0 {
		change = math.Round((price-float64(m.PreviousPrice))/float64(m.PreviousPrice)*1000) / 10
	}

	return contracts.Market{
		ID:        "kalshi-" + m.Ticker,
		Title:     m.Title,
		Platform:  contracts.PlatformKalshi,
		Outcome:   "Yes",
		Price:     price,
		Change24h: change,
		Trend7d:   flatTrend(price),
		Volume:    FormatVolume(float64(m.Volume)), // contracts settle at $1
		URL:       kalshi.MarketURL(m.Ticker),
		Category:  CategoryEconomy,
	}
}
