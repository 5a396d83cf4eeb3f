package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wonny/brier-terminal/backend/internal/contracts"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// 모든 커맨드가 동일한 출력 포맷을 사용하도록 통일
// ═══════════════════════════════════════════════════════════

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A"))
	headerStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	positiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e"))
	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444"))
	userStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFC107"))
	goldStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700"))
)

// PrintHeader prints a formatted section header
func PrintHeader(title string) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Printf("  %s\n", titleStyle.Render(title))
	fmt.Println("───────────────────────────────────────────────────────────")
}

// PrintFooter prints a closing rule
func PrintFooter() {
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Println()
}

// renderTable renders rows under headers with aligned columns
func renderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var sb strings.Builder
	sep := mutedStyle.Render("│")

	for i, h := range headers {
		sb.WriteString(headerStyle.Width(widths[i] + 2).Render(h))
		if i < len(headers)-1 {
			sb.WriteString(sep)
		}
	}
	sb.WriteString("\n")

	total := len(headers) - 1
	for _, w := range widths {
		total += w + 2
	}
	sb.WriteString(mutedStyle.Render(strings.Repeat("─", total)))
	sb.WriteString("\n")

	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			sb.WriteString(cellStyle.Width(widths[i] + 2).Render(cell))
			if i < len(row)-1 {
				sb.WriteString(sep)
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatPnL renders a signed dollar amount in green or red
func formatPnL(pnl float64) string {
	if pnl < 0 {
		return negativeStyle.Render("-$" + groupThousands(-pnl))
	}
	return positiveStyle.Render("+$" + groupThousands(pnl))
}

// groupThousands formats a number as 1,245,000
func groupThousands(v float64) string {
	raw := fmt.Sprintf("%.0f", v)
	neg := strings.HasPrefix(raw, "-")
	raw = strings.TrimPrefix(raw, "-")

	var out []byte
	for i := range raw {
		if i > 0 && (len(raw)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, raw[i])
	}

	if neg {
		return "-" + string(out)
	}
	return string(out)
}

// podiumSize is how many leading ranks are highlighted
const podiumSize = 3

// PrintLeaderboard prints ranked traders, highlighting the injected user
func PrintLeaderboard(board []contracts.TraderRecord) {
	rows := make([][]string, 0, len(board))
	for _, r := range board {
		name := r.Name
		if r.IsUser {
			name = userStyle.Render(name)
		}
		rank := fmt.Sprintf("#%d", r.Rank)
		if r.IsTopRanked(podiumSize) {
			rank = goldStyle.Render(rank)
		}
		rows = append(rows, []string{
			rank,
			name,
			formatPnL(r.PnL),
			fmt.Sprintf("%.1f%%", r.WinRate),
			fmt.Sprintf("%.1f", r.BrierScore),
		})
	}
	fmt.Print(renderTable([]string{"Rank", "Trader", "PnL", "Win Rate", "Brier"}, rows))
}

// PrintTrades prints whale trades
func PrintTrades(trades []contracts.WhaleTransaction) {
	rows := make([][]string, 0, len(trades))
	for _, t := range trades {
		name := t.WhaleName
		if t.WhaleTier == "gold" {
			name = goldStyle.Render(name)
		}
		rows = append(rows, []string{
			t.Timestamp.Format("15:04:05"),
			t.WalletAddress,
			name,
			string(t.Action),
			t.MarketTicker,
			"$" + groupThousands(float64(t.Amount)),
			fmt.Sprintf("%d", t.MarketSentiment),
		})
	}
	fmt.Print(renderTable([]string{"Time", "Wallet", "Whale", "Action", "Market", "Amount", "Sentiment"}, rows))
}

// PrintMarkets prints the unified market list
func PrintMarkets(markets []contracts.Market) {
	rows := make([][]string, 0, len(markets))
	for _, m := range markets {
		change := fmt.Sprintf("%+.1f%%", m.Change24h)
		if m.Change24h < 0 {
			change = negativeStyle.Render(change)
		} else {
			change = positiveStyle.Render(change)
		}
		rows = append(rows, []string{
			m.ID,
			string(m.Platform),
			m.Title,
			fmt.Sprintf("%.0f¢", m.Price),
			change,
			m.Volume,
		})
	}
	fmt.Print(renderTable([]string{"ID", "Platform", "Market", "Price", "24h", "Volume"}, rows))
}

// PrintPositions prints positions with their mark-to-market PnL
func PrintPositions(positions []contracts.PortfolioPosition) {
	rows := make([][]string, 0, len(positions))
	total := 0.0
	for i := range positions {
		p := &positions[i]
		pnl := p.UnrealizedPnL()
		total += pnl
		rows = append(rows, []string{
			p.ID,
			p.MarketTitle,
			p.PositionType,
			groupThousands(p.Shares),
			fmt.Sprintf("%.0f¢ → %.0f¢", p.AvgPrice, p.CurrentPrice),
			formatPnL(pnl),
		})
	}
	fmt.Print(renderTable([]string{"ID", "Market", "Side", "Shares", "Avg → Now", "PnL"}, rows))
	fmt.Printf("\n%s %s\n", mutedStyle.Render("Unrealized PnL:"), formatPnL(total))
}
