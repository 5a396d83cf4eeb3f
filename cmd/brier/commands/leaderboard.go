package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/brier-terminal/backend/internal/leaderboard"
)

// leaderboardCmd represents the leaderboard command
var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "리더보드 조회 및 갱신",
	Long: `리더보드를 조회하거나 순위를 재계산합니다.

Subcommands:
  show     - 현재 순위 출력 (--wallet, --pnl 지정 시 내 순위 포함)
  refresh  - 순위 재계산 (cron rank_update 와 동일)

Example:
  go run ./cmd/brier leaderboard show
  go run ./cmd/brier leaderboard show --wallet 0x71C7656E --pnl 900000
  go run ./cmd/brier leaderboard refresh`,
}

var (
	leaderboardShowCmd = &cobra.Command{
		Use:   "show",
		Short: "현재 순위 출력",
		RunE:  showLeaderboard,
	}

	leaderboardRefreshCmd = &cobra.Command{
		Use:   "refresh",
		Short: "순위 재계산",
		RunE:  refreshLeaderboard,
	}

	showWallet string
	showPnL    float64
)

func init() {
	rootCmd.AddCommand(leaderboardCmd)
	leaderboardCmd.AddCommand(leaderboardShowCmd)
	leaderboardCmd.AddCommand(leaderboardRefreshCmd)

	leaderboardShowCmd.Flags().StringVar(&showWallet, "wallet", "", "내 지갑 주소")
	leaderboardShowCmd.Flags().Float64Var(&showPnL, "pnl", 0, "내 PnL (USD)")
}

func showLeaderboard(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := newApp(ctx, false)
	if err != nil {
		return err
	}
	defer a.Close()

	// Same rule as the HTTP route: both wallet and pnl are required
	var user *leaderboard.UserEntry
	if showWallet != "" && cmd.Flags().Changed("pnl") {
		user = &leaderboard.UserEntry{Wallet: showWallet, PnL: showPnL}
	}

	board, err := a.leaderboard.Standings(ctx, user)
	if err != nil {
		return fmt.Errorf("fetch leaderboard: %w", err)
	}

	PrintHeader("Leaderboard")
	PrintLeaderboard(board)
	PrintFooter()

	return nil
}

func refreshLeaderboard(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := newApp(ctx, false)
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.leaderboard.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("rank update: %w", err)
	}

	PrintHeader("Leaderboard updated")
	PrintLeaderboard(result.Leaderboard)
	fmt.Printf("\nTop trader: %s (%d ranked at %s)\n", result.TopTrader, result.Count, result.UpdatedAt.Format("2006-01-02 15:04:05"))
	PrintFooter()

	return nil
}
