package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// whalesCmd represents the whales command
var whalesCmd = &cobra.Command{
	Use:   "whales",
	Short: "고래 거래 인덱싱 및 조회",
	Long: `고래 지갑 거래를 인덱싱하거나 최근 거래를 조회합니다.

Subcommands:
  scan    - 고래 거래 인덱싱 (cron whale_scan 과 동일)
  recent  - 최근 거래 조회 (최신순)

Example:
  go run ./cmd/brier whales scan
  go run ./cmd/brier whales recent --limit 20`,
}

var (
	whalesScanCmd = &cobra.Command{
		Use:   "scan",
		Short: "고래 거래 인덱싱",
		RunE:  scanWhales,
	}

	whalesRecentCmd = &cobra.Command{
		Use:   "recent",
		Short: "최근 거래 조회",
		RunE:  recentWhales,
	}

	recentLimit int
)

func init() {
	rootCmd.AddCommand(whalesCmd)
	whalesCmd.AddCommand(whalesScanCmd)
	whalesCmd.AddCommand(whalesRecentCmd)

	whalesRecentCmd.Flags().IntVar(&recentLimit, "limit", 20, "최대 건수 (0 = 전체)")
}

func scanWhales(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := newApp(ctx, false)
	if err != nil {
		return err
	}
	defer a.Close()

	trades, err := a.whales.Scan(ctx)
	if err != nil {
		return fmt.Errorf("whale scan: %w", err)
	}

	PrintHeader(fmt.Sprintf("Indexed %d trades", len(trades)))
	PrintTrades(trades)
	PrintFooter()

	return nil
}

func recentWhales(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := newApp(ctx, false)
	if err != nil {
		return err
	}
	defer a.Close()

	trades, err := a.whales.Recent(ctx, recentLimit)
	if err != nil {
		return fmt.Errorf("fetch whales: %w", err)
	}

	if len(trades) == 0 {
		fmt.Println("No whale trades indexed yet (run `brier whales scan`)")
		return nil
	}

	PrintHeader("Recent whale trades")
	PrintTrades(trades)
	PrintFooter()

	return nil
}
