package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// marketsCmd represents the markets command
var marketsCmd = &cobra.Command{
	Use:   "markets",
	Short: "마켓 목록 조회",
	Long: `통합 마켓 목록을 출력합니다.

MARKETS_LIVE=true 이면 Polymarket / Kalshi 에서 가져오고,
실패하거나 비어 있으면 기본 카탈로그를 출력합니다.

Example:
  go run ./cmd/brier markets
  MARKETS_LIVE=true go run ./cmd/brier markets`,
	RunE: listMarkets,
}

func init() {
	rootCmd.AddCommand(marketsCmd)
}

func listMarkets(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := newApp(ctx, false)
	if err != nil {
		return err
	}
	defer a.Close()

	list, err := a.markets.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("fetch markets: %w", err)
	}

	source := "catalog"
	if a.markets.Live() {
		source = "live"
	}

	PrintHeader(fmt.Sprintf("Markets (%s, %d)", source, len(list)))
	PrintMarkets(list)
	PrintFooter()

	return nil
}
