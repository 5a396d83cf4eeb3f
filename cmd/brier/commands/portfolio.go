package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// portfolioCmd represents the portfolio command
var portfolioCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "포지션 조회",
	Long: `지갑의 포지션과 평가손익을 출력합니다.

데모 포지션(mock-user)은 모든 지갑에 함께 표시됩니다.

Example:
  go run ./cmd/brier portfolio --wallet 0x71C7656E`,
	RunE: showPortfolio,
}

var portfolioWallet string

func init() {
	rootCmd.AddCommand(portfolioCmd)

	portfolioCmd.Flags().StringVar(&portfolioWallet, "wallet", "", "지갑 주소 (필수)")
	_ = portfolioCmd.MarkFlagRequired("wallet")
}

func showPortfolio(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := newApp(ctx, false)
	if err != nil {
		return err
	}
	defer a.Close()

	positions, err := a.portfolio.List(ctx, portfolioWallet)
	if err != nil {
		return fmt.Errorf("fetch portfolio: %w", err)
	}

	PrintHeader(fmt.Sprintf("Portfolio %s", portfolioWallet))
	PrintPositions(positions)
	PrintFooter()

	return nil
}
