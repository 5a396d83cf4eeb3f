package commands

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	env        string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "brier",
	Short: "Brier Terminal - 예측시장 대시보드 백엔드",
	Long: `Brier Terminal Unified CLI

Polymarket / Kalshi 예측시장 대시보드용 Go 백엔드.
리더보드, 고래 거래 피드, 마켓 목록, 포트폴리오를 제공합니다.

Usage:
  go run ./cmd/brier [command]

Examples:
  go run ./cmd/brier api --with-scheduler
  go run ./cmd/brier leaderboard show --wallet 0xabc123 --pnl 150000
  go run ./cmd/brier scheduler run rank_update
  go run ./cmd/brier test-db`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Flags override the environment read by config.Load
		if cmd.Flags().Changed("env") {
			os.Setenv("ENV", env)
		}
		if verbose {
			os.Setenv("LOG_LEVEL", "debug")
			os.Setenv("LOG_FORMAT", "console")
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
