package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/brier-terminal/backend/internal/api"
	"github.com/wonny/brier-terminal/backend/internal/api/handlers"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `REST API 서버를 시작합니다.

이 명령어는:
- HTTP API 서버 시작
- 리더보드 / 고래 피드 / 마켓 / 포트폴리오 엔드포인트 제공
- /ws/whales 실시간 고래 거래 스트림 제공
- --with-scheduler 지정 시 cron 작업을 같은 프로세스에서 실행

Endpoints:
  GET  /health                       - Health check
  GET  /api/leaderboard              - 리더보드 (?userWallet=&userPnL=)
  GET  /api/cron/rank-update         - 리더보드 재계산
  GET  /api/cron/whale-scan          - 고래 거래 인덱싱
  GET  /api/whales                   - 고래 거래 목록 (최신순)
  GET  /api/wallets/{address}        - 지갑 라벨
  GET  /api/markets                  - 마켓 목록
  GET  /api/user/portfolio           - 포지션 조회 (?walletAddress=)
  POST /api/user/portfolio           - 포지션 생성
  POST /api/user/portfolio/cashout   - 포지션 청산
  GET  /api/scheduler/jobs           - 스케줄러 상태
  GET  /ws/whales                    - 실시간 고래 거래 (WebSocket)

Example:
  go run ./cmd/brier api
  go run ./cmd/brier api --port 8080 --with-scheduler`,
	RunE: runAPIServer,
}

var (
	apiPort       string
	withScheduler bool
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (default: PORT env)")
	apiCmd.Flags().BoolVar(&withScheduler, "with-scheduler", false, "cron 작업을 API 프로세스에서 함께 실행")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Brier Terminal API Server ===")

	ctx := context.Background()

	// 1. Wire services
	a, err := newApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close()

	// Override port if flag is set
	if apiPort != "" {
		a.cfg.Port = apiPort
	}

	a.log.WithFields(map[string]interface{}{
		"port": a.cfg.Port,
		"env":  a.cfg.Env,
	}).Info("Initializing API server")

	// 2. Embedded scheduler
	var jobStats handlers.JobStatsProvider
	if withScheduler {
		sched, err := a.newScheduler()
		if err != nil {
			return fmt.Errorf("init scheduler: %w", err)
		}
		sched.Start()
		defer sched.Stop()
		jobStats = sched
	}

	// 3. Create handlers and router
	router := api.NewRouter(api.Handlers{
		Leaderboard: handlers.NewLeaderboardHandler(a.leaderboard, a.log),
		Cron:        handlers.NewCronHandler(a.leaderboard, a.whales, a.log),
		Whales:      handlers.NewWhaleHandler(a.whales, a.log),
		Markets:     handlers.NewMarketHandler(a.markets, a.log),
		Portfolio:   handlers.NewPortfolioHandler(a.portfolio, a.log),
		Scheduler:   handlers.NewSchedulerHandler(jobStats),
		WhaleStream: a.hub,
	}, api.RouterConfig{
		AllowedOrigin: a.cfg.AllowedOrigin,
		CronSecret:    a.cfg.CronSecret,
	}, a.log.WithComponent("api"))

	// 4. Create server; the whale stream closes with it
	server := api.New(a.cfg, a.log, router)
	server.OnDrain(a.hub.Close)

	ln, err := server.Listen()
	if err != nil {
		return err
	}

	fmt.Printf("\n✅ Server running on http://localhost:%s\n", a.cfg.Port)
	if withScheduler {
		fmt.Println("   Scheduler: embedded")
	}
	fmt.Println("\nPress Ctrl+C to stop")

	// 5. Serve until interrupted, then drain
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Serve(sigCtx, ln); err != nil {
		return err
	}

	a.log.Info("Server stopped")
	return nil
}
