package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/brier-terminal/backend/internal/scheduler"
	"github.com/wonny/brier-terminal/backend/pkg/config"
	"github.com/wonny/brier-terminal/backend/pkg/httputil"
	"github.com/wonny/brier-terminal/backend/pkg/logger"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "스케줄러 관리",
	Long: `스케줄러를 시작하거나 작업을 관리합니다.

Subcommands:
  start   - 스케줄러 시작
  list    - 등록된 작업 목록
  run     - 특정 작업 즉시 실행
  status  - 실행 중인 API 서버의 작업 상태 조회

Example:
  go run ./cmd/brier scheduler start
  go run ./cmd/brier scheduler list
  go run ./cmd/brier scheduler run rank_update
  go run ./cmd/brier scheduler status --api http://localhost:8080`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "스케줄러 시작",
		Long: `스케줄러를 시작하고 등록된 모든 작업을 스케줄합니다.

등록되는 작업 (UTC):
- rank_update: 매일 00:00 (리더보드 재계산)
- whale_scan: 1분마다 (고래 거래 인덱싱)
- market_refresh: 30초마다 (라이브 마켓 캐시 갱신)

스케줄러는 Ctrl+C로 종료할 수 있습니다.`,
		RunE: runScheduler,
	}

	schedulerListCmd = &cobra.Command{
		Use:   "list",
		Short: "등록된 작업 목록",
		RunE:  listJobs,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run [job_name]",
		Short: "특정 작업 즉시 실행",
		Args:  cobra.ExactArgs(1),
		RunE:  runJob,
	}

	schedulerStatusCmd = &cobra.Command{
		Use:   "status",
		Short: "작업 실행 상태 조회",
		RunE:  showStatus,
	}

	statusAPIURL string
)

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerListCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
	schedulerCmd.AddCommand(schedulerStatusCmd)

	schedulerStatusCmd.Flags().StringVar(&statusAPIURL, "api", "http://localhost:8080", "API 서버 주소")
}

func runScheduler(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Brier Terminal Scheduler ===")

	a, err := newApp(context.Background(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	sched, err := a.newScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}

	sched.Start()

	fmt.Println("\n✅ Scheduler started successfully")
	fmt.Println("\nRegistered jobs:")
	for _, jobName := range sched.GetAllJobs() {
		fmt.Printf("  - %s\n", jobName)
	}
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down scheduler...")
	sched.Stop()
	fmt.Println("Scheduler stopped")

	return nil
}

func listJobs(cmd *cobra.Command, args []string) error {
	a, err := newApp(context.Background(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	sched, err := a.newScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}

	rows := make([][]string, 0)
	for _, st := range sched.GetJobStats() {
		rows = append(rows, []string{st.JobName, st.Schedule})
	}

	fmt.Println("Registered jobs:")
	fmt.Println(renderTable([]string{"Job", "Schedule"}, rows))

	return nil
}

func runJob(cmd *cobra.Command, args []string) error {
	jobName := args[0]

	fmt.Printf("Running job: %s\n", jobName)

	a, err := newApp(context.Background(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	sched, err := a.newScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}

	// Foreground run: the process exits right after, so wait for the result
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := sched.RunJobNow(ctx, jobName)
	if err != nil {
		return fmt.Errorf("run job: %w", err)
	}

	if !result.Success {
		return fmt.Errorf("job %s failed after %s: %s", jobName, result.Duration.Round(time.Millisecond), result.Error)
	}

	fmt.Printf("✅ %s completed in %s\n", jobName, result.Duration.Round(time.Millisecond))
	return nil
}

// schedulerStatus mirrors the GET /api/scheduler/jobs body
type schedulerStatus struct {
	Embedded bool                 `json:"embedded"`
	Jobs     []scheduler.JobStats `json:"jobs"`
}

func showStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFrom(configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg)

	client := httputil.NewWithTimeout(cfg, log, 5*time.Second).DisableRetry()

	url := strings.TrimRight(statusAPIURL, "/") + "/api/scheduler/jobs"
	resp, err := client.Get(cmd.Context(), url)
	if err != nil {
		return fmt.Errorf("query %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("query %s: status %d: %s", url, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var status schedulerStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return fmt.Errorf("decode status: %w", err)
	}

	if !status.Embedded {
		fmt.Println("Scheduler is not embedded in the API server (start it with --with-scheduler)")
		return nil
	}

	fmt.Println("Job Statistics:")
	fmt.Println()

	for _, stat := range status.Jobs {
		fmt.Printf("📊 %s\n", stat.JobName)
		fmt.Printf("   Schedule: %s\n", stat.Schedule)
		fmt.Printf("   Total Runs: %d\n", stat.TotalRuns)
		fmt.Printf("   Success: %d (%.1f%%)\n", stat.SuccessCount, stat.SuccessRate*100)
		fmt.Printf("   Failures: %d\n", stat.FailureCount)

		if stat.LastRun != nil {
			fmt.Printf("   Last Run: %s\n", stat.LastRun.Format("2006-01-02 15:04:05"))
		}
		if stat.LastFailure != nil {
			fmt.Printf("   Last Failure: %s (%s)\n", stat.LastFailure.Format("2006-01-02 15:04:05"), stat.LastError)
		}
		if stat.NextRun != nil {
			fmt.Printf("   Next Run: %s\n", stat.NextRun.Format("2006-01-02 15:04:05"))
		}

		fmt.Println()
	}

	return nil
}
