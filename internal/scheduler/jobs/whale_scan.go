package jobs

import (
	"context"
	"fmt"

	"github.com/wonny/brier-terminal/backend/internal/contracts"
	"github.com/wonny/brier-terminal/backend/pkg/logger"
)

// WhaleScanner indexes a batch of whale trades
type WhaleScanner interface {
	Scan(ctx context.Context) ([]contracts.WhaleTransaction, error)
}

// WhaleScanJob indexes whale trades every minute
type WhaleScanJob struct {
	scanner  WhaleScanner
	schedule string
	logger   *logger.Logger
}

// NewWhaleScanJob creates a new whale scan job
func NewWhaleScanJob(scanner WhaleScanner, schedule string, log *logger.Logger) *WhaleScanJob {
	return &WhaleScanJob{
		scanner:  scanner,
		schedule: schedule,
		logger:   log,
	}
}

// Name returns the job name
func (j *WhaleScanJob) Name() string {
	return "whale_scan"
}

// Schedule returns the cron schedule (every minute by default)
func (j *WhaleScanJob) Schedule() string {
	return j.schedule
}

// Run executes the whale scan
func (j *WhaleScanJob) Run(ctx context.Context) error {
	trades, err := j.scanner.Scan(ctx)
	if err != nil {
		return fmt.Errorf("whale scan: %w", err)
	}

	j.logger.WithField("trades", len(trades)).Debug("Scheduled whale scan completed")
	return nil
}
