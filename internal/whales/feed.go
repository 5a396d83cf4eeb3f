// Package whales indexes large prediction-market trades and serves the whale feed.
package whales

import (
	"context"
	"fmt"

	"github.com/wonny/brier-terminal/backend/internal/contracts"
	"github.com/wonny/brier-terminal/backend/pkg/logger"
)

// Publisher pushes freshly indexed trades to live subscribers
type Publisher interface {
	Publish(v interface{})
}

// Feed runs whale scans and serves the indexed transactions
// ⭐ SSOT: 고래 거래 인덱싱/조회는 이 구조체에서만
type Feed struct {
	scanner   *Scanner
	repo      contracts.WhaleRepository
	publisher Publisher
	logger    *logger.Logger
}

// NewFeed creates a feed. publisher may be nil.
func NewFeed(scanner *Scanner, repo contracts.WhaleRepository, publisher Publisher, log *logger.Logger) *Feed {
	return &Feed{
		scanner:   scanner,
		repo:      repo,
		publisher: publisher,
		logger:    log.WithComponent("whales"),
	}
}

// Scan indexes one batch of trades and returns it
func (f *Feed) Scan(ctx context.Context) ([]contracts.WhaleTransaction, error) {
	f.logger.Info("Starting whale scan")

	trades := f.scanner.Scan()

	if err := f.repo.AppendWhaleTransactions(ctx, trades); err != nil {
		return nil, fmt.Errorf("append whale transactions: %w", err)
	}

	if f.publisher != nil {
		for _, t := range trades {
			f.publisher.Publish(t)
		}
	}

	f.logger.WithField("count", len(trades)).Info("Indexed whale trades")
	return trades, nil
}

// Recent returns indexed trades newest first. limit <= 0 returns all.
func (f *Feed) Recent(ctx context.Context, limit int) ([]contracts.WhaleTransaction, error) {
	txs, err := f.repo.ListWhaleTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list whale transactions: %w", err)
	}

	n := len(txs)
	if limit > 0 && limit < n {
		n = limit
	}

	recent := make([]contracts.WhaleTransaction, 0, n)
	for i := len(txs) - 1; i >= 0 && len(recent) < n; i-- {
		recent = append(recent, txs[i])
	}

	return recent, nil
}
