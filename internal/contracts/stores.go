package contracts

import "context"

// ⭐ SSOT: 저장소 인터페이스 정의는 여기서만

// LeaderboardRepository stores the current ranked board
type LeaderboardRepository interface {
	ListLeaderboard(ctx context.Context) ([]TraderRecord, error)
	// ReplaceLeaderboard swaps the whole table for records
	ReplaceLeaderboard(ctx context.Context, records []TraderRecord) error
}

// WhaleRepository stores indexed whale transactions in insertion order
type WhaleRepository interface {
	AppendWhaleTransactions(ctx context.Context, txs []WhaleTransaction) error
	ListWhaleTransactions(ctx context.Context) ([]WhaleTransaction, error)
}

// PortfolioRepository stores portfolio positions
type PortfolioRepository interface {
	ListPositions(ctx context.Context) ([]PortfolioPosition, error)
	SavePosition(ctx context.Context, pos PortfolioPosition) error
	// DeletePosition removes a position; a missing id is not an error
	DeletePosition(ctx context.Context, id string) error
}

// Store bundles every repository behind one backend
type Store interface {
	LeaderboardRepository
	WhaleRepository
	PortfolioRepository
	Close()
}
