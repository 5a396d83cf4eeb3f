package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/brier-terminal/backend/internal/contracts"
)

// schema is applied by EnsureSchema; statements are idempotent
var schema = []string{
	`CREATE SCHEMA IF NOT EXISTS brier`,
	`CREATE TABLE IF NOT EXISTS brier.leaderboard (
		rank        INTEGER PRIMARY KEY,
		name        TEXT NOT NULL,
		pnl         DOUBLE PRECISION NOT NULL,
		win_rate    DOUBLE PRECISION NOT NULL,
		brier_score DOUBLE PRECISION NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS brier.whale_transactions (
		seq              BIGSERIAL PRIMARY KEY,
		id               TEXT NOT NULL,
		wallet_address   TEXT NOT NULL,
		is_known_whale   BOOLEAN NOT NULL,
		whale_name       TEXT NOT NULL,
		whale_tier       TEXT NOT NULL DEFAULT '',
		action           TEXT NOT NULL,
		market_ticker    TEXT NOT NULL,
		amount           BIGINT NOT NULL,
		market_sentiment INTEGER NOT NULL,
		traded_at        TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS brier.portfolio_positions (
		id            TEXT PRIMARY KEY,
		user_id       TEXT NOT NULL,
		market_id     TEXT NOT NULL,
		market_title  TEXT NOT NULL,
		position_type TEXT NOT NULL,
		shares        DOUBLE PRECISION NOT NULL,
		avg_price     DOUBLE PRECISION NOT NULL,
		current_price DOUBLE PRECISION NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL
	)`,
}

// Postgres persists everything in the brier schema
// ⭐ SSOT: PostgreSQL 저장/조회는 여기서만
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a store on an existing pool
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// EnsureSchema creates the schema and tables if missing
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := p.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// ListLeaderboard returns the board in rank order
func (p *Postgres) ListLeaderboard(ctx context.Context) ([]contracts.TraderRecord, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT rank, name, pnl, win_rate, brier_score
		FROM brier.leaderboard
		ORDER BY rank
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	records := make([]contracts.TraderRecord, 0)
	for rows.Next() {
		var r contracts.TraderRecord
		if err := rows.Scan(&r.Rank, &r.Name, &r.PnL, &r.WinRate, &r.BrierScore); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return records, nil
}

// ReplaceLeaderboard swaps the board in one transaction
func (p *Postgres) ReplaceLeaderboard(ctx context.Context, records []contracts.TraderRecord) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM brier.leaderboard"); err != nil {
		return fmt.Errorf("failed to clear leaderboard: %w", err)
	}

	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		rows = append(rows, []interface{}{r.Rank, r.Name, r.PnL, r.WinRate, r.BrierScore})
	}

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"brier", "leaderboard"},
		[]string{"rank", "name", "pnl", "win_rate", "brier_score"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("failed to insert leaderboard: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// AppendWhaleTransactions inserts a batch in order
func (p *Postgres) AppendWhaleTransactions(ctx context.Context, txs []contracts.WhaleTransaction) error {
	batch := &pgx.Batch{}
	for _, t := range txs {
		batch.Queue(`
			INSERT INTO brier.whale_transactions (
				id, wallet_address, is_known_whale, whale_name, whale_tier,
				action, market_ticker, amount, market_sentiment, traded_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, t.ID, t.WalletAddress, t.IsKnownWhale, t.WhaleName, t.WhaleTier,
			string(t.Action), t.MarketTicker, t.Amount, t.MarketSentiment, t.Timestamp)
	}

	if err := p.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert whale transactions: %w", err)
	}

	return nil
}

// ListWhaleTransactions returns transactions oldest first
func (p *Postgres) ListWhaleTransactions(ctx context.Context) ([]contracts.WhaleTransaction, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, wallet_address, is_known_whale, whale_name, whale_tier,
		       action, market_ticker, amount, market_sentiment, traded_at
		FROM brier.whale_transactions
		ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query whale transactions: %w", err)
	}
	defer rows.Close()

	txs := make([]contracts.WhaleTransaction, 0)
	for rows.Next() {
		var t contracts.WhaleTransaction
		var action string
		err := rows.Scan(&t.ID, &t.WalletAddress, &t.IsKnownWhale, &t.WhaleName, &t.WhaleTier,
			&action, &t.MarketTicker, &t.Amount, &t.MarketSentiment, &t.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("failed to scan whale transaction: %w", err)
		}
		t.Action = contracts.WhaleAction(action)
		txs = append(txs, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return txs, nil
}

// ListPositions returns positions oldest first
func (p *Postgres) ListPositions(ctx context.Context) ([]contracts.PortfolioPosition, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, user_id, market_id, market_title, position_type,
		       shares, avg_price, current_price, created_at
		FROM brier.portfolio_positions
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query positions: %w", err)
	}
	defer rows.Close()

	positions := make([]contracts.PortfolioPosition, 0)
	for rows.Next() {
		var pos contracts.PortfolioPosition
		err := rows.Scan(&pos.ID, &pos.UserID, &pos.MarketID, &pos.MarketTitle, &pos.PositionType,
			&pos.Shares, &pos.AvgPrice, &pos.CurrentPrice, &pos.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, pos)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return positions, nil
}

// SavePosition upserts by id
func (p *Postgres) SavePosition(ctx context.Context, pos contracts.PortfolioPosition) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO brier.portfolio_positions (
			id, user_id, market_id, market_title, position_type,
			shares, avg_price, current_price, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			market_id = EXCLUDED.market_id,
			market_title = EXCLUDED.market_title,
			position_type = EXCLUDED.position_type,
			shares = EXCLUDED.shares,
			avg_price = EXCLUDED.avg_price,
			current_price = EXCLUDED.current_price
	`, pos.ID, pos.UserID, pos.MarketID, pos.MarketTitle, pos.PositionType,
		pos.Shares, pos.AvgPrice, pos.CurrentPrice, pos.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save position: %w", err)
	}
	return nil
}

// DeletePosition removes a position by id
func (p *Postgres) DeletePosition(ctx context.Context, id string) error {
	if _, err := p.pool.Exec(ctx, "DELETE FROM brier.portfolio_positions WHERE id = $1", id); err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
	}
	return nil
}

// Close releases the pool
func (p *Postgres) Close() {
	p.pool.Close()
}
