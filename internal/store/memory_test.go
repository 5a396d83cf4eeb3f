package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/brier-terminal/backend/internal/contracts"
)

func TestMemory_Leaderboard(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	records, err := m.ListLeaderboard(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	board := []contracts.TraderRecord{
		{Name: "a", PnL: 2, Rank: 1},
		{Name: "b", PnL: 1, Rank: 2},
	}
	require.NoError(t, m.ReplaceLeaderboard(ctx, board))

	// Mutating the caller's slice must not leak into the store
	board[0].Name = "mutated"

	records, err = m.ListLeaderboard(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "a", records[0].Name)

	// Replace drops old rows
	require.NoError(t, m.ReplaceLeaderboard(ctx, []contracts.TraderRecord{{Name: "c", Rank: 1}}))
	records, _ = m.ListLeaderboard(ctx)
	require.Len(t, records, 1)
	assert.Equal(t, "c", records[0].Name)
}

func TestMemory_WhaleTransactionsAppend(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	first := []contracts.WhaleTransaction{{ID: "tx1"}, {ID: "tx2"}}
	second := []contracts.WhaleTransaction{{ID: "tx3"}, {ID: "tx1"}}

	require.NoError(t, m.AppendWhaleTransactions(ctx, first))
	require.NoError(t, m.AppendWhaleTransactions(ctx, second))

	txs, err := m.ListWhaleTransactions(ctx)
	require.NoError(t, err)

	ids := make([]string, 0, len(txs))
	for _, tx := range txs {
		ids = append(ids, tx.ID)
	}
	// No uniqueness guarantee, insertion order kept
	assert.Equal(t, []string{"tx1", "tx2", "tx3", "tx1"}, ids)
}

func TestMemory_Positions(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	now := time.Now()

	require.NoError(t, m.SavePosition(ctx, contracts.PortfolioPosition{ID: "pos-1", Shares: 10, CreatedAt: now}))
	require.NoError(t, m.SavePosition(ctx, contracts.PortfolioPosition{ID: "pos-2", Shares: 20, CreatedAt: now}))
	require.NoError(t, m.SavePosition(ctx, contracts.PortfolioPosition{ID: "pos-1", Shares: 15, CreatedAt: now}))

	positions, err := m.ListPositions(ctx)
	require.NoError(t, err)
	require.Len(t, positions, 2)
	assert.Equal(t, 15.0, positions[0].Shares)

	require.NoError(t, m.DeletePosition(ctx, "pos-1"))
	require.NoError(t, m.DeletePosition(ctx, "missing"))

	positions, _ = m.ListPositions(ctx)
	require.Len(t, positions, 1)
	assert.Equal(t, "pos-2", positions[0].ID)
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = m.AppendWhaleTransactions(ctx, []contracts.WhaleTransaction{{ID: "tx"}})
		}()
		go func() {
			defer wg.Done()
			_, _ = m.ListWhaleTransactions(ctx)
		}()
	}
	wg.Wait()

	txs, _ := m.ListWhaleTransactions(ctx)
	assert.Len(t, txs, 20)
}
