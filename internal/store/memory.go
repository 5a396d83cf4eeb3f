// Package store implements the repositories behind the API: a process-local
// memory store and a PostgreSQL store.
package store

import (
	"context"
	"sync"

	"github.com/wonny/brier-terminal/backend/internal/contracts"
)

// Memory is a process-local store. Data does not survive restarts and is not
// shared between instances.
type Memory struct {
	mu          sync.RWMutex
	leaderboard []contracts.TraderRecord
	whales      []contracts.WhaleTransaction
	positions   []contracts.PortfolioPosition
}

// NewMemory creates an empty memory store
func NewMemory() *Memory {
	return &Memory{}
}

// ListLeaderboard returns a copy of the stored board
func (m *Memory) ListLeaderboard(ctx context.Context) ([]contracts.TraderRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]contracts.TraderRecord(nil), m.leaderboard...), nil
}

// ReplaceLeaderboard swaps the whole board
func (m *Memory) ReplaceLeaderboard(ctx context.Context, records []contracts.TraderRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.leaderboard = append([]contracts.TraderRecord(nil), records...)
	return nil
}

// AppendWhaleTransactions appends in order. No uniqueness check.
func (m *Memory) AppendWhaleTransactions(ctx context.Context, txs []contracts.WhaleTransaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.whales = append(m.whales, txs...)
	return nil
}

// ListWhaleTransactions returns transactions oldest first
func (m *Memory) ListWhaleTransactions(ctx context.Context) ([]contracts.WhaleTransaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]contracts.WhaleTransaction(nil), m.whales...), nil
}

// ListPositions returns positions in insertion order
func (m *Memory) ListPositions(ctx context.Context) ([]contracts.PortfolioPosition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]contracts.PortfolioPosition(nil), m.positions...), nil
}

// SavePosition inserts or replaces by id
func (m *Memory) SavePosition(ctx context.Context, pos contracts.PortfolioPosition) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.positions {
		if m.positions[i].ID == pos.ID {
			m.positions[i] = pos
			return nil
		}
	}

	m.positions = append(m.positions, pos)
	return nil
}

// DeletePosition removes a position by id
func (m *Memory) DeletePosition(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.positions[:0]
	for _, p := range m.positions {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	m.positions = kept
	return nil
}

// Close is a no-op
func (m *Memory) Close() {}
