package portfolio

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/brier-terminal/backend/internal/contracts"
	"github.com/wonny/brier-terminal/backend/internal/store"
	"github.com/wonny/brier-terminal/backend/pkg/logger"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	svc := NewService(mem, logger.Nop())
	svc.now = func() time.Time { return fixedNow }
	svc.newID = func() string { return "pos_test" }
	require.NoError(t, svc.EnsureSeeded(context.Background()))
	return svc, mem
}

func TestService_ListEmptyWallet(t *testing.T) {
	svc, _ := newTestService(t)

	list, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestService_ListFiltersByWallet(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()

	require.NoError(t, mem.SavePosition(ctx, contracts.PortfolioPosition{ID: "mine", UserID: "0xabc", CreatedAt: fixedNow.Add(time.Minute)}))
	require.NoError(t, mem.SavePosition(ctx, contracts.PortfolioPosition{ID: "theirs", UserID: "0xdef", CreatedAt: fixedNow}))

	list, err := svc.List(ctx, "0xabc")
	require.NoError(t, err)

	ids := make([]string, len(list))
	for i, p := range list {
		ids[i] = p.ID
	}
	assert.Equal(t, []string{"pos-1", "pos-2", "mine"}, ids)
}

func TestService_OpenDefaults(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()

	pos, err := svc.Open(ctx, contracts.PortfolioPosition{
		MarketID:     "mock-2",
		MarketTitle:  "Fed Interest Rate Cut in March?",
		PositionType: SideYes,
		Shares:       100,
		AvgPrice:     15,
	})
	require.NoError(t, err)

	assert.Equal(t, "pos_test", pos.ID)
	assert.Equal(t, contracts.MockUserID, pos.UserID)
	assert.Equal(t, fixedNow, pos.CreatedAt)
	assert.Equal(t, 15.0, pos.CurrentPrice)

	stored, err := mem.ListPositions(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 3)
}

func TestService_OpenBodyOverridesDefaults(t *testing.T) {
	svc, _ := newTestService(t)

	pos, err := svc.Open(context.Background(), contracts.PortfolioPosition{
		ID:           "pos-custom",
		UserID:       "0xabc",
		MarketID:     "mock-5",
		PositionType: SideNo,
		Shares:       10,
		AvgPrice:     92,
		CurrentPrice: 90,
	})
	require.NoError(t, err)

	assert.Equal(t, "pos-custom", pos.ID)
	assert.Equal(t, "0xabc", pos.UserID)
	assert.Equal(t, 90.0, pos.CurrentPrice)
}

func TestService_OpenRejectsInvalid(t *testing.T) {
	svc, _ := newTestService(t)
	svc.WithConstraints(Constraints{MaxPrice: 100, MaxShares: 1000, BlackList: []string{"mock-6"}})

	tests := []struct {
		name string
		pos  contracts.PortfolioPosition
	}{
		{"bad side", contracts.PortfolioPosition{MarketID: "mock-1", PositionType: "MAYBE", Shares: 1, AvgPrice: 10}},
		{"missing market", contracts.PortfolioPosition{PositionType: SideYes, Shares: 1, AvgPrice: 10}},
		{"blacklisted", contracts.PortfolioPosition{MarketID: "mock-6", PositionType: SideYes, Shares: 1, AvgPrice: 10}},
		{"zero shares", contracts.PortfolioPosition{MarketID: "mock-1", PositionType: SideYes, AvgPrice: 10}},
		{"too many shares", contracts.PortfolioPosition{MarketID: "mock-1", PositionType: SideYes, Shares: 1001, AvgPrice: 10}},
		{"price above 100", contracts.PortfolioPosition{MarketID: "mock-1", PositionType: SideYes, Shares: 1, AvgPrice: 101}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Open(context.Background(), tt.pos)
			assert.Error(t, err)
		})
	}
}

func TestService_Cashout(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()

	result, err := svc.Cashout(ctx, contracts.CashoutRequest{PositionID: "pos-1", ClosePrice: 32, PnL: 60})
	require.NoError(t, err)
	assert.Equal(t, &contracts.CashoutResult{Success: true, Message: CashoutMessage, RealizedPnL: 60}, result)

	stored, err := mem.ListPositions(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "pos-2", stored[0].ID)

	// Already closed
	_, err = svc.Cashout(ctx, contracts.CashoutRequest{PositionID: "pos-1"})
	assert.NoError(t, err)

	_, err = svc.Cashout(ctx, contracts.CashoutRequest{})
	assert.Error(t, err)
}

type brokenRepo struct{ store.Memory }

func (*brokenRepo) ListPositions(ctx context.Context) ([]contracts.PortfolioPosition, error) {
	return nil, errors.New("connection reset")
}

func TestService_ListRepoError(t *testing.T) {
	svc := NewService(&brokenRepo{}, logger.Nop())

	_, err := svc.List(context.Background(), "0xabc")
	assert.ErrorContains(t, err, "connection reset")
}

func TestDemoPositions_PnL(t *testing.T) {
	demo := DemoPositions(fixedNow)
	require.Len(t, demo, 2)
	assert.InDelta(t, 60.0, demo[0].UnrealizedPnL(), 1e-9)
	assert.InDelta(t, -35.0, demo[1].UnrealizedPnL(), 1e-9)
}
