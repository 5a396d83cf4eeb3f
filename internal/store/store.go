package store

import (
	"context"
	"fmt"

	"github.com/wonny/brier-terminal/backend/internal/contracts"
	"github.com/wonny/brier-terminal/backend/pkg/config"
	"github.com/wonny/brier-terminal/backend/pkg/database"
)

var (
	_ contracts.Store = (*Memory)(nil)
	_ contracts.Store = (*Postgres)(nil)
)

// Open builds the store selected by STORE_DRIVER
// ⭐ SSOT: 저장소 드라이버 선택은 여기서만
func Open(ctx context.Context, cfg *config.Config) (contracts.Store, error) {
	switch cfg.Store.Driver {
	case config.StorePostgres:
		db, err := database.New(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}

		pg := NewPostgres(db.Pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, err
		}
		return pg, nil

	case config.StoreMemory, "":
		return NewMemory(), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
