package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/brier-terminal/backend/pkg/config"
)

// ApplicationName shows up in pg_stat_activity for every Brier connection
const ApplicationName = "brier-terminal"

// connectCheckTimeout bounds the first ping after the pool is built
const connectCheckTimeout = 5 * time.Second

// DB owns the pgx pool behind the leaderboard, whale and portfolio tables.
// ⭐ SSOT: pgxpool 생성은 이 패키지에서만 (store.Open, brier test-db)
type DB struct {
	Pool *pgxpool.Pool
}

// New builds the pool and pings it once; ctx bounds only the connect phase
func New(ctx context.Context, cfg *config.Config) (*DB, error) {
	poolConfig, err := PoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectCheckTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping %s: %w", poolConfig.ConnConfig.Host, err)
	}

	return &DB{Pool: pool}, nil
}

// PoolConfig parses DATABASE_URL and applies DB_MAX_CONNS / DB_MIN_CONNS.
// Zero limits keep pgx defaults; MinConns never exceeds MaxConns.
func PoolConfig(cfg *config.Config) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}

	d := cfg.Database
	if d.MaxConns > 0 {
		poolConfig.MaxConns = int32(d.MaxConns)
	}
	if d.MinConns > 0 {
		poolConfig.MinConns = int32(d.MinConns)
	}
	if poolConfig.MinConns > poolConfig.MaxConns {
		poolConfig.MinConns = poolConfig.MaxConns
	}
	if d.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = d.MaxConnLifetime
	}
	if d.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = d.MaxConnIdleTime
	}

	if _, ok := poolConfig.ConnConfig.RuntimeParams["application_name"]; !ok {
		poolConfig.ConnConfig.RuntimeParams["application_name"] = ApplicationName
	}

	return poolConfig, nil
}

func (db *DB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// HealthStatus is what `brier test-db` prints
type HealthStatus struct {
	Healthy      bool          `json:"healthy"`
	Timestamp    time.Time     `json:"timestamp"`
	ResponseTime time.Duration `json:"response_time"`
	Error        string        `json:"error,omitempty"`
	Stats        PoolStats     `json:"stats"`
}

type PoolStats struct {
	AcquireCount  int64 `json:"acquire_count"`
	AcquiredConns int32 `json:"acquired_conns"`
	IdleConns     int32 `json:"idle_conns"`
	MaxConns      int32 `json:"max_conns"`
	TotalConns    int32 `json:"total_conns"`
}

// HealthCheck pings once and snapshots the pool counters
func (db *DB) HealthCheck(ctx context.Context) (*HealthStatus, error) {
	start := time.Now()
	status := &HealthStatus{Timestamp: start}

	if err := db.Pool.Ping(ctx); err != nil {
		status.Error = err.Error()
		return status, err
	}

	status.ResponseTime = time.Since(start)
	status.Stats = db.Stats()
	status.Healthy = true
	return status, nil
}

func (db *DB) Stats() PoolStats {
	s := db.Pool.Stat()
	return PoolStats{
		AcquireCount:  s.AcquireCount(),
		AcquiredConns: s.AcquiredConns(),
		IdleConns:     s.IdleConns(),
		MaxConns:      s.MaxConns(),
		TotalConns:    s.TotalConns(),
	}
}
