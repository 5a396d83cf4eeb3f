package redis

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wonny/brier-terminal/backend/pkg/config"
)

// dialCheckTimeout bounds the startup PING so a dead cache cannot stall `brier api`
const dialCheckTimeout = 3 * time.Second

// DefaultPrefix namespaces every key when REDIS_PREFIX is unset
const DefaultPrefix = "brier"

// Client is the shared connection behind the leaderboard/market cache and
// the cross-instance API rate limiter.
// ⭐ SSOT: Redis 연결은 여기서만 생성. REDIS_ENABLED=false면 모든 호출이 no-op
type Client struct {
	rdb    *redis.Client
	prefix string
}

// New dials Redis when enabled. A disabled config yields a client whose
// cache misses and rate limits always pass.
func New(cfg *config.Config) (*Client, error) {
	c := &Client{prefix: cfg.Redis.Prefix}
	if c.prefix == "" {
		c.prefix = DefaultPrefix
	}
	if !cfg.Redis.Enabled {
		return c, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), dialCheckTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", rdb.Options().Addr, err)
	}

	c.rdb = rdb
	return c, nil
}

func (c *Client) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

// Enabled reports whether a live connection backs this client
func (c *Client) Enabled() bool {
	return c.rdb != nil
}

// Prefix is the namespace shared by Cache and RateLimiter keys
func (c *Client) Prefix() string {
	return c.prefix
}

// key joins the prefix with the given parts ("brier:ratelimit:kalshi")
func (c *Client) key(parts ...string) string {
	k := c.prefix
	for _, p := range parts {
		k += ":" + p
	}
	return k
}

// Redis exposes the raw client; nil when disabled
func (c *Client) Redis() *redis.Client {
	return c.rdb
}
