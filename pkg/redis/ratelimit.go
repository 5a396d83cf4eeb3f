package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// slidingWindow trims entries older than the window, then admits the call
// only if fewer than limit remain. Returns {admitted, remaining}.
var slidingWindow = redis.NewScript(`
	local key = KEYS[1]
	local now = tonumber(ARGV[1])
	local window_ms = tonumber(ARGV[2])
	local limit = tonumber(ARGV[3])

	redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window_ms)
	local count = redis.call('ZCARD', key)
	if count >= limit then
		return {0, 0}
	end
	redis.call('ZADD', key, now, now)
	redis.call('PEXPIRE', key, window_ms)
	return {1, limit - count - 1}
`)

// waitBackoff is the pause between admission checks in Wait
const waitBackoff = 100 * time.Millisecond

// RateLimiter shares the Polymarket/Kalshi request budget across API instances.
// Each external client still keeps its own in-process token bucket.
// ⭐ SSOT: 인스턴스 간 공유 레이트 리밋은 여기서만
type RateLimiter struct {
	client *Client
}

// RateLimitConfig is one upstream's budget
type RateLimitConfig struct {
	Key    string        // upstream name ("polymarket", "kalshi")
	Limit  int           // calls admitted per window
	Window time.Duration
}

func NewRateLimiter(client *Client) *RateLimiter {
	return &RateLimiter{client: client}
}

// Allow reports whether one more call fits in cfg's window and how many remain.
// Without Redis every call is admitted.
func (r *RateLimiter) Allow(ctx context.Context, cfg RateLimitConfig) (bool, int, error) {
	if !r.client.Enabled() {
		return true, cfg.Limit, nil
	}

	res, err := slidingWindow.Run(ctx, r.client.Redis(),
		[]string{r.client.key("ratelimit", cfg.Key)},
		time.Now().UnixMilli(),
		cfg.Window.Milliseconds(),
		cfg.Limit,
	).Int64Slice()
	if err != nil {
		return false, 0, fmt.Errorf("rate limit %s: %w", cfg.Key, err)
	}
	if len(res) != 2 {
		return false, 0, fmt.Errorf("rate limit %s: unexpected reply %v", cfg.Key, res)
	}

	return res[0] == 1, int(res[1]), nil
}

// Wait polls Allow until the call is admitted or ctx ends
func (r *RateLimiter) Wait(ctx context.Context, cfg RateLimitConfig) error {
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}

		ok, _, err := r.Allow(ctx, cfg)
		if err != nil || ok {
			return err
		}
		timer.Reset(waitBackoff)
	}
}

// Predefined rate limit configs for external APIs
// Shared across instances, unlike the in-process token bucket of each client
var (
	// Polymarket Gamma: 10초당 100회 (보수적)
	PolymarketRateLimit = RateLimitConfig{
		Key:    "polymarket",
		Limit:  100,
		Window: 10 * time.Second,
	}

	// Kalshi: 초당 10회 제한 (basic tier)
	KalshiRateLimit = RateLimitConfig{
		Key:    "kalshi",
		Limit:  10,
		Window: time.Second,
	}
)
