package httputil_test

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/brier-terminal/backend/pkg/config"
	"github.com/wonny/brier-terminal/backend/pkg/httputil"
	"github.com/wonny/brier-terminal/backend/pkg/logger"
	"github.com/wonny/brier-terminal/backend/pkg/redis"
)

// Example_withRateLimiter demonstrates a client shared across instances through Redis
func Example_withRateLimiter() {
	cfg := &config.Config{Env: "production", LogLevel: "info"}
	log := logger.New(cfg)

	rdb, err := redis.New(cfg)
	if err != nil {
		fmt.Printf("Redis unavailable: %v\n", err)
		return
	}
	defer rdb.Close()

	client := httputil.New(cfg, log).
		WithRetry(2, time.Second).
		WithRateLimiter(redis.NewRateLimiter(rdb), redis.PolymarketRateLimit)

	resp, err := client.Get(context.Background(), "https://gamma-api.polymarket.com/events?limit=1")
	if err != nil {
		fmt.Printf("Request failed: %v\n", err)
		return
	}
	defer resp.Body.Close()

	fmt.Printf("Status: %d\n", resp.StatusCode)
}
