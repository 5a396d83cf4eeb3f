package commands

import (
	"context"
	"fmt"

	"github.com/wonny/brier-terminal/backend/internal/contracts"
	"github.com/wonny/brier-terminal/backend/internal/external/kalshi"
	"github.com/wonny/brier-terminal/backend/internal/external/polymarket"
	"github.com/wonny/brier-terminal/backend/internal/leaderboard"
	"github.com/wonny/brier-terminal/backend/internal/markets"
	"github.com/wonny/brier-terminal/backend/internal/portfolio"
	"github.com/wonny/brier-terminal/backend/internal/realtime"
	"github.com/wonny/brier-terminal/backend/internal/scheduler"
	"github.com/wonny/brier-terminal/backend/internal/scheduler/jobs"
	"github.com/wonny/brier-terminal/backend/internal/store"
	"github.com/wonny/brier-terminal/backend/internal/whales"
	"github.com/wonny/brier-terminal/backend/pkg/config"
	"github.com/wonny/brier-terminal/backend/pkg/httputil"
	"github.com/wonny/brier-terminal/backend/pkg/logger"
	"github.com/wonny/brier-terminal/backend/pkg/redis"
)

// app holds the wired services shared by every command
type app struct {
	cfg   *config.Config
	log   *logger.Logger
	store contracts.Store
	redis *redis.Client
	hub   *realtime.Hub // nil unless the websocket stream is served

	leaderboard *leaderboard.Service
	whales      *whales.Feed
	markets     *markets.Service
	portfolio   *portfolio.Service
}

// newApp loads config and wires every service.
// withHub creates the websocket hub that receives indexed whale trades.
func newApp(ctx context.Context, withHub bool) (*app, error) {
	// 1. Load config
	cfg, err := config.LoadFrom(configFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Open store
	st, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	log.WithField("driver", cfg.Store.Driver).Info("Store opened")

	// 4. Connect to Redis (no-op client when disabled)
	rdb, err := redis.New(cfg)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	cache := redis.NewCache(rdb)

	a := &app{
		cfg:   cfg,
		log:   log,
		store: st,
		redis: rdb,
	}

	// 5. Leaderboard
	perturber := leaderboard.NewPerturber(nil, cfg.Leaderboard.PnLSpread, cfg.Leaderboard.ScoreSpread)
	a.leaderboard = leaderboard.NewService(st, perturber, cache, cfg.Leaderboard.CacheTTL, log)

	// 6. Whale feed, pushing to the hub when one is served
	var publisher whales.Publisher
	if withHub {
		a.hub = realtime.NewHub(cfg.AllowedOrigin, log)
		publisher = a.hub
	}
	a.whales = whales.NewFeed(whales.NewScanner(nil, cfg.Whales.BatchSize), st, publisher, log)

	// 7. Markets
	a.markets = markets.NewService(cache, cfg.Markets.CacheTTL, log)
	if cfg.Markets.Live {
		limiter := redis.NewRateLimiter(rdb)
		polyHTTP := httputil.New(cfg, log).WithRateLimiter(limiter, redis.PolymarketRateLimit)
		kalshiHTTP := httputil.New(cfg, log).WithRateLimiter(limiter, redis.KalshiRateLimit)

		a.markets.WithLiveFeeds(
			polymarket.NewClient(polyHTTP, cfg.Markets.PolymarketURL, log),
			kalshi.NewClient(kalshiHTTP, cfg.Markets.KalshiURL, log),
			cfg.Markets.Limit,
		)
	}

	// 8. Portfolio
	a.portfolio = portfolio.NewService(st, log)

	// 9. Seed demo data
	if err := a.leaderboard.EnsureSeeded(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("seed leaderboard: %w", err)
	}
	if err := a.portfolio.EnsureSeeded(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("seed portfolio: %w", err)
	}

	return a, nil
}

// newScheduler registers every cron job against the app services
func (a *app) newScheduler() (*scheduler.Scheduler, error) {
	sched := scheduler.New(a.cfg.Scheduler, a.log)
	cronLog := a.log.WithComponent("cron")

	for _, job := range []scheduler.Job{
		jobs.NewRankUpdateJob(a.leaderboard, a.cfg.Scheduler.RankUpdateSchedule, cronLog),
		jobs.NewWhaleScanJob(a.whales, a.cfg.Scheduler.WhaleScanSchedule, cronLog),
		jobs.NewMarketRefreshJob(a.markets, a.cfg.Scheduler.MarketRefreshSchedule, cronLog),
	} {
		if err := sched.AddJob(job); err != nil {
			return nil, fmt.Errorf("register job: %w", err)
		}
	}

	return sched, nil
}

// Close releases the hub, store and redis connection
func (a *app) Close() {
	if a.hub != nil {
		a.hub.Close()
	}
	a.store.Close()
	if err := a.redis.Close(); err != nil {
		a.log.WithError(err).Warn("Failed to close redis")
	}
}
