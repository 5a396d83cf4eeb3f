package markets

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wonny/brier-terminal/backend/internal/contracts"
	"github.com/wonny/brier-terminal/backend/internal/external/kalshi"
	"github.com/wonny/brier-terminal/backend/internal/external/polymarket"
	"github.com/wonny/brier-terminal/backend/pkg/logger"
	"github.com/wonny/brier-terminal/backend/pkg/redis"
)

// Feed sources
const (
	SourceCatalog = "catalog"
	SourceLive    = "live"
)

// Cache is the shared market list cache
type Cache interface {
	GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, fn func() (interface{}, error)) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// PolymarketSource fetches Gamma events
type PolymarketSource interface {
	FetchActiveEvents(ctx context.Context, limit int) ([]polymarket.Event, error)
}

// KalshiSource fetches Kalshi markets
type KalshiSource interface {
	FetchOpenMarkets(ctx context.Context, limit int) ([]kalshi.Market, error)
}

// Service serves the unified market list
// ⭐ SSOT: 마켓 목록은 이 서비스에서만 조립
type Service struct {
	poly     PolymarketSource
	kalshi   KalshiSource
	cache    Cache
	cacheTTL time.Duration
	limit    int
	quotes   *QuoteCache
	now      func() time.Time
	logger   *logger.Logger
}

// NewService creates a catalog-only market service. A zero cacheTTL uses
// redis.TTLMarkets.
func NewService(cache Cache, cacheTTL time.Duration, log *logger.Logger) *Service {
	if cacheTTL <= 0 {
		cacheTTL = redis.TTLMarkets
	}
	log = log.WithComponent("markets")
	return &Service{
		cache:    cache,
		cacheTTL: cacheTTL,
		limit:    10,
		quotes:   NewQuoteCache(DefaultQuoteTTL, log),
		now:      time.Now,
		logger:   log,
	}
}

// WithLiveFeeds enables the Polymarket and Kalshi feeds
func (s *Service) WithLiveFeeds(poly PolymarketSource, kal KalshiSource, limit int) *Service {
	s.poly = poly
	s.kalshi = kal
	if limit > 0 {
		s.limit = limit
	}
	return s
}

// Live reports whether any live feed is configured
func (s *Service) Live() bool {
	return s.poly != nil || s.kalshi != nil
}

// List returns markets with affiliate links, served from cache when warm
func (s *Service) List(ctx context.Context) ([]contracts.Market, error) {
	if s.cache == nil {
		return s.collect(ctx)
	}

	var list []contracts.Market
	err := s.cache.GetOrSet(ctx, redis.MarketsKey(s.source()), &list, s.cacheTTL, func() (interface{}, error) {
		return s.collect(ctx)
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Refresh rebuilds the market list and stores it in the cache
func (s *Service) Refresh(ctx context.Context) ([]contracts.Market, error) {
	list, err := s.collect(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, redis.MarketsKey(s.source()), list, s.cacheTTL); err != nil {
			s.logger.WithError(err).Warn("Market cache write failed")
		}
	}

	return list, nil
}

// collect builds the list unless ctx ended while fetching
func (s *Service) collect(ctx context.Context) ([]contracts.Market, error) {
	list := s.build(ctx)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("build markets: %w", err)
	}
	return list, nil
}

func (s *Service) source() string {
	if s.Live() {
		return SourceLive
	}
	return SourceCatalog
}

// build never fails: live errors fall back to the catalog
func (s *Service) build(ctx context.Context) []contracts.Market {
	if !s.Live() {
		return withAffiliateLinks(Catalog())
	}

	var polyMarkets, kalshiMarkets []contracts.Market

	eg, egCtx := errgroup.WithContext(ctx)

	if s.poly != nil {
		eg.Go(func() error {
			polyMarkets = s.fetchFeed(egCtx, "polymarket", func(ctx context.Context) ([]contracts.Market, error) {
				events, err := s.poly.FetchActiveEvents(ctx, s.limit)
				if err != nil {
					return nil, err
				}
				out := make([]contracts.Market, 0, len(events))
				for _, e := range events {
					out = append(out, fromPolymarket(e))
				}
				return out, nil
			})
			return nil
		})
	}

	if s.kalshi != nil {
		eg.Go(func() error {
			kalshiMarkets = s.fetchFeed(egCtx, "kalshi", func(ctx context.Context) ([]contracts.Market, error) {
				markets, err := s.kalshi.FetchOpenMarkets(ctx, s.limit)
				if err != nil {
					return nil, err
				}
				out := make([]contracts.Market, 0, len(markets))
				for _, m := range markets {
					out = append(out, fromKalshi(m))
				}
				return out, nil
			})
			return nil
		})
	}

	_ = eg.Wait()

	all := append(polyMarkets, kalshiMarkets...)
	if len(all) == 0 {
		s.logger.Warn("Live feeds returned no markets, serving catalog")
		return withAffiliateLinks(Catalog())
	}

	s.logger.WithFields(map[string]interface{}{
		"polymarket": len(polyMarkets),
		"kalshi":     len(kalshiMarkets),
	}).Debug("Built live market list")

	return withAffiliateLinks(all)
}

// fetchFeed runs one live feed. A failed feed is served from its last good
// snapshot while that snapshot is within the quote TTL.
func (s *Service) fetchFeed(ctx context.Context, feed string, fetch func(context.Context) ([]contracts.Market, error)) []contracts.Market {
	markets, err := fetch(ctx)
	if err == nil {
		if len(markets) > 0 {
			s.quotes.Update(feed, markets, s.now())
		}
		return markets
	}

	log := s.logger.WithField("feed", feed).WithError(err)

	last, stale, ok := s.quotes.Get(feed, s.now())
	if !ok || stale {
		log.Warn("Live feed failed")
		return nil
	}

	log.WithField("markets", len(last)).Warn("Live feed failed, serving last good quotes")
	return last
}
