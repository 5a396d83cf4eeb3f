package markets

import (
	"sync"
	"time"

	"github.com/wonny/brier-terminal/backend/internal/contracts"
	"github.com/wonny/brier-terminal/backend/pkg/logger"
)

// DefaultQuoteTTL is how long a feed's last good snapshot may stand in for it
const DefaultQuoteTTL = 15 * time.Minute

// QuoteCache keeps the last good market snapshot of each live feed
// ⭐ SSOT: 피드별 마지막 정상 시세는 여기서만 보관
type QuoteCache struct {
	mu     sync.RWMutex
	feeds  map[string]quoteSnapshot
	ttl    time.Duration
	logger *logger.Logger
}

type quoteSnapshot struct {
	markets   []contracts.Market
	fetchedAt time.Time
}

// NewQuoteCache creates a new quote cache
func NewQuoteCache(ttl time.Duration, log *logger.Logger) *QuoteCache {
	return &QuoteCache{
		feeds:  make(map[string]quoteSnapshot),
		ttl:    ttl,
		logger: log,
	}
}

// Update stores a feed snapshot.
// Snapshots older than the stored one are rejected.
func (c *QuoteCache) Update(feed string, markets []contracts.Market, at time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.feeds[feed]; ok && at.Before(existing.fetchedAt) {
		c.logger.WithFields(map[string]interface{}{
			"feed":     feed,
			"new_time": at,
			"old_time": existing.fetchedAt,
		}).Debug("Rejected older quote snapshot")
		return false
	}

	c.feeds[feed] = quoteSnapshot{
		markets:   append([]contracts.Market(nil), markets...),
		fetchedAt: at,
	}
	return true
}

// Get returns a copy of the feed's last snapshot and whether it has
// outlived the TTL at now
func (c *QuoteCache) Get(feed string, now time.Time) (markets []contracts.Market, stale bool, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap, ok := c.feeds[feed]
	if !ok {
		return nil, false, false
	}

	return append([]contracts.Market(nil), snap.markets...), now.Sub(snap.fetchedAt) > c.ttl, true
}

// Len returns the number of feeds with a snapshot
func (c *QuoteCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.feeds)
}
