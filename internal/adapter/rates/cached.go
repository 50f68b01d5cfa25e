// Package rates provides caching around exchange-rate providers.
package rates

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/buddybudget/networth-backend/internal/domain"
)

// Cache stores quoted rates for a bounded time. A miss is (nil, nil).
type Cache interface {
	Get(ctx context.Context, key string) (*domain.ExchangeRate, error)
	Set(ctx context.Context, key string, rate *domain.ExchangeRate, ttl time.Duration) error
}

// CachedProvider decorates a RateProvider with a cache. Cache failures are
// logged and treated as misses; the provider of record stays authoritative.
type CachedProvider struct {
	next   domain.RateProvider
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedProvider creates a new CachedProvider
func NewCachedProvider(next domain.RateProvider, cache Cache, ttl time.Duration, logger *slog.Logger) *CachedProvider {
	return &CachedProvider{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// GetRate returns a cached rate when present, otherwise asks the underlying
// provider and caches its answer.
func (p *CachedProvider) GetRate(ctx context.Context, from, to string) (*domain.ExchangeRate, error) {
	key := cacheKey(from, to)

	cached, err := p.cache.Get(ctx, key)
	if err != nil {
		p.logger.Warn("rate cache get failed", "key", key, "error", err)
	}
	if cached != nil {
		p.logger.Debug("rate cache hit", "key", key)
		return cached, nil
	}

	rate, err := p.next.GetRate(ctx, from, to)
	if err != nil {
		return nil, err
	}

	if err := p.cache.Set(ctx, key, rate, p.ttl); err != nil {
		p.logger.Warn("rate cache set failed", "key", key, "error", err)
	}

	return rate, nil
}

func cacheKey(from, to string) string {
	return fmt.Sprintf("rate:%s:%s", from, to)
}
