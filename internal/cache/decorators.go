package cache

import (
	"context"
	"time"

	"github.com/fermano/TennisPulse/internal/aggregate"
	"github.com/fermano/TennisPulse/internal/domain/window"
	"github.com/fermano/TennisPulse/pkg/metrics"
)

// RankingSource is the ranking interface the decorator wraps.
type RankingSource interface {
	TopWins(ctx context.Context, w window.Window, limit int) ([]aggregate.WinsEntry, error)
	TopPerformance(ctx context.Context, w window.Window, limit int) ([]aggregate.PerformanceEntry, error)
}

// HighlightsSource is the highlights interface the decorator wraps.
type HighlightsSource interface {
	Dashboard(ctx context.Context, w window.Window) (aggregate.Dashboard, error)
}

// CachedRanking memoizes ranking queries. Failed queries are never cached.
type CachedRanking struct {
	next  RankingSource
	cache *TTLCache
	ttl   time.Duration
}

// NewCachedRanking wraps next with the shared cache.
func NewCachedRanking(next RankingSource, cache *TTLCache, ttl time.Duration) *CachedRanking {
	if ttl <= 0 {
		ttl = DefaultRankingTTL
	}
	return &CachedRanking{next: next, cache: cache, ttl: ttl}
}

// TopWins serves from cache when a live entry exists.
func (c *CachedRanking) TopWins(ctx context.Context, w window.Window, limit int) ([]aggregate.WinsEntry, error) {
	key := winsKey(w.String(), itoa(limit))
	if v, ok := c.cache.Get(key); ok {
		metrics.RecordCacheHit(CategoryRankings)
		return v.([]aggregate.WinsEntry), nil
	}
	metrics.RecordCacheMiss(CategoryRankings)

	out, err := c.next.TopWins(ctx, w, limit)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, out, c.ttl)
	return out, nil
}

// TopPerformance serves from cache when a live entry exists.
func (c *CachedRanking) TopPerformance(ctx context.Context, w window.Window, limit int) ([]aggregate.PerformanceEntry, error) {
	key := performanceKey(w.String(), itoa(limit))
	if v, ok := c.cache.Get(key); ok {
		metrics.RecordCacheHit(CategoryRankings)
		return v.([]aggregate.PerformanceEntry), nil
	}
	metrics.RecordCacheMiss(CategoryRankings)

	out, err := c.next.TopPerformance(ctx, w, limit)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, out, c.ttl)
	return out, nil
}

// CachedHighlights memoizes the highlights dashboard per window.
type CachedHighlights struct {
	next  HighlightsSource
	cache *TTLCache
	ttl   time.Duration
}

// NewCachedHighlights wraps next with the shared cache.
func NewCachedHighlights(next HighlightsSource, cache *TTLCache, ttl time.Duration) *CachedHighlights {
	if ttl <= 0 {
		ttl = DefaultHighlightsTTL
	}
	return &CachedHighlights{next: next, cache: cache, ttl: ttl}
}

// Dashboard serves from cache when a live entry exists.
func (c *CachedHighlights) Dashboard(ctx context.Context, w window.Window) (aggregate.Dashboard, error) {
	key := highlightsKey(w.String())
	if v, ok := c.cache.Get(key); ok {
		metrics.RecordCacheHit(CategoryHighlights)
		return v.(aggregate.Dashboard), nil
	}
	metrics.RecordCacheMiss(CategoryHighlights)

	out, err := c.next.Dashboard(ctx, w)
	if err != nil {
		return aggregate.Dashboard{}, err
	}
	c.cache.Set(key, out, c.ttl)
	return out, nil
}
