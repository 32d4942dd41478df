// Package cache provides a small in-memory TTL cache and the decorators
// that put it in front of the ranking and highlights services. Entries
// expire lazily on read; concurrent populations of the same key are
// tolerated, last write wins.
package cache

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fermano/TennisPulse/pkg/metrics"
)

// Cache categories used for keys and invalidation.
const (
	CategoryRankings   = "rankings"
	CategoryHighlights = "highlights"
)

// Default TTLs, overridable per decorator.
const (
	DefaultRankingTTL    = 30 * time.Minute
	DefaultHighlightsTTL = time.Hour
)

type entry struct {
	value     any
	expiresAt time.Time
}

// TTLCache is a map-backed cache with per-entry expiry.
type TTLCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// New creates an empty cache.
func New(opts ...Option) *TTLCache {
	c := &TTLCache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Option configures a TTLCache.
type Option func(*TTLCache)

// WithClock overrides the expiry clock.
func WithClock(now func() time.Time) Option {
	return func(c *TTLCache) {
		if now != nil {
			c.now = now
		}
	}
}

// Get returns the live value for key, if any.
func (c *TTLCache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock; a fresher value may have landed.
		if cur, ok := c.entries[key]; ok && c.now().After(cur.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

// Set stores value under key for ttl.
func (c *TTLCache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = entry{value: value, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
}

// InvalidatePrefix drops every entry whose key starts with prefix.
func (c *TTLCache) InvalidatePrefix(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	var dropped int
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
			dropped++
		}
	}
	return dropped
}

// InvalidateRankings drops all cached ranking results. Called by the
// ingestion worker after every stored record; highlight entries ride out
// their TTL instead.
func (c *TTLCache) InvalidateRankings() {
	c.InvalidatePrefix(CategoryRankings + "|")
	metrics.RecordCacheInvalidation()
}

// Len returns the number of entries, expired ones included.
func (c *TTLCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func winsKey(w, limit string) string {
	return CategoryRankings + "|wins|" + w + "|" + limit
}

func performanceKey(w, limit string) string {
	return CategoryRankings + "|performance|" + w + "|" + limit
}

func highlightsKey(w string) string {
	return CategoryHighlights + "|" + w
}

func itoa(n int) string { return strconv.Itoa(n) }
