// Package aggregate builds the read models served by the query API:
// win and performance rankings, the highlights dashboard, and per-player
// metric timelines. Everything here is read-only over the analytics store
// and the registry; sparse data yields empty or partial results, never
// errors.
package aggregate

import (
	"context"
	"sort"
	"time"

	"github.com/fermano/TennisPulse/internal/adapters/registry"
	"github.com/fermano/TennisPulse/internal/domain/model"
	"github.com/fermano/TennisPulse/internal/domain/window"
)

// RecordSource is the slice of the analytics store the aggregators read.
type RecordSource interface {
	Between(ctx context.Context, from, to time.Time) ([]model.Record, error)
	ByPlayer(ctx context.Context, playerID string) ([]model.Record, error)
}

// WinCounter supplies grouped win counts from the match registry.
type WinCounter interface {
	WinCountsBetween(ctx context.Context, from, to time.Time) ([]registry.WinCount, error)
}

// NameResolver maps player ids to display names.
type NameResolver interface {
	PlayerName(ctx context.Context, id string) string
}

// WinsEntry is one row of the wins ranking.
type WinsEntry struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Wins       int64  `json:"wins"`
}

// PerformanceEntry is one row of the performance ranking.
type PerformanceEntry struct {
	PlayerID     string  `json:"playerId"`
	PlayerName   string  `json:"playerName"`
	AverageScore float64 `json:"averageScore"`
	Matches      int     `json:"matchesCount"`
}

// Ranking computes win and performance rankings over a query window.
type Ranking struct {
	store RecordSource
	wins  WinCounter
	names NameResolver
	now   func() time.Time
}

// NewRanking creates a ranking service.
func NewRanking(store RecordSource, wins WinCounter, names NameResolver, opts ...RankingOption) *Ranking {
	r := &Ranking{
		store: store,
		wins:  wins,
		names: names,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RankingOption configures a Ranking.
type RankingOption func(*Ranking)

// WithRankingClock overrides the window anchor.
func WithRankingClock(now func() time.Time) RankingOption {
	return func(r *Ranking) {
		if now != nil {
			r.now = now
		}
	}
}

// TopWins returns the players with the most completed-match wins inside the
// window, most wins first, truncated to limit.
func (r *Ranking) TopWins(ctx context.Context, w window.Window, limit int) ([]WinsEntry, error) {
	from, to := w.Bounds(r.now())
	counts, err := r.wins.WinCountsBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	out := make([]WinsEntry, 0, min(limit, len(counts)))
	for _, wc := range counts {
		if len(out) >= limit {
			break
		}
		out = append(out, WinsEntry{
			PlayerID:   wc.PlayerID,
			PlayerName: wc.PlayerName,
			Wins:       wc.Wins,
		})
	}
	return out, nil
}

// TopPerformance ranks players by their mean analysis score inside the
// window. A record scores the mean of its metric status scores; a player
// scores the mean over their records.
func (r *Ranking) TopPerformance(ctx context.Context, w window.Window, limit int) ([]PerformanceEntry, error) {
	from, to := w.Bounds(r.now())
	records, err := r.store.Between(ctx, from, to)
	if err != nil {
		return nil, err
	}

	byPlayer := make(map[string][]model.Record)
	for _, rec := range records {
		byPlayer[rec.PlayerID] = append(byPlayer[rec.PlayerID], rec)
	}

	out := make([]PerformanceEntry, 0, len(byPlayer))
	for playerID, recs := range byPlayer {
		var total float64
		for _, rec := range recs {
			total += recordScore(rec)
		}
		out = append(out, PerformanceEntry{
			PlayerID:     playerID,
			PlayerName:   r.names.PlayerName(ctx, playerID),
			AverageScore: total / float64(len(recs)),
			Matches:      len(recs),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].AverageScore > out[j].AverageScore
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// recordScore is the mean of the record's metric status scores. A record
// with no classified metrics scores zero.
func recordScore(rec model.Record) float64 {
	if len(rec.Metrics) == 0 {
		return 0.0
	}
	var total int
	for _, cm := range rec.Metrics {
		total += cm.Status.Score()
	}
	return float64(total) / float64(len(rec.Metrics))
}
