package aggregate

import (
	"context"
	"sort"
	"time"

	"github.com/fermano/TennisPulse/internal/domain/metric"
	"github.com/fermano/TennisPulse/internal/domain/window"
)

// TimelineBucket is one calendar month of a player's metric averages.
// Month is the UTC year-month in "2006-01" form.
type TimelineBucket struct {
	Month    string                  `json:"month"`
	Averages map[metric.Kind]float64 `json:"averages"`
}

// Timeline is a player's month-by-month metric history, newest month first.
// OverallAverages weighs each month equally regardless of match count.
type Timeline struct {
	PlayerID        string                  `json:"playerId"`
	Window          window.Window           `json:"window"`
	Buckets         []TimelineBucket        `json:"timeline"`
	OverallAverages map[metric.Kind]float64 `json:"overallAverages"`
}

// TimelineService builds per-player metric timelines.
type TimelineService struct {
	store RecordSource
	now   func() time.Time
}

// NewTimeline creates a timeline service.
func NewTimeline(store RecordSource, opts ...TimelineOption) *TimelineService {
	t := &TimelineService{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// TimelineOption configures a TimelineService.
type TimelineOption func(*TimelineService)

// WithTimelineClock overrides the window anchor.
func WithTimelineClock(now func() time.Time) TimelineOption {
	return func(t *TimelineService) {
		if now != nil {
			t.now = now
		}
	}
}

// ForPlayer computes the monthly timeline for one player over the window.
// A player with no records in the window yields an empty timeline.
func (t *TimelineService) ForPlayer(ctx context.Context, playerID string, w window.Window) (Timeline, error) {
	records, err := t.store.ByPlayer(ctx, playerID)
	if err != nil {
		return Timeline{}, err
	}

	from, to := w.Bounds(t.now())

	type acc struct {
		sum   map[metric.Kind]float64
		count map[metric.Kind]int
	}
	months := make(map[string]*acc)
	for _, rec := range records {
		if !from.IsZero() && rec.CreatedAt.Before(from) {
			continue
		}
		if !to.IsZero() && !rec.CreatedAt.Before(to) {
			continue
		}

		month := rec.CreatedAt.UTC().Format("2006-01")
		a := months[month]
		if a == nil {
			a = &acc{
				sum:   make(map[metric.Kind]float64),
				count: make(map[metric.Kind]int),
			}
			months[month] = a
		}
		for kind, cm := range rec.Metrics {
			a.sum[kind] += cm.Value
			a.count[kind]++
		}
	}

	buckets := make([]TimelineBucket, 0, len(months))
	for month, a := range months {
		averages := make(map[metric.Kind]float64, len(a.sum))
		for kind, sum := range a.sum {
			averages[kind] = sum / float64(a.count[kind])
		}
		buckets = append(buckets, TimelineBucket{Month: month, Averages: averages})
	}
	// The "2006-01" form sorts lexicographically; newest first.
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Month > buckets[j].Month })

	return Timeline{
		PlayerID:        playerID,
		Window:          w,
		Buckets:         buckets,
		OverallAverages: overallAverages(buckets),
	}, nil
}

// overallAverages is the mean of the per-bucket means, so each month counts
// once no matter how many matches it holds.
func overallAverages(buckets []TimelineBucket) map[metric.Kind]float64 {
	sum := make(map[metric.Kind]float64)
	count := make(map[metric.Kind]int)
	for _, b := range buckets {
		for kind, avg := range b.Averages {
			sum[kind] += avg
			count[kind]++
		}
	}

	out := make(map[metric.Kind]float64, len(sum))
	for kind, s := range sum {
		out[kind] = s / float64(count[kind])
	}
	return out
}
