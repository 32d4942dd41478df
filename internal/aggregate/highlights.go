package aggregate

import (
	"context"
	"sort"
	"time"

	"github.com/fermano/TennisPulse/internal/domain/metric"
	"github.com/fermano/TennisPulse/internal/domain/model"
	"github.com/fermano/TennisPulse/internal/domain/window"
)

// Highlight categories shown on the dashboard.
const (
	CategoryBestServe    = "BEST_SERVE"
	CategoryBestRally    = "BEST_RALLY_PLAYER"
	CategoryBestNet      = "BEST_NET_PLAYER"
	CategoryBestPressure = "BEST_PRESSURE_PLAYER"
	CategoryCleanestBase = "CLEANEST_BASELINE"
)

const (
	highlightErrorBudget    = 30.0 // errors at which the baseline score bottoms out
	highlightWinnersCeiling = 30.0 // winners at which the winners sub-score saturates
)

// Highlight is the winning player of one dashboard category.
type Highlight struct {
	PlayerID   string             `json:"playerId"`
	PlayerName string             `json:"playerName"`
	Score      float64            `json:"score"`
	Details    map[string]float64 `json:"details"`
}

// Dashboard is the full highlights response for one window. Categories with
// no eligible players are omitted.
type Dashboard struct {
	Window     window.Window        `json:"window"`
	Highlights map[string]Highlight `json:"highlights"`
}

// Highlights computes the best-in-category dashboard over a query window.
type Highlights struct {
	store RecordSource
	names NameResolver
	now   func() time.Time
}

// NewHighlights creates a highlights service.
func NewHighlights(store RecordSource, names NameResolver, opts ...HighlightsOption) *Highlights {
	h := &Highlights{
		store: store,
		names: names,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HighlightsOption configures a Highlights service.
type HighlightsOption func(*Highlights)

// WithHighlightsClock overrides the window anchor.
func WithHighlightsClock(now func() time.Time) HighlightsOption {
	return func(h *Highlights) {
		if now != nil {
			h.now = now
		}
	}
}

// playerMeans holds one player's per-metric averages over the window.
type playerMeans struct {
	playerID string
	means    map[metric.Kind]float64
}

func (p playerMeans) value(k metric.Kind) float64 {
	return p.means[k]
}

// Dashboard computes every highlight category for the window.
func (h *Highlights) Dashboard(ctx context.Context, w window.Window) (Dashboard, error) {
	from, to := w.Bounds(h.now())
	records, err := h.store.Between(ctx, from, to)
	if err != nil {
		return Dashboard{}, err
	}

	players := averagePerPlayer(records)
	out := Dashboard{
		Window:     w,
		Highlights: make(map[string]Highlight),
	}
	if len(players) == 0 {
		return out, nil
	}

	categories := map[string]func(playerMeans) (float64, map[string]float64){
		CategoryBestServe:    serveScore,
		CategoryBestRally:    rallyScore,
		CategoryBestNet:      netScore,
		CategoryBestPressure: pressureScore,
		CategoryCleanestBase: baselineScore,
	}
	for category, scoreFn := range categories {
		best := pickBest(players, scoreFn)
		best.PlayerName = h.names.PlayerName(ctx, best.PlayerID)
		out.Highlights[category] = best
	}
	return out, nil
}

// averagePerPlayer folds records into per-player per-metric means. Metrics a
// player never recorded stay absent and read as zero in the category formulas.
func averagePerPlayer(records []model.Record) []playerMeans {
	type acc struct {
		sum   map[metric.Kind]float64
		count map[metric.Kind]int
	}
	byPlayer := make(map[string]*acc)
	for _, rec := range records {
		a := byPlayer[rec.PlayerID]
		if a == nil {
			a = &acc{
				sum:   make(map[metric.Kind]float64),
				count: make(map[metric.Kind]int),
			}
			byPlayer[rec.PlayerID] = a
		}
		for kind, cm := range rec.Metrics {
			a.sum[kind] += cm.Value
			a.count[kind]++
		}
	}

	out := make([]playerMeans, 0, len(byPlayer))
	for playerID, a := range byPlayer {
		means := make(map[metric.Kind]float64, len(a.sum))
		for kind, sum := range a.sum {
			means[kind] = sum / float64(a.count[kind])
		}
		out = append(out, playerMeans{playerID: playerID, means: means})
	}
	// Stable candidate order so equal scores pick the same winner every run.
	sort.Slice(out, func(i, j int) bool { return out[i].playerID < out[j].playerID })
	return out
}

func pickBest(players []playerMeans, score func(playerMeans) (float64, map[string]float64)) Highlight {
	var best Highlight
	for i, p := range players {
		s, details := score(p)
		if i == 0 || s > best.Score {
			best = Highlight{PlayerID: p.playerID, Score: s, Details: details}
		}
	}
	return best
}

func serveScore(p playerMeans) (float64, map[string]float64) {
	firstIn := p.value(metric.FirstServeIn)
	firstWon := p.value(metric.FirstServePointsWon)
	secondWon := p.value(metric.SecondServePointsWon)
	score := 0.4*firstIn + 0.3*firstWon + 0.3*secondWon
	return score, map[string]float64{
		"FIRST_SERVE_IN":          firstIn,
		"FIRST_SERVE_POINTS_WON":  firstWon,
		"SECOND_SERVE_POINTS_WON": secondWon,
	}
}

func rallyScore(p playerMeans) (float64, map[string]float64) {
	longRally := p.value(metric.LongRallyWinRate)
	fhErrors := p.value(metric.UnforcedErrorsForehand)
	bhErrors := p.value(metric.UnforcedErrorsBackhand)
	totalErrors := fhErrors + bhErrors
	score := 0.6*longRally + 0.4*errorScore(totalErrors)
	return score, map[string]float64{
		"LONG_RALLY_WIN_RATE":      longRally,
		"UNFORCED_ERRORS_FOREHAND": fhErrors,
		"UNFORCED_ERRORS_BACKHAND": bhErrors,
		"TOTAL_ERRORS":             totalErrors,
	}
}

func netScore(p playerMeans) (float64, map[string]float64) {
	netWon := p.value(metric.NetPointsWon)
	winners := p.value(metric.Winners)
	winnersScore := min(100.0, winners/highlightWinnersCeiling*100.0)
	score := 0.7*netWon + 0.3*winnersScore
	return score, map[string]float64{
		"NET_POINTS_WON": netWon,
		"WINNERS":        winners,
		"WINNERS_SCORE":  winnersScore,
	}
}

func pressureScore(p playerMeans) (float64, map[string]float64) {
	conv := p.value(metric.BreakPointConversion)
	saved := p.value(metric.BreakPointsSaved)
	return 0.5*conv + 0.5*saved, map[string]float64{
		"BREAK_POINT_CONVERSION": conv,
		"BREAK_POINTS_SAVED":     saved,
	}
}

func baselineScore(p playerMeans) (float64, map[string]float64) {
	fhErrors := p.value(metric.UnforcedErrorsForehand)
	bhErrors := p.value(metric.UnforcedErrorsBackhand)
	totalErrors := fhErrors + bhErrors
	return errorScore(totalErrors), map[string]float64{
		"UNFORCED_ERRORS_FOREHAND": fhErrors,
		"UNFORCED_ERRORS_BACKHAND": bhErrors,
		"TOTAL_ERRORS":             totalErrors,
	}
}

// errorScore maps total errors onto [0,100], zero errors scoring 100 and
// the budget or more scoring 0.
func errorScore(totalErrors float64) float64 {
	return max(0.0, 100.0-totalErrors/highlightErrorBudget*100.0)
}
