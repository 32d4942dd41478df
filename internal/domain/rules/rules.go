// Package rules implements the coaching rule engine: a pure function from
// raw per-match metrics to classified metrics, coaching tips, and an overall
// verdict. The engine performs no I/O and holds no clock, so it is safe to
// call concurrently from the ingestion workers and from seed tooling alike.
package rules

import (
	"sort"

	"github.com/fermano/TennisPulse/internal/domain/metric"
	"github.com/fermano/TennisPulse/internal/domain/model"
)

// Version tags every analysis with the ruleset that produced it, so records
// written under older rules keep their original interpretation.
const Version = "v1"

// Analysis is the engine output for one (match, player) pair.
type Analysis struct {
	MatchID        string
	PlayerID       string
	Metrics        map[metric.Kind]model.ClassifiedMetric
	CoachingStatus metric.CoachingStatus
	Tips           []model.Tip
	EngineVersion  string
}

// Engine classifies raw metrics into an Analysis.
type Engine interface {
	Analyze(matchID, playerID string, raw map[metric.Kind]float64) Analysis
}

// ThresholdEngine classifies each metric against fixed three-threshold
// tiers. It implements Engine.
type ThresholdEngine struct{}

// NewThresholdEngine creates the fixed-ruleset engine.
func NewThresholdEngine() *ThresholdEngine {
	return &ThresholdEngine{}
}

// Analyze classifies every metric present in raw, derives the overall
// coaching status, and attaches one tip per non-excellent metric. Metrics
// absent from raw are simply absent from the result.
func (e *ThresholdEngine) Analyze(matchID, playerID string, raw map[metric.Kind]float64) Analysis {
	classified := make(map[metric.Kind]model.ClassifiedMetric, len(raw))
	for kind, value := range raw {
		classified[kind] = model.ClassifiedMetric{
			Value:  value,
			Status: Classify(kind, value),
		}
	}

	statuses := make([]metric.Status, 0, len(classified))
	for _, cm := range classified {
		statuses = append(statuses, cm.Status)
	}

	// Tips in metric declaration order so repeated runs produce identical
	// output for identical input.
	var tips []model.Tip
	kinds := make([]metric.Kind, 0, len(classified))
	for kind := range classified {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	for _, kind := range kinds {
		if tip, ok := tipFor(kind, classified[kind].Status); ok {
			tips = append(tips, tip)
		}
	}

	return Analysis{
		MatchID:        matchID,
		PlayerID:       playerID,
		Metrics:        classified,
		CoachingStatus: deriveCoachingStatus(statuses),
		Tips:           tips,
		EngineVersion:  Version,
	}
}

// Classify assigns the tier for a single metric value. Tiers are closed on
// the upper bound: a value exactly at the top threshold is EXCELLENT.
func Classify(kind metric.Kind, value float64) metric.Status {
	switch kind {
	case metric.FirstServeIn:
		return classifyAscending(value, 50, 60, 70)
	case metric.FirstServePointsWon:
		return classifyAscending(value, 60, 65, 75)
	case metric.SecondServePointsWon:
		return classifyAscending(value, 40, 50, 60)
	case metric.UnforcedErrorsForehand, metric.UnforcedErrorsBackhand:
		return classifyDescending(value, 5, 10, 18)
	case metric.Winners:
		return classifyAscending(value, 8, 15, 25)
	case metric.BreakPointConversion:
		return classifyAscending(value, 25, 40, 60)
	case metric.BreakPointsSaved:
		return classifyAscending(value, 25, 45, 65)
	case metric.NetPointsWon:
		return classifyAscending(value, 50, 60, 70)
	case metric.LongRallyWinRate:
		return classifyAscending(value, 35, 45, 60)
	default:
		return metric.StatusCritical
	}
}

// classifyAscending tiers a "higher is better" metric:
// value >= t3 EXCELLENT, >= t2 GOOD, >= t1 WARNING, else CRITICAL.
func classifyAscending(value, t1, t2, t3 float64) metric.Status {
	switch {
	case value >= t3:
		return metric.StatusExcellent
	case value >= t2:
		return metric.StatusGood
	case value >= t1:
		return metric.StatusWarning
	default:
		return metric.StatusCritical
	}
}

// classifyDescending tiers a "lower is better" metric:
// value <= t1 EXCELLENT, <= t2 GOOD, <= t3 WARNING, else CRITICAL.
func classifyDescending(value, t1, t2, t3 float64) metric.Status {
	switch {
	case value <= t1:
		return metric.StatusExcellent
	case value <= t2:
		return metric.StatusGood
	case value <= t3:
		return metric.StatusWarning
	default:
		return metric.StatusCritical
	}
}

// deriveCoachingStatus collapses the classified tiers into the verdict.
// Two criticals (or one critical with two warnings) put the player at risk;
// a single critical or two warnings call for focus; anything better is on
// track.
func deriveCoachingStatus(statuses []metric.Status) metric.CoachingStatus {
	var critical, warning int
	for _, s := range statuses {
		switch s {
		case metric.StatusCritical:
			critical++
		case metric.StatusWarning:
			warning++
		}
	}

	switch {
	case critical >= 2 || (critical == 1 && warning >= 2):
		return metric.AtRisk
	case critical == 1 || warning >= 2:
		return metric.NeedsFocus
	default:
		return metric.OnTrack
	}
}
