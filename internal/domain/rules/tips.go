package rules

import (
	"github.com/fermano/TennisPulse/internal/domain/metric"
	"github.com/fermano/TennisPulse/internal/domain/model"
)

// tipFor returns the coaching tip for a metric at the given tier. Excellent
// metrics get no tip. First-serve-in is the only metric whose message varies
// by tier (a "push further" variant at GOOD).
func tipFor(kind metric.Kind, status metric.Status) (model.Tip, bool) {
	if status == metric.StatusExcellent {
		return model.Tip{}, false
	}

	switch kind {
	case metric.FirstServeIn:
		if status == metric.StatusGood {
			return model.Tip{
				Code:    "FIRST_SERVE_IN_GOOD",
				Message: "Your first serve % is solid. Push consistency to reach 70%+.",
				Metric:  kind,
			}, true
		}
		return model.Tip{
			Code:    "FIRST_SERVE_IN_LOW",
			Message: "First serve % is low. Focus on safer targets and a smoother toss.",
			Metric:  kind,
		}, true
	case metric.FirstServePointsWon:
		return model.Tip{
			Code:    "FIRST_SERVE_POINTS_WON_LOW",
			Message: "You're not winning enough points on first serve. Work on placement and the first shot after serve.",
			Metric:  kind,
		}, true
	case metric.SecondServePointsWon:
		return model.Tip{
			Code:    "SECOND_SERVE_WEAK",
			Message: "Second serve points won is low. Practice spin/kick serves for more safety and depth.",
			Metric:  kind,
		}, true
	case metric.UnforcedErrorsForehand:
		return model.Tip{
			Code:    "FOREHAND_ERRORS_HIGH",
			Message: "Forehand unforced errors are high. Emphasize preparation and more margin over the net.",
			Metric:  kind,
		}, true
	case metric.UnforcedErrorsBackhand:
		return model.Tip{
			Code:    "BACKHAND_ERRORS_HIGH",
			Message: "Backhand errors are high. Add crosscourt rally drills and footwork patterns.",
			Metric:  kind,
		}, true
	case metric.Winners:
		return model.Tip{
			Code:    "WINNERS_LOW",
			Message: "Aggression level is low. Look to attack short balls and step inside the court more often.",
			Metric:  kind,
		}, true
	case metric.BreakPointConversion:
		return model.Tip{
			Code:    "BREAK_CONVERSION_LOW",
			Message: "Break point conversion is low. Go in with clear return patterns and avoid going passive on big points.",
			Metric:  kind,
		}, true
	case metric.BreakPointsSaved:
		return model.Tip{
			Code:    "BREAK_POINTS_SAVED_LOW",
			Message: "You struggle to save break points. Develop trusted serve patterns under pressure.",
			Metric:  kind,
		}, true
	case metric.NetPointsWon:
		return model.Tip{
			Code:    "NET_POINTS_WEAK",
			Message: "Net points won % is low. Work on approach shot quality and volley technique.",
			Metric:  kind,
		}, true
	case metric.LongRallyWinRate:
		return model.Tip{
			Code:    "LONG_RALLIES_WEAK",
			Message: "You're losing long rallies. Add endurance-heavy rally drills and consistency work.",
			Metric:  kind,
		}, true
	default:
		return model.Tip{}, false
	}
}
