package rules_test

import (
	"reflect"
	"testing"

	"github.com/fermano/TennisPulse/internal/domain/metric"
	"github.com/fermano/TennisPulse/internal/domain/model"
	"github.com/fermano/TennisPulse/internal/domain/rules"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClassifyBoundaries(t *testing.T) {
	Convey("Given the fixed threshold tiers", t, func() {
		type tier struct {
			value float64
			want  metric.Status
		}
		ascending := func(t1, t2, t3 float64) []tier {
			return []tier{
				{t1 - 1, metric.StatusCritical},
				{t1, metric.StatusWarning},
				{t2 - 1, metric.StatusWarning},
				{t2, metric.StatusGood},
				{t3 - 1, metric.StatusGood},
				{t3, metric.StatusExcellent},
				{t3 + 10, metric.StatusExcellent},
			}
		}

		cases := map[metric.Kind][]tier{
			metric.FirstServeIn:         ascending(50, 60, 70),
			metric.FirstServePointsWon:  ascending(60, 65, 75),
			metric.SecondServePointsWon: ascending(40, 50, 60),
			metric.Winners:              ascending(8, 15, 25),
			metric.BreakPointConversion: ascending(25, 40, 60),
			metric.BreakPointsSaved:     ascending(25, 45, 65),
			metric.NetPointsWon:         ascending(50, 60, 70),
			metric.LongRallyWinRate:     ascending(35, 45, 60),
			// lower is better: <=5 EXCELLENT, <=10 GOOD, <=18 WARNING
			metric.UnforcedErrorsForehand: {
				{0, metric.StatusExcellent},
				{5, metric.StatusExcellent},
				{6, metric.StatusGood},
				{10, metric.StatusGood},
				{11, metric.StatusWarning},
				{18, metric.StatusWarning},
				{19, metric.StatusCritical},
			},
			metric.UnforcedErrorsBackhand: {
				{5, metric.StatusExcellent},
				{10, metric.StatusGood},
				{18, metric.StatusWarning},
				{19, metric.StatusCritical},
			},
		}

		Convey("Then every metric classifies boundary-exact", func() {
			for kind, tiers := range cases {
				for _, tc := range tiers {
					So(rules.Classify(kind, tc.value), ShouldEqual, tc.want)
				}
			}
		})
	})
}

func TestCoachingStatusDerivation(t *testing.T) {
	Convey("Given an engine", t, func() {
		engine := rules.NewThresholdEngine()

		// Raw values pinned to exact tiers for FIRST_SERVE_IN-style metrics.
		critical := 10.0  // below every t1
		warning := 50.0   // FIRST_SERVE_IN warning band
		excellent := 90.0 // above every t3

		analyze := func(values map[metric.Kind]float64) metric.CoachingStatus {
			return engine.Analyze("m1", "p1", values).CoachingStatus
		}

		Convey("Two criticals mean AT_RISK", func() {
			So(analyze(map[metric.Kind]float64{
				metric.FirstServeIn: critical,
				metric.NetPointsWon: critical,
			}), ShouldEqual, metric.AtRisk)
		})

		Convey("One critical with two warnings means AT_RISK", func() {
			So(analyze(map[metric.Kind]float64{
				metric.FirstServeIn:     critical,
				metric.NetPointsWon:     warning,
				metric.LongRallyWinRate: 35, // warning tier
			}), ShouldEqual, metric.AtRisk)
		})

		Convey("One critical and one warning means NEEDS_FOCUS", func() {
			So(analyze(map[metric.Kind]float64{
				metric.FirstServeIn: critical,
				metric.NetPointsWon: warning,
			}), ShouldEqual, metric.NeedsFocus)
		})

		Convey("Two warnings without criticals means NEEDS_FOCUS", func() {
			So(analyze(map[metric.Kind]float64{
				metric.FirstServeIn: warning,
				metric.NetPointsWon: warning,
			}), ShouldEqual, metric.NeedsFocus)
		})

		Convey("Zero criticals and at most one warning means ON_TRACK", func() {
			So(analyze(map[metric.Kind]float64{
				metric.FirstServeIn: excellent,
				metric.NetPointsWon: excellent,
			}), ShouldEqual, metric.OnTrack)

			So(analyze(map[metric.Kind]float64{
				metric.FirstServeIn: warning,
				metric.NetPointsWon: excellent,
			}), ShouldEqual, metric.OnTrack)
		})
	})
}

func TestTips(t *testing.T) {
	Convey("Given a full stats payload", t, func() {
		engine := rules.NewThresholdEngine()

		Convey("When every metric is excellent", func() {
			stats := model.PlayerStats{
				PlayerID:               "p1",
				FirstServeIn:           75,
				FirstServePointsWon:    80,
				SecondServePointsWon:   65,
				UnforcedErrorsForehand: 3,
				UnforcedErrorsBackhand: 2,
				Winners:                30,
				BreakPointConversion:   70,
				BreakPointsSaved:       70,
				NetPointsWon:           75,
				LongRallyWinRate:       65,
			}
			analysis := engine.Analyze("m1", "p1", stats.RawMetrics())

			Convey("Then no tips are generated", func() {
				So(analysis.Tips, ShouldBeEmpty)
				So(analysis.CoachingStatus, ShouldEqual, metric.OnTrack)
			})
		})

		Convey("When every metric misses excellence", func() {
			stats := model.PlayerStats{
				PlayerID:               "p1",
				FirstServeIn:           65, // GOOD -> tip variant
				FirstServePointsWon:    66,
				SecondServePointsWon:   55,
				UnforcedErrorsForehand: 8,
				UnforcedErrorsBackhand: 9,
				Winners:                20,
				BreakPointConversion:   45,
				BreakPointsSaved:       50,
				NetPointsWon:           65,
				LongRallyWinRate:       50,
			}
			analysis := engine.Analyze("m1", "p1", stats.RawMetrics())

			Convey("Then exactly one tip per metric is generated", func() {
				So(len(analysis.Tips), ShouldEqual, 10)
				seen := map[metric.Kind]int{}
				for _, tip := range analysis.Tips {
					seen[tip.Metric]++
				}
				for _, kind := range metric.Kinds() {
					So(seen[kind], ShouldEqual, 1)
				}
			})

			Convey("And the first-serve GOOD tier uses its own variant", func() {
				var code string
				for _, tip := range analysis.Tips {
					if tip.Metric == metric.FirstServeIn {
						code = tip.Code
					}
				}
				So(code, ShouldEqual, "FIRST_SERVE_IN_GOOD")
			})
		})

		Convey("When the first serve is below GOOD", func() {
			analysis := engine.Analyze("m1", "p1", map[metric.Kind]float64{
				metric.FirstServeIn: 55,
			})

			Convey("Then the low variant is used", func() {
				So(len(analysis.Tips), ShouldEqual, 1)
				So(analysis.Tips[0].Code, ShouldEqual, "FIRST_SERVE_IN_LOW")
			})
		})
	})
}

func TestAnalyzeDeterminism(t *testing.T) {
	Convey("Given identical raw input", t, func() {
		engine := rules.NewThresholdEngine()
		raw := model.PlayerStats{
			PlayerID:               "p1",
			FirstServeIn:           61,
			FirstServePointsWon:    59,
			SecondServePointsWon:   41,
			UnforcedErrorsForehand: 12,
			UnforcedErrorsBackhand: 4,
			Winners:                16,
			BreakPointConversion:   24,
			BreakPointsSaved:       45,
			NetPointsWon:           70,
			LongRallyWinRate:       44,
		}.RawMetrics()

		Convey("Then repeated analyses are identical", func() {
			first := engine.Analyze("m1", "p1", raw)
			second := engine.Analyze("m1", "p1", raw)
			So(reflect.DeepEqual(first, second), ShouldBeTrue)
			So(first.EngineVersion, ShouldEqual, rules.Version)
		})
	})
}

func TestAnalyzeSparseInput(t *testing.T) {
	Convey("Given a payload missing most metrics", t, func() {
		engine := rules.NewThresholdEngine()
		analysis := engine.Analyze("m1", "p1", map[metric.Kind]float64{
			metric.Winners: 25,
		})

		Convey("Then absent metrics are omitted rather than failing", func() {
			So(len(analysis.Metrics), ShouldEqual, 1)
			So(analysis.Metrics[metric.Winners].Status, ShouldEqual, metric.StatusExcellent)
			So(analysis.CoachingStatus, ShouldEqual, metric.OnTrack)
		})
	})
}
