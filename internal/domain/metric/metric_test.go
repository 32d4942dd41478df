package metric_test

import (
	"encoding/json"
	"testing"

	"github.com/fermano/TennisPulse/internal/domain/metric"
	. "github.com/smartystreets/goconvey/convey"
)

func TestKindRoundTrip(t *testing.T) {
	Convey("Given all metric kinds", t, func() {
		kinds := metric.Kinds()
		So(len(kinds), ShouldEqual, 10)

		Convey("Then names parse back to the same kind", func() {
			for _, k := range kinds {
				parsed, err := metric.ParseKind(k.String())
				So(err, ShouldBeNil)
				So(parsed, ShouldEqual, k)
			}
		})

		Convey("And unknown names are rejected", func() {
			_, err := metric.ParseKind("SERVE_SPEED")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestKindAsJSONMapKey(t *testing.T) {
	Convey("Given a map keyed by Kind", t, func() {
		in := map[metric.Kind]float64{
			metric.FirstServeIn: 61.5,
			metric.Winners:      12,
		}

		Convey("Then it marshals to wire names and back", func() {
			raw, err := json.Marshal(in)
			So(err, ShouldBeNil)
			So(string(raw), ShouldContainSubstring, `"FIRST_SERVE_IN"`)

			var out map[metric.Kind]float64
			So(json.Unmarshal(raw, &out), ShouldBeNil)
			So(out[metric.FirstServeIn], ShouldEqual, 61.5)
			So(out[metric.Winners], ShouldEqual, 12)
		})
	})
}

func TestStatusScore(t *testing.T) {
	Convey("Given the four tiers", t, func() {
		Convey("Then scores map EXCELLENT=3 down to CRITICAL=0", func() {
			So(metric.StatusExcellent.Score(), ShouldEqual, 3)
			So(metric.StatusGood.Score(), ShouldEqual, 2)
			So(metric.StatusWarning.Score(), ShouldEqual, 1)
			So(metric.StatusCritical.Score(), ShouldEqual, 0)
		})
	})
}
