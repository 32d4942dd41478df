package window_test

import (
	"testing"
	"time"

	"github.com/fermano/TennisPulse/internal/domain/window"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParse(t *testing.T) {
	Convey("Given window wire names", t, func() {
		Convey("Then known names parse", func() {
			w, err := window.Parse("CURRENT_YEAR")
			So(err, ShouldBeNil)
			So(w, ShouldEqual, window.CurrentYear)
		})

		Convey("And the empty string defaults to all-time", func() {
			w, err := window.Parse("")
			So(err, ShouldBeNil)
			So(w, ShouldEqual, window.AllTime)
		})

		Convey("And unknown names are rejected", func() {
			_, err := window.Parse("FORTNIGHT")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestBounds(t *testing.T) {
	Convey("Given a fixed now", t, func() {
		now := time.Date(2025, time.March, 15, 14, 30, 0, 0, time.UTC)

		Convey("All-time has no lower bound", func() {
			from, to := window.AllTime.Bounds(now)
			So(from.IsZero(), ShouldBeTrue)
			So(to, ShouldEqual, now)
		})

		Convey("Current year starts Jan 1 at midnight", func() {
			from, _ := window.CurrentYear.Bounds(now)
			So(from, ShouldEqual, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC))
		})

		Convey("Current month starts on the 1st at midnight", func() {
			from, _ := window.CurrentMonth.Bounds(now)
			So(from, ShouldEqual, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))
		})

		Convey("Last 30 days starts at midnight 30 days back", func() {
			from, _ := window.Last30Days.Bounds(now)
			So(from, ShouldEqual, time.Date(2025, time.February, 13, 0, 0, 0, 0, time.UTC))
		})

		Convey("Containment respects the lower bound", func() {
			So(window.CurrentYear.Contains(now, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)), ShouldBeTrue)
			So(window.CurrentYear.Contains(now, time.Date(2024, time.December, 31, 23, 59, 59, 0, time.UTC)), ShouldBeFalse)
			So(window.AllTime.Contains(now, time.Date(1999, time.June, 1, 0, 0, 0, 0, time.UTC)), ShouldBeTrue)
		})
	})
}
