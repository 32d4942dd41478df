package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given a fresh registry", t, func() {
		registry := prometheus.NewRegistry()

		Convey("When creating a manager with defaults", func() {
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "tennispulse")
				So(manager.subsystem, ShouldEqual, "analytics")
			})
		})

		Convey("When creating with custom options", func() {
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then the options should be applied", func() {
				So(manager.namespace, ShouldEqual, "test-namespace")
				So(manager.subsystem, ShouldEqual, "test-subsystem")
				So(manager.histogramBuckets, ShouldResemble, []float64{0.1, 0.5, 1.0})
			})
		})
	})
}

func TestGlobalRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("Then all recording helpers are safe to call", func() {
			So(func() {
				RecordEventConsumed()
				RecordEventDropped()
				RecordEventSkipped()
				RecordRecordWritten()
				RecordRecordWriteError()
				RecordClassificationLatency(1.5)
				UpdateQueueSize(3)
				UpdateQueueCapacity(100)
				UpdateQueueUtilization(0.03)
				RecordQueueEnqueue()
				RecordQueueDequeue()
				RecordQueueEnqueueError()
				UpdateWorkerCount(4)
				RecordWorkerProcessingLatency(2.0)
				RecordWorkerError()
				UpdateStoreRecords(42)
				RecordCacheHit("rankings")
				RecordCacheMiss("highlights")
				RecordCacheInvalidation()
				RecordHTTPRequest("highlights", "GET", "200")
				RecordHTTPRequestDuration("highlights", "GET", "200", 12.0)
			}, ShouldNotPanic)
		})

		Convey("And the registry is exposed for scraping", func() {
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}
