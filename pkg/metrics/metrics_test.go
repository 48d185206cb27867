package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then collectors are registered under the default namespace", func() {
				So(manager, ShouldNotBeNil)
				manager.chartRequests.Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "stagebook_core_chart_requests_total")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("board"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then names and labels follow the options", func() {
				manager.requirementsCreated.Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				var found bool
				for _, f := range families {
					if f.GetName() == "test_board_requirements_created_total" {
						found = true
						So(f.GetMetric()[0].GetLabel()[0].GetName(), ShouldEqual, "env")
					}
				}
				So(found, ShouldBeTrue)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics helpers", t, func() {
		Convey("When recording board metrics", func() {
			before := testutil.ToFloat64(globalManager.requirementsCreated)
			RecordRequirementCreated()
			RecordRequirementRejected("missing_fields")
			UpdateRequirementsTotal(3)

			Convey("Then the collectors move", func() {
				So(testutil.ToFloat64(globalManager.requirementsCreated), ShouldEqual, before+1)
				So(testutil.ToFloat64(globalManager.requirementsTotal), ShouldEqual, 3)
				So(testutil.ToFloat64(globalManager.requirementsRejected.WithLabelValues("missing_fields")), ShouldBeGreaterThanOrEqualTo, 1)
			})
		})

		Convey("When recording the remaining helpers", func() {
			Convey("Then none of them panic", func() {
				So(func() {
					RecordChartRequest()
					RecordDiscoverQuery(4)
					RecordIdempotentReplay()
					RecordStoreLoadCorrupt("community_requirements")
					RecordStoreOperation("memory", "get", 0.2)
					RecordStoreError("memory", "set")
					RecordShareOutcome("copied")
					RecordNotification("enqueued")
					UpdateQueueSize(1)
					UpdateQueueCapacity(10)
					UpdateQueueUtilization(0.1)
					UpdateWorkerCount(2)
					RecordWorkerProcessingLatency(1)
					RecordWorkerError()
					RecordHTTPRequest("charts", "GET", "200")
					RecordHTTPRequestDuration("charts", "GET", "200", 3)
					RecordErrorByType("client_error", "medium")
					RecordErrorByEndpoint("requirements", "POST", "client_error")
					RecordErrorLatency("http", "client_error", 2)
					UpdateSystemMemoryUsage(1024)
					UpdateSystemGoroutineCount(8)
					RecordSystemGCPauseTime(0.3)
				}, ShouldNotPanic)
			})
		})

		Convey("When gathering the registry", func() {
			n, err := Gather()

			Convey("Then families are returned", func() {
				So(err, ShouldBeNil)
				So(n, ShouldBeGreaterThan, 0)
				So(GetRegistry(), ShouldNotBeNil)
			})
		})
	})
}
