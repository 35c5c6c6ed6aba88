package metrics_test

import (
	"testing"

	"github.com/okian/ripper/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManager(t *testing.T) {
	Convey("Given a manager on its own registry", t, func() {
		registry := prometheus.NewRegistry()
		manager := metrics.NewManager(metrics.WithRegistry(registry))

		Convey("Then it is created with all collectors registered", func() {
			So(manager, ShouldNotBeNil)
			families, err := registry.Gather()
			So(err, ShouldBeNil)
			// Counters without observations gather nothing; gauges
			// and histograms appear immediately.
			So(families, ShouldNotBeNil)
		})
	})

	Convey("Given the global helpers", t, func() {
		Convey("When recording across every concern", func() {
			metrics.RecordMatchesFetched(12)
			metrics.RecordDuplicateMatch()
			metrics.RecordFetchRequest()
			metrics.RecordFetchError()
			metrics.ObserveFetchLatency(42)
			metrics.ObserveComputation("rpi", 8)
			metrics.RecordComputationError("elo")
			metrics.RecordTableStored("rpi")
			metrics.UpdateTeamCount("rpi", 333)
			metrics.RecordHTTPRequest("ratings", "GET", "200")
			metrics.RecordHTTPRequestDuration("ratings", "GET", "200", 3)
			metrics.RecordPublish()
			metrics.RecordPublishError()
			metrics.UpdateSystemMetrics()

			Convey("Then the shared registry gathers them", func() {
				families, err := metrics.GetRegistry().Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)

				names := make(map[string]bool, len(families))
				for _, f := range families {
					names[f.GetName()] = true
				}
				So(names["ripper_ratings_matches_fetched_total"], ShouldBeTrue)
				So(names["ripper_ratings_computation_duration_milliseconds"], ShouldBeTrue)
				So(names["ripper_ratings_team_count"], ShouldBeTrue)
				So(names["ripper_ratings_http_requests_total"], ShouldBeTrue)
			})
		})
	})
}
