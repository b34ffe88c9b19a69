package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			metricPrefixOpt := WithMetricPrefix("test-prefix")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			metricsEnabledOpt := WithMetricsEnabled(true)
			refreshIntervalOpt := WithRefreshInterval(5 * time.Second)
			customLabelsOpt := WithCustomLabels(map[string]string{"env": "test"})

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(metricPrefixOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(metricsEnabledOpt, ShouldNotBeNil)
				So(refreshIntervalOpt, ShouldNotBeNil)
				So(customLabelsOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithMetricPrefix("test-prefix"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(true),
				WithRefreshInterval(10*time.Second),
				WithCustomLabels(map[string]string{"env": "test", "version": "1.0"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given metrics recording", t, func() {
		Convey("When recording business metrics", func() {
			Convey("Then it should record created sessions", func() {
				So(func() {
					RecordSessionCreated()
					RecordSessionCreated()
				}, ShouldNotPanic)
			})

			Convey("And it should record scored answers", func() {
				So(func() {
					RecordAnswerScored()
					RecordAnswerScored()
				}, ShouldNotPanic)
			})

			Convey("And it should record badge updates", func() {
				So(func() {
					RecordBadgeUpdate()
					RecordBadgeUpdate()
				}, ShouldNotPanic)
			})

			Convey("And it should record submit conflicts", func() {
				So(func() {
					RecordSubmitConflict()
				}, ShouldNotPanic)
			})
		})

		Convey("When recording collaborator metrics", func() {
			Convey("Then it should record generation latency", func() {
				So(func() {
					RecordGenerationLatency(100.0)
					RecordGenerationLatency(1500.0)
				}, ShouldNotPanic)
			})

			Convey("And it should record scoring latency", func() {
				So(func() {
					RecordScoringLatency(100.0)
					RecordScoringLatency(200.0)
				}, ShouldNotPanic)
			})

			Convey("And it should record generation and scoring errors", func() {
				So(func() {
					RecordGenerationError()
					RecordScoringError()
				}, ShouldNotPanic)
			})
		})

		Convey("When recording store metrics", func() {
			Convey("Then it should update session and user counts", func() {
				So(func() {
					UpdateSessionCount(100)
					UpdateUserCount(50)
				}, ShouldNotPanic)
			})

			Convey("And it should record store latencies", func() {
				So(func() {
					RecordStoreUpdateLatency(5.0)
					RecordStoreQueryLatency(2.0)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording HTTP metrics", func() {
			Convey("Then it should record HTTP requests", func() {
				So(func() {
					RecordHTTPRequest("/healthz", "GET", "200")
					RecordHTTPRequest("/api/submit", "POST", "200")
					RecordHTTPRequest("/api/questions", "POST", "201")
				}, ShouldNotPanic)
			})

			Convey("And it should record HTTP request duration", func() {
				So(func() {
					RecordHTTPRequestDuration("/healthz", "GET", "200", 5.0)
					RecordHTTPRequestDuration("/api/submit", "POST", "200", 10.0)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording error metrics", func() {
			Convey("Then it should record errors by type", func() {
				So(func() {
					RecordErrorByType("timeout", "error")
					RecordErrorByType("validation_error", "warning")
				}, ShouldNotPanic)
			})

			Convey("And it should record errors by endpoint", func() {
				So(func() {
					RecordErrorByEndpoint("/api/submit", "POST", "conflict")
					RecordErrorByEndpoint("/api/total", "POST", "not_found")
				}, ShouldNotPanic)
			})

			Convey("And it should record error latency", func() {
				So(func() {
					RecordErrorLatency("scoring", "timeout", 100.0)
					RecordErrorLatency("generation", "rate_limit", 200.0)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording system metrics", func() {
			Convey("Then it should update memory and goroutine gauges", func() {
				So(func() {
					UpdateSystemMemoryUsage(1024 * 1024 * 100)
					UpdateSystemGoroutineCount(100)
				}, ShouldNotPanic)
			})

			Convey("And it should record GC pause time", func() {
				So(func() {
					RecordSystemGCPauseTime(1.0)
					RecordSystemGCPauseTime(2.5)
				}, ShouldNotPanic)
			})
		})
	})
}

func TestMetricsEdgeCases(t *testing.T) {
	Convey("Given metrics edge cases", t, func() {
		Convey("When recording metrics with edge values", func() {
			Convey("And using zero values", func() {
				So(func() {
					UpdateSessionCount(0)
					UpdateUserCount(0)
					RecordScoringLatency(0.0)
					RecordHTTPRequestDuration("/test", "GET", "200", 0.0)
				}, ShouldNotPanic)
			})

			Convey("And using very large values", func() {
				So(func() {
					UpdateSessionCount(1000000)
					UpdateUserCount(1000000)
					RecordGenerationLatency(30000.0)
				}, ShouldNotPanic)
			})

			Convey("And using empty strings", func() {
				So(func() {
					RecordHTTPRequest("", "", "200")
					RecordErrorByType("", "")
					RecordErrorByEndpoint("", "", "")
					RecordErrorLatency("", "", 10.0)
				}, ShouldNotPanic)
			})
		})
	})
}

func TestMetricsConcurrency(t *testing.T) {
	Convey("Given metrics concurrency", t, func() {
		Convey("When recording metrics concurrently", func() {
			done := make(chan bool, 10)

			for i := 0; i < 10; i++ {
				go func() {
					for j := 0; j < 100; j++ {
						RecordAnswerScored()
						UpdateSessionCount(1000 + j)
						RecordScoringLatency(float64(j))
						RecordHTTPRequest("/test", "GET", "200")
					}
					done <- true
				}()
			}

			for i := 0; i < 10; i++ {
				<-done
			}

			Convey("Then it should handle concurrent access without panics", func() {
				So(true, ShouldBeTrue)
			})
		})
	})
}

func TestMetricsOptionsValidation(t *testing.T) {
	Convey("Given metrics options validation", t, func() {
		Convey("When creating with empty namespace", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithNamespace(""), WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with nil histogram buckets", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithHistogramBuckets(nil), WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with zero refresh interval", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithRefreshInterval(0), WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}
