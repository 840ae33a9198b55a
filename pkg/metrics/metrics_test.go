package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

// withIsolatedManager swaps the global manager for one backed by a fresh
// registry so counters start at zero.
func withIsolatedManager(opts ...Option) (*Manager, func()) {
	prev := globalManager
	opts = append(opts, WithPrometheusRegistry(prometheus.NewRegistry()))
	globalManager = NewManager(opts...)
	return globalManager, func() { globalManager = prev }
}

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

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			manager := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()))

			Convey("Then defaults should apply", func() {
				So(manager, ShouldNotBeNil)
				So(manager.Enabled(), ShouldBeTrue)
				So(manager.RefreshInterval(), ShouldEqual, defaultRefreshInterval)
				So(manager.namespace, ShouldEqual, "facultyhub")
				So(manager.subsystem, ShouldEqual, "directory")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithMetricPrefix("test_prefix"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(false),
				WithRefreshInterval(10*time.Second),
				WithCustomLabels(map[string]string{"env": "test", "version": "1.0"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options should be applied", func() {
				So(manager.Enabled(), ShouldBeFalse)
				So(manager.RefreshInterval(), ShouldEqual, 10*time.Second)
				So(manager.name("requests_total"), ShouldEqual, "test_prefix_requests_total")
			})

			Convey("Then collectors should be registered under the namespace", func() {
				manager.searchQueries.Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)

				var found bool
				for _, f := range families {
					if f.GetName() == "test_namespace_test_subsystem_test_prefix_search_queries_total" {
						found = true
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When ignoring zero values", func() {
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithMetricPrefix(""),
				WithHistogramBuckets(nil),
				WithCustomLabels(nil),
				WithRefreshInterval(-1*time.Second),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then defaults should be kept", func() {
				So(manager.namespace, ShouldEqual, "facultyhub")
				So(manager.subsystem, ShouldEqual, "directory")
				So(manager.metricPrefix, ShouldBeEmpty)
				So(manager.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
				So(manager.RefreshInterval(), ShouldEqual, defaultRefreshInterval)
			})
		})
	})
}

func TestDirectoryMetrics(t *testing.T) {
	Convey("Given an isolated metrics manager", t, func() {
		m, restore := withIsolatedManager()
		defer restore()

		Convey("When recording directory requests", func() {
			RecordDirectoryRequest("papers")
			RecordDirectoryRequest("papers")
			RecordDirectoryRequest("name")

			Convey("Then counts are kept per sort key", func() {
				So(testutil.ToFloat64(m.directoryRequests.WithLabelValues("papers")), ShouldEqual, 2)
				So(testutil.ToFloat64(m.directoryRequests.WithLabelValues("name")), ShouldEqual, 1)
			})
		})

		Convey("When recording searches", func() {
			RecordSearch(8)
			RecordSearch(0)

			Convey("Then the query counter should advance", func() {
				So(testutil.ToFloat64(m.searchQueries), ShouldEqual, 2)
				So(testutil.CollectAndCount(m.searchResults), ShouldEqual, 1)
			})
		})

		Convey("When updating roster size", func() {
			UpdateRosterSize(42, 1200, 3)

			Convey("Then the gauges should reflect it", func() {
				So(testutil.ToFloat64(m.professorsTotal), ShouldEqual, 42)
				So(testutil.ToFloat64(m.publicationsTotal), ShouldEqual, 1200)
				So(testutil.ToFloat64(m.topResearchers), ShouldEqual, 3)
			})
		})

		Convey("When recording latency", func() {
			So(func() {
				RecordRankingLatency(1.5)
				RecordMetricComputationLatency(0.2)
				RecordStoreQuery("memory", "roster", 0.1)
			}, ShouldNotPanic)
		})
	})
}

func TestStoreAndHTTPMetrics(t *testing.T) {
	Convey("Given an isolated metrics manager", t, func() {
		m, restore := withIsolatedManager()
		defer restore()

		Convey("When a store query fails", func() {
			RecordStoreError("sqlite", "roster")

			Convey("Then both the store and component counters move", func() {
				So(testutil.ToFloat64(m.storeErrors.WithLabelValues("sqlite", "roster")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.errorRateByComponent.WithLabelValues("store", "roster")), ShouldEqual, 1)
			})
		})

		Convey("When recording HTTP traffic", func() {
			RecordHTTPRequest("/api/professors", "GET", "200")
			RecordHTTPRequestDuration("/api/professors", "GET", "200", 12.5)
			RecordHTTPPanic()
			RecordErrorByEndpoint("/api/professors", "GET", "validation")

			Convey("Then the counters should be labeled", func() {
				So(testutil.ToFloat64(m.httpRequests.WithLabelValues("/api/professors", "GET", "200")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.httpPanics), ShouldEqual, 1)
				So(testutil.ToFloat64(m.errorRateByEndpoint.WithLabelValues("/api/professors", "GET", "validation")), ShouldEqual, 1)
			})
		})

		Convey("When using empty and unusual label values", func() {
			So(func() {
				RecordHTTPRequest("", "", "200")
				RecordErrorByComponent("", "")
				RecordErrorByType("error.with.dots", "error")
				RecordErrorLatency("component-with-dash", "error_with_underscore", 10.0)
				RecordHTTPRequest("/api/professors?sort=papers&order=desc", "GET", "200")
			}, ShouldNotPanic)
		})
	})
}

func TestMetricsDisabled(t *testing.T) {
	Convey("Given a disabled manager", t, func() {
		m, restore := withIsolatedManager(WithMetricsEnabled(false))
		defer restore()

		RecordDirectoryRequest("name")
		RecordSearch(3)
		UpdateRosterSize(1, 1, 1)

		Convey("Then nothing should be recorded", func() {
			So(testutil.ToFloat64(m.directoryRequests.WithLabelValues("name")), ShouldEqual, 0)
			So(testutil.ToFloat64(m.searchQueries), ShouldEqual, 0)
			So(testutil.ToFloat64(m.professorsTotal), ShouldEqual, 0)
		})

		Convey("And re-enabling should resume recording", func() {
			SetEnabled(true)
			RecordSearch(1)
			So(testutil.ToFloat64(m.searchQueries), ShouldEqual, 1)
		})
	})
}

func TestSystemMetrics(t *testing.T) {
	Convey("Given system metrics", t, func() {
		So(func() {
			UpdateSystemMemoryUsage(1024 * 1024)
			UpdateSystemGoroutineCount(100)
			RecordSystemGCPauseTime(1.5)
		}, ShouldNotPanic)
		So(GetRegistry(), ShouldNotBeNil)
	})
}

func TestMetricsConcurrency(t *testing.T) {
	Convey("Given metrics concurrency", t, func() {
		m, restore := withIsolatedManager()
		defer restore()

		Convey("When recording metrics concurrently", func() {
			done := make(chan bool, 10)

			for i := 0; i < 10; i++ {
				go func() {
					for j := 0; j < 100; j++ {
						RecordSearch(j % 9)
						RecordDirectoryRequest("papers")
						RecordHTTPRequest("/test", "GET", "200")
					}
					done <- true
				}()
			}

			for i := 0; i < 10; i++ {
				<-done
			}

			Convey("Then every observation should be counted", func() {
				So(testutil.ToFloat64(m.searchQueries), ShouldEqual, 1000)
				So(testutil.ToFloat64(m.directoryRequests.WithLabelValues("papers")), ShouldEqual, 1000)
			})
		})
	})
}
