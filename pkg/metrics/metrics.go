package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	InFlightGauge   prometheus.Gauge

	PatientsRegisteredTotal prometheus.Counter
	VitalsRecordedTotal     prometheus.Counter

	TraceEntriesTotal     *prometheus.CounterVec
	TraceWriteFailures    prometheus.Counter
	OfflineBufferDepth    prometheus.Gauge
	OfflineReplayedTotal  prometheus.Counter
	OfflineRetryFailures  prometheus.Counter
}

func NewCollector(serviceName string) *Collector {
	return &Collector{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, path, and status code.",
		}, []string{"method", "path", "status"}),

		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency distribution.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"method", "path", "status"}),

		InFlightGauge: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),

		PatientsRegisteredTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "clinical",
			Name:      "patients_registered_total",
			Help:      "Total number of patient records registered.",
		}),

		VitalsRecordedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "clinical",
			Name:      "vitals_recorded_total",
			Help:      "Total vital-signs measurement records created.",
		}),

		TraceEntriesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "trace",
			Name:      "entries_total",
			Help:      "Traceability entries written, by action category.",
		}, []string{"category"}),

		TraceWriteFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "trace",
			Name:      "write_failures_total",
			Help:      "Traceability writes that failed. Alert if non-zero: the entity change persisted without an audit row.",
		}),

		OfflineBufferDepth: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Subsystem: "offline",
			Name:      "buffer_depth",
			Help:      "Vital-signs records currently parked in the local offline buffer.",
		}),

		OfflineReplayedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "offline",
			Name:      "replayed_total",
			Help:      "Buffered records confirmed persisted by the sweep.",
		}),

		OfflineRetryFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "offline",
			Name:      "retry_failures_total",
			Help:      "Sweep retry attempts that failed.",
		}),
	}
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
