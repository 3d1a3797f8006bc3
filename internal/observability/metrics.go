package observability

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type moduleMetrics struct {
	sessionsActive prometheus.Gauge
	sessionsOpened prometheus.Counter
	sessionsClosed *prometheus.CounterVec

	tempFilesAllocated  prometheus.Counter
	tempFilesReleased   prometheus.Counter
	allocationFailures  *prometheus.CounterVec
	tempFilesInUse      prometheus.Gauge
	exportPointsTotal   *prometheus.CounterVec
	exportDuration      *prometheus.HistogramVec
	engineCommandsTotal *prometheus.CounterVec
}

var (
	metricsOnce sync.Once
	metricsInst *moduleMetrics
)

func getMetrics() *moduleMetrics {
	metricsOnce.Do(func() {
		m := &moduleMetrics{
			sessionsActive: prometheus.NewGauge(
				prometheus.GaugeOpts{
					Name: "plotpipe_sessions_active",
					Help: "Current number of open engine sessions.",
				},
			),
			sessionsOpened: prometheus.NewCounter(
				prometheus.CounterOpts{
					Name: "plotpipe_sessions_opened_total",
					Help: "Total engine sessions opened.",
				},
			),
			sessionsClosed: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: "plotpipe_sessions_closed_total",
					Help: "Total engine sessions closed by status.",
				},
				[]string{"status"},
			),
			tempFilesAllocated: prometheus.NewCounter(
				prometheus.CounterOpts{
					Name: "plotpipe_tempfiles_allocated_total",
					Help: "Total temporary data files created.",
				},
			),
			tempFilesReleased: prometheus.NewCounter(
				prometheus.CounterOpts{
					Name: "plotpipe_tempfiles_released_total",
					Help: "Total temporary data files removed.",
				},
			),
			allocationFailures: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: "plotpipe_tempfile_allocation_failures_total",
					Help: "Failed temporary file allocations by reason.",
				},
				[]string{"reason"},
			),
			tempFilesInUse: prometheus.NewGauge(
				prometheus.GaugeOpts{
					Name: "plotpipe_tempfiles_in_use",
					Help: "Temporary data files currently referenced by open sessions.",
				},
			),
			exportPointsTotal: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: "plotpipe_export_points_total",
					Help: "Data rows written to temporary files by export kind.",
				},
				[]string{"kind"},
			),
			exportDuration: prometheus.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "plotpipe_export_duration_seconds",
					Help:    "Time spent writing a temporary data file by export kind.",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"kind"},
			),
			engineCommandsTotal: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: "plotpipe_engine_commands_total",
					Help: "Command lines dispatched to the engine by leading keyword.",
				},
				[]string{"verb"},
			),
		}

		prometheus.MustRegister(
			m.sessionsActive,
			m.sessionsOpened,
			m.sessionsClosed,
			m.tempFilesAllocated,
			m.tempFilesReleased,
			m.allocationFailures,
			m.tempFilesInUse,
			m.exportPointsTotal,
			m.exportDuration,
			m.engineCommandsTotal,
		)

		metricsInst = m
	})

	return metricsInst
}

// EnsureRegistered initializes and registers metrics the first time it is called.
func EnsureRegistered() {
	_ = getMetrics()
}

func MetricsHandler() http.Handler {
	EnsureRegistered()
	return promhttp.Handler()
}

func RecordSessionOpened() {
	m := getMetrics()
	m.sessionsOpened.Inc()
	m.sessionsActive.Inc()
}

func RecordSessionClosed(success bool) {
	m := getMetrics()
	status := "error"
	if success {
		status = "success"
	}
	m.sessionsClosed.WithLabelValues(status).Inc()
	m.sessionsActive.Dec()
}

func RecordTempFileAllocated() {
	m := getMetrics()
	m.tempFilesAllocated.Inc()
	m.tempFilesInUse.Inc()
}

func RecordTempFilesReleased(count int) {
	if count <= 0 {
		return
	}
	m := getMetrics()
	m.tempFilesReleased.Add(float64(count))
	m.tempFilesInUse.Sub(float64(count))
}

func RecordAllocationFailure(reason string) {
	m := getMetrics()
	m.allocationFailures.WithLabelValues(reason).Inc()
}

func RecordExport(kind string, rows int, duration time.Duration) {
	m := getMetrics()
	m.exportPointsTotal.WithLabelValues(kind).Add(float64(rows))
	m.exportDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

func RecordEngineCommand(verb string) {
	m := getMetrics()
	m.engineCommandsTotal.WithLabelValues(verb).Inc()
}
