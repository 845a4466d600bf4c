package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// WorkerMetrics tracks the scoring pipeline: throughput, duration, queue lag,
// cache effectiveness and oracle fallbacks.
type WorkerMetrics struct {
	registry *prometheus.Registry

	processTotal    *prometheus.CounterVec
	processDuration *prometheus.HistogramVec
	processInFlight prometheus.Gauge
	queueLag        *prometheus.HistogramVec

	cacheHitsTotal       *prometheus.CounterVec
	oracleFallbacksTotal *prometheus.CounterVec
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	processTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "credscope",
			Subsystem: "pipeline",
			Name:      "submission_process_total",
			Help:      "Total processed submissions by status.",
		},
		[]string{"service", "status"},
	)
	processDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "credscope",
			Subsystem: "pipeline",
			Name:      "submission_process_duration_seconds",
			Help:      "Submission scoring duration in seconds by status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)
	processInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "credscope",
			Subsystem: "pipeline",
			Name:      "submission_process_in_flight",
			Help:      "Number of in-flight scoring runs.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	queueLag := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "credscope",
			Subsystem: "pipeline",
			Name:      "queue_lag_seconds",
			Help:      "Delay between submission creation and scoring start.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"service"},
	)
	cacheHitsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "credscope",
			Subsystem: "cache",
			Name:      "score_hits_total",
			Help:      "Total score lookups served from cache.",
		},
		[]string{"service"},
	)
	oracleFallbacksTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "credscope",
			Subsystem: "oracle",
			Name:      "fallbacks_total",
			Help:      "Total scoring runs that substituted the fallback record.",
		},
		[]string{"service"},
	)

	registry.MustRegister(processTotal, processDuration, processInFlight, queueLag, cacheHitsTotal, oracleFallbacksTotal)

	return &WorkerMetrics{
		registry:             registry,
		processTotal:         processTotal,
		processDuration:      processDuration,
		processInFlight:      processInFlight,
		queueLag:             queueLag,
		cacheHitsTotal:       cacheHitsTotal,
		oracleFallbacksTotal: oracleFallbacksTotal,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) StartSubmission() {
	m.processInFlight.Inc()
}

func (m *WorkerMetrics) FinishSubmission(service string, duration time.Duration, err error) {
	m.processInFlight.Dec()

	status := "success"
	if err != nil {
		status = "error"
	}

	m.processTotal.WithLabelValues(service, status).Inc()
	m.processDuration.WithLabelValues(service, status).Observe(duration.Seconds())
}

func (m *WorkerMetrics) ObserveQueueLag(service string, lag time.Duration) {
	if lag < 0 {
		return
	}
	m.queueLag.WithLabelValues(service).Observe(lag.Seconds())
}

func (m *WorkerMetrics) RecordCacheHit(service string) {
	m.cacheHitsTotal.WithLabelValues(service).Inc()
}

func (m *WorkerMetrics) RecordOracleFallback(service string) {
	m.oracleFallbacksTotal.WithLabelValues(service).Inc()
}
