package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	submissionsTotal      *prometheus.CounterVec
	selfReportedTotal     *prometheus.CounterVec
	decisionRequestsTotal *prometheus.CounterVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "credscope",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "credscope",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "credscope",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	submissionsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "credscope",
			Subsystem: "scoring",
			Name:      "submissions_total",
			Help:      "Total accepted document submissions by loan type.",
		},
		[]string{"service", "loan_type"},
	)
	selfReportedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "credscope",
			Subsystem: "scoring",
			Name:      "self_reported_total",
			Help:      "Total self-reported survey scorings by outcome.",
		},
		[]string{"service", "outcome"},
	)
	decisionRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "credscope",
			Subsystem: "scoring",
			Name:      "decision_requests_total",
			Help:      "Total loan decision reads by loan type.",
		},
		[]string{"service", "loan_type"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		submissionsTotal,
		selfReportedTotal,
		decisionRequestsTotal,
	)

	return &HTTPServerMetrics{
		registry:              registry,
		requestTotal:          requestTotal,
		requestDuration:       requestDuration,
		requestInFlight:       requestInFlight,
		submissionsTotal:      submissionsTotal,
		selfReportedTotal:     selfReportedTotal,
		decisionRequestsTotal: decisionRequestsTotal,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

func normalizePath(path string) string {
	switch {
	case strings.HasPrefix(path, "/v1/submissions/"):
		rest := strings.TrimPrefix(path, "/v1/submissions/")
		if idx := strings.IndexByte(rest, '/'); idx >= 0 {
			return "/v1/submissions/{submission_id}/" + rest[idx+1:]
		}
		return "/v1/submissions/{submission_id}"
	default:
		return path
	}
}

func (m *HTTPServerMetrics) RecordSubmission(service, loanType string) {
	if loanType == "" {
		loanType = "unknown"
	}
	m.submissionsTotal.WithLabelValues(service, loanType).Inc()
}

func (m *HTTPServerMetrics) RecordSelfReported(service string, fallback bool) {
	outcome := "scored"
	if fallback {
		outcome = "fallback"
	}
	m.selfReportedTotal.WithLabelValues(service, outcome).Inc()
}

func (m *HTTPServerMetrics) RecordDecisionRequest(service, loanType string) {
	if loanType == "" {
		loanType = "unknown"
	}
	m.decisionRequestsTotal.WithLabelValues(service, loanType).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}

func (w *statusRecorder) Push(target string, opts *http.PushOptions) error {
	pusher, ok := w.ResponseWriter.(http.Pusher)
	if !ok {
		return http.ErrNotSupported
	}
	return pusher.Push(target, opts)
}
