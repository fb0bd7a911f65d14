package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests and the process never collide on the
// default one.
type Metrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	completionTotal    *prometheus.CounterVec
	completionDuration *prometheus.HistogramVec
	analysesTotal      *prometheus.CounterVec
	analysisChunks     prometheus.Histogram
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "paper2startup",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		}, []string{"method", "path", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "paper2startup",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 30, 60, 120, 300},
		}, []string{"method", "path"}),
		requestInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "paper2startup",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
		}),
		completionTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "paper2startup",
			Subsystem: "completion",
			Name:      "calls_total",
			Help:      "Completion calls by operation and outcome.",
		}, []string{"operation", "status"}),
		completionDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "paper2startup",
			Subsystem: "completion",
			Name:      "duration_seconds",
			Help:      "Completion call latency in seconds.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 60},
		}, []string{"operation"}),
		analysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "paper2startup",
			Subsystem: "analysis",
			Name:      "runs_total",
			Help:      "Analyses by terminal stage.",
		}, []string{"outcome"}),
		analysisChunks: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "paper2startup",
			Subsystem: "analysis",
			Name:      "chunks",
			Help:      "Chunks per analyzed document.",
			Buckets:   []float64{1, 2, 3, 5, 8, 13, 21, 34},
		}),
	}
	m.registry.MustRegister(
		m.requestTotal,
		m.requestDuration,
		m.requestInFlight,
		m.completionTotal,
		m.completionDuration,
		m.analysesTotal,
		m.analysisChunks,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveCompletion(operation, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.completionTotal.WithLabelValues(operation, status).Inc()
	m.completionDuration.WithLabelValues(operation).Observe(d.Seconds())
}

func (m *Metrics) ObserveAnalysis(outcome string, chunks int) {
	if m == nil {
		return
	}
	m.analysesTotal.WithLabelValues(outcome).Inc()
	if chunks > 0 {
		m.analysisChunks.Observe(float64(chunks))
	}
}

// Middleware records request count, latency and in-flight requests. Paths are
// the registered route patterns, so label cardinality stays fixed.
func (m *Metrics) Middleware(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		m.requestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		m.requestTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
