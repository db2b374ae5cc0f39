package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsOptions configures the Prometheus collectors.
type MetricsOptions struct {
	Registerer prometheus.Registerer
	Namespace  string
	Buckets    []float64
}

// Metrics exposes Prometheus collectors for requests and dispatched events.
type Metrics struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
	Events   *prometheus.CounterVec
	Sessions prometheus.Gauge
}

// NewMetrics constructs the collectors and registers them with the provided registerer.
// Collectors already registered under the same name are reused.
func NewMetrics(opts MetricsOptions) (*Metrics, error) {
	namespace := opts.Namespace
	if namespace == "" {
		namespace = "tcm"
	}
	reg := opts.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	buckets := opts.Buckets
	if len(buckets) == 0 {
		buckets = prometheus.DefBuckets
	}

	requests, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests partitioned by method, route, and status code.",
	}, []string{"method", "route", "status"}))
	if err != nil {
		return nil, err
	}

	duration, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Histogram of HTTP request latencies in seconds partitioned by method and route.",
		Buckets:   buckets,
	}, []string{"method", "route"}))
	if err != nil {
		return nil, err
	}

	events, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "state",
		Name:      "events_total",
		Help:      "Total number of dispatched state events partitioned by event and whether they changed anything.",
	}, []string{"event", "handled"}))
	if err != nil {
		return nil, err
	}

	sessions, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "state",
		Name:      "sessions",
		Help:      "Current number of live browser sessions.",
	}))
	if err != nil {
		return nil, err
	}

	return &Metrics{Requests: requests, Duration: duration, Events: events, Sessions: sessions}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		already, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return c, fmt.Errorf("register collector: %w", err)
		}
		existing, ok := already.ExistingCollector.(C)
		if !ok {
			return c, fmt.Errorf("existing collector has unexpected type %T", already.ExistingCollector)
		}
		return existing, nil
	}
	return c, nil
}

// ObserveEvent counts one dispatched event. Safe on a nil receiver.
func (m *Metrics) ObserveEvent(event string, handled bool) {
	if m == nil || m.Events == nil {
		return
	}
	m.Events.WithLabelValues(event, strconv.FormatBool(handled)).Inc()
}

// SetSessions records the live session count. Safe on a nil receiver.
func (m *Metrics) SetSessions(n int) {
	if m == nil || m.Sessions == nil {
		return
	}
	m.Sessions.Set(float64(n))
}

var knownRoutes = map[string]bool{
	"/": true, "/activities": true, "/capacity": true, "/cycle": true, "/control": true,
	"/login": true, "/login/sso": true, "/login/mode": true, "/login/forgot": true, "/logout": true,
	"/alert/dismiss": true, "/sidebar/toggle": true, "/sidebar/overlay": true,
	"/filters": true, "/map/click": true, "/view": true, "/view/organize": true, "/grid": true,
	"/api/state": true, "/api/perf": true, "/healthz": true, "/metrics": true,
}

// routeLabel collapses paths into a bounded label set.
func routeLabel(path string) string {
	if knownRoutes[path] {
		return path
	}
	if strings.HasPrefix(path, "/static/") {
		return "/static/"
	}
	return "other"
}

// Instrument returns middleware that records request count and latency.
// A nil Metrics yields a pass-through middleware.
func Instrument(m *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			route := routeLabel(r.URL.Path)
			m.Requests.WithLabelValues(r.Method, route, strconv.Itoa(sw.status)).Inc()
			m.Duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}
