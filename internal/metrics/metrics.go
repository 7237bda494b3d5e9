// Package metrics exposes Prometheus counters for HTTP traffic and the
// equipment lifecycle.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds collectors on a private registry. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	reqTotal    *prometheus.CounterVec
	reqLatency  *prometheus.HistogramVec
	transitions *prometheus.CounterVec
	escalations prometheus.Counter
	sweepFailed prometheus.Counter
	registry    *prometheus.Registry
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	reqTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	reqLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	transitions := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "equipment_transitions_total",
			Help: "Lifecycle log entries written, by action",
		},
		[]string{"action"},
	)

	escalations := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "equipment_followup_escalations_total",
		Help: "Borrowed items flipped to Follow Up by the sweep",
	})

	sweepFailed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "equipment_followup_failures_total",
		Help: "Items the follow-up sweep could not update",
	})

	registry.MustRegister(reqTotal, reqLatency, transitions, escalations, sweepFailed)

	return &Metrics{
		reqTotal:    reqTotal,
		reqLatency:  reqLatency,
		transitions: transitions,
		escalations: escalations,
		sweepFailed: sweepFailed,
		registry:    registry,
	}
}

// Middleware records every request under its route pattern.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		status := strconv.Itoa(c.Writer.Status())
		m.reqTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.reqLatency.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Transition(action string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(action).Inc()
}

func (m *Metrics) Escalated() {
	if m == nil {
		return
	}
	m.escalations.Inc()
}

func (m *Metrics) SweepFailed() {
	if m == nil {
		return
	}
	m.sweepFailed.Inc()
}
