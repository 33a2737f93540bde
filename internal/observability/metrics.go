// Package observability holds the Prometheus metrics exported by the server.
package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "focloireacht"

// Metrics groups every collector the server exports. A nil *Metrics is a
// valid no-op recorder.
type Metrics struct {
	votesTotal        *prometheus.CounterVec
	reviewsTotal      *prometheus.CounterVec
	rateLimitTotal    *prometheus.CounterVec
	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with registry.
func NewMetrics(registry prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		votesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "votes_total",
				Help:      "Votes cast, by outcome.",
			},
			[]string{"outcome"}, // recorded, removed, updated
		),
		reviewsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reviews_total",
				Help:      "Moderation decisions, by item kind and decision.",
			},
			[]string{"kind", "decision"}, // kind: submission, report, suggestion
		),
		rateLimitTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ratelimit_decisions_total",
				Help:      "Rate limiter decisions, by rule.",
			},
			[]string{"rule", "allowed"},
		),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests, by method, route pattern and status code.",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency, by method and route pattern.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}

	for _, c := range []prometheus.Collector{
		m.votesTotal, m.reviewsTotal, m.rateLimitTotal, m.httpRequestsTotal, m.httpDuration,
	} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// VoteCast counts one vote outcome.
func (m *Metrics) VoteCast(outcome string) {
	if m == nil {
		return
	}
	m.votesTotal.WithLabelValues(outcome).Inc()
}

// ReviewDecided counts one moderation decision.
func (m *Metrics) ReviewDecided(kind, decision string) {
	if m == nil {
		return
	}
	m.reviewsTotal.WithLabelValues(kind, decision).Inc()
}

// RateLimitDecided counts one limiter decision.
func (m *Metrics) RateLimitDecided(rule string, allowed bool) {
	if m == nil {
		return
	}
	m.rateLimitTotal.WithLabelValues(rule, strconv.FormatBool(allowed)).Inc()
}

// HTTPRequest records one served request.
func (m *Metrics) HTTPRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
