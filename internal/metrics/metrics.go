package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dom/softball-lineup/internal/lineup"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "softball_lineup"

// Recorder exposes generation and HTTP metrics on its own registry.
// A nil Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	plans             *prometheus.CounterVec
	issues            *prometheus.CounterVec
	battingAttempts   prometheus.Histogram
	generationSeconds prometheus.Histogram
	edits             *prometheus.CounterVec
	shareDecodes      *prometheus.CounterVec
	requests          *prometheus.CounterVec
	requestSeconds    *prometheus.HistogramVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		plans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plans_generated_total",
			Help:      "Game plans generated, by whether fielding could be produced.",
		}, []string{"outcome"}),
		issues: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plan_issues_total",
			Help:      "Soft constraint violations found while generating plans.",
		}, []string{"kind"}),
		battingAttempts: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batting_attempts",
			Help:      "Construction attempts needed per batting order.",
			Buckets:   []float64{1, 2, 5, 10, 25, 50, 100},
		}),
		generationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Time spent generating a game plan.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
		edits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plan_edits_total",
			Help:      "Manual plan edits, by operation and result.",
		}, []string{"op", "result"}),
		shareDecodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "share_decodes_total",
			Help:      "Share links decoded, by result.",
		}, []string{"result"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served.",
		}, []string{"method", "route", "status"}),
		requestSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.plans, r.issues, r.battingAttempts, r.generationSeconds,
		r.edits, r.shareDecodes, r.requests, r.requestSeconds,
	)
	return r
}

// Handler serves the registry in the Prometheus exposition format
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// RecordGeneration tracks one generated plan and the issues hit while building it
func (r *Recorder) RecordGeneration(result *lineup.Result, duration time.Duration) {
	if r == nil || result == nil {
		return
	}
	outcome := "complete"
	if len(result.Plan.Fielding) == 0 {
		outcome = "batting_only"
	}
	r.plans.WithLabelValues(outcome).Inc()
	for kind, n := range lineup.CountByKind(result.Diagnostics) {
		r.issues.WithLabelValues(string(kind)).Add(float64(n))
	}
	r.battingAttempts.Observe(float64(result.BattingAttempts))
	r.generationSeconds.Observe(duration.Seconds())
}

// RecordEdit tracks a manual edit
func (r *Recorder) RecordEdit(op string, err error) {
	if r == nil {
		return
	}
	r.edits.WithLabelValues(op, resultLabel(err)).Inc()
}

// RecordShareDecode tracks a share link load
func (r *Recorder) RecordShareDecode(err error) {
	if r == nil {
		return
	}
	r.shareDecodes.WithLabelValues(resultLabel(err)).Inc()
}

// RecordHTTPRequest tracks basic HTTP metrics
func (r *Recorder) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	r.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.requestSeconds.WithLabelValues(method, route).Observe(duration.Seconds())
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
