package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

var (
	// Request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conversation_analyzer_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "conversation_analyzer_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Analysis metrics
	analysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conversation_analyzer_analyses_total",
			Help: "Total number of conversation analyses",
		},
		[]string{"source", "outcome"},
	)

	overallScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "conversation_analyzer_overall_score",
			Help:    "Distribution of overall conversation quality scores",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
	)

	escalationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "conversation_analyzer_escalations_total",
			Help: "Total number of analyses flagged for human escalation",
		},
	)

	fallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "conversation_analyzer_fallback_messages_total",
			Help: "Total number of assistant fallback messages seen",
		},
	)

	// Sweep metrics
	sweepConversationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conversation_analyzer_sweep_conversations_total",
			Help: "Conversations handled by pending-analysis sweeps",
		},
		[]string{"outcome"},
	)

	sweepDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "conversation_analyzer_sweep_duration_seconds",
			Help:    "Duration of pending-analysis sweeps",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300},
		},
	)
)

func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordAnalysis counts a successful analysis and its headline signals.
func RecordAnalysis(source string, score float64, escalated bool, fallbacks int) {
	analysesTotal.WithLabelValues(source, OutcomeSuccess).Inc()
	overallScore.Observe(score)
	if escalated {
		escalationsTotal.Inc()
	}
	if fallbacks > 0 {
		fallbacksTotal.Add(float64(fallbacks))
	}
}

func RecordAnalysisError(source string) {
	analysesTotal.WithLabelValues(source, OutcomeError).Inc()
}

func RecordSweep(processed, failed int, duration time.Duration) {
	sweepConversationsTotal.WithLabelValues(OutcomeSuccess).Add(float64(processed))
	sweepConversationsTotal.WithLabelValues(OutcomeError).Add(float64(failed))
	sweepDuration.Observe(duration.Seconds())
}

func Handler() http.Handler {
	return promhttp.Handler()
}
