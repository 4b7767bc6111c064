// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Recommendation metrics
	RecommendationsProduced prometheus.Counter
	EvaluationErrors        *prometheus.CounterVec
	StateTransitions        *prometheus.CounterVec
	ZoneObservations        *prometheus.CounterVec
	StopsRecommended        prometheus.Counter

	// Guardrail metrics
	GuardrailFallbacks *prometheus.CounterVec
	ActionsEmitted     *prometheus.CounterVec

	// Promotion metrics
	PromotionsExecuted prometheus.Counter
	PromotionsDeclined *prometheus.CounterVec

	// Run metrics
	RunsTotal   *prometheus.CounterVec
	RunDuration prometheus.Histogram

	// Database metrics
	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec

	// Health metrics
	LastSuccessfulRun prometheus.Gauge
	ConfigsLoaded     prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "ppc_guardrail_lab"
	}

	return &Metrics{
		// Recommendation metrics
		RecommendationsProduced: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "recommendations_produced_total",
			Help:      "Total number of product recommendations produced",
		}),
		EvaluationErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "evaluation_errors_total",
			Help:      "Total number of evaluation errors by stage",
		}, []string{"stage"}),
		StateTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "state_transitions_total",
			Help:      "Total number of recommended lifecycle transitions",
		}, []string{"from", "to"}),
		ZoneObservations: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "zone_observations_total",
			Help:      "Total number of TACOS zone classifications",
		}, []string{"zone"}),
		StopsRecommended: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "stops_recommended_total",
			Help:      "Total number of bid stop recommendations",
		}),

		// Guardrail metrics
		GuardrailFallbacks: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "guardrail",
			Name:      "fallbacks_total",
			Help:      "Total number of keyword actions downgraded by guardrails",
		}, []string{"role", "requested_action"}),
		ActionsEmitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "guardrail",
			Name:      "actions_emitted_total",
			Help:      "Total number of keyword actions emitted by final action",
		}, []string{"action"}),

		// Promotion metrics
		PromotionsExecuted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "promotion",
			Name:      "executed_total",
			Help:      "Total number of products promoted out of new-product status",
		}),
		PromotionsDeclined: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "promotion",
			Name:      "declined_total",
			Help:      "Total number of promotion attempts declined by reason",
		}, []string{"reason"}),

		// Run metrics
		RunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "run",
			Name:      "runs_total",
			Help:      "Total number of recommendation runs by status",
		}, []string{"status"}),
		RunDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "run",
			Name:      "duration_seconds",
			Help:      "Recommendation run duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120},
		}),

		// Database metrics
		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"database", "operation"}),
		DBQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_errors_total",
			Help:      "Total number of database query errors",
		}, []string{"database", "operation"}),

		// Health metrics
		LastSuccessfulRun: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_successful_run_timestamp",
			Help:      "Unix timestamp of last successful recommendation run",
		}),
		ConfigsLoaded: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "configs_loaded",
			Help:      "Number of product configs loaded in the last run",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordRecommendation increments the recommendation counters for one product.
func RecordRecommendation(zone string, stop bool) {
	DefaultMetrics.RecommendationsProduced.Inc()
	DefaultMetrics.ZoneObservations.WithLabelValues(zone).Inc()
	if stop {
		DefaultMetrics.StopsRecommended.Inc()
	}
}

// RecordStateTransition records a recommended lifecycle transition.
// No-op when the state is unchanged.
func RecordStateTransition(from, to string) {
	if from == to {
		return
	}
	DefaultMetrics.StateTransitions.WithLabelValues(from, to).Inc()
}

// RecordGuardrailFallback records a keyword action downgraded by guardrails.
func RecordGuardrailFallback(role, requestedAction string) {
	DefaultMetrics.GuardrailFallbacks.WithLabelValues(role, requestedAction).Inc()
}

// RecordActionEmitted records the final action emitted for a keyword.
func RecordActionEmitted(action string) {
	DefaultMetrics.ActionsEmitted.WithLabelValues(action).Inc()
}

// RecordPromotion records a promotion outcome. An empty declinedReason means
// the product was promoted.
func RecordPromotion(declinedReason string) {
	if declinedReason == "" {
		DefaultMetrics.PromotionsExecuted.Inc()
		return
	}
	DefaultMetrics.PromotionsDeclined.WithLabelValues(declinedReason).Inc()
}

// RecordEvaluationError records an evaluation error by stage.
func RecordEvaluationError(stage string) {
	DefaultMetrics.EvaluationErrors.WithLabelValues(stage).Inc()
}

// RecordRun records a full recommendation run.
func RecordRun(status string, durationSeconds float64) {
	DefaultMetrics.RunsTotal.WithLabelValues(status).Inc()
	DefaultMetrics.RunDuration.Observe(durationSeconds)
}

// RecordDBQuery records database query metrics.
func RecordDBQuery(database, operation string, seconds float64, err error) {
	DefaultMetrics.DBQueryDuration.WithLabelValues(database, operation).Observe(seconds)
	if err != nil {
		DefaultMetrics.DBQueryErrors.WithLabelValues(database, operation).Inc()
	}
}
