package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the screening module.
type Metrics struct {
	EvaluationsTotal prometheus.Counter
	ResultsEvaluated prometheus.Counter
	TierAssigned     *prometheus.CounterVec
	RelevanceScore   prometheus.Histogram
	EvaluateDuration prometheus.Histogram
}

// New creates and registers all screening metrics.
func New() *Metrics {
	return &Metrics{
		EvaluationsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sift_evaluations_total",
			Help: "Total number of pipeline evaluations performed",
		}),
		ResultsEvaluated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sift_screening_results_evaluated_total",
			Help: "Total number of screening results scored across all evaluations",
		}),
		TierAssigned: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sift_relevance_tier_total",
			Help: "Total number of results per assigned relevance tier",
		}, []string{"tier"}),
		RelevanceScore: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "sift_relevance_score",
			Help:    "Distribution of computed relevance scores",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		}),
		EvaluateDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "sift_evaluate_duration_seconds",
			Help:    "Duration of full pipeline evaluations",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
	}
}

// IncrementEvaluations increments the evaluation counter by 1.
func (m *Metrics) IncrementEvaluations() {
	m.EvaluationsTotal.Inc()
}

// AddResultsEvaluated records how many screening results one evaluation scored.
func (m *Metrics) AddResultsEvaluated(count int) {
	m.ResultsEvaluated.Add(float64(count))
}

// ObserveResult records the per-result score and tier.
func (m *Metrics) ObserveResult(tier string, score float64) {
	m.TierAssigned.WithLabelValues(tier).Inc()
	m.RelevanceScore.Observe(score)
}

// ObserveEvaluateDuration records the latency of a full pipeline evaluation.
func (m *Metrics) ObserveEvaluateDuration(start time.Time) {
	m.EvaluateDuration.Observe(time.Since(start).Seconds())
}
