package service

import (
	"context"
	"log/slog"
	"time"

	"sift/internal/screening/domain/match"
	screeningmetrics "sift/internal/screening/metrics"
	"sift/internal/screening/models"
	"sift/internal/screening/tracer"
	dErrors "sift/pkg/domain-errors"
)

// Evaluator walks a screening pipeline and scores every result against a
// tenant. It holds the process-wide weight table and classification bands;
// each Evaluate call owns its inputs and outputs exclusively, so concurrent
// requests need no coordination.
type Evaluator struct {
	weights    match.Weights
	bands      match.Bands
	thresholds match.Thresholds
	logger     *slog.Logger
	metrics    *screeningmetrics.Metrics
	tracer     tracer.Tracer
}

// Option configures the Evaluator.
type Option func(*Evaluator)

// WithLogger sets the logger for the evaluator.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Evaluator) {
		e.logger = logger
	}
}

// WithMetrics sets the metrics sink for the evaluator.
func WithMetrics(m *screeningmetrics.Metrics) Option {
	return func(e *Evaluator) {
		e.metrics = m
	}
}

// WithTracer sets the tracer for the evaluator.
func WithTracer(t tracer.Tracer) Option {
	return func(e *Evaluator) {
		e.tracer = t
	}
}

// New creates an Evaluator with the given scoring configuration.
// Returns an invariant violation if the weight table or bands are invalid,
// so a misconfigured process fails at wiring time rather than per request.
func New(weights match.Weights, bands match.Bands, thresholds match.Thresholds, opts ...Option) (*Evaluator, error) {
	if err := weights.Validate(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvariantViolation, "invalid weight table")
	}
	if err := bands.Validate(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvariantViolation, "invalid classification bands")
	}

	e := &Evaluator{
		weights:    weights,
		bands:      bands,
		thresholds: thresholds,
		tracer:     tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Evaluate scores every screening result in the pipeline against the tenant.
// Blocks and results are visited in input order and every result produces
// exactly one MatchEvaluation; a pipeline with zero blocks (or blocks with
// zero results) yields an empty list, never an error.
//
// The only failure mode is a structurally invalid envelope: a nil tenant or
// nil pipeline surfaces as a bad-request domain error and no partial
// evaluation is attempted. Missing or malformed attribute values inside a
// result degrade locally and never fail the call.
func (e *Evaluator) Evaluate(ctx context.Context, tenant *models.Tenant, pipeline []models.PipelineBlock) ([]models.MatchEvaluation, error) {
	start := time.Now()

	_, span := e.tracer.Start(ctx, "screening.evaluate",
		tracer.Int("pipeline_blocks", len(pipeline)),
	)

	if tenant == nil {
		err := dErrors.New(dErrors.CodeBadRequest, "tenant is required")
		span.End(err)
		return nil, err
	}
	if pipeline == nil {
		err := dErrors.New(dErrors.CodeBadRequest, "pipeline_data is required")
		span.End(err)
		return nil, err
	}

	evaluations := make([]models.MatchEvaluation, 0)
	for _, block := range pipeline {
		for _, result := range block.Results {
			evaluations = append(evaluations, e.evaluateResult(*tenant, block.Type, result))
		}
	}

	span.SetAttributes(tracer.Int("results_evaluated", len(evaluations)))
	span.End(nil)

	if e.metrics != nil {
		e.metrics.IncrementEvaluations()
		e.metrics.AddResultsEvaluated(len(evaluations))
		e.metrics.ObserveEvaluateDuration(start)
	}
	if e.logger != nil {
		e.logger.InfoContext(ctx, "pipeline evaluated",
			"blocks", len(pipeline),
			"results", len(evaluations),
		)
	}

	return evaluations, nil
}

// evaluateResult aggregates, classifies, and shapes one screening result.
func (e *Evaluator) evaluateResult(tenant models.Tenant, sourceType string, result models.ScreeningResult) models.MatchEvaluation {
	agg := match.Aggregate(tenant, result, e.weights, e.thresholds)
	tier := e.bands.Classify(agg.Score)

	if e.metrics != nil {
		e.metrics.ObserveResult(tier.String(), agg.Score)
	}

	return models.MatchEvaluation{
		ResultID:           result.ID,
		SourceType:         sourceType,
		RelevanceScore:     agg.Score,
		RelevanceTier:      tier,
		MatchReasons:       agg.MatchReasons,
		MismatchReasons:    agg.MismatchReasons,
		UnavailableReasons: agg.UnavailableReasons,
	}
}

// TierCounts tallies evaluations per relevance tier for response summaries.
func TierCounts(evaluations []models.MatchEvaluation) map[string]int {
	counts := map[string]int{
		models.TierLow.String():    0,
		models.TierMedium.String(): 0,
		models.TierHigh.String():   0,
	}
	for _, ev := range evaluations {
		counts[ev.RelevanceTier.String()]++
	}
	return counts
}
