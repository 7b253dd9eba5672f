package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"

	"sift/internal/screening/domain/match"
	"sift/internal/screening/models"
	dErrors "sift/pkg/domain-errors"
	"sift/pkg/testutil"
)

type EvaluatorSuite struct {
	suite.Suite
	evaluator *Evaluator
	tenant    models.Tenant
}

func (s *EvaluatorSuite) SetupTest() {
	ev, err := New(
		match.DefaultWeights(),
		match.DefaultBands(),
		match.DefaultThresholds(),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	s.Require().NoError(err)
	s.evaluator = ev

	s.tenant = models.Tenant{
		FirstName:   "Juan Carlos",
		LastName:    "Perez Gonzalez",
		DOB:         "1990-05-15",
		Gender:      "male",
		Nationality: "colombian",
		Location:    "Bogota, Colombia",
	}
}

func (s *EvaluatorSuite) TestNewRejectsInvalidConfiguration() {
	s.Run("weights not summing to one", func() {
		_, err := New(match.Weights{Name: 0.5}, match.DefaultBands(), match.DefaultThresholds())
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	s.Run("inverted bands", func() {
		_, err := New(match.DefaultWeights(), match.Bands{High: 0.3, Medium: 0.6}, match.DefaultThresholds())
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})
}

func (s *EvaluatorSuite) TestEvaluateRejectsMissingEnvelope() {
	s.Run("nil tenant", func() {
		_, err := s.evaluator.Evaluate(context.Background(), nil, []models.PipelineBlock{})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	s.Run("nil pipeline", func() {
		_, err := s.evaluator.Evaluate(context.Background(), &s.tenant, nil)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

func (s *EvaluatorSuite) TestEvaluateEmptyPipeline() {
	evaluations, err := s.evaluator.Evaluate(context.Background(), &s.tenant, []models.PipelineBlock{})
	s.Require().NoError(err)
	s.NotNil(evaluations)
	s.Empty(evaluations)
}

func (s *EvaluatorSuite) TestEvaluatePreservesPipelineOrder() {
	pipeline := []models.PipelineBlock{
		{
			Type: "sanctions",
			Results: []models.ScreeningResult{
				{ID: "s-1", FirstName: "Juan Carlos", LastName: "Perez Gonzalez"},
				{ID: "s-2", FirstName: "Maria", LastName: "Lopez"},
			},
		},
		{
			Type: "watchlist",
			Results: []models.ScreeningResult{
				{ID: "w-1", FirstName: "Juan", LastName: "Perez"},
			},
		},
	}

	evaluations, err := s.evaluator.Evaluate(context.Background(), &s.tenant, pipeline)
	s.Require().NoError(err)
	s.Require().Len(evaluations, 3)

	s.Equal("s-1", evaluations[0].ResultID)
	s.Equal("s-2", evaluations[1].ResultID)
	s.Equal("w-1", evaluations[2].ResultID)

	s.Equal("sanctions", evaluations[0].SourceType)
	s.Equal("sanctions", evaluations[1].SourceType)
	s.Equal("watchlist", evaluations[2].SourceType)
}

func (s *EvaluatorSuite) TestEvaluateScoresAndClassifies() {
	pipeline := []models.PipelineBlock{
		{
			Type: "sanctions",
			Results: []models.ScreeningResult{
				{
					ID:          "exact",
					FirstName:   "Juan Carlos",
					LastName:    "Perez Gonzalez",
					DOB:         "1990-05-15",
					Gender:      "m",
					Nationality: "Colombian",
					Location:    "Bogota, Colombia",
				},
				{
					ID:        "sparse",
					FirstName: "Pedro",
					LastName:  "Ramirez",
				},
			},
		},
	}

	evaluations, err := s.evaluator.Evaluate(context.Background(), &s.tenant, pipeline)
	s.Require().NoError(err)
	s.Require().Len(evaluations, 2)

	exact := evaluations[0]
	s.InDelta(1.0, exact.RelevanceScore, 1e-9)
	s.Equal(models.TierHigh, exact.RelevanceTier)
	s.Len(exact.MatchReasons, 5)
	s.Empty(exact.MismatchReasons)
	s.Empty(exact.UnavailableReasons)

	sparse := evaluations[1]
	s.Equal(models.TierLow, sparse.RelevanceTier)
	s.Contains(sparse.MismatchReasons, "name does not match")
	s.Len(sparse.UnavailableReasons, 4)
}

func (s *EvaluatorSuite) TestEvaluateIsDeterministic() {
	pipeline := []models.PipelineBlock{
		{
			Type: "adverse_media",
			Results: []models.ScreeningResult{
				{ID: "a-1", FirstName: "Juan", LastName: "Gonzalez", Location: "Bogota"},
			},
		},
	}

	first, err := s.evaluator.Evaluate(context.Background(), &s.tenant, pipeline)
	s.Require().NoError(err)
	second, err := s.evaluator.Evaluate(context.Background(), &s.tenant, pipeline)
	s.Require().NoError(err)

	s.Equal(first, second)
}

func (s *EvaluatorSuite) TestEvaluateConcurrentRequests() {
	tenant := testutil.NewTenantBuilder().Build()
	pipeline := testutil.Pipeline(
		testutil.Block("sanctions", testutil.BulkResults(tenant, 10)...),
	)

	res := testutil.RunConcurrentCtx(context.Background(), 16, func(ctx context.Context, idx int) error {
		evaluations, err := s.evaluator.Evaluate(ctx, &tenant, pipeline)
		if err != nil {
			return err
		}
		if len(evaluations) != 10 {
			return fmt.Errorf("expected 10 evaluations, got %d", len(evaluations))
		}
		return nil
	})

	s.Equal(int32(16), res.Successes)
	s.Equal(int32(16), res.Total())
}

func (s *EvaluatorSuite) TestTierCounts() {
	evaluations := []models.MatchEvaluation{
		{RelevanceTier: models.TierHigh},
		{RelevanceTier: models.TierHigh},
		{RelevanceTier: models.TierLow},
	}

	counts := TierCounts(evaluations)
	s.Equal(2, counts[models.TierHigh.String()])
	s.Equal(0, counts[models.TierMedium.String()])
	s.Equal(1, counts[models.TierLow.String()])
}

func (s *EvaluatorSuite) TestTierCountsEmpty() {
	counts := TierCounts(nil)
	s.Len(counts, 3)
	for tier, n := range counts {
		s.Zero(n, tier)
	}
}

func TestEvaluatorSuite(t *testing.T) {
	suite.Run(t, new(EvaluatorSuite))
}
