package handler

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sift/internal/screening/models"
	dErrors "sift/pkg/domain-errors"
	"sift/pkg/platform/validation"
)

func TestResultIDUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    ResultID
		wantErr bool
	}{
		{name: "string id", payload: `"abc-123"`, want: "abc-123"},
		{name: "numeric id", payload: `42`, want: "42"},
		{name: "float id", payload: `4.5`, want: "4.5"},
		{name: "boolean rejected", payload: `true`, wantErr: true},
		{name: "object rejected", payload: `{"v":1}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id ResultID
			err := json.Unmarshal([]byte(tt.payload), &id)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestEvaluateRequestNormalize(t *testing.T) {
	req := &EvaluateRequest{
		Tenant: &TenantPayload{FirstName: "  Juan  ", LastName: " Perez "},
		PipelineData: []PipelineBlockPayload{
			{
				Type: "  refinitiv-blacklist ",
				Results: []ScreeningResultPayload{
					{FirstName: " Juan ", RiskType: " low "},
				},
			},
		},
	}

	req.Normalize()

	assert.Equal(t, "Juan", req.Tenant.FirstName)
	assert.Equal(t, "Perez", req.Tenant.LastName)
	assert.Equal(t, "refinitiv-blacklist", req.PipelineData[0].Type)
	assert.Equal(t, "Juan", req.PipelineData[0].Results[0].FirstName)
	assert.Equal(t, "low", req.PipelineData[0].Results[0].RiskType)
}

func TestEvaluateRequestValidate(t *testing.T) {
	validTenant := &TenantPayload{FirstName: "Juan", LastName: "Perez"}

	t.Run("missing tenant", func(t *testing.T) {
		req := &EvaluateRequest{PipelineData: []PipelineBlockPayload{}}
		err := req.Validate()
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
		assert.Contains(t, err.Error(), "tenant is required")
	})

	t.Run("missing pipeline_data", func(t *testing.T) {
		req := &EvaluateRequest{Tenant: validTenant}
		err := req.Validate()
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
		assert.Contains(t, err.Error(), "pipeline_data is required")
	})

	t.Run("empty pipeline is valid", func(t *testing.T) {
		req := &EvaluateRequest{Tenant: validTenant, PipelineData: []PipelineBlockPayload{}}
		assert.NoError(t, req.Validate())
	})

	t.Run("too many blocks", func(t *testing.T) {
		req := &EvaluateRequest{
			Tenant:       validTenant,
			PipelineData: make([]PipelineBlockPayload, validation.MaxPipelineBlocks+1),
		}
		err := req.Validate()
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("oversized attribute", func(t *testing.T) {
		long := make([]byte, validation.MaxAttributeLength+1)
		for i := range long {
			long[i] = 'x'
		}
		req := &EvaluateRequest{
			Tenant:       &TenantPayload{FirstName: "Juan", Location: string(long)},
			PipelineData: []PipelineBlockPayload{},
		}
		err := req.Validate()
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func TestEvaluateRequestToPipeline(t *testing.T) {
	req := &EvaluateRequest{
		Tenant: &TenantPayload{FirstName: "Juan"},
		PipelineData: []PipelineBlockPayload{
			{
				Type: "refinitiv-blacklist",
				Results: []ScreeningResultPayload{
					{ID: "r-1", FirstName: "Juan", RiskType: "low"},
					{FirstName: "Pedro", RiskType: "Critical"},
				},
			},
		},
	}

	pipeline := req.ToPipeline()
	require.Len(t, pipeline, 1)
	require.Len(t, pipeline[0].Results, 2)

	assert.Equal(t, "refinitiv-blacklist", pipeline[0].Type)
	assert.Equal(t, "r-1", pipeline[0].Results[0].ID)
	assert.Equal(t, models.RiskLow, pipeline[0].Results[0].RiskType)

	// Missing id falls back to the result's index within its block.
	assert.Equal(t, "1", pipeline[0].Results[1].ID)
	assert.Equal(t, models.RiskType("Critical"), pipeline[0].Results[1].RiskType)
}
