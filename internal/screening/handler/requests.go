package handler

import (
	"encoding/json"
	"strconv"
	"strings"

	"sift/internal/screening/models"
	dErrors "sift/pkg/domain-errors"
	"sift/pkg/platform/validation"
)

// HTTP Request DTOs - contain JSON tags for API serialization.
// These are converted to domain models before evaluation.

// ResultID accepts both JSON strings and JSON numbers for the result `id`
// field; upstream screening providers are inconsistent about which they send.
type ResultID string

func (r *ResultID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = ResultID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*r = ResultID(n.String())
		return nil
	}

	return dErrors.New(dErrors.CodeValidation, "result id must be a string or number")
}

func (r ResultID) String() string {
	return string(r)
}

type TenantPayload struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DOB         string `json:"dob"`
	Gender      string `json:"gender"`
	Nationality string `json:"nationality"`
	Location    string `json:"location"`
}

type ScreeningResultPayload struct {
	ID          ResultID `json:"id"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	DOB         string   `json:"dob"`
	Gender      string   `json:"gender"`
	Nationality string   `json:"nationality"`
	Location    string   `json:"location"`
	RiskType    string   `json:"risk_type"`
}

type PipelineBlockPayload struct {
	Type    string                   `json:"type"`
	Results []ScreeningResultPayload `json:"results"`
}

type EvaluateRequest struct {
	Tenant       *TenantPayload         `json:"tenant"`
	PipelineData []PipelineBlockPayload `json:"pipeline_data"`
}

// Normalize trims all free-form attributes for stable comparison input.
func (r *EvaluateRequest) Normalize() {
	if r == nil {
		return
	}
	if r.Tenant != nil {
		r.Tenant.FirstName = strings.TrimSpace(r.Tenant.FirstName)
		r.Tenant.LastName = strings.TrimSpace(r.Tenant.LastName)
		r.Tenant.DOB = strings.TrimSpace(r.Tenant.DOB)
		r.Tenant.Gender = strings.TrimSpace(r.Tenant.Gender)
		r.Tenant.Nationality = strings.TrimSpace(r.Tenant.Nationality)
		r.Tenant.Location = strings.TrimSpace(r.Tenant.Location)
	}
	for i := range r.PipelineData {
		block := &r.PipelineData[i]
		block.Type = strings.TrimSpace(block.Type)
		for j := range block.Results {
			res := &block.Results[j]
			res.FirstName = strings.TrimSpace(res.FirstName)
			res.LastName = strings.TrimSpace(res.LastName)
			res.DOB = strings.TrimSpace(res.DOB)
			res.Gender = strings.TrimSpace(res.Gender)
			res.Nationality = strings.TrimSpace(res.Nationality)
			res.Location = strings.TrimSpace(res.Location)
			res.RiskType = strings.TrimSpace(res.RiskType)
		}
	}
}

// Validate validates the evaluate request following strict validation order.
func (r *EvaluateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}

	// Phase 1: Required envelope keys
	if r.Tenant == nil {
		return dErrors.New(dErrors.CodeBadRequest, "tenant is required")
	}
	if r.PipelineData == nil {
		return dErrors.New(dErrors.CodeBadRequest, "pipeline_data is required")
	}

	// Phase 2: Size validation (fail fast on oversized input)
	if err := validation.CheckSliceCount("pipeline blocks", len(r.PipelineData), validation.MaxPipelineBlocks); err != nil {
		return err
	}
	if err := r.Tenant.validate(); err != nil {
		return err
	}
	for i := range r.PipelineData {
		block := &r.PipelineData[i]
		if err := validation.CheckStringLength("block type", block.Type, validation.MaxSourceTypeLength); err != nil {
			return err
		}
		if err := validation.CheckSliceCount("results", len(block.Results), validation.MaxResultsPerBlock); err != nil {
			return err
		}
		for j := range block.Results {
			if err := block.Results[j].validate(); err != nil {
				return err
			}
		}
	}

	return nil
}

func (t *TenantPayload) validate() error {
	return checkIdentityAttrs(t.FirstName, t.LastName, t.DOB, t.Gender, t.Nationality, t.Location)
}

func (s *ScreeningResultPayload) validate() error {
	return checkIdentityAttrs(s.FirstName, s.LastName, s.DOB, s.Gender, s.Nationality, s.Location)
}

// checkIdentityAttrs bounds the shared attribute set of tenants and results.
func checkIdentityAttrs(firstName, lastName, dob, gender, nationality, location string) error {
	if err := validation.CheckStringLength("first_name", firstName, validation.MaxNameLength); err != nil {
		return err
	}
	if err := validation.CheckStringLength("last_name", lastName, validation.MaxNameLength); err != nil {
		return err
	}
	if err := validation.CheckStringLength("dob", dob, validation.MaxAttributeLength); err != nil {
		return err
	}
	if err := validation.CheckStringLength("gender", gender, validation.MaxAttributeLength); err != nil {
		return err
	}
	if err := validation.CheckStringLength("nationality", nationality, validation.MaxAttributeLength); err != nil {
		return err
	}
	return validation.CheckStringLength("location", location, validation.MaxAttributeLength)
}

// ToTenant converts the HTTP payload to the domain model.
func (r *EvaluateRequest) ToTenant() *models.Tenant {
	return &models.Tenant{
		FirstName:   r.Tenant.FirstName,
		LastName:    r.Tenant.LastName,
		DOB:         r.Tenant.DOB,
		Gender:      r.Tenant.Gender,
		Nationality: r.Tenant.Nationality,
		Location:    r.Tenant.Location,
	}
}

// ToPipeline converts the HTTP payload blocks to domain models.
func (r *EvaluateRequest) ToPipeline() []models.PipelineBlock {
	pipeline := make([]models.PipelineBlock, len(r.PipelineData))
	for i, block := range r.PipelineData {
		results := make([]models.ScreeningResult, len(block.Results))
		for j, res := range block.Results {
			results[j] = models.ScreeningResult{
				ID:          resultIDOrIndex(res.ID, j),
				FirstName:   res.FirstName,
				LastName:    res.LastName,
				DOB:         res.DOB,
				Gender:      res.Gender,
				Nationality: res.Nationality,
				Location:    res.Location,
				RiskType:    normalizeRiskType(res.RiskType),
			}
		}
		pipeline[i] = models.PipelineBlock{Type: block.Type, Results: results}
	}
	return pipeline
}

// resultIDOrIndex falls back to the result's position so every evaluation
// carries an identifier even when the source omitted one.
func resultIDOrIndex(id ResultID, index int) string {
	if id != "" {
		return id.String()
	}
	return strconv.Itoa(index)
}

func normalizeRiskType(s string) models.RiskType {
	switch strings.ToLower(s) {
	case "low":
		return models.RiskLow
	case "medium":
		return models.RiskMedium
	case "high":
		return models.RiskHigh
	default:
		return models.RiskType(s)
	}
}
