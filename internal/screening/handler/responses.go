package handler

import (
	screeningv1 "sift/contracts/screening"
	"sift/internal/screening/models"
)

type EvaluationResponse struct {
	screeningv1.MatchVerdict
	TierLabel          string   `json:"tier_label"`
	MatchReasons       []string `json:"match_reasons"`
	MismatchReasons    []string `json:"mismatch_reasons"`
	UnavailableReasons []string `json:"unavailable_reasons"`
}

type EvaluateResponse struct {
	ContractVersion string               `json:"contract_version"`
	Evaluations     []EvaluationResponse `json:"evaluations"`
	TierCounts      map[string]int       `json:"tier_counts"`
}

// Response mapping functions - convert domain objects to HTTP DTOs

func toEvaluationResponse(ev models.MatchEvaluation) EvaluationResponse {
	return EvaluationResponse{
		MatchVerdict: screeningv1.MatchVerdict{
			ResultID:       ev.ResultID,
			SourceType:     ev.SourceType,
			RelevanceScore: ev.RelevanceScore,
			RelevanceTier:  ev.RelevanceTier.String(),
		},
		TierLabel:          ev.RelevanceTier.Label(),
		MatchReasons:       orEmpty(ev.MatchReasons),
		MismatchReasons:    orEmpty(ev.MismatchReasons),
		UnavailableReasons: orEmpty(ev.UnavailableReasons),
	}
}

func toEvaluateResponse(evaluations []models.MatchEvaluation, tierCounts map[string]int) *EvaluateResponse {
	out := make([]EvaluationResponse, len(evaluations))
	for i, ev := range evaluations {
		out[i] = toEvaluationResponse(ev)
	}
	return &EvaluateResponse{
		ContractVersion: screeningv1.ContractVersion,
		Evaluations:     out,
		TierCounts:      tierCounts,
	}
}

// orEmpty keeps reason lists as JSON arrays rather than null.
func orEmpty(reasons []string) []string {
	if reasons == nil {
		return []string{}
	}
	return reasons
}
