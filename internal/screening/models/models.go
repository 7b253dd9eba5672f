// Package models defines the inputs and outputs of screening match evaluation.
//
// All types are plain values: the evaluation engine never mutates its inputs,
// and a MatchEvaluation is created once per screening result and never
// modified after creation.
package models

import "strings"

// Gender enumerates the recognized gender values on identity records.
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderOther   Gender = "other"
	GenderUnknown Gender = "unknown"
)

// genderSynonyms maps common wire representations onto canonical values.
var genderSynonyms = map[string]Gender{
	"m":       GenderMale,
	"male":    GenderMale,
	"man":     GenderMale,
	"f":       GenderFemale,
	"female":  GenderFemale,
	"woman":   GenderFemale,
	"other":   GenderOther,
	"unknown": GenderUnknown,
}

// NormalizeGender canonicalizes a free-form gender string.
// Unrecognized non-empty values pass through lowercased so that two records
// using the same unrecognized value still compare equal.
// An empty input returns the empty string, signalling a missing attribute.
func NormalizeGender(s string) Gender {
	trimmed := strings.ToLower(strings.TrimSpace(s))
	if trimmed == "" {
		return ""
	}
	if g, ok := genderSynonyms[trimmed]; ok {
		return g
	}
	return Gender(trimmed)
}

// RiskType categorizes a screening result's risk as reported by the source.
// It is informational only and never participates in relevance scoring.
type RiskType string

const (
	RiskLow    RiskType = "Low"
	RiskMedium RiskType = "Medium"
	RiskHigh   RiskType = "High"
)

func (r RiskType) IsValid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh, "":
		return true
	default:
		return false
	}
}

// Tenant holds the identity attributes of the person being screened.
// Individual attributes may be empty; comparators treat those as unavailable.
type Tenant struct {
	FirstName   string
	LastName    string
	DOB         string
	Gender      string
	Nationality string
	Location    string
}

// ScreeningResult is one candidate record returned by a screening source.
// ID is an opaque caller-defined identifier carried through to the evaluation.
type ScreeningResult struct {
	ID          string
	FirstName   string
	LastName    string
	DOB         string
	Gender      string
	Nationality string
	Location    string
	RiskType    RiskType
}

// PipelineBlock groups the results of one screening source, e.g.
// "refinitiv-blacklist". Block and result order is preserved in output.
type PipelineBlock struct {
	Type    string
	Results []ScreeningResult
}

// RelevanceTier is the discrete classification of a relevance score.
type RelevanceTier string

const (
	TierLow    RelevanceTier = "Low"
	TierMedium RelevanceTier = "Medium"
	TierHigh   RelevanceTier = "High"
)

func (t RelevanceTier) IsValid() bool {
	switch t {
	case TierLow, TierMedium, TierHigh:
		return true
	default:
		return false
	}
}

func (t RelevanceTier) String() string {
	return string(t)
}

// Label returns the reviewer-facing description of the tier.
func (t RelevanceTier) Label() string {
	switch t {
	case TierHigh:
		return "Highly Relevant Match"
	case TierMedium:
		return "Potentially Relevant Match"
	default:
		return "Low Relevance Match"
	}
}

// MatchEvaluation is the outcome of evaluating one screening result against
// a tenant. Unavailable reasons are kept apart from mismatch reasons so audit
// consumers can distinguish "no match" from "insufficient data".
type MatchEvaluation struct {
	ResultID           string
	SourceType         string
	RelevanceScore     float64
	RelevanceTier      RelevanceTier
	MatchReasons       []string
	MismatchReasons    []string
	UnavailableReasons []string
}
