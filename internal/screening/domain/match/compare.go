// Package match implements the match-evaluation domain for tenant screening.
//
// The package compares a tenant's identity attributes against a candidate
// screening result and produces a weighted relevance score with
// reviewer-facing justification. It is responsible for:
//   - Per-attribute similarity scoring (name, date of birth, location,
//     nationality, gender)
//   - Weighted aggregation of attribute scores into one relevance score
//   - Classification of the score into a discrete relevance tier
//
// Domain Purity: This package contains only pure domain logic with no I/O,
// no context.Context, and no time.Now() calls. Identical inputs always
// produce identical outputs.
//
// Missing or malformed attributes never fail an evaluation: every comparator
// degrades to a zero score with an "unavailable" reason, kept distinct from
// an active mismatch so reviewers can tell "no match" from "insufficient
// data".
package match

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"sift/internal/screening/models"
)

// Field identifies one identity attribute participating in match evaluation.
type Field string

const (
	FieldName        Field = "name"
	FieldDOB         Field = "dob"
	FieldLocation    Field = "location"
	FieldNationality Field = "nationality"
	FieldGender      Field = "gender"
)

// FieldScore is the outcome of comparing one attribute across both records.
// Score is always in [0.0, 1.0]. Unavailable marks comparisons that could not
// be performed because data was missing or unparsable on either side.
type FieldScore struct {
	Field       Field
	Score       float64
	Reason      string
	Unavailable bool
}

// fieldComparator binds an attribute to its comparison function. The attribute
// set is fixed and known at design time, so dispatch is a plain ordered table;
// table order determines reason ordering in the output.
type fieldComparator struct {
	field   Field
	compare func(t models.Tenant, r models.ScreeningResult) FieldScore
}

var comparators = []fieldComparator{
	{FieldName, compareName},
	{FieldDOB, compareDOB},
	{FieldLocation, compareLocation},
	{FieldNationality, compareNationality},
	{FieldGender, compareGender},
}

func unavailable(f Field, attribute string) FieldScore {
	return FieldScore{
		Field:       f,
		Reason:      attribute + " unavailable for comparison",
		Unavailable: true,
	}
}

// normalizeText case-folds, strips punctuation, and collapses whitespace.
// Unicode letters and digits are preserved so accented names survive intact.
func normalizeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// nameTokens builds the token set of a full name from its parts.
func nameTokens(parts ...string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, part := range parts {
		for _, tok := range strings.Fields(normalizeText(part)) {
			tokens[tok] = struct{}{}
		}
	}
	return tokens
}

// compareName scores full names by token overlap: matching tokens over the
// union of tokens from both names, order-insensitive. This handles LATAM-style
// names where given and family name parts appear in varying order and count.
func compareName(t models.Tenant, r models.ScreeningResult) FieldScore {
	tenantTokens := nameTokens(t.FirstName, t.LastName)
	resultTokens := nameTokens(r.FirstName, r.LastName)

	if len(tenantTokens) == 0 || len(resultTokens) == 0 {
		return unavailable(FieldName, "name")
	}

	shared := 0
	for tok := range tenantTokens {
		if _, ok := resultTokens[tok]; ok {
			shared++
		}
	}
	union := len(tenantTokens) + len(resultTokens) - shared
	score := float64(shared) / float64(union)

	switch {
	case score == 1.0:
		return FieldScore{Field: FieldName, Score: 1.0, Reason: "name is an exact match"}
	case score > 0:
		return FieldScore{Field: FieldName, Score: score, Reason: fmt.Sprintf("name is a partial match (%.2f)", score)}
	default:
		return FieldScore{Field: FieldName, Reason: "name does not match"}
	}
}

// dobLayouts are attempted in order; the first successful parse wins.
var dobLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"02-01-2006",
}

// ParseDOB parses a date of birth in any of the supported layouts.
func ParseDOB(s string) (time.Time, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range dobLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// compareDOB is a binary comparison: identical calendar dates score 1.0,
// anything else 0.0. There is no tolerance window.
func compareDOB(t models.Tenant, r models.ScreeningResult) FieldScore {
	tenantDOB, tenantOK := ParseDOB(t.DOB)
	resultDOB, resultOK := ParseDOB(r.DOB)
	if !tenantOK || !resultOK {
		return unavailable(FieldDOB, "date of birth")
	}

	if tenantDOB.Equal(resultDOB) {
		return FieldScore{Field: FieldDOB, Score: 1.0, Reason: "date of birth matches exactly"}
	}
	return FieldScore{Field: FieldDOB, Reason: "date of birth does not match"}
}

// locationComponents splits a normalized location on commas, e.g.
// "Bogota, Colombia" -> ["bogota", "colombia"].
func locationComponents(s string) []string {
	parts := strings.Split(strings.ToLower(s), ",")
	components := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			components = append(components, trimmed)
		}
	}
	return components
}

// compareLocation scores the fraction of the tenant's location components
// found among the result's components, as exact or substring matches.
func compareLocation(t models.Tenant, r models.ScreeningResult) FieldScore {
	tenantComps := locationComponents(t.Location)
	resultComps := locationComponents(r.Location)
	if len(tenantComps) == 0 || len(resultComps) == 0 {
		return unavailable(FieldLocation, "location")
	}

	found := 0
	for _, tc := range tenantComps {
		for _, rc := range resultComps {
			if tc == rc || strings.Contains(rc, tc) {
				found++
				break
			}
		}
	}
	score := float64(found) / float64(len(tenantComps))

	switch {
	case score == 1.0:
		return FieldScore{Field: FieldLocation, Score: 1.0, Reason: "location is an exact match"}
	case score > 0:
		return FieldScore{Field: FieldLocation, Score: score, Reason: fmt.Sprintf("location is a partial match (%.2f)", score)}
	default:
		return FieldScore{Field: FieldLocation, Reason: "location does not match"}
	}
}

// compareNationality is a case-insensitive exact match on the normalized
// demonym or country name.
func compareNationality(t models.Tenant, r models.ScreeningResult) FieldScore {
	tenantNat := normalizeText(t.Nationality)
	resultNat := normalizeText(r.Nationality)
	if tenantNat == "" || resultNat == "" {
		return unavailable(FieldNationality, "nationality")
	}

	if tenantNat == resultNat {
		return FieldScore{Field: FieldNationality, Score: 1.0, Reason: "nationality matches exactly"}
	}
	return FieldScore{Field: FieldNationality, Reason: "nationality does not match"}
}

// compareGender is a case-insensitive exact match after synonym
// canonicalization (m/f/man/woman map onto male/female).
func compareGender(t models.Tenant, r models.ScreeningResult) FieldScore {
	tenantGender := models.NormalizeGender(t.Gender)
	resultGender := models.NormalizeGender(r.Gender)
	if tenantGender == "" || resultGender == "" {
		return unavailable(FieldGender, "gender")
	}

	if tenantGender == resultGender {
		return FieldScore{Field: FieldGender, Score: 1.0, Reason: "gender matches"}
	}
	return FieldScore{Field: FieldGender, Reason: "gender does not match"}
}
