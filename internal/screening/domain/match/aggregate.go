package match

import "sift/internal/screening/models"

// Thresholds control how a field score is reported in the reason lists.
// Fields scoring at or above Match contribute a match reason; fields scoring
// at or below Mismatch contribute a mismatch reason unless the comparison was
// unavailable. Fields in between affect the numeric score only.
type Thresholds struct {
	Match    float64
	Mismatch float64
}

// DefaultThresholds returns the production reason thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{Match: 0.8, Mismatch: 0.2}
}

// Evaluation is the aggregate outcome of comparing all attributes of one
// screening result against a tenant.
type Evaluation struct {
	Score              float64
	MatchReasons       []string
	MismatchReasons    []string
	UnavailableReasons []string
}

// Aggregate runs every field comparator and combines the per-field scores
// into one weighted relevance score, bucketing reasons along the way.
// It is pure and deterministic: identical inputs always yield identical
// score and reason lists. Reason lists follow comparator table order.
func Aggregate(t models.Tenant, r models.ScreeningResult, w Weights, th Thresholds) Evaluation {
	var ev Evaluation

	for _, c := range comparators {
		fs := c.compare(t, r)
		ev.Score += w.For(c.field) * fs.Score

		switch {
		case fs.Unavailable:
			ev.UnavailableReasons = append(ev.UnavailableReasons, fs.Reason)
		case fs.Score >= th.Match:
			ev.MatchReasons = append(ev.MatchReasons, fs.Reason)
		case fs.Score <= th.Mismatch:
			ev.MismatchReasons = append(ev.MismatchReasons, fs.Reason)
		}
	}

	// Guard against float drift at the boundaries.
	if ev.Score > 1.0 {
		ev.Score = 1.0
	}
	if ev.Score < 0.0 {
		ev.Score = 0.0
	}

	return ev
}
