package match

import (
	"errors"

	"sift/internal/screening/models"
)

// ErrInvalidBands indicates the classification bands are not ordered
// 0 <= Medium < High <= 1.
var ErrInvalidBands = errors.New("invalid bands: require 0 <= medium < high <= 1")

// Bands holds the fixed, non-overlapping score thresholds that map a
// relevance score onto a tier. Boundaries are inclusive on the lower edge of
// each band, so exactly one tier applies to every score in [0, 1].
type Bands struct {
	High   float64
	Medium float64
}

// DefaultBands returns the production classification thresholds.
func DefaultBands() Bands {
	return Bands{High: 0.85, Medium: 0.5}
}

// Validate checks band ordering.
func (b Bands) Validate() error {
	if b.Medium < 0 || b.Medium >= b.High || b.High > 1 {
		return ErrInvalidBands
	}
	return nil
}

// Classify maps a relevance score onto its tier.
func (b Bands) Classify(score float64) models.RelevanceTier {
	switch {
	case score >= b.High:
		return models.TierHigh
	case score >= b.Medium:
		return models.TierMedium
	default:
		return models.TierLow
	}
}
