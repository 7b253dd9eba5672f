package match

import (
	"errors"
	"math"
)

// weightEpsilon absorbs float rounding when validating that weights sum to 1.0.
const weightEpsilon = 1e-9

// ErrInvalidWeights indicates the weight table does not sum to 1.0.
var ErrInvalidWeights = errors.New("invalid weights: must sum to 1.0")

// Weights is the fixed attribute weight table expressing the relative
// importance of each attribute to overall identity confidence. It is a
// process-wide configuration value passed explicitly into the evaluator, not
// a hidden global, so tests can substitute alternate weight sets.
type Weights struct {
	Name        float64
	DOB         float64
	Location    float64
	Nationality float64
	Gender      float64
}

// DefaultWeights returns the production weight table.
func DefaultWeights() Weights {
	return Weights{
		Name:        0.4,
		DOB:         0.25,
		Location:    0.15,
		Nationality: 0.1,
		Gender:      0.1,
	}
}

// Sum returns the total of all attribute weights.
func (w Weights) Sum() float64 {
	return w.Name + w.DOB + w.Location + w.Nationality + w.Gender
}

// Validate checks the invariant that weights sum to 1.0 so that the
// aggregated relevance score stays within [0.0, 1.0].
func (w Weights) Validate() error {
	if math.Abs(w.Sum()-1.0) > weightEpsilon {
		return ErrInvalidWeights
	}
	return nil
}

// For returns the weight assigned to the given field.
func (w Weights) For(f Field) float64 {
	switch f {
	case FieldName:
		return w.Name
	case FieldDOB:
		return w.DOB
	case FieldLocation:
		return w.Location
	case FieldNationality:
		return w.Nationality
	case FieldGender:
		return w.Gender
	default:
		return 0
	}
}
