package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultWeightsSumToOne(t *testing.T) {
	assert.NoError(t, DefaultWeights().Validate())
	assert.InDelta(t, 1.0, DefaultWeights().Sum(), weightEpsilon)
}

func TestValidateRejectsBadSums(t *testing.T) {
	assert.ErrorIs(t, Weights{Name: 0.5, DOB: 0.5, Gender: 0.5}.Validate(), ErrInvalidWeights)
	assert.ErrorIs(t, Weights{}.Validate(), ErrInvalidWeights)
}

func TestForReturnsPerFieldWeight(t *testing.T) {
	w := DefaultWeights()

	assert.Equal(t, w.Name, w.For(FieldName))
	assert.Equal(t, w.DOB, w.For(FieldDOB))
	assert.Equal(t, w.Location, w.For(FieldLocation))
	assert.Equal(t, w.Nationality, w.For(FieldNationality))
	assert.Equal(t, w.Gender, w.For(FieldGender))
	assert.Zero(t, w.For(Field("unknown")))
}
