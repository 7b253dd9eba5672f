package validation

import (
	"fmt"

	dErrors "sift/pkg/domain-errors"
)

// HTTP body limits
const (
	// MaxBodySize is the maximum allowed request body size (256 KB).
	// Screening pipelines carry many result records, so this is more generous
	// than a typical JSON API while still bounding memory per request.
	MaxBodySize = 256 * 1024
)

// Slice element count limits
const (
	// MaxPipelineBlocks is the maximum number of screening-source blocks per request.
	MaxPipelineBlocks = 50

	// MaxResultsPerBlock is the maximum number of screening results per block.
	MaxResultsPerBlock = 500
)

// String element length limits
const (
	// MaxNameLength is the maximum length of a first or last name.
	MaxNameLength = 200

	// MaxAttributeLength is the maximum length of a free-form identity
	// attribute (nationality, location, gender, dob).
	MaxAttributeLength = 500

	// MaxSourceTypeLength is the maximum length of a pipeline block type.
	MaxSourceTypeLength = 100
)

// CheckSliceCount validates that a slice does not exceed the maximum count.
func CheckSliceCount(fieldName string, count, max int) error {
	if count > max {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("too many %s: max %d allowed", fieldName, max))
	}
	return nil
}

// CheckStringLength validates that a string does not exceed the maximum length.
func CheckStringLength(fieldName, value string, max int) error {
	if len(value) > max {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s exceeds max length of %d", fieldName, max))
	}
	return nil
}
