package service

import (
	"errors"
	"fmt"

	"github.com/scatauk/nela-api/internal/domain/schema"
)

// ErrRiskOutOfRange is returned when the computed risk is NaN or outside
// [0, 100]. It indicates a defect rather than bad input.
var ErrRiskOutOfRange = errors.New("predicted risk out of range")

// ComputationError is returned when a validated record cannot be evaluated,
// for example when urea is zero and its logarithm is undefined.
type ComputationError struct {
	Err error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("Error calculating NELA risk: %v", e.Err)
}

func (e *ComputationError) Unwrap() error {
	return e.Err
}

// IsInputError reports whether err was caused by the caller's record, as
// opposed to a range violation or an unavailable schema.
func IsInputError(err error) bool {
	if err == nil {
		return false
	}
	var mismatch *schema.TypeMismatchError
	var computation *ComputationError
	return errors.Is(err, schema.ErrKeyCountMismatch) ||
		errors.As(err, &mismatch) ||
		errors.As(err, &computation)
}
