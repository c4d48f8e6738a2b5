package valueobject

import (
	"fmt"
	"math"
)

// ASAGrade is the American Society of Anesthesiologists physical status
// class, 1 to 5. The zero value is an unknown grade.
type ASAGrade struct {
	value int
}

var (
	ASAGrade1       = ASAGrade{value: 1}
	ASAGrade2       = ASAGrade{value: 2}
	ASAGrade3       = ASAGrade{value: 3}
	ASAGrade4       = ASAGrade{value: 4}
	ASAGrade5       = ASAGrade{value: 5}
	ASAGradeUnknown = ASAGrade{}
)

// ASAGradeFromNumber maps a decoded JSON number to a grade. Fractional or
// out-of-range values yield ASAGradeUnknown and false.
func ASAGradeFromNumber(n float64) (ASAGrade, bool) {
	if math.IsNaN(n) || n != math.Trunc(n) || n < 1 || n > 5 {
		return ASAGradeUnknown, false
	}
	return ASAGrade{value: int(n)}, true
}

// Int returns the numeric grade, or 0 when unknown.
func (g ASAGrade) Int() int {
	return g.value
}

// String returns the string representation.
func (g ASAGrade) String() string {
	if g.IsZero() {
		return "UNKNOWN"
	}
	return fmt.Sprintf("ASA %d", g.value)
}

// IsZero returns true if the grade has not been set.
func (g ASAGrade) IsZero() bool {
	return g.value == 0
}

// Equal checks equality with another ASAGrade.
func (g ASAGrade) Equal(other ASAGrade) bool {
	return g.value == other.value
}
