package valueobject

import "fmt"

// RiskBand is the reporting band for a predicted 30-day mortality risk.
type RiskBand struct {
	value string
}

var (
	RiskBandLow      = RiskBand{value: "LOW"}
	RiskBandModerate = RiskBand{value: "MODERATE"}
	RiskBandHigh     = RiskBand{value: "HIGH"}
	RiskBandVeryHigh = RiskBand{value: "VERY_HIGH"}
)

// RiskBandFromString reconstructs a RiskBand from its string representation.
func RiskBandFromString(s string) (RiskBand, error) {
	switch s {
	case "LOW":
		return RiskBandLow, nil
	case "MODERATE":
		return RiskBandModerate, nil
	case "HIGH":
		return RiskBandHigh, nil
	case "VERY_HIGH":
		return RiskBandVeryHigh, nil
	default:
		return RiskBand{}, fmt.Errorf("invalid risk band: %s", s)
	}
}

// RiskBandFromPercent classifies a predicted risk percentage (0-100).
// Audit reporting treats 5% and above as high risk.
func RiskBandFromPercent(pct float64) RiskBand {
	switch {
	case pct >= 10:
		return RiskBandVeryHigh
	case pct >= 5:
		return RiskBandHigh
	case pct >= 1:
		return RiskBandModerate
	default:
		return RiskBandLow
	}
}

// String returns the string representation.
func (r RiskBand) String() string {
	return r.value
}

// IsHighRisk reports whether the band is at or above the 5% threshold.
func (r RiskBand) IsHighRisk() bool {
	return r.value == "HIGH" || r.value == "VERY_HIGH"
}

// IsZero returns true if the RiskBand has not been set.
func (r RiskBand) IsZero() bool {
	return r.value == ""
}

// Equal checks equality with another RiskBand.
func (r RiskBand) Equal(other RiskBand) bool {
	return r.value == other.value
}
