package valueobject

import "fmt"

// Dyspnoea is the respiratory history grade.
type Dyspnoea struct {
	value string
}

var (
	DyspnoeaNone     = Dyspnoea{value: "NONE"}
	DyspnoeaMild     = Dyspnoea{value: "MILD"}
	DyspnoeaModerate = Dyspnoea{value: "MODERATE"}
	DyspnoeaSevere   = Dyspnoea{value: "SEVERE"}
)

// Form labels of the current data collection form.
const (
	DyspnoeaLabelNone     = "No dyspnoea"
	DyspnoeaLabelMild     = "Dyspnoea on exertion or CXR: mild COAD"
	DyspnoeaLabelModerate = "Dyspnoea limiting exertion to <1 flight or CXR: moderate COAD"
	DyspnoeaLabelSevere   = "Dyspnoea at rest/rate >30 at rest or CXR: fibrosis or consolidation"
)

// The numeric codes are the severity codes of the first form revision.
var dyspnoeaSpellings = spellingTable(map[string]Dyspnoea{
	DyspnoeaLabelNone: DyspnoeaNone,
	"none":            DyspnoeaNone,
	"1":               DyspnoeaNone,
	"":                DyspnoeaNone,

	DyspnoeaLabelMild: DyspnoeaMild,
	"mild":            DyspnoeaMild,
	"2":               DyspnoeaMild,

	DyspnoeaLabelModerate: DyspnoeaModerate,
	"moderate":            DyspnoeaModerate,
	"3":                   DyspnoeaModerate,

	DyspnoeaLabelSevere: DyspnoeaSevere,
	"severe":            DyspnoeaSevere,
	"4":                 DyspnoeaSevere,
})

// ParseDyspnoea maps a form value to a Dyspnoea grade. Unrecognized input
// returns DyspnoeaNone and false.
func ParseDyspnoea(s string) (Dyspnoea, bool) {
	d, ok := dyspnoeaSpellings[normalize(s)]
	if !ok {
		return DyspnoeaNone, false
	}
	return d, true
}

// DyspnoeaFromString reconstructs a Dyspnoea from its string representation.
func DyspnoeaFromString(s string) (Dyspnoea, error) {
	switch s {
	case "NONE":
		return DyspnoeaNone, nil
	case "MILD":
		return DyspnoeaMild, nil
	case "MODERATE":
		return DyspnoeaModerate, nil
	case "SEVERE":
		return DyspnoeaSevere, nil
	default:
		return Dyspnoea{}, fmt.Errorf("invalid dyspnoea grade: %s", s)
	}
}

// String returns the string representation.
func (d Dyspnoea) String() string {
	return d.value
}

// IsZero returns true if the Dyspnoea has not been set.
func (d Dyspnoea) IsZero() bool {
	return d.value == ""
}

// Equal checks equality with another Dyspnoea.
func (d Dyspnoea) Equal(other Dyspnoea) bool {
	return d.value == other.value
}
