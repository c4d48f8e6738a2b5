package valueobject

import "fmt"

// Malignancy is the extent of malignant disease found or suspected.
type Malignancy struct {
	value string
}

var (
	MalignancyNone        = Malignancy{value: "NONE"}
	MalignancyPrimaryOnly = Malignancy{value: "PRIMARY_ONLY"}
	MalignancyNodal       = Malignancy{value: "NODAL"}
	MalignancyDistant     = Malignancy{value: "DISTANT"}
)

var malignancySpellings = spellingTable(map[string]Malignancy{
	"None":         MalignancyNone,
	"":             MalignancyNone,
	"Primary only": MalignancyPrimaryOnly,
	"primary":      MalignancyPrimaryOnly,
	"Nodal":        MalignancyNodal,
	"Distant":      MalignancyDistant,
})

// ParseMalignancy maps a form value to a Malignancy. Unrecognized input
// returns MalignancyNone and false.
func ParseMalignancy(s string) (Malignancy, bool) {
	m, ok := malignancySpellings[normalize(s)]
	if !ok {
		return MalignancyNone, false
	}
	return m, true
}

// MalignancyFromString reconstructs a Malignancy from its string representation.
func MalignancyFromString(s string) (Malignancy, error) {
	switch s {
	case "NONE":
		return MalignancyNone, nil
	case "PRIMARY_ONLY":
		return MalignancyPrimaryOnly, nil
	case "NODAL":
		return MalignancyNodal, nil
	case "DISTANT":
		return MalignancyDistant, nil
	default:
		return Malignancy{}, fmt.Errorf("invalid malignancy: %s", s)
	}
}

// String returns the string representation.
func (m Malignancy) String() string {
	return m.value
}

// IsZero returns true if the Malignancy has not been set.
func (m Malignancy) IsZero() bool {
	return m.value == ""
}

// Equal checks equality with another Malignancy.
func (m Malignancy) Equal(other Malignancy) bool {
	return m.value == other.value
}
