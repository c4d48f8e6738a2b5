package valueobject

import "fmt"

// Indication is the primary indication for surgery.
type Indication struct {
	value string
}

var (
	IndicationSepsis    = Indication{value: "SEPSIS"}
	IndicationIschaemia = Indication{value: "ISCHAEMIA"}
	IndicationBleeding  = Indication{value: "BLEEDING"}
	IndicationOther     = Indication{value: "OTHER"}
)

var indicationSpellings = map[string]Indication{
	"sepsis":    IndicationSepsis,
	"ischaemia": IndicationIschaemia,
	"ischemia":  IndicationIschaemia,
	"bleeding":  IndicationBleeding,
	"other":     IndicationOther,
	"none":      IndicationOther,
	"":          IndicationOther,
}

// ParseIndication maps a form value to an Indication. Unrecognized input
// returns IndicationOther and false.
func ParseIndication(s string) (Indication, bool) {
	i, ok := indicationSpellings[normalize(s)]
	if !ok {
		return IndicationOther, false
	}
	return i, true
}

// IndicationFromString reconstructs an Indication from its string representation.
func IndicationFromString(s string) (Indication, error) {
	switch s {
	case "SEPSIS":
		return IndicationSepsis, nil
	case "ISCHAEMIA":
		return IndicationIschaemia, nil
	case "BLEEDING":
		return IndicationBleeding, nil
	case "OTHER":
		return IndicationOther, nil
	default:
		return Indication{}, fmt.Errorf("invalid indication: %s", s)
	}
}

// String returns the string representation.
func (i Indication) String() string {
	return i.value
}

// IsZero returns true if the Indication has not been set.
func (i Indication) IsZero() bool {
	return i.value == ""
}

// Equal checks equality with another Indication.
func (i Indication) Equal(other Indication) bool {
	return i.value == other.value
}
