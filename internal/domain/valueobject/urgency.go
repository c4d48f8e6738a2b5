package valueobject

import "fmt"

// Urgency is the interval between decision to operate and surgery.
type Urgency struct {
	value string
}

var (
	UrgencyUnder2Hours = Urgency{value: "UNDER_2H"}
	Urgency2To6Hours   = Urgency{value: "2_TO_6H"}
	Urgency6To18Hours  = Urgency{value: "6_TO_18H"}
	UrgencyOver18Hours = Urgency{value: "OVER_18H"}
)

// Both the current form codes and the hour ranges of the first revision.
var urgencySpellings = spellingTable(map[string]Urgency{
	"LT 2":  UrgencyUnder2Hours,
	"<2hrs": UrgencyUnder2Hours,

	"BT 2 - 6": Urgency2To6Hours,
	"2-6hrs":   Urgency2To6Hours,

	"BT 6 - 18": Urgency6To18Hours,
	"6-18hrs":   Urgency6To18Hours,

	"GT 18":  UrgencyOver18Hours,
	">18hrs": UrgencyOver18Hours,
	"none":   UrgencyOver18Hours,
	"":       UrgencyOver18Hours,
})

// ParseUrgency maps a form value to an Urgency. Unrecognized input returns
// UrgencyOver18Hours, the reference category, and false.
func ParseUrgency(s string) (Urgency, bool) {
	u, ok := urgencySpellings[normalize(s)]
	if !ok {
		return UrgencyOver18Hours, false
	}
	return u, true
}

// UrgencyFromString reconstructs an Urgency from its string representation.
func UrgencyFromString(s string) (Urgency, error) {
	switch s {
	case "UNDER_2H":
		return UrgencyUnder2Hours, nil
	case "2_TO_6H":
		return Urgency2To6Hours, nil
	case "6_TO_18H":
		return Urgency6To18Hours, nil
	case "OVER_18H":
		return UrgencyOver18Hours, nil
	default:
		return Urgency{}, fmt.Errorf("invalid urgency: %s", s)
	}
}

// String returns the string representation.
func (u Urgency) String() string {
	return u.value
}

// IsZero returns true if the Urgency has not been set.
func (u Urgency) IsZero() bool {
	return u.value == ""
}

// Equal checks equality with another Urgency.
func (u Urgency) Equal(other Urgency) bool {
	return u.value == other.value
}
