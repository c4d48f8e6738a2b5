package model

// Components are the fourteen additive terms of the logit. Field order is
// the published summation order and the JSON serialization order.
type Components struct {
	Age                 float64 `json:"ageComponent"`
	ASA                 float64 `json:"asaComponent"`
	ASAAgeInteraction   float64 `json:"asaAgeInteraction"`
	Albumin             float64 `json:"albuminComponent"`
	Pulse               float64 `json:"pulseComponent"`
	SystolicBP          float64 `json:"systolicBPComponent"`
	Urea                float64 `json:"ureaComponent"`
	WhiteBloodCellCount float64 `json:"wccComponent"`
	GCS                 float64 `json:"gcsComponent"`
	Malignancy          float64 `json:"malignancyComponent"`
	Respiratory         float64 `json:"respiratoryComponent"`
	Urgency             float64 `json:"urgencyComponent"`
	Indication          float64 `json:"indicationComponent"`
	Soiling             float64 `json:"soilingComponent"`
}

// NamedComponent pairs a component's wire name with its value.
type NamedComponent struct {
	Name  string
	Value float64
}

// Ordered returns the components in summation order.
func (c Components) Ordered() []NamedComponent {
	return []NamedComponent{
		{"ageComponent", c.Age},
		{"asaComponent", c.ASA},
		{"asaAgeInteraction", c.ASAAgeInteraction},
		{"albuminComponent", c.Albumin},
		{"pulseComponent", c.Pulse},
		{"systolicBPComponent", c.SystolicBP},
		{"ureaComponent", c.Urea},
		{"wccComponent", c.WhiteBloodCellCount},
		{"gcsComponent", c.GCS},
		{"malignancyComponent", c.Malignancy},
		{"respiratoryComponent", c.Respiratory},
		{"urgencyComponent", c.Urgency},
		{"indicationComponent", c.Indication},
		{"soilingComponent", c.Soiling},
	}
}

// Sum adds the components left to right starting from zero. The order is
// fixed so results are reproducible to the last bit.
func (c Components) Sum() float64 {
	sum := 0.0
	for _, nc := range c.Ordered() {
		sum += nc.Value
	}
	return sum
}
