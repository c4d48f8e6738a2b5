package model

import (
	"fmt"

	"github.com/scatauk/nela-api/internal/domain/schema"
	"github.com/scatauk/nela-api/internal/domain/valueobject"
)

// Input field names as they appear on the wire.
const (
	FieldAge                   = "age"
	FieldHeartRate             = "heartRate"
	FieldSystolicBloodPressure = "systolicBloodPressure"
	FieldUrea                  = "urea"
	FieldWhiteBloodCellCount   = "whiteBloodCellCount"
	FieldAlbumin               = "albumin"
	FieldASAGrade              = "asaGrade"
	FieldGlasgowComaScore      = "glasgowComaScore"
	FieldMalignancy            = "malignancy"
	FieldDyspnoea              = "dyspnoea"
	FieldUrgency               = "urgency"
	FieldIndicationForSurgery  = "indicationForSurgery"
	FieldSoiling               = "soiling"
)

// FieldNames lists the input fields in canonical order.
var FieldNames = []string{
	FieldAge, FieldHeartRate, FieldSystolicBloodPressure, FieldUrea,
	FieldWhiteBloodCellCount, FieldAlbumin, FieldASAGrade, FieldGlasgowComaScore,
	FieldMalignancy, FieldDyspnoea, FieldUrgency, FieldIndicationForSurgery,
	FieldSoiling,
}

// PatientInput is a typed, normalized patient record. Units: heart rate in
// beats/min, blood pressure in mmHg, urea in mmol/L, white cell count in
// 10^9/L, albumin in g/L.
type PatientInput struct {
	ASAGrade              valueobject.ASAGrade
	Malignancy            valueobject.Malignancy
	Dyspnoea              valueobject.Dyspnoea
	Urgency               valueobject.Urgency
	Indication            valueobject.Indication
	Unrecognized          []string
	Age                   float64
	HeartRate             float64
	SystolicBloodPressure float64
	Urea                  float64
	WhiteBloodCellCount   float64
	Albumin               float64
	GlasgowComaScore      float64
	Soiling               bool
}

// PatientInputFromRecord converts a validated record. Categorical values
// that match no known spelling take the reference category and their field
// names are listed in Unrecognized.
func PatientInputFromRecord(r schema.Record) (PatientInput, error) {
	d := recordDecoder{record: r}

	in := PatientInput{
		Age:                   d.number(FieldAge),
		HeartRate:             d.number(FieldHeartRate),
		SystolicBloodPressure: d.number(FieldSystolicBloodPressure),
		Urea:                  d.number(FieldUrea),
		WhiteBloodCellCount:   d.number(FieldWhiteBloodCellCount),
		Albumin:               d.number(FieldAlbumin),
		GlasgowComaScore:      d.number(FieldGlasgowComaScore),
		Soiling:               d.boolean(FieldSoiling),
	}
	asa := d.number(FieldASAGrade)
	malignancy := d.text(FieldMalignancy)
	dyspnoea := d.text(FieldDyspnoea)
	urgency := d.text(FieldUrgency)
	indication := d.text(FieldIndicationForSurgery)
	if d.err != nil {
		return PatientInput{}, d.err
	}

	// A fractional or out-of-range grade contributes nothing, as the model
	// only weights grades 3 to 5.
	in.ASAGrade, _ = valueobject.ASAGradeFromNumber(asa)

	var ok bool
	if in.Malignancy, ok = valueobject.ParseMalignancy(malignancy); !ok {
		in.Unrecognized = append(in.Unrecognized, FieldMalignancy)
	}
	if in.Dyspnoea, ok = valueobject.ParseDyspnoea(dyspnoea); !ok {
		in.Unrecognized = append(in.Unrecognized, FieldDyspnoea)
	}
	if in.Urgency, ok = valueobject.ParseUrgency(urgency); !ok {
		in.Unrecognized = append(in.Unrecognized, FieldUrgency)
	}
	if in.Indication, ok = valueobject.ParseIndication(indication); !ok {
		in.Unrecognized = append(in.Unrecognized, FieldIndicationForSurgery)
	}

	return in, nil
}

// recordDecoder reads typed fields and keeps the first error.
type recordDecoder struct {
	err    error
	record schema.Record
}

func (d *recordDecoder) lookup(name string) (any, bool) {
	if d.err != nil {
		return nil, false
	}
	v, ok := d.record.Lookup(name)
	if !ok {
		d.err = fmt.Errorf("%s is missing", name)
		return nil, false
	}
	return v, true
}

func (d *recordDecoder) number(name string) float64 {
	v, ok := d.lookup(name)
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case int32:
		return float64(n)
	}
	d.err = fmt.Errorf("%s is not a number", name)
	return 0
}

func (d *recordDecoder) text(name string) string {
	v, ok := d.lookup(name)
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		d.err = fmt.Errorf("%s is not a string", name)
	}
	return s
}

func (d *recordDecoder) boolean(name string) bool {
	v, ok := d.lookup(name)
	if !ok {
		return false
	}
	b, ok := v.(bool)
	if !ok {
		d.err = fmt.Errorf("%s is not a boolean", name)
	}
	return b
}
