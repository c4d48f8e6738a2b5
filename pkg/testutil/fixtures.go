package testutil

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/scatauk/nela-api/internal/domain/schema"
)

// Fixed IDs for deterministic testing.
var (
	TestCalculationID = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	TestRequestID     = "00000000-0000-0000-0000-000000000002"
)

// GoldenPatientJSON is the published worked example; its predicted risk is
// 22.151%.
const GoldenPatientJSON = `{
  "age": 65,
  "heartRate": 85,
  "systolicBloodPressure": 130,
  "urea": 7,
  "whiteBloodCellCount": 12,
  "albumin": 30,
  "asaGrade": 3,
  "glasgowComaScore": 14,
  "malignancy": "Nodal",
  "dyspnoea": "Dyspnoea at rest/rate >30 at rest or CXR: fibrosis or consolidation",
  "urgency": "BT 2 - 6",
  "indicationForSurgery": "sepsis",
  "soiling": true
}`

// BaselinePatientJSON puts every categorical input in its reference
// category; its predicted risk is 1.112%.
const BaselinePatientJSON = `{
  "age": 65,
  "heartRate": 80,
  "systolicBloodPressure": 120,
  "urea": 5,
  "whiteBloodCellCount": 10,
  "albumin": 30,
  "asaGrade": 2,
  "glasgowComaScore": 15,
  "malignancy": "None",
  "dyspnoea": "No dyspnoea",
  "urgency": "GT 18",
  "indicationForSurgery": "other",
  "soiling": false
}`

// GoldenPatientRecord returns GoldenPatientJSON as a Record.
func GoldenPatientRecord() schema.Record {
	return mustRecord(GoldenPatientJSON)
}

// BaselinePatientRecord returns BaselinePatientJSON as a Record.
func BaselinePatientRecord() schema.Record {
	return mustRecord(BaselinePatientJSON)
}

type absent struct{}

// Absent removes a field when passed as an override to PatientJSON.
var Absent = absent{}

// PatientJSON returns the golden patient with fields overridden, or removed
// when the override is Absent. Keys come out sorted, as encoding/json
// orders map keys.
func PatientJSON(overrides map[string]any) []byte {
	var fields map[string]any
	if err := json.Unmarshal([]byte(GoldenPatientJSON), &fields); err != nil {
		panic(err)
	}
	for k, v := range overrides {
		if v == Absent {
			delete(fields, k)
			continue
		}
		fields[k] = v
	}
	data, err := json.Marshal(fields)
	if err != nil {
		panic(err)
	}
	return data
}

func mustRecord(doc string) schema.Record {
	r, err := schema.DecodeRecord([]byte(doc))
	if err != nil {
		panic(err)
	}
	return r
}
