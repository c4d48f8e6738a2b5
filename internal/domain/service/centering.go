package service

import (
	"errors"
	"math"

	"github.com/scatauk/nela-api/internal/domain/model"
)

// CenteredValues are the continuous inputs after clamping and centering.
// Urea and WCC are on the natural-log scale.
type CenteredValues struct {
	Age        float64
	Pulse      float64
	SystolicBP float64
	Urea       float64
	WCC        float64
}

var (
	errNonPositiveUrea = errors.New("urea must be greater than zero")
	errNonPositiveWCC  = errors.New("white blood cell count must be greater than zero")
)

// Center clamps then centers the continuous inputs. Age is centered only.
func Center(in model.PatientInput) (CenteredValues, error) {
	if !(in.Urea > 0) {
		return CenteredValues{}, errNonPositiveUrea
	}
	if !(in.WhiteBloodCellCount > 0) {
		return CenteredValues{}, errNonPositiveWCC
	}

	return CenteredValues{
		Age:        in.Age - ageCenter,
		Pulse:      clamp(in.HeartRate, pulseMin, pulseMax) - pulseCenter,
		SystolicBP: clamp(in.SystolicBloodPressure, systolicBPMin, systolicBPMax) - systolicBPCenter,
		Urea:       clamp(math.Log(in.Urea), lnUreaMin, lnUreaMax) - lnUreaCenter,
		WCC:        clamp(math.Log(in.WhiteBloodCellCount), lnWCCMin, lnWCCMax) - lnWCCCenter,
	}, nil
}

// clamp returns min(hi, max(lo, x)). NaN propagates.
func clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) {
		return x
	}
	return math.Min(hi, math.Max(lo, x))
}

// computeComponents evaluates the fourteen terms. Products are wrapped in
// float64 conversions so the compiler cannot fuse them into FMA
// instructions; results must match the published vectors bit for bit.
func computeComponents(in model.PatientInput, c CenteredValues) model.Components {
	return model.Components{
		Age:                 float64(coefAge * c.Age),
		ASA:                 asaCoefficients[in.ASAGrade],
		ASAAgeInteraction:   asaAgeComponent(in, c.Age),
		Albumin:             float64(coefAlbumin * clamp(in.Albumin, albuminMin, albuminMax)),
		Pulse:               quadratic(coefPulse, coefPulseSquared, c.Pulse),
		SystolicBP:          quadratic(coefSystolicBP, coefSystolicBPSquared, c.SystolicBP),
		Urea:                float64(coefUrea * c.Urea),
		WhiteBloodCellCount: quadratic(coefWCC, coefWCCSquared, c.WCC),
		GCS:                 gcsComponent(in.GlasgowComaScore),
		Malignancy:          malignancyCoefficients[in.Malignancy],
		Respiratory:         dyspnoeaCoefficients[in.Dyspnoea],
		Urgency:             urgencyCoefficients[in.Urgency],
		Indication:          indicationCoefficients[in.Indication],
		Soiling:             soilingComponent(in.Soiling),
	}
}

// quadratic returns a*x + b*x².
func quadratic(a, b, x float64) float64 {
	square := float64(x * x)
	return float64(a*x) + float64(b*square)
}

// Grades without a coefficient contribute exactly zero, never -0.
func asaAgeComponent(in model.PatientInput, ageCentered float64) float64 {
	coef, ok := asaAgeCoefficients[in.ASAGrade]
	if !ok {
		return 0
	}
	return float64(coef * ageCentered)
}

func gcsComponent(gcs float64) float64 {
	switch {
	case gcs < 14:
		return coefGCSBelow14
	case gcs == 14:
		return coefGCSEqual14
	default:
		return 0
	}
}

func soilingComponent(soiling bool) float64 {
	if soiling {
		return coefSoiling
	}
	return 0
}
