package service

import "github.com/scatauk/nela-api/internal/domain/valueobject"

// Published NELA model coefficients. These are fixed; the model is not
// refitted at runtime.
const (
	intercept = -3.04678

	coefAge     = 0.0666
	coefAlbumin = -0.04323

	coefPulse        = 0.01265
	coefPulseSquared = -0.00012

	coefSystolicBP        = -0.00683
	coefSystolicBPSquared = 0.00011

	coefUrea = 0.38002

	coefWCC        = 0.02041
	coefWCCSquared = 0.24153

	coefGCSBelow14 = 0.6448
	coefGCSEqual14 = 0.41557

	coefSoiling = 0.29453
)

// Centering and clamping bounds.
const (
	ageCenter = 64.0

	pulseMin, pulseMax, pulseCenter = 55.0, 145.0, 91.0

	systolicBPMin, systolicBPMax, systolicBPCenter = 70.0, 190.0, 127.0

	lnUreaMin, lnUreaMax, lnUreaCenter = 0.5, 3.7, 1.9

	lnWCCMin, lnWCCMax, lnWCCCenter = 0.8, 3.6, 2.4

	albuminMin, albuminMax = 10.0, 55.0
)

var asaCoefficients = map[valueobject.ASAGrade]float64{
	valueobject.ASAGrade3: 1.13007,
	valueobject.ASAGrade4: 1.76293,
	valueobject.ASAGrade5: 2.55345,
}

// Multiplied by the centered age.
var asaAgeCoefficients = map[valueobject.ASAGrade]float64{
	valueobject.ASAGrade3: -0.03021,
	valueobject.ASAGrade4: -0.03356,
	valueobject.ASAGrade5: -0.04676,
}

var malignancyCoefficients = map[valueobject.Malignancy]float64{
	valueobject.MalignancyNodal:       0.5061,
	valueobject.MalignancyDistant:     0.94309,
	valueobject.MalignancyPrimaryOnly: 0.19201,
}

var dyspnoeaCoefficients = map[valueobject.Dyspnoea]float64{
	valueobject.DyspnoeaMild:     0.35378,
	valueobject.DyspnoeaModerate: 0.607,
	valueobject.DyspnoeaSevere:   0.607,
}

var urgencyCoefficients = map[valueobject.Urgency]float64{
	valueobject.UrgencyUnder2Hours: 0.5731,
	valueobject.Urgency2To6Hours:   0.14779,
	valueobject.Urgency6To18Hours:  0.03782,
}

var indicationCoefficients = map[valueobject.Indication]float64{
	valueobject.IndicationSepsis:    0.02812,
	valueobject.IndicationIschaemia: 0.56948,
	valueobject.IndicationBleeding:  -0.40615,
}
