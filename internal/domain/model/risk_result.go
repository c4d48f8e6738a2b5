package model

// RiskResult is the outcome of one calculation. PredictedRisk is a
// percentage rounded to three decimal places.
type RiskResult struct {
	PredictedRisk float64    `json:"predictedRisk"`
	Debug         Components `json:"debug"`
	Logit         float64    `json:"-"`
}
