package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/scatauk/nela-api/internal/domain/model"
	"github.com/scatauk/nela-api/internal/domain/schema"
)

// CalculateRiskRequest is the input DTO for the CalculateRisk use case.
type CalculateRiskRequest struct {
	Record    schema.Record
	RequestID string
}

// CalculateRiskResponse is the output DTO returned after a calculation.
type CalculateRiskResponse struct {
	CalculatedAt  time.Time        `json:"calculated_at"`
	RiskBand      string           `json:"risk_band"`
	RiskText      string           `json:"risk_text"`
	Debug         model.Components `json:"debug"`
	PredictedRisk float64          `json:"predicted_risk"`
	CalculationID uuid.UUID        `json:"calculation_id"`
}

// RiskResultBody is the public response body: exactly predictedRisk and
// debug.
type RiskResultBody struct {
	PredictedRisk float64          `json:"predictedRisk"`
	Debug         model.Components `json:"debug"`
}

// FromModel maps a domain aggregate to the response DTO.
func FromModel(a *model.RiskAssessment) CalculateRiskResponse {
	return CalculateRiskResponse{
		CalculationID: a.ID(),
		PredictedRisk: a.PredictedRisk(),
		RiskText:      FormatRisk(a.PredictedRisk()),
		RiskBand:      a.Band().String(),
		Debug:         a.Result().Debug,
		CalculatedAt:  a.CalculatedAt(),
	}
}

// Body returns the public response body.
func (r CalculateRiskResponse) Body() RiskResultBody {
	return RiskResultBody{
		PredictedRisk: r.PredictedRisk,
		Debug:         r.Debug,
	}
}

// FormatRisk renders a percentage with exactly three decimal places, e.g.
// "2.900".
func FormatRisk(pct float64) string {
	return decimal.NewFromFloat(pct).StringFixed(3)
}
