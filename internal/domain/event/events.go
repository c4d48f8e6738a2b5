package event

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/scatauk/nela-api/pkg/events"
)

const (
	// EventTypeRiskCalculated is emitted when a predicted risk has been computed.
	EventTypeRiskCalculated = "nela.risk.calculated"

	// AggregateTypeRiskAssessment names the aggregate that produces risk events.
	AggregateTypeRiskAssessment = "RiskAssessment"
)

// RiskCalculated is published after a successful calculation. It carries
// the outcome only; no patient fields leave the process.
type RiskCalculated struct {
	events.BaseEvent
	CalculatedAt  time.Time `json:"calculated_at"`
	RiskBand      string    `json:"risk_band"`
	PredictedRisk float64   `json:"predicted_risk"`
	Logit         float64   `json:"logit"`
	CalculationID uuid.UUID `json:"calculation_id"`
}

// NewRiskCalculated builds the event and serializes its payload.
func NewRiskCalculated(
	calculationID uuid.UUID,
	predictedRisk float64,
	riskBand string,
	logit float64,
	calculatedAt time.Time,
) (RiskCalculated, error) {
	e := RiskCalculated{
		CalculationID: calculationID,
		PredictedRisk: predictedRisk,
		RiskBand:      riskBand,
		Logit:         logit,
		CalculatedAt:  calculatedAt.UTC(),
	}

	payload, err := json.Marshal(e)
	if err != nil {
		return RiskCalculated{}, fmt.Errorf("marshalling %s payload: %w", EventTypeRiskCalculated, err)
	}

	e.BaseEvent = events.NewBaseEvent(EventTypeRiskCalculated, calculationID, AggregateTypeRiskAssessment, calculatedAt, payload)
	return e, nil
}
