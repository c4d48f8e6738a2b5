package model

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/scatauk/nela-api/internal/domain/event"
	"github.com/scatauk/nela-api/internal/domain/valueobject"
	"github.com/scatauk/nela-api/pkg/events"
)

// RiskAssessment is the aggregate root for one completed calculation. It is
// never persisted; it exists to classify the result and raise events.
type RiskAssessment struct {
	events.EventCollector
	calculatedAt time.Time
	band         valueobject.RiskBand
	result       RiskResult
	id           uuid.UUID
}

// NewRiskAssessment wraps a calculated result and records a RiskCalculated
// event.
func NewRiskAssessment(result RiskResult, calculatedAt time.Time) (*RiskAssessment, error) {
	if math.IsNaN(result.PredictedRisk) || result.PredictedRisk < 0 || result.PredictedRisk > 100 {
		return nil, fmt.Errorf("predicted risk must be between 0 and 100, got %v", result.PredictedRisk)
	}
	if calculatedAt.IsZero() {
		calculatedAt = time.Now()
	}

	a := &RiskAssessment{
		id:           uuid.New(),
		result:       result,
		band:         valueobject.RiskBandFromPercent(result.PredictedRisk),
		calculatedAt: calculatedAt.UTC(),
	}

	evt, err := event.NewRiskCalculated(a.id, result.PredictedRisk, a.band.String(), result.Logit, a.calculatedAt)
	if err != nil {
		return nil, err
	}
	a.Record(evt)

	return a, nil
}

// --- Accessors ---

func (a *RiskAssessment) ID() uuid.UUID              { return a.id }
func (a *RiskAssessment) Result() RiskResult         { return a.result }
func (a *RiskAssessment) PredictedRisk() float64     { return a.result.PredictedRisk }
func (a *RiskAssessment) Band() valueobject.RiskBand { return a.band }
func (a *RiskAssessment) CalculatedAt() time.Time    { return a.calculatedAt }
