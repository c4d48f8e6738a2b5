package service

import (
	"github.com/scatauk/nela-api/internal/domain/model"
	"github.com/scatauk/nela-api/internal/domain/schema"
)

// Calculator computes a predicted mortality risk from an input record.
// RiskCalculator is the only production implementation; the interface
// exists so use cases can be tested with stubs.
type Calculator interface {
	Calculate(r schema.Record) (model.RiskResult, error)
}

var _ Calculator = (*RiskCalculator)(nil)
