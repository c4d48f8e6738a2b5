package service

import (
	"io"
	"log/slog"
	"math"

	"github.com/shopspring/decimal"

	"github.com/scatauk/nela-api/internal/domain/model"
	"github.com/scatauk/nela-api/internal/domain/schema"
)

// riskPlaces is the number of decimal places predictedRisk is reported to.
const riskPlaces = 3

// Option configures a RiskCalculator.
type Option func(*RiskCalculator)

// WithDiagnostics sends one debug line per component, plus the final logit
// and risk, to logger. Diagnostics never affect the result.
func WithDiagnostics(logger *slog.Logger) Option {
	return func(c *RiskCalculator) {
		if logger != nil {
			c.diagnostics = logger
		}
	}
}

// RiskCalculator is a domain service that evaluates the NELA logistic
// regression model. It holds no mutable state and is safe for concurrent use.
type RiskCalculator struct {
	validator   *schema.Validator
	diagnostics *slog.Logger
}

// NewRiskCalculator creates a RiskCalculator that validates records with v.
func NewRiskCalculator(v *schema.Validator, opts ...Option) *RiskCalculator {
	c := &RiskCalculator{
		validator:   v,
		diagnostics: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Calculate validates r against the schema and returns the predicted 30-day
// mortality risk. Schema errors are returned unchanged.
func (c *RiskCalculator) Calculate(r schema.Record) (model.RiskResult, error) {
	if err := c.validator.Validate(r); err != nil {
		return model.RiskResult{}, err
	}

	in, err := model.PatientInputFromRecord(r)
	if err != nil {
		return model.RiskResult{}, &ComputationError{Err: err}
	}

	return c.CalculatePatient(in)
}

// CalculatePatient evaluates the model for an already decoded patient.
func (c *RiskCalculator) CalculatePatient(in model.PatientInput) (model.RiskResult, error) {
	for _, field := range in.Unrecognized {
		c.diagnostics.Warn("unrecognized value, using reference category", slog.String("field", field))
	}

	centered, err := Center(in)
	if err != nil {
		return model.RiskResult{}, &ComputationError{Err: err}
	}

	components := computeComponents(in, centered)
	for _, nc := range components.Ordered() {
		c.diagnostics.Debug("component", slog.String("name", nc.Name), slog.Float64("value", nc.Value))
	}

	logit := intercept + components.Sum()
	pct := Probability(logit) * 100

	risk, err := roundRisk(pct)
	if err != nil {
		c.diagnostics.Error("risk out of range", slog.Float64("logit", logit), slog.Float64("risk", pct))
		return model.RiskResult{}, err
	}

	c.diagnostics.Debug("final logit", slog.Float64("logit", logit))
	c.diagnostics.Debug("predicted risk", slog.Float64("risk", risk))

	return model.RiskResult{
		PredictedRisk: risk,
		Debug:         components,
		Logit:         logit,
	}, nil
}

// Probability maps a logit to a probability with the logistic function.
func Probability(logit float64) float64 {
	return 1 / (1 + math.Exp(-logit))
}

// roundRisk checks the range and rounds half away from zero. The check runs
// first because decimal cannot represent NaN.
func roundRisk(pct float64) (float64, error) {
	if math.IsNaN(pct) || pct < 0 || pct > 100 {
		return 0, ErrRiskOutOfRange
	}
	return decimal.NewFromFloat(pct).Round(riskPlaces).InexactFloat64(), nil
}
