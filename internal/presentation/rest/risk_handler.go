package rest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/scatauk/nela-api/internal/application/dto"
	"github.com/scatauk/nela-api/internal/domain/model"
	"github.com/scatauk/nela-api/internal/domain/schema"
	"github.com/scatauk/nela-api/internal/domain/service"
	"github.com/scatauk/nela-api/internal/presentation/rest/middleware"
)

// MaxBodyBytes bounds the size of a calculation request body.
const MaxBodyBytes = 64 << 10

// CalculationIDHeader carries the calculation ID of a successful response.
const CalculationIDHeader = "X-Calculation-ID"

// Error messages returned by the risk endpoint.
const (
	MsgInvalidJSON     = "Invalid JSON"
	MsgMissingFields   = "Missing required fields"
	MsgInvalidInput    = "Invalid input"
	MsgBodyTooLarge    = "Request body too large"
	MsgInternalFailure = "Internal server error"
)

// RiskCalculator is the application use case behind the risk endpoint.
type RiskCalculator interface {
	Execute(ctx context.Context, req dto.CalculateRiskRequest) (dto.CalculateRiskResponse, error)
}

// RiskHandler serves POST /nela-risk.
type RiskHandler struct {
	calculator RiskCalculator
	logger     *slog.Logger
}

// NewRiskHandler creates a new risk handler.
func NewRiskHandler(calculator RiskCalculator, logger *slog.Logger) *RiskHandler {
	return &RiskHandler{
		calculator: calculator,
		logger:     logger,
	}
}

// ServeHTTP handles a calculation request.
func (h *RiskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, MsgBodyTooLarge)
			return
		}
		writeError(w, http.StatusBadRequest, MsgInvalidJSON)
		return
	}

	decoded, err := schema.DecodeRecord(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, MsgInvalidJSON)
		return
	}

	record, ok := project(decoded)
	if !ok {
		writeError(w, http.StatusBadRequest, MsgMissingFields)
		return
	}

	requestID := middleware.RequestIDFromContext(r.Context())
	resp, err := h.calculator.Execute(r.Context(), dto.CalculateRiskRequest{
		Record:    record,
		RequestID: requestID,
	})
	if err != nil {
		status, message := errorStatus(err)
		if status >= http.StatusInternalServerError {
			h.logger.ErrorContext(r.Context(), "risk calculation failed",
				slog.String("request_id", requestID),
				slog.String("error", err.Error()),
			)
		}
		writeError(w, status, message)
		return
	}

	w.Header().Set(CalculationIDHeader, resp.CalculationID.String())
	writeJSON(w, http.StatusOK, resp.Body())
}

// project copies the input fields, in canonical order, out of the request
// body. Extra keys are dropped. It reports false when any field is absent
// or null.
func project(body schema.Record) (schema.Record, bool) {
	fields := make([]schema.Field, 0, len(model.FieldNames))
	for _, name := range model.FieldNames {
		v, ok := body.Lookup(name)
		if !ok || v == nil {
			return schema.Record{}, false
		}
		fields = append(fields, schema.Field{Name: name, Value: v})
	}
	return schema.NewRecord(fields...), true
}

// errorStatus maps a calculation error to an HTTP status and message.
func errorStatus(err error) (int, string) {
	switch {
	case service.IsInputError(err):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrRiskOutOfRange):
		return http.StatusInternalServerError, MsgInvalidInput
	case errors.Is(err, schema.ErrSchemaUnavailable):
		return http.StatusInternalServerError, schema.ErrSchemaUnavailable.Error()
	default:
		return http.StatusInternalServerError, MsgInternalFailure
	}
}
