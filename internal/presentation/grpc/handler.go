package grpc

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/scatauk/nela-api/internal/application/dto"
	"github.com/scatauk/nela-api/internal/domain/model"
	"github.com/scatauk/nela-api/internal/domain/schema"
	"github.com/scatauk/nela-api/internal/domain/service"
)

// requestIDKey is the metadata key carrying the caller's request ID.
const requestIDKey = "x-request-id"

// RiskCalculator is the application use case behind CalculateRisk.
type RiskCalculator interface {
	Execute(ctx context.Context, req dto.CalculateRiskRequest) (dto.CalculateRiskResponse, error)
}

// Compile-time assertion that NelaRiskHandler implements NelaRiskServiceServer.
var _ NelaRiskServiceServer = (*NelaRiskHandler)(nil)

// NelaRiskHandler implements the gRPC NelaRiskServiceServer interface.
type NelaRiskHandler struct {
	UnimplementedNelaRiskServiceServer
	calculator RiskCalculator
	logger     *slog.Logger
}

// NewNelaRiskHandler creates a new gRPC handler.
func NewNelaRiskHandler(calculator RiskCalculator, logger *slog.Logger) *NelaRiskHandler {
	return &NelaRiskHandler{
		calculator: calculator,
		logger:     logger,
	}
}

// CalculateRiskRequest carries one patient's thirteen inputs. Fields are
// left untyped so that a value of the wrong JSON type reaches the schema
// validator instead of failing in the codec.
type CalculateRiskRequest struct {
	Age                   any `json:"age"`
	HeartRate             any `json:"heartRate"`
	SystolicBloodPressure any `json:"systolicBloodPressure"`
	Urea                  any `json:"urea"`
	WhiteBloodCellCount   any `json:"whiteBloodCellCount"`
	Albumin               any `json:"albumin"`
	ASAGrade              any `json:"asaGrade"`
	GlasgowComaScore      any `json:"glasgowComaScore"`
	Malignancy            any `json:"malignancy"`
	Dyspnoea              any `json:"dyspnoea"`
	Urgency               any `json:"urgency"`
	IndicationForSurgery  any `json:"indicationForSurgery"`
	Soiling               any `json:"soiling"`
}

// CalculateRiskResponse is the result of one calculation.
type CalculateRiskResponse struct {
	CalculationID string           `json:"calculation_id"`
	RiskBand      string           `json:"risk_band"`
	RiskText      string           `json:"risk_text"`
	Debug         model.Components `json:"debug"`
	PredictedRisk float64          `json:"predictedRisk"`
}

// CalculateRisk handles a calculation request.
func (h *NelaRiskHandler) CalculateRisk(ctx context.Context, req *CalculateRiskRequest) (*CalculateRiskResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	record, ok := req.record()
	if !ok {
		return nil, status.Error(codes.InvalidArgument, "Missing required fields")
	}

	requestID := requestIDFromMetadata(ctx)
	result, err := h.calculator.Execute(ctx, dto.CalculateRiskRequest{
		Record:    record,
		RequestID: requestID,
	})
	if err != nil {
		st := errorStatus(err)
		if st.Code() == codes.Internal {
			h.logger.ErrorContext(ctx, "risk calculation failed",
				slog.String("request_id", requestID),
				slog.String("error", err.Error()),
			)
		}
		return nil, st.Err()
	}

	return &CalculateRiskResponse{
		CalculationID: result.CalculationID.String(),
		RiskBand:      result.RiskBand,
		RiskText:      result.RiskText,
		Debug:         result.Debug,
		PredictedRisk: result.PredictedRisk,
	}, nil
}

// record builds a schema record in canonical order. It reports false when
// any field is absent or null.
func (r *CalculateRiskRequest) record() (schema.Record, bool) {
	fields := []schema.Field{
		{Name: model.FieldAge, Value: r.Age},
		{Name: model.FieldHeartRate, Value: r.HeartRate},
		{Name: model.FieldSystolicBloodPressure, Value: r.SystolicBloodPressure},
		{Name: model.FieldUrea, Value: r.Urea},
		{Name: model.FieldWhiteBloodCellCount, Value: r.WhiteBloodCellCount},
		{Name: model.FieldAlbumin, Value: r.Albumin},
		{Name: model.FieldASAGrade, Value: r.ASAGrade},
		{Name: model.FieldGlasgowComaScore, Value: r.GlasgowComaScore},
		{Name: model.FieldMalignancy, Value: r.Malignancy},
		{Name: model.FieldDyspnoea, Value: r.Dyspnoea},
		{Name: model.FieldUrgency, Value: r.Urgency},
		{Name: model.FieldIndicationForSurgery, Value: r.IndicationForSurgery},
		{Name: model.FieldSoiling, Value: r.Soiling},
	}
	for _, f := range fields {
		if f.Value == nil {
			return schema.Record{}, false
		}
	}
	return schema.NewRecord(fields...), true
}

func requestIDFromMetadata(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if ids := md.Get(requestIDKey); len(ids) > 0 {
		return ids[0]
	}
	return ""
}

// errorStatus maps a calculation error to a gRPC status.
func errorStatus(err error) *status.Status {
	switch {
	case service.IsInputError(err):
		return status.New(codes.InvalidArgument, err.Error())
	case errors.Is(err, service.ErrRiskOutOfRange):
		return status.New(codes.Internal, "Invalid input")
	case errors.Is(err, schema.ErrSchemaUnavailable):
		return status.New(codes.Internal, schema.ErrSchemaUnavailable.Error())
	default:
		return status.New(codes.Internal, "internal error")
	}
}
