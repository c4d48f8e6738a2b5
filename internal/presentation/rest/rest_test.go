package rest_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/scatauk/nela-api/internal/application/dto"
	"github.com/scatauk/nela-api/internal/application/usecase"
	"github.com/scatauk/nela-api/internal/domain/schema"
	"github.com/scatauk/nela-api/internal/domain/service"
	"github.com/scatauk/nela-api/internal/infrastructure/messaging"
	"github.com/scatauk/nela-api/internal/infrastructure/metrics"
	"github.com/scatauk/nela-api/internal/presentation/rest"
	"github.com/scatauk/nela-api/pkg/testutil"
)

type stubCalculator struct {
	err error
}

func (s stubCalculator) Execute(context.Context, dto.CalculateRiskRequest) (dto.CalculateRiskResponse, error) {
	return dto.CalculateRiskResponse{}, s.err
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRouter(t *testing.T, rateLimit int) (http.Handler, *schema.Validator) {
	t.Helper()
	validator, err := schema.Default()
	require.NoError(t, err)

	recorder, err := metrics.NewRecorder(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)

	uc := usecase.NewCalculateRisk(
		service.NewRiskCalculator(validator),
		messaging.NewLogPublisher("nela.risk.calculated", discard()),
		recorder,
		discard(),
	)

	return rest.NewRouter(rest.RouterConfig{
		Logger:    discard(),
		Risk:      rest.NewRiskHandler(uc, discard()),
		Schema:    rest.NewSchemaHandler(validator.Document()),
		Health:    rest.NewHealthHandler(discard(), nil),
		Metrics:   http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("# metrics\n")) }),
		RateLimit: rateLimit,
	}), validator
}

func postRisk(h http.Handler, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/nela-risk", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRiskEndpoint_GoldenPatient(t *testing.T) {
	router, _ := newRouter(t, 0)

	rec := postRisk(router, []byte(testutil.GoldenPatientJSON))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	debug := testutil.AssertRiskBody(t, rec.Body.Bytes(), 22.151)
	assert.Contains(t, debug, "soilingComponent")

	_, err := uuid.Parse(rec.Header().Get(rest.CalculationIDHeader))
	assert.NoError(t, err)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRiskEndpoint_BaselinePatient(t *testing.T) {
	router, _ := newRouter(t, 0)

	rec := postRisk(router, []byte(testutil.BaselinePatientJSON))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	testutil.AssertRiskBody(t, rec.Body.Bytes(), 1.112)
}

func TestRiskEndpoint_ExtraFieldsDropped(t *testing.T) {
	router, _ := newRouter(t, 0)

	rec := postRisk(router, testutil.PatientJSON(map[string]any{"bmi": 22.5, "notes": "n/a"}))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	testutil.AssertRiskBody(t, rec.Body.Bytes(), 22.151)
}

func TestRiskEndpoint_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       []byte
		wantStatus int
		wantError  string
	}{
		{
			name:       "malformed json",
			body:       []byte(`{"age": 65,`),
			wantStatus: http.StatusBadRequest,
			wantError:  rest.MsgInvalidJSON,
		},
		{
			name:       "array body",
			body:       []byte(`[1, 2, 3]`),
			wantStatus: http.StatusBadRequest,
			wantError:  rest.MsgInvalidJSON,
		},
		{
			name:       "missing field",
			body:       testutil.PatientJSON(map[string]any{"albumin": testutil.Absent}),
			wantStatus: http.StatusBadRequest,
			wantError:  rest.MsgMissingFields,
		},
		{
			name:       "null field",
			body:       testutil.PatientJSON(map[string]any{"soiling": nil}),
			wantStatus: http.StatusBadRequest,
			wantError:  rest.MsgMissingFields,
		},
		{
			name:       "type mismatch",
			body:       testutil.PatientJSON(map[string]any{"age": "65"}),
			wantStatus: http.StatusBadRequest,
			wantError:  "Input type mismatch for age (it is 'string' but should be 'number')",
		},
		{
			name:       "boolean as string",
			body:       testutil.PatientJSON(map[string]any{"soiling": "true"}),
			wantStatus: http.StatusBadRequest,
			wantError:  "Input type mismatch for soiling (it is 'string' but should be 'boolean')",
		},
		{
			name:       "zero urea",
			body:       testutil.PatientJSON(map[string]any{"urea": 0}),
			wantStatus: http.StatusBadRequest,
			wantError:  "Error calculating NELA risk: urea must be greater than zero",
		},
	}

	router, _ := newRouter(t, 0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postRisk(router, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			testutil.AssertErrorBody(t, rec.Body.Bytes(), tt.wantError)
			assert.Empty(t, rec.Header().Get(rest.CalculationIDHeader))
		})
	}
}

func TestRiskEndpoint_BodyTooLarge(t *testing.T) {
	router, _ := newRouter(t, 0)

	body := `{"padding":"` + strings.Repeat("x", rest.MaxBodyBytes) + `"}`
	rec := postRisk(router, []byte(body))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	testutil.AssertErrorBody(t, rec.Body.Bytes(), rest.MsgBodyTooLarge)
}

func TestRiskHandler_ServerErrors(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantError string
	}{
		{"out of range", service.ErrRiskOutOfRange, rest.MsgInvalidInput},
		{"schema unavailable", schema.ErrSchemaUnavailable, "Error checking schema"},
		{"unexpected", errors.New("boom"), rest.MsgInternalFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := rest.NewRiskHandler(stubCalculator{err: tt.err}, discard())

			rec := postRisk(h, []byte(testutil.GoldenPatientJSON))

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			testutil.AssertErrorBody(t, rec.Body.Bytes(), tt.wantError)
		})
	}
}

func TestRiskEndpoint_WrongMethod(t *testing.T) {
	router, _ := newRouter(t, 0)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nela-risk", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRiskEndpoint_RateLimited(t *testing.T) {
	router, _ := newRouter(t, 1)

	first := postRisk(router, []byte(testutil.GoldenPatientJSON))
	second := postRisk(router, []byte(testutil.GoldenPatientJSON))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestSchemaEndpoint(t *testing.T) {
	router, validator := newRouter(t, 0)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/schema.json", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/schema+json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, string(validator.Document()), rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newRouter(t, 0)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "# metrics")
}
