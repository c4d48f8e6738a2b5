package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertErrorContains checks that err contains the expected substring.
func AssertErrorContains(t *testing.T, err error, expected string) {
	t.Helper()
	require.Error(t, err)
	assert.Contains(t, err.Error(), expected)
}

// AssertErrorBody checks that body is exactly {"error": message}.
func AssertErrorBody(t *testing.T, body []byte, message string) {
	t.Helper()
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded), "body: %s", body)
	assert.Equal(t, map[string]any{"error": message}, decoded)
}

// AssertRiskBody checks a {predictedRisk, debug} response body and returns
// the debug components keyed by name.
func AssertRiskBody(t *testing.T, body []byte, predictedRisk float64) map[string]float64 {
	t.Helper()
	var decoded struct {
		PredictedRisk *float64           `json:"predictedRisk"`
		Debug         map[string]float64 `json:"debug"`
	}
	require.NoError(t, json.Unmarshal(body, &decoded), "body: %s", body)
	require.NotNil(t, decoded.PredictedRisk, "body: %s", body)
	assert.Equal(t, predictedRisk, *decoded.PredictedRisk)
	assert.Len(t, decoded.Debug, 14)
	return decoded.Debug
}
