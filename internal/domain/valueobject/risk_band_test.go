package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scatauk/nela-api/internal/domain/valueobject"
)

func TestRiskBand_FromPercent(t *testing.T) {
	tests := []struct {
		name     string
		expected valueobject.RiskBand
		pct      float64
	}{
		{name: "0 is LOW", expected: valueobject.RiskBandLow, pct: 0},
		{name: "0.999 is LOW", expected: valueobject.RiskBandLow, pct: 0.999},
		{name: "1 is MODERATE", expected: valueobject.RiskBandModerate, pct: 1},
		{name: "4.999 is MODERATE", expected: valueobject.RiskBandModerate, pct: 4.999},
		{name: "5 is HIGH", expected: valueobject.RiskBandHigh, pct: 5},
		{name: "9.999 is HIGH", expected: valueobject.RiskBandHigh, pct: 9.999},
		{name: "10 is VERY_HIGH", expected: valueobject.RiskBandVeryHigh, pct: 10},
		{name: "22.151 is VERY_HIGH", expected: valueobject.RiskBandVeryHigh, pct: 22.151},
		{name: "100 is VERY_HIGH", expected: valueobject.RiskBandVeryHigh, pct: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.expected.Equal(valueobject.RiskBandFromPercent(tt.pct)))
		})
	}
}

func TestRiskBand_FromString(t *testing.T) {
	tests := []struct {
		input    string
		expected valueobject.RiskBand
		wantErr  bool
	}{
		{"LOW", valueobject.RiskBandLow, false},
		{"MODERATE", valueobject.RiskBandModerate, false},
		{"HIGH", valueobject.RiskBandHigh, false},
		{"VERY_HIGH", valueobject.RiskBandVeryHigh, false},
		{"CRITICAL", valueobject.RiskBand{}, true},
		{"", valueobject.RiskBand{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := valueobject.RiskBandFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.True(t, tt.expected.Equal(result))
			}
		})
	}
}

func TestRiskBand_IsHighRisk(t *testing.T) {
	assert.False(t, valueobject.RiskBandLow.IsHighRisk())
	assert.False(t, valueobject.RiskBandModerate.IsHighRisk())
	assert.True(t, valueobject.RiskBandHigh.IsHighRisk())
	assert.True(t, valueobject.RiskBandVeryHigh.IsHighRisk())
}

func TestRiskBand_IsZero(t *testing.T) {
	assert.True(t, valueobject.RiskBand{}.IsZero())
	assert.False(t, valueobject.RiskBandLow.IsZero())
}
