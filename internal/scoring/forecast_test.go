package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForecast_InsufficientHistoryReturnsNil(t *testing.T) {
	forecaster := NewRevenueForecaster(DefaultConfig())
	result := forecaster.Forecast([]float64{1000, 1100}, 3, 0)
	assert.Nil(t, result)
}

// TestForecast_ConfidenceDecaysPerSpec mirrors spec.md §8 scenario 4:
// a 3-month-ahead forecast has confidence 0.90, 0.85, 0.80.
func TestForecast_ConfidenceDecaysPerSpec(t *testing.T) {
	forecaster := NewRevenueForecaster(DefaultConfig())
	history := []float64{100000, 105000, 110000, 108000, 115000, 120000}

	result := forecaster.Forecast(history, 3, 0)
	require.Len(t, result, 3)

	assert.InDelta(t, 0.90, result[0].Confidence, 0.001)
	assert.InDelta(t, 0.85, result[1].Confidence, 0.001)
	assert.InDelta(t, 0.80, result[2].Confidence, 0.001)
}

func TestForecast_MarginWidensWithHorizon(t *testing.T) {
	forecaster := NewRevenueForecaster(DefaultConfig())
	history := []float64{100000, 95000, 110000, 108000, 120000, 130000}

	result := forecaster.Forecast(history, 4, 0)
	require.Len(t, result, 4)

	for i := 1; i < len(result); i++ {
		prevMargin := result[i-1].UpperBound - result[i-1].Predicted
		margin := result[i].UpperBound - result[i].Predicted
		assert.GreaterOrEqual(t, margin, prevMargin)
	}
}

func TestForecast_LowerBoundNeverNegative(t *testing.T) {
	forecaster := NewRevenueForecaster(DefaultConfig())
	history := []float64{10, 5, 2}

	result := forecaster.Forecast(history, 2, 0)
	require.Len(t, result, 2)
	for _, r := range result {
		assert.GreaterOrEqual(t, r.LowerBound, 0.0)
	}
}
