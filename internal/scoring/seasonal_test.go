package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyse_HighSeasonFlaggedAboveThreshold(t *testing.T) {
	analyser := NewSeasonalAnalyser(DefaultConfig())

	var aggregates [12]MonthAggregate
	for i := 0; i < 12; i++ {
		aggregates[i] = MonthAggregate{
			Month:         i + 1,
			TotalNights:   500,
			TotalBookings: 20,
			TotalRevenue:  50000,
			YearsObserved: 1,
		}
	}
	// August (index 7) is a clear revenue outlier -> high season.
	aggregates[7].TotalRevenue = 200000

	pattern := analyser.Analyse(aggregates, 60000, 50000)

	assert.True(t, pattern.Months[7].IsHighSeason)
	assert.False(t, pattern.Months[0].IsHighSeason)
	assert.Contains(t, pattern.PeakMonths, 8)
	assert.Greater(t, pattern.SeasonalityIndex, 0.0)
	assert.InDelta(t, 20.0, pattern.YearOverYearTrend, 0.01)
}

func TestAnalyse_OccupancyCappedAt100(t *testing.T) {
	analyser := NewSeasonalAnalyser(DefaultConfig())

	var aggregates [12]MonthAggregate
	for i := 0; i < 12; i++ {
		aggregates[i] = MonthAggregate{
			Month:         i + 1,
			TotalNights:   10000,
			TotalBookings: 50,
			TotalRevenue:  10000,
			YearsObserved: 1,
		}
	}

	pattern := analyser.Analyse(aggregates, 0, 0)
	for _, m := range pattern.Months {
		assert.LessOrEqual(t, m.AvgOccupancy, 100.0)
	}
	assert.Equal(t, 0.0, pattern.YearOverYearTrend)
}

func TestAnalyse_UniformMonthsZeroSeasonality(t *testing.T) {
	analyser := NewSeasonalAnalyser(DefaultConfig())

	var aggregates [12]MonthAggregate
	for i := 0; i < 12; i++ {
		aggregates[i] = MonthAggregate{
			Month:         i + 1,
			TotalNights:   500,
			TotalBookings: 20,
			TotalRevenue:  50000,
			YearsObserved: 1,
		}
	}

	pattern := analyser.Analyse(aggregates, 0, 0)
	assert.InDelta(t, 0.0, pattern.SeasonalityIndex, 0.0001)
	assert.Empty(t, pattern.PeakMonths)
}
