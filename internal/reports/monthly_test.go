package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compliance-intel-backend/internal/core/domain"
	"compliance-intel-backend/internal/scoring"
)

func TestGenerateMonthly_RecommendsOnLowComplianceAndNegativeGrowth(t *testing.T) {
	store := &fakeStore{
		totalProperties:      100,
		registeredProperties: 60, // 60% compliance, below 75 threshold
		monthlyRevenue:       []float64{10000, 9000}, // negative growth
	}
	gen := NewGenerator(store)
	detector := scoring.NewHotspotDetector(scoring.DefaultConfig())

	report, err := gen.GenerateMonthly(context.Background(), time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), detector)
	require.NoError(t, err)

	assert.Equal(t, domain.ReportMonthly, report.Type)
	assert.Equal(t, "monthly-2026-07", report.Period)
	assert.Contains(t, report.Recommendations, "Launch a targeted registration compliance campaign")
	assert.Contains(t, report.Recommendations, "Investigate declining collections with the finance team")
}

func TestGenerateMonthly_HighRiskLandlordCountTriggersRecommendation(t *testing.T) {
	var landlords []*domain.RiskScore
	for i := 0; i < 12; i++ {
		landlords = append(landlords, &domain.RiskScore{TargetID: "l"})
	}
	store := &fakeStore{
		totalProperties:      100,
		registeredProperties: 90,
		monthlyRevenue:       []float64{10000, 11000},
		highLandlords:        landlords,
	}
	gen := NewGenerator(store)
	detector := scoring.NewHotspotDetector(scoring.DefaultConfig())

	report, err := gen.GenerateMonthly(context.Background(), time.Now(), detector)
	require.NoError(t, err)
	assert.Contains(t, report.Recommendations, "Place high and critical risk landlords under enhanced monitoring")
}
