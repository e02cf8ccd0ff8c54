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

func TestGenerateEnforcement_RanksTargetsByPriority(t *testing.T) {
	store := &fakeStore{
		highLandlords: []*domain.RiskScore{
			{TargetID: "l1", OverallScore: 55, EstimatedRevenue: 10000},
		},
		criticalLandlords: []*domain.RiskScore{
			{TargetID: "l2", OverallScore: 20, EstimatedRevenue: 50000},
		},
		priorityListings: []*domain.RiskScore{
			{TargetID: "lst1", InvestigationPriority: 80, EstimatedRevenue: 20000},
		},
		rankedAreas: []*domain.AreaAssessment{
			{City: "Dakar", EnforcementPriority: 85},
		},
	}
	gen := NewGenerator(store)
	detector := scoring.NewHotspotDetector(scoring.DefaultConfig())

	report, err := gen.GenerateEnforcement(context.Background(), time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC), detector)
	require.NoError(t, err)

	assert.Equal(t, domain.ReportEnforcement, report.Type)
	assert.Equal(t, "2026-07-30", report.Period)
	assert.Len(t, store.upsertedReports, 1)

	byCity, ok := report.Analytics["by_city"].(map[string][]domain.EnforcementTarget)
	require.True(t, ok)
	assert.NotEmpty(t, byCity)
}

func TestBuildEnforcementPlan_InspectorsRoundUp(t *testing.T) {
	targets := make([]domain.EnforcementTarget, 11)
	plan := buildEnforcementPlan(targets)
	assert.Equal(t, 2, plan.InspectorsNeeded)
	assert.Equal(t, 22.0, plan.EstimatedHours)
}
