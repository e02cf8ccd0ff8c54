package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compliance-intel-backend/internal/core/domain"
)

func TestScoreLandlord_WeightsAndFactorRanges(t *testing.T) {
	scorer := NewLandlordScorer(DefaultConfig())
	now := time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC)

	landlord := &domain.Landlord{
		ID:                 "l1",
		PropertyCount:      3,
		RegistrationStatus: domain.RegistrationFullyCompliant,
		CreatedAt:          now.AddDate(-2, 0, 0),
	}

	score := scorer.ScoreLandlord(landlord, nil, nil, nil, now)

	var weightSum float64
	for _, f := range score.Factors {
		weightSum += f.Weight
		assert.GreaterOrEqual(t, f.Score, 0.0)
		assert.LessOrEqual(t, f.Score, 100.0)
	}

	assert.InDelta(t, 1.0, weightSum, 0.001)
	assert.GreaterOrEqual(t, score.OverallScore, 0.0)
	assert.LessOrEqual(t, score.OverallScore, 100.0)
}

// TestScoreLandlord_EndToEndScenario mirrors spec.md §8 scenario 2:
// three overdue (100 days) payments, two late payments, a
// non-compliant registration, a 30-day-old account, and one violation
// event with no response-time data.
func TestScoreLandlord_EndToEndScenario(t *testing.T) {
	scorer := NewLandlordScorer(DefaultConfig())
	now := time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC)

	landlord := &domain.Landlord{
		ID:                 "l2",
		PropertyCount:      2,
		RegistrationStatus: domain.RegistrationNonCompliant,
		CreatedAt:          now.AddDate(0, 0, -30),
	}

	payments := []*domain.TptPayment{
		{Status: domain.PaymentOverdue, DueDate: now.AddDate(0, 0, -100)},
		{Status: domain.PaymentOverdue, DueDate: now.AddDate(0, 0, -100)},
		{Status: domain.PaymentOverdue, DueDate: now.AddDate(0, 0, -100)},
		{Status: domain.PaymentLate, DueDate: now.AddDate(0, 0, -10)},
		{Status: domain.PaymentLate, DueDate: now.AddDate(0, 0, -10)},
	}
	events := []*domain.ComplianceEvent{
		{EventType: domain.EventViolation},
	}

	score := scorer.ScoreLandlord(landlord, payments, events, nil, now)

	factorByName := map[string]domain.RiskFactor{}
	for _, f := range score.Factors {
		factorByName[f.Name] = f
	}

	require.InDelta(t, 34, factorByName["payment_history"].Score, 0.001)
	require.InDelta(t, 10, factorByName["registration_compliance"].Score, 0.001)
	require.InDelta(t, 35, factorByName["account_age"].Score, 0.001)
	require.InDelta(t, 85, factorByName["compliance_history"].Score, 0.001)
	require.InDelta(t, 70, factorByName["response_time"].Score, 0.001)

	assert.True(t, score.RiskLevel == domain.RiskHigh || score.RiskLevel == domain.RiskCritical)
}

func TestScoreLandlord_NoHistoryDefaults(t *testing.T) {
	scorer := NewLandlordScorer(DefaultConfig())
	now := time.Now()

	landlord := &domain.Landlord{ID: "l3"}
	score := scorer.ScoreLandlord(landlord, nil, nil, nil, now)

	factorByName := map[string]domain.RiskFactor{}
	for _, f := range score.Factors {
		factorByName[f.Name] = f
	}

	assert.Equal(t, 50.0, factorByName["payment_history"].Score)
	assert.Equal(t, 70.0, factorByName["compliance_history"].Score)
	assert.Equal(t, 70.0, factorByName["response_time"].Score)
}
