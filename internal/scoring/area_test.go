package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScoreArea_WeightsSumToOne(t *testing.T) {
	scorer := NewAreaScorer(DefaultConfig())
	now := time.Now()

	in := AreaInput{
		City:                 "Dakar",
		TotalProperties:      100,
		RegisteredProperties: 60,
		UnregisteredListings: 12,
		UnmatchedListings:    8,
		EstimatedLostRevenue: 80000,
		EnforcementActions:   1,
		UnregisteredNow:      12,
		UnregisteredThreeMoAgo: 10,
	}

	result := scorer.ScoreArea(in, now)

	var weightSum float64
	for _, f := range result.Factors {
		weightSum += f.Weight
	}
	assert.InDelta(t, 1.0, weightSum, 0.001)
	assert.InDelta(t, 60.0, result.ComplianceRate, 0.001)
	assert.GreaterOrEqual(t, result.OverallScore, 0.0)
	assert.LessOrEqual(t, result.OverallScore, 100.0)
}

func TestScoreArea_ZeroPropertiesNoDivideByZero(t *testing.T) {
	scorer := NewAreaScorer(DefaultConfig())
	now := time.Now()

	in := AreaInput{City: "Unknown"}
	result := scorer.ScoreArea(in, now)

	assert.Equal(t, 0.0, result.ComplianceRate)
	assert.GreaterOrEqual(t, result.OverallScore, 0.0)
	assert.LessOrEqual(t, result.OverallScore, 100.0)
}

func TestScoreArea_EnforcementPriorityCappedAt100(t *testing.T) {
	scorer := NewAreaScorer(DefaultConfig())
	now := time.Now()

	in := AreaInput{
		City:                 "Dakar",
		TotalProperties:      100,
		RegisteredProperties: 5,
		UnregisteredListings: 80,
		UnmatchedListings:    500,
		EstimatedLostRevenue: 900000,
		EnforcementActions:   0,
		UnregisteredNow:      80,
		UnregisteredThreeMoAgo: 10,
	}

	result := scorer.ScoreArea(in, now)
	assert.LessOrEqual(t, result.EnforcementPriority, 100.0)
}
