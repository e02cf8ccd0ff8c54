package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"compliance-intel-backend/internal/core/domain"
)

func priceOf(v float64) *float64 { return &v }
func reviewsOf(v int) *int       { return &v }

func TestScoreListing_MatchedListingIsLowRisk(t *testing.T) {
	scorer := NewListingScorer(DefaultConfig())
	now := time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC)

	listing := &domain.ScrapedListing{
		ID:                  "lst1",
		City:                "Dakar",
		PricePerNight:       priceOf(50),
		ReviewCount:         reviewsOf(2),
		FirstScrapedAt:      now.AddDate(0, 0, -400),
		MatchedRegistration: true,
	}

	score := scorer.ScoreListing(listing, domain.RiskLow, HostProfile{}, now)

	assert.Equal(t, domain.RiskLow, score.RiskLevel)
	assert.GreaterOrEqual(t, score.OverallScore, 0.0)
	assert.LessOrEqual(t, score.OverallScore, 100.0)
}

// TestScoreListing_PriorityMonotonicInRevenue verifies testable
// property #2: at a fixed risk profile, investigation priority never
// decreases as estimated revenue increases.
func TestScoreListing_PriorityMonotonicInRevenue(t *testing.T) {
	scorer := NewListingScorer(DefaultConfig())
	now := time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC)

	prices := []float64{10, 50, 150, 400, 1000}
	var priorities []float64

	for _, p := range prices {
		listing := &domain.ScrapedListing{
			ID:                  "lst",
			City:                "Dakar",
			PricePerNight:       priceOf(p),
			ReviewCount:         reviewsOf(8),
			FirstScrapedAt:      now.AddDate(0, 0, -200),
			MatchedRegistration: false,
		}
		score := scorer.ScoreListing(listing, domain.RiskHigh, HostProfile{}, now)
		priorities = append(priorities, score.InvestigationPriority)
	}

	for i := 1; i < len(priorities); i++ {
		assert.GreaterOrEqual(t, priorities[i], priorities[i-1],
			"priority must not decrease as revenue increases (index %d)", i)
	}
}

func TestScoreListing_UnmatchedNoPriceDefaults(t *testing.T) {
	scorer := NewListingScorer(DefaultConfig())
	now := time.Now()

	listing := &domain.ScrapedListing{
		ID:                  "lst2",
		City:                "Dakar",
		FirstScrapedAt:      now,
		MatchedRegistration: false,
	}

	score := scorer.ScoreListing(listing, domain.RiskLow, HostProfile{}, now)
	assert.Equal(t, 0.0, score.EstimatedRevenue)
	assert.Contains(t, score.Recommendations, "Verify registration status against the property register")
}
