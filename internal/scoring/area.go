package scoring

import (
	"math"
	"time"

	"compliance-intel-backend/internal/core/domain"
)

// AreaScorer computes a deterministic AreaAssessment for a city
// (optionally narrowed to one neighborhood).
type AreaScorer struct {
	cfg Config
}

func NewAreaScorer(cfg Config) *AreaScorer {
	return &AreaScorer{cfg: cfg}
}

// AreaInput bundles the counts and history the caller has already
// queried from the store for one city/neighborhood.
type AreaInput struct {
	City                   string
	Neighborhood           string
	TotalProperties        int
	RegisteredProperties   int
	UnregisteredListings   int
	UnmatchedListings      int
	EstimatedLostRevenue   float64
	EnforcementActions     int
	UnregisteredNow        int
	UnregisteredThreeMoAgo int
	MonthlyComplianceRates []domain.AreaTrend // previous six months, oldest first
}

func (s *AreaScorer) ScoreArea(in AreaInput, now time.Time) *domain.AreaAssessment {
	w := s.cfg.AreaWeights

	complianceRate := 0.0
	if in.TotalProperties > 0 {
		complianceRate = float64(in.RegisteredProperties) / float64(in.TotalProperties) * 100
	}

	factors := []domain.RiskFactor{
		{
			Name:        "compliance_rate",
			Weight:      w.ComplianceRate,
			Score:       complianceRateScore(complianceRate),
			Description: "Share of known properties that are registered",
		},
		{
			Name:        "unregistered_density",
			Weight:      w.UnregisteredDensity,
			Score:       unregisteredDensityScore(in.UnregisteredListings),
			Description: "Count of unregistered short-term-rental listings",
		},
		{
			Name:        "revenue_impact",
			Weight:      w.RevenueImpact,
			Score:       revenueImpactScore(in.EstimatedLostRevenue),
			Description: "Estimated tax revenue lost to unregistered activity",
		},
		{
			Name:        "enforcement_history",
			Weight:      w.EnforcementHistory,
			Score:       enforcementHistoryScore(in.EnforcementActions),
			Description: "Volume of past enforcement interventions",
		},
		{
			Name:        "growth_trend",
			Weight:      w.GrowthTrend,
			Score:       growthTrendScore(in.UnregisteredNow, in.UnregisteredThreeMoAgo),
			Description: "Change in unregistered listing count over the last quarter",
		},
	}

	var weightedFactorScore float64
	for _, f := range factors {
		weightedFactorScore += f.Weight * f.Score
	}
	overall := clamp(100-weightedFactorScore, 0, 100)
	level := riskLevelFromRiskScore(overall)

	enforcementPriority := math.Min(100, overall+math.Min(20, float64(in.UnmatchedListings)/5))

	return &domain.AreaAssessment{
		City:                 in.City,
		Neighborhood:         in.Neighborhood,
		OverallScore:         overall,
		RiskLevel:            domain.RiskLevel(level),
		ComplianceRate:       complianceRate,
		UnregisteredEstimate: in.UnregisteredListings,
		EnforcementPriority:  enforcementPriority,
		Factors:              factors,
		Trends:               in.MonthlyComplianceRates,
		Recommendations:      areaRecommendations(level, in.UnregisteredListings),
		UpdatedAt:            now,
	}
}

func complianceRateScore(rate float64) float64 {
	switch {
	case rate >= 90:
		return 5
	case rate >= 75:
		return 25
	case rate >= 50:
		return 50
	case rate >= 25:
		return 75
	default:
		return 95
	}
}

func unregisteredDensityScore(count int) float64 {
	switch {
	case count >= 50:
		return 95
	case count >= 20:
		return 75
	case count >= 10:
		return 55
	case count >= 5:
		return 30
	default:
		return 10
	}
}

func revenueImpactScore(estimatedLostRevenue float64) float64 {
	switch {
	case estimatedLostRevenue >= 500000:
		return 95
	case estimatedLostRevenue >= 200000:
		return 75
	case estimatedLostRevenue >= 100000:
		return 55
	case estimatedLostRevenue >= 25000:
		return 30
	default:
		return 10
	}
}

func enforcementHistoryScore(actions int) float64 {
	switch {
	case actions == 0:
		return 80
	case actions <= 2:
		return 60
	case actions <= 5:
		return 40
	default:
		return 20
	}
}

func growthTrendScore(now, threeMoAgo int) float64 {
	if threeMoAgo == 0 {
		if now == 0 {
			return 10
		}
		return 80
	}
	growth := float64(now-threeMoAgo) / float64(threeMoAgo) * 100
	switch {
	case growth >= 50:
		return 95
	case growth >= 20:
		return 70
	case growth >= 0:
		return 45
	default:
		return 15
	}
}

func areaRecommendations(level string, unregisteredCount int) []string {
	var recs []string
	if level == "critical" || level == "high" {
		recs = append(recs, "Launch a targeted registration compliance campaign")
	}
	if unregisteredCount > 20 {
		recs = append(recs, "Prioritise field inspections in this area")
	}
	if len(recs) == 0 {
		recs = append(recs, "Continue routine monitoring")
	}
	return recs
}
