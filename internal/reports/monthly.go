package reports

import (
	"context"
	"fmt"
	"time"

	"compliance-intel-backend/internal/core/domain"
	"compliance-intel-backend/internal/scoring"
)

// GenerateMonthly assembles and upserts the monthly report for the
// calendar month containing now: compliance + revenue + hotspots +
// risk summary, per spec.md §4.3. No seasonality figures are included.
func (g *Generator) GenerateMonthly(ctx context.Context, now time.Time, hotspotDetector *scoring.HotspotDetector) (*domain.Report, error) {
	totalProps, registeredProps, err := g.store.CountPropertiesGlobal(ctx)
	if err != nil {
		return nil, fmt.Errorf("count properties: %w", err)
	}
	complianceRate := 0.0
	if totalProps > 0 {
		complianceRate = float64(registeredProps) / float64(totalProps) * 100
	}

	revenueHistory, err := g.store.GetGlobalMonthlyRevenueTotals(ctx, 2)
	if err != nil {
		return nil, fmt.Errorf("revenue history: %w", err)
	}
	revenueGrowthPct := 0.0
	if len(revenueHistory) == 2 && revenueHistory[0] > 0 {
		revenueGrowthPct = (revenueHistory[1] - revenueHistory[0]) / revenueHistory[0] * 100
	}

	listings, err := g.store.ListUnregisteredGeolocatedListings(ctx)
	if err != nil {
		return nil, fmt.Errorf("unregistered listings: %w", err)
	}
	hotspots := hotspotDetector.DetectHotspots(listings)

	highRiskLandlords, err := g.store.ListLandlordRiskScores(ctx, domain.RiskHigh, 1000)
	if err != nil {
		return nil, fmt.Errorf("high-risk landlords: %w", err)
	}
	criticalLandlords, err := g.store.ListLandlordRiskScores(ctx, domain.RiskCritical, 1000)
	if err != nil {
		return nil, fmt.Errorf("critical landlords: %w", err)
	}
	highRiskLandlordCount := len(highRiskLandlords) + len(criticalLandlords)

	highPriorityListings, err := g.store.ListListingRiskScoresByPriority(ctx, 1000)
	if err != nil {
		return nil, fmt.Errorf("high-priority listings: %w", err)
	}
	highRiskListingCount := countAbovePriority(highPriorityListings, 60)

	var topHotspotCity string
	if len(hotspots) > 0 {
		topHotspotCity = hotspots[0].PrimaryCity
	}

	recommendations := monthlyRecommendations(complianceRate, revenueGrowthPct, topHotspotCity, highRiskLandlordCount, highRiskListingCount)

	analytics := map[string]interface{}{
		"hotspot_count":           len(hotspots),
		"high_risk_landlords":     highRiskLandlordCount,
		"high_priority_listings":  highRiskListingCount,
		"top_hotspot_city":        topHotspotCity,
	}

	report := &domain.Report{
		Type:     domain.ReportMonthly,
		Period:   fmt.Sprintf("monthly-%s", now.Format("2006-01")),
		Headline: monthlyHeadline(complianceRate, revenueGrowthPct),
		Metrics: []domain.Metric{
			{Name: "compliance_rate", Value: complianceRate, Unit: "%"},
			{Name: "revenue_growth", Value: revenueGrowthPct, Unit: "%", ChangePct: revenueGrowthPct, Trend: trendOf(revenueGrowthPct)},
			{Name: "hotspot_count", Value: float64(len(hotspots)), Unit: "count"},
		},
		Highlights:      monthlyHighlights(complianceRate, revenueGrowthPct),
		Concerns:        monthlyConcerns(complianceRate, revenueGrowthPct, highRiskLandlordCount),
		Analytics:       analytics,
		Recommendations: recommendations,
		GeneratedAt:     now,
	}

	if err := g.store.UpsertReport(ctx, report); err != nil {
		return nil, fmt.Errorf("upsert monthly report: %w", err)
	}
	return report, nil
}

func countAbovePriority(scores []*domain.RiskScore, threshold float64) int {
	n := 0
	for _, s := range scores {
		if s.InvestigationPriority >= threshold {
			n++
		}
	}
	return n
}

func monthlyHeadline(complianceRate, revenueGrowthPct float64) string {
	return fmt.Sprintf("Compliance at %.1f%%, revenue %s %.1f%% month over month", complianceRate, directionWord(revenueGrowthPct), abs(revenueGrowthPct))
}

func directionWord(v float64) string {
	if v >= 0 {
		return "up"
	}
	return "down"
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func monthlyHighlights(complianceRate, revenueGrowthPct float64) []string {
	var highlights []string
	if complianceRate >= 80 {
		highlights = append(highlights, "Compliance rate remains above target")
	}
	if revenueGrowthPct > 0 {
		highlights = append(highlights, "Revenue grew month over month")
	}
	if len(highlights) == 0 {
		highlights = append(highlights, "No standout positive metrics this month")
	}
	return highlights
}

func monthlyConcerns(complianceRate, revenueGrowthPct float64, highRiskLandlordCount int) []string {
	var concerns []string
	if complianceRate < 75 {
		concerns = append(concerns, "Compliance rate below the 75% target")
	}
	if revenueGrowthPct < 0 {
		concerns = append(concerns, "Revenue declined month over month")
	}
	if highRiskLandlordCount > 10 {
		concerns = append(concerns, "More than 10 landlords are high or critical risk")
	}
	return concerns
}

func monthlyRecommendations(complianceRate, revenueGrowthPct float64, topHotspotCity string, highRiskLandlordCount, highRiskListingCount int) []string {
	var recs []string
	if complianceRate < 75 {
		recs = append(recs, "Launch a targeted registration compliance campaign")
	}
	if revenueGrowthPct < 0 {
		recs = append(recs, "Investigate declining collections with the finance team")
	}
	if topHotspotCity != "" {
		recs = append(recs, fmt.Sprintf("Focus enforcement resources on %s, this month's top hotspot", topHotspotCity))
	}
	if highRiskLandlordCount > 10 {
		recs = append(recs, "Place high and critical risk landlords under enhanced monitoring")
	}
	if highRiskListingCount > 50 {
		recs = append(recs, "Prioritise investigations for high-priority listings")
	}
	if len(recs) == 0 {
		recs = append(recs, "Continue current compliance operations")
	}
	return recs
}
