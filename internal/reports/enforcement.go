package reports

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"compliance-intel-backend/internal/core/domain"
	"compliance-intel-backend/internal/scoring"
)

// EnforcementPlan is the grouped-by-city view an enforcement report's
// analytics section carries alongside its flat target list.
type EnforcementPlan struct {
	Targets           []domain.EnforcementTarget
	ByCity            map[string][]domain.EnforcementTarget
	InspectorsNeeded  int
	EstimatedHours    float64
	EstimatedOutcome  float64
}

// GenerateEnforcement assembles and upserts the enforcement report for
// now's generation date, per spec.md §4.3.
func (g *Generator) GenerateEnforcement(ctx context.Context, now time.Time, hotspotDetector *scoring.HotspotDetector) (*domain.Report, error) {
	highLandlords, err := g.store.ListLandlordRiskScores(ctx, domain.RiskHigh, 1000)
	if err != nil {
		return nil, fmt.Errorf("high-risk landlords: %w", err)
	}
	criticalLandlords, err := g.store.ListLandlordRiskScores(ctx, domain.RiskCritical, 1000)
	if err != nil {
		return nil, fmt.Errorf("critical landlords: %w", err)
	}

	priorityListings, err := g.store.ListListingRiskScoresByPriority(ctx, 1000)
	if err != nil {
		return nil, fmt.Errorf("priority listings: %w", err)
	}

	rankedAreas, err := g.store.ListAreaAssessmentsRanked(ctx, 50)
	if err != nil {
		return nil, fmt.Errorf("ranked areas: %w", err)
	}

	var targets []domain.EnforcementTarget
	for _, l := range append(highLandlords, criticalLandlords...) {
		// Landlord OverallScore is higher-is-safer; invert it into a risk.
		targets = append(targets, buildTarget(l.TargetID, "landlord", "", 100-l.OverallScore, l.EstimatedRevenue))
	}
	for _, l := range priorityListings {
		targets = append(targets, buildTarget(l.TargetID, "listing", "", l.InvestigationPriority, l.EstimatedRevenue))
	}
	for _, a := range rankedAreas {
		targets = append(targets, buildTarget(fmt.Sprintf("%s/%s", a.City, a.Neighborhood), "area", a.City, a.EnforcementPriority, 0))
	}

	sort.Slice(targets, func(i, j int) bool { return targets[i].Priority > targets[j].Priority })

	plan := buildEnforcementPlan(targets)

	report := &domain.Report{
		Type:     domain.ReportEnforcement,
		Period:   now.Format("2006-01-02"),
		Headline: fmt.Sprintf("%d enforcement targets identified across %d cities", len(plan.Targets), len(plan.ByCity)),
		Metrics: []domain.Metric{
			{Name: "target_count", Value: float64(len(plan.Targets)), Unit: "count"},
			{Name: "inspectors_needed", Value: float64(plan.InspectorsNeeded), Unit: "count"},
			{Name: "estimated_outcome", Value: plan.EstimatedOutcome, Unit: "XOF"},
		},
		Highlights: []string{fmt.Sprintf("Top target priority score: %.1f", topPriority(plan.Targets))},
		Analytics: map[string]interface{}{
			"by_city":           plan.ByCity,
			"estimated_hours":   plan.EstimatedHours,
			"inspectors_needed": plan.InspectorsNeeded,
		},
		Recommendations: enforcementRecommendations(plan),
		GeneratedAt:     now,
	}

	if err := g.store.UpsertReport(ctx, report); err != nil {
		return nil, fmt.Errorf("upsert enforcement report: %w", err)
	}
	return report, nil
}

func buildTarget(id, targetType, city string, riskOrPriority, estimatedRevenue float64) domain.EnforcementTarget {
	priority := 0.6*riskOrPriority + 0.4*math.Min(100, estimatedRevenue/50000*100)
	return domain.EnforcementTarget{
		TargetID:         id,
		TargetType:       targetType,
		City:             city,
		Priority:         priority,
		EstimatedRevenue: estimatedRevenue,
	}
}

func buildEnforcementPlan(targets []domain.EnforcementTarget) EnforcementPlan {
	byCity := map[string][]domain.EnforcementTarget{}
	var estimatedOutcome float64
	for _, t := range targets {
		city := t.City
		if city == "" {
			city = "unspecified"
		}
		byCity[city] = append(byCity[city], t)
		estimatedOutcome += t.EstimatedRevenue * 0.6
	}

	inspectorsNeeded := (len(targets) + 9) / 10
	estimatedHours := float64(len(targets)) * 2

	return EnforcementPlan{
		Targets:          targets,
		ByCity:           byCity,
		InspectorsNeeded: inspectorsNeeded,
		EstimatedHours:   estimatedHours,
		EstimatedOutcome: estimatedOutcome,
	}
}

func topPriority(targets []domain.EnforcementTarget) float64 {
	if len(targets) == 0 {
		return 0
	}
	return targets[0].Priority
}

func enforcementRecommendations(plan EnforcementPlan) []string {
	recs := []string{fmt.Sprintf("Deploy %d inspectors across %d cities over an estimated %.0f hours", plan.InspectorsNeeded, len(plan.ByCity), plan.EstimatedHours)}
	if len(plan.Targets) > 0 {
		recs = append(recs, fmt.Sprintf("Begin with %s (%s), the highest-priority target", plan.Targets[0].TargetID, plan.Targets[0].TargetType))
	}
	return recs
}
