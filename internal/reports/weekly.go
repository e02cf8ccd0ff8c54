// Package reports generates the weekly, monthly, and enforcement
// documents enforcement teams consume, by querying the store for a
// window's snapshots and delegating derived numbers to the scoring
// engine.
package reports

import (
	"context"
	"fmt"
	"time"

	"compliance-intel-backend/internal/core/domain"
	"compliance-intel-backend/internal/core/port"
)

// Generator produces report documents against a Store. It holds no
// per-call mutable state; every Generate call is independent.
type Generator struct {
	store port.Store
}

func NewGenerator(store port.Store) *Generator {
	return &Generator{store: store}
}

// weekStartISO returns the Monday of the week containing t, formatted
// as an ISO calendar date, used as the weekly report's natural key.
func weekStartISO(t time.Time) string {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // ISO: Sunday is day 7
	}
	monday := t.AddDate(0, 0, -(weekday - 1))
	return monday.Format("2006-01-02")
}

// GenerateWeekly assembles and upserts the weekly report for the week
// containing now, per spec.md §4.3.
func (g *Generator) GenerateWeekly(ctx context.Context, now time.Time) (*domain.Report, error) {
	weekStart := now.AddDate(0, 0, -7)

	totalProps, registeredProps, err := g.store.CountPropertiesGlobal(ctx)
	if err != nil {
		return nil, fmt.Errorf("count properties: %w", err)
	}
	complianceRate := 0.0
	if totalProps > 0 {
		complianceRate = float64(registeredProps) / float64(totalProps) * 100
	}

	collected, outstanding, err := g.store.GetPaymentTotalsForPeriod(ctx, weekStart, now)
	if err != nil {
		return nil, fmt.Errorf("payment totals: %w", err)
	}
	collectionRate := 0.0
	if collected+outstanding > 0 {
		collectionRate = collected / (collected + outstanding) * 100
	}

	newUnmatched, err := g.store.CountUnmatchedListingsSince(ctx, weekStart)
	if err != nil {
		return nil, fmt.Errorf("new unmatched listings: %w", err)
	}

	priorWeekRevenue, err := g.store.GetGlobalMonthlyRevenueTotals(ctx, 2)
	if err != nil {
		return nil, fmt.Errorf("revenue history: %w", err)
	}
	changePct := 0.0
	if len(priorWeekRevenue) == 2 && priorWeekRevenue[0] > 0 {
		changePct = (priorWeekRevenue[1] - priorWeekRevenue[0]) / priorWeekRevenue[0] * 100
	}

	var alerts []domain.Alert
	if complianceRate < 70 {
		alerts = append(alerts, domain.Alert{Severity: "critical", Message: "Compliance rate has fallen below 70%"})
	}
	if changePct < -5 {
		alerts = append(alerts, domain.Alert{Severity: "warning", Message: "Revenue has declined more than 5% month over month"})
	}
	if collectionRate < 80 {
		alerts = append(alerts, domain.Alert{Severity: "warning", Message: "Collection rate has fallen below 80%"})
	}
	if outstanding > collected {
		alerts = append(alerts, domain.Alert{Severity: "critical", Message: "Outstanding TPT payments now exceed collections"})
	}
	if newUnmatched > 50 {
		alerts = append(alerts, domain.Alert{Severity: "warning", Message: "More than 50 new unmatched listings appeared this week"})
	}

	report := &domain.Report{
		Type:     domain.ReportWeekly,
		Period:   weekStartISO(now),
		Headline: weeklyHeadline(complianceRate, alerts),
		Metrics: []domain.Metric{
			{Name: "compliance_rate", Value: complianceRate, Unit: "%", ChangePct: changePct, Trend: trendOf(changePct)},
			{Name: "collection_rate", Value: collectionRate, Unit: "%"},
			{Name: "new_unmatched_listings", Value: float64(newUnmatched), Unit: "count"},
		},
		Alerts:          alerts,
		Highlights:      weeklyHighlights(complianceRate, collectionRate),
		Concerns:        weeklyConcerns(alerts),
		Recommendations: weeklyRecommendations(alerts),
		GeneratedAt:     now,
	}

	if err := g.store.UpsertReport(ctx, report); err != nil {
		return nil, fmt.Errorf("upsert weekly report: %w", err)
	}
	return report, nil
}

func weeklyHeadline(complianceRate float64, alerts []domain.Alert) string {
	if hasCritical(alerts) {
		return fmt.Sprintf("Compliance rate at %.1f%% with critical alerts requiring attention", complianceRate)
	}
	return fmt.Sprintf("Compliance rate steady at %.1f%%", complianceRate)
}

func weeklyHighlights(complianceRate, collectionRate float64) []string {
	var highlights []string
	if complianceRate >= 80 {
		highlights = append(highlights, "Compliance rate remains strong")
	}
	if collectionRate >= 90 {
		highlights = append(highlights, "Collection rate is healthy")
	}
	if len(highlights) == 0 {
		highlights = append(highlights, "No standout positive metrics this week")
	}
	return highlights
}

func weeklyConcerns(alerts []domain.Alert) []string {
	var concerns []string
	for _, a := range alerts {
		concerns = append(concerns, a.Message)
	}
	return concerns
}

func weeklyRecommendations(alerts []domain.Alert) []string {
	recs := []string{"Continue routine monitoring of registration status"}
	if hasCritical(alerts) {
		recs = append([]string{"Escalate critical alerts to the enforcement team immediately"}, recs...)
	}
	return recs
}

func hasCritical(alerts []domain.Alert) bool {
	for _, a := range alerts {
		if a.Severity == "critical" {
			return true
		}
	}
	return false
}

func trendOf(changePct float64) string {
	switch {
	case changePct > 1:
		return "up"
	case changePct < -1:
		return "down"
	default:
		return "flat"
	}
}
