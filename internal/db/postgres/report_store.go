package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"compliance-intel-backend/internal/core/domain"
)

func (s *store) UpsertReport(ctx context.Context, report *domain.Report) error {
	metricsJSON, err := json.Marshal(report.Metrics)
	if err != nil {
		return err
	}
	alertsJSON, err := json.Marshal(report.Alerts)
	if err != nil {
		return err
	}
	highlightsJSON, err := json.Marshal(report.Highlights)
	if err != nil {
		return err
	}
	concernsJSON, err := json.Marshal(report.Concerns)
	if err != nil {
		return err
	}
	analyticsJSON, err := json.Marshal(report.Analytics)
	if err != nil {
		return err
	}
	recsJSON, err := json.Marshal(report.Recommendations)
	if err != nil {
		return err
	}

	if report.ID == "" {
		report.ID = newID()
	}

	query := `
		INSERT INTO reports (
			id, type, period, headline, metrics, alerts, highlights, concerns,
			analytics, recommendations, generated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (type, period) DO UPDATE SET
			headline = EXCLUDED.headline,
			metrics = EXCLUDED.metrics,
			alerts = EXCLUDED.alerts,
			highlights = EXCLUDED.highlights,
			concerns = EXCLUDED.concerns,
			analytics = EXCLUDED.analytics,
			recommendations = EXCLUDED.recommendations,
			generated_at = EXCLUDED.generated_at`

	_, err = s.db.ExecContext(ctx, query,
		report.ID, report.Type, report.Period, report.Headline, metricsJSON, alertsJSON,
		highlightsJSON, concernsJSON, analyticsJSON, recsJSON, report.GeneratedAt,
	)
	return err
}

func (s *store) GetReport(ctx context.Context, reportType domain.ReportType, period string) (*domain.Report, error) {
	query := `
		SELECT id, type, period, headline, metrics, alerts, highlights, concerns, analytics, recommendations, generated_at
		FROM reports
		WHERE type = $1 AND period = $2`

	report, err := scanReport(s.db.QueryRowContext(ctx, query, reportType, period))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return report, err
}

func (s *store) ListReportHistory(ctx context.Context, reportType domain.ReportType, limit int) ([]*domain.Report, error) {
	query := `
		SELECT id, type, period, headline, metrics, alerts, highlights, concerns, analytics, recommendations, generated_at
		FROM reports
		WHERE type = $1
		ORDER BY generated_at DESC
		LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, reportType, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*domain.Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

func scanReport(row rowScanner) (*domain.Report, error) {
	r := &domain.Report{}
	var metricsJSON, alertsJSON, highlightsJSON, concernsJSON, analyticsJSON, recsJSON []byte

	err := row.Scan(
		&r.ID, &r.Type, &r.Period, &r.Headline, &metricsJSON, &alertsJSON,
		&highlightsJSON, &concernsJSON, &analyticsJSON, &recsJSON, &r.GeneratedAt,
	)
	if err != nil {
		return nil, err
	}
	json.Unmarshal(metricsJSON, &r.Metrics)
	json.Unmarshal(alertsJSON, &r.Alerts)
	json.Unmarshal(highlightsJSON, &r.Highlights)
	json.Unmarshal(concernsJSON, &r.Concerns)
	json.Unmarshal(analyticsJSON, &r.Analytics)
	json.Unmarshal(recsJSON, &r.Recommendations)
	return r, nil
}

func (s *store) UpsertSeasonalPattern(ctx context.Context, pattern *domain.SeasonalPattern) error {
	monthsJSON, err := json.Marshal(pattern.Months)
	if err != nil {
		return err
	}
	peaksJSON, err := json.Marshal(pattern.PeakMonths)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO seasonal_patterns (id, months, seasonality_index, year_over_year_trend, peak_months, updated_at)
		VALUES (1, $1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			months = EXCLUDED.months,
			seasonality_index = EXCLUDED.seasonality_index,
			year_over_year_trend = EXCLUDED.year_over_year_trend,
			peak_months = EXCLUDED.peak_months,
			updated_at = EXCLUDED.updated_at`

	_, err = s.db.ExecContext(ctx, query, monthsJSON, pattern.SeasonalityIndex, pattern.YearOverYearTrend, peaksJSON, pattern.UpdatedAt)
	return err
}
