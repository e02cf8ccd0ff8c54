package postgres

import (
	"context"
	"time"
)

// GetGlobalMonthlyRevenueTotals returns the last `months` calendar
// months of collected TPT revenue, oldest first, used by the monthly
// report's revenue-growth metric and the forecaster.
func (s *store) GetGlobalMonthlyRevenueTotals(ctx context.Context, months int) ([]float64, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM tpt_payments
		WHERE status = 'completed'
		  AND due_date >= date_trunc('month', now()) - (($1::int - 1) || ' months')::interval
		GROUP BY date_trunc('month', due_date)
		ORDER BY date_trunc('month', due_date) ASC`

	rows, err := s.db.QueryContext(ctx, query, months)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []float64
	for rows.Next() {
		var total float64
		if err := rows.Scan(&total); err != nil {
			return nil, err
		}
		totals = append(totals, total)
	}
	return totals, rows.Err()
}

// GetPaymentTotalsForPeriod splits TPT amounts due in [since, until)
// into collected (completed) and outstanding (pending/late/overdue),
// used by the weekly report's collection-rate metric.
func (s *store) GetPaymentTotalsForPeriod(ctx context.Context, since, until time.Time) (collected, outstanding float64, err error) {
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE status = 'completed'), 0),
			COALESCE(SUM(amount) FILTER (WHERE status != 'completed'), 0)
		FROM tpt_payments
		WHERE due_date >= $1 AND due_date < $2`

	err = s.db.QueryRowContext(ctx, query, since, until).Scan(&collected, &outstanding)
	return collected, outstanding, err
}
