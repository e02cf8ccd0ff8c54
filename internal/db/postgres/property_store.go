package postgres

import (
	"context"
	"database/sql"
	"time"

	"compliance-intel-backend/internal/core/domain"
)

func (s *store) GetProperties(ctx context.Context, city string) ([]*domain.Property, error) {
	query := `
		SELECT id, landlord_id, city, neighborhood, property_type, registration_status, created_at, latitude, longitude
		FROM properties
		WHERE ($1 = '' OR city = $1)`

	rows, err := s.db.QueryContext(ctx, query, city)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var properties []*domain.Property
	for rows.Next() {
		p := &domain.Property{}
		var lat, lon sql.NullFloat64
		if err := rows.Scan(&p.ID, &p.LandlordID, &p.City, &p.Neighborhood, &p.PropertyType, &p.RegistrationStatus, &p.CreatedAt, &lat, &lon); err != nil {
			return nil, err
		}
		if lat.Valid {
			p.Latitude = &lat.Float64
		}
		if lon.Valid {
			p.Longitude = &lon.Float64
		}
		properties = append(properties, p)
	}
	return properties, rows.Err()
}

func (s *store) CountProperties(ctx context.Context, city string) (total int, registered int, err error) {
	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE registration_status = 'registered')
		FROM properties
		WHERE ($1 = '' OR city = $1)`

	err = s.db.QueryRowContext(ctx, query, city).Scan(&total, &registered)
	return total, registered, err
}

func (s *store) CountPropertiesGlobal(ctx context.Context) (total int, registered int, err error) {
	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE registration_status = 'registered')
		FROM properties`).Scan(&total, &registered)
	return total, registered, err
}

func (s *store) GetEnforcementActions(ctx context.Context, city string) ([]*domain.EnforcementAction, error) {
	query := `
		SELECT target_id, target_type, city, action_type, status, outcome, created_at
		FROM enforcement_actions
		WHERE ($1 = '' OR city = $1)
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, city)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var actions []*domain.EnforcementAction
	for rows.Next() {
		a := &domain.EnforcementAction{}
		if err := rows.Scan(&a.TargetID, &a.TargetType, &a.City, &a.ActionType, &a.Status, &a.Outcome, &a.CreatedAt); err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	return actions, rows.Err()
}

// CountUnregisteredListingsAsOf counts unmatched listings that already
// existed at asOf, the snapshot the area scorer's growth-trend factor
// compares against today's count.
func (s *store) CountUnregisteredListingsAsOf(ctx context.Context, city string, asOf time.Time) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM scraped_listings
		WHERE ($1 = '' OR city = $1)
		  AND matched_registration = false
		  AND first_scraped_at <= $2`, city, asOf).Scan(&count)
	return count, err
}

// MonthlyComplianceRateHistory approximates a city's registration-rate
// trend over the previous `months` calendar months, using each
// property's created_at as a proxy for when it entered the registry
// (the store has no separate per-property registration-status history
// table, so this reconstructs the series from the properties that
// existed as of each month's end).
func (s *store) MonthlyComplianceRateHistory(ctx context.Context, city string, months int) ([]domain.AreaTrend, error) {
	now := time.Now()
	trends := make([]domain.AreaTrend, 0, months)

	for i := months - 1; i >= 0; i-- {
		monthEnd := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i+1, 0)

		var total, registered int
		err := s.db.QueryRowContext(ctx, `
			SELECT COUNT(*), COUNT(*) FILTER (WHERE registration_status = 'registered')
			FROM properties
			WHERE ($1 = '' OR city = $1)
			  AND created_at < $2`, city, monthEnd).Scan(&total, &registered)
		if err != nil {
			return nil, err
		}

		rate := 0.0
		if total > 0 {
			rate = float64(registered) / float64(total) * 100
		}
		trends = append(trends, domain.AreaTrend{
			Month:          monthEnd.AddDate(0, -1, 0).Format("2006-01"),
			ComplianceRate: rate,
		})
	}

	return trends, nil
}

func (s *store) GetBookings(ctx context.Context, propertyID string, years int) ([]*domain.Booking, error) {
	query := `
		SELECT check_in_date, check_out_date, total_nights, revenue
		FROM bookings
		WHERE property_id = $1
		  AND check_in_date >= now() - ($2 || ' years')::interval
		ORDER BY check_in_date ASC`

	rows, err := s.db.QueryContext(ctx, query, propertyID, years)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*domain.Booking
	for rows.Next() {
		b := &domain.Booking{}
		if err := rows.Scan(&b.CheckInDate, &b.CheckOutDate, &b.TotalNights, &b.Revenue); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
