package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"compliance-intel-backend/internal/core/domain"
)

func (s *store) GetLandlord(ctx context.Context, id string) (*domain.Landlord, error) {
	query := `
		SELECT id, name, email, created_at, property_count, registration_status, payment_status
		FROM landlords
		WHERE id = $1`

	landlord := &domain.Landlord{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&landlord.ID, &landlord.Name, &landlord.Email, &landlord.CreatedAt,
		&landlord.PropertyCount, &landlord.RegistrationStatus, &landlord.PaymentStatus,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("landlord not found: %s", id)
	}
	if err != nil {
		return nil, err
	}
	return landlord, nil
}

func (s *store) ListLandlords(ctx context.Context, limit, offset int) ([]*domain.Landlord, error) {
	query := `
		SELECT id, name, email, created_at, property_count, registration_status, payment_status
		FROM landlords
		ORDER BY created_at ASC
		LIMIT $1 OFFSET $2`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var landlords []*domain.Landlord
	for rows.Next() {
		l := &domain.Landlord{}
		if err := rows.Scan(&l.ID, &l.Name, &l.Email, &l.CreatedAt, &l.PropertyCount, &l.RegistrationStatus, &l.PaymentStatus); err != nil {
			return nil, err
		}
		landlords = append(landlords, l)
	}
	return landlords, rows.Err()
}

func (s *store) GetRecentPayments(ctx context.Context, landlordID string, limit int) ([]*domain.TptPayment, error) {
	query := `
		SELECT id, landlord_id, city, amount, status, due_date, payment_date, paid_date
		FROM tpt_payments
		WHERE landlord_id = $1
		ORDER BY due_date DESC
		LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, landlordID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*domain.TptPayment
	for rows.Next() {
		p := &domain.TptPayment{}
		var paymentDate, paidDate sql.NullTime
		if err := rows.Scan(&p.ID, &p.LandlordID, &p.City, &p.Amount, &p.Status, &p.DueDate, &paymentDate, &paidDate); err != nil {
			return nil, err
		}
		if paymentDate.Valid {
			p.PaymentDate = &paymentDate.Time
		}
		if paidDate.Valid {
			p.PaidDate = &paidDate.Time
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (s *store) GetComplianceEvents(ctx context.Context, landlordID string) ([]*domain.ComplianceEvent, error) {
	query := `
		SELECT landlord_id, event_type, event_date, description
		FROM compliance_events
		WHERE landlord_id = $1
		ORDER BY event_date DESC`

	rows, err := s.db.QueryContext(ctx, query, landlordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*domain.ComplianceEvent
	for rows.Next() {
		e := &domain.ComplianceEvent{}
		if err := rows.Scan(&e.LandlordID, &e.EventType, &e.EventDate, &e.Description); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (s *store) GetResponseTimeSamples(ctx context.Context, landlordID string, limit int) ([]*domain.ResponseTimeSample, error) {
	query := `
		SELECT sent_at, responded_at
		FROM landlord_response_samples
		WHERE landlord_id = $1
		ORDER BY sent_at DESC
		LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, landlordID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []*domain.ResponseTimeSample
	for rows.Next() {
		r := &domain.ResponseTimeSample{}
		if err := rows.Scan(&r.SentAt, &r.RespondedAt); err != nil {
			return nil, err
		}
		samples = append(samples, r)
	}
	return samples, rows.Err()
}

func (s *store) GetMonthlyPaymentTotals(ctx context.Context, landlordID string, months int) ([]float64, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM tpt_payments
		WHERE landlord_id = $1
		  AND due_date >= date_trunc('month', now()) - ($2 || ' months')::interval
		GROUP BY date_trunc('month', due_date)
		ORDER BY date_trunc('month', due_date) ASC`

	rows, err := s.db.QueryContext(ctx, query, landlordID, months)
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
