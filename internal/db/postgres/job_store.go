package postgres

import (
	"context"
	"encoding/json"

	"compliance-intel-backend/internal/core/domain"
	"compliance-intel-backend/internal/core/port"
)

func (s *store) AppendJobHistory(ctx context.Context, history *domain.JobHistory) error {
	errorsJSON, err := json.Marshal(history.Errors)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO job_history (
			job_id, job_name, status, start_time, end_time, duration_ms, records_processed, errors
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = s.db.ExecContext(ctx, query,
		history.JobID, history.JobName, history.Status, history.StartTime, history.EndTime,
		history.DurationMs, history.RecordsProcessed, errorsJSON,
	)
	return err
}

func (s *store) AppendNotification(ctx context.Context, notification port.Notification) error {
	query := `
		INSERT INTO notifications (id, type, message, created_at)
		VALUES ($1, $2, $3, $4)`

	_, err := s.db.ExecContext(ctx, query, newID(), notification.Type, notification.Message, notification.CreatedAt)
	return err
}

func (s *store) EnrichmentLog(ctx context.Context, req domain.EnrichmentRequest, resp *domain.EnrichmentResponse) error {
	reqJSON, err := json.Marshal(req)
	if err != nil {
		return err
	}
	respJSON, err := json.Marshal(resp)
	if err != nil {
		return err
	}

	query := `INSERT INTO enrichment_log (id, request, response, risk_level, created_at) VALUES ($1, $2, $3, $4, now())`
	_, err = s.db.ExecContext(ctx, query, newID(), reqJSON, respJSON, resp.RiskLevel)
	return err
}

func (s *store) VerificationLog(ctx context.Context, req domain.VerificationRequest, resp *domain.VerificationResponse) error {
	reqJSON, err := json.Marshal(req)
	if err != nil {
		return err
	}
	respJSON, err := json.Marshal(resp)
	if err != nil {
		return err
	}

	query := `INSERT INTO verification_log (id, request, response, status, created_at) VALUES ($1, $2, $3, $4, now())`
	_, err = s.db.ExecContext(ctx, query, newID(), reqJSON, respJSON, resp.Status)
	return err
}
