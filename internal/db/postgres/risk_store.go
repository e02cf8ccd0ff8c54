package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"compliance-intel-backend/internal/core/domain"
)

func (s *store) UpsertLandlordRiskScore(ctx context.Context, score *domain.RiskScore) error {
	return s.upsertRiskScore(ctx, "landlord", score)
}

func (s *store) UpsertListingRiskScore(ctx context.Context, score *domain.RiskScore) error {
	return s.upsertRiskScore(ctx, "listing", score)
}

func (s *store) upsertRiskScore(ctx context.Context, targetType string, score *domain.RiskScore) error {
	factorsJSON, err := json.Marshal(score.Factors)
	if err != nil {
		return err
	}
	recsJSON, err := json.Marshal(score.Recommendations)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO risk_scores (
			target_id, target_type, overall_score, risk_level, factors,
			recommendations, investigation_priority, estimated_revenue, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (target_id, target_type) DO UPDATE SET
			overall_score = EXCLUDED.overall_score,
			risk_level = EXCLUDED.risk_level,
			factors = EXCLUDED.factors,
			recommendations = EXCLUDED.recommendations,
			investigation_priority = EXCLUDED.investigation_priority,
			estimated_revenue = EXCLUDED.estimated_revenue,
			updated_at = EXCLUDED.updated_at`

	_, err = s.db.ExecContext(ctx, query,
		score.TargetID, targetType, score.OverallScore, score.RiskLevel, factorsJSON,
		recsJSON, score.InvestigationPriority, score.EstimatedRevenue, score.UpdatedAt,
	)
	return err
}

func (s *store) GetLandlordRiskScore(ctx context.Context, landlordID string) (*domain.RiskScore, error) {
	return s.getRiskScore(ctx, "landlord", landlordID)
}

func (s *store) GetListingRiskScore(ctx context.Context, listingID string) (*domain.RiskScore, error) {
	return s.getRiskScore(ctx, "listing", listingID)
}

func (s *store) getRiskScore(ctx context.Context, targetType, targetID string) (*domain.RiskScore, error) {
	query := `
		SELECT target_id, overall_score, risk_level, factors, recommendations,
			   investigation_priority, estimated_revenue, updated_at
		FROM risk_scores
		WHERE target_type = $1 AND target_id = $2`

	score, err := scanRiskScore(s.db.QueryRowContext(ctx, query, targetType, targetID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return score, err
}

func (s *store) ListLandlordRiskScores(ctx context.Context, riskLevel domain.RiskLevel, limit int) ([]*domain.RiskScore, error) {
	query := `
		SELECT target_id, overall_score, risk_level, factors, recommendations,
			   investigation_priority, estimated_revenue, updated_at
		FROM risk_scores
		WHERE target_type = 'landlord' AND risk_level = $1
		ORDER BY overall_score DESC
		LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, riskLevel, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRiskScores(rows)
}

func (s *store) ListListingRiskScoresByPriority(ctx context.Context, limit int) ([]*domain.RiskScore, error) {
	query := `
		SELECT target_id, overall_score, risk_level, factors, recommendations,
			   investigation_priority, estimated_revenue, updated_at
		FROM risk_scores
		WHERE target_type = 'listing'
		ORDER BY investigation_priority DESC
		LIMIT $1`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRiskScores(rows)
}

func scanRiskScore(row rowScanner) (*domain.RiskScore, error) {
	score := &domain.RiskScore{}
	var factorsJSON, recsJSON []byte

	err := row.Scan(
		&score.TargetID, &score.OverallScore, &score.RiskLevel, &factorsJSON, &recsJSON,
		&score.InvestigationPriority, &score.EstimatedRevenue, &score.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	json.Unmarshal(factorsJSON, &score.Factors)
	json.Unmarshal(recsJSON, &score.Recommendations)
	return score, nil
}

func scanRiskScores(rows *sql.Rows) ([]*domain.RiskScore, error) {
	var scores []*domain.RiskScore
	for rows.Next() {
		score, err := scanRiskScore(rows)
		if err != nil {
			return nil, err
		}
		scores = append(scores, score)
	}
	return scores, rows.Err()
}

func (s *store) UpsertAreaAssessment(ctx context.Context, assessment *domain.AreaAssessment) error {
	factorsJSON, err := json.Marshal(assessment.Factors)
	if err != nil {
		return err
	}
	trendsJSON, err := json.Marshal(assessment.Trends)
	if err != nil {
		return err
	}
	recsJSON, err := json.Marshal(assessment.Recommendations)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO area_assessments (
			city, neighborhood, overall_score, risk_level, compliance_rate,
			unregistered_estimate, enforcement_priority, factors, trends,
			recommendations, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (city, neighborhood) DO UPDATE SET
			overall_score = EXCLUDED.overall_score,
			risk_level = EXCLUDED.risk_level,
			compliance_rate = EXCLUDED.compliance_rate,
			unregistered_estimate = EXCLUDED.unregistered_estimate,
			enforcement_priority = EXCLUDED.enforcement_priority,
			factors = EXCLUDED.factors,
			trends = EXCLUDED.trends,
			recommendations = EXCLUDED.recommendations,
			updated_at = EXCLUDED.updated_at`

	_, err = s.db.ExecContext(ctx, query,
		assessment.City, assessment.Neighborhood, assessment.OverallScore, assessment.RiskLevel,
		assessment.ComplianceRate, assessment.UnregisteredEstimate, assessment.EnforcementPriority,
		factorsJSON, trendsJSON, recsJSON, assessment.UpdatedAt,
	)
	return err
}

func (s *store) GetAreaAssessment(ctx context.Context, city, neighborhood string) (*domain.AreaAssessment, error) {
	query := `
		SELECT city, neighborhood, overall_score, risk_level, compliance_rate,
			   unregistered_estimate, enforcement_priority, factors, trends, recommendations, updated_at
		FROM area_assessments
		WHERE city = $1 AND neighborhood = $2`

	assessment, err := scanAreaAssessment(s.db.QueryRowContext(ctx, query, city, neighborhood))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return assessment, err
}

func (s *store) ListAreaAssessmentsRanked(ctx context.Context, limit int) ([]*domain.AreaAssessment, error) {
	query := `
		SELECT city, neighborhood, overall_score, risk_level, compliance_rate,
			   unregistered_estimate, enforcement_priority, factors, trends, recommendations, updated_at
		FROM area_assessments
		ORDER BY enforcement_priority DESC
		LIMIT $1`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assessments []*domain.AreaAssessment
	for rows.Next() {
		a, err := scanAreaAssessment(rows)
		if err != nil {
			return nil, err
		}
		assessments = append(assessments, a)
	}
	return assessments, rows.Err()
}

func scanAreaAssessment(row rowScanner) (*domain.AreaAssessment, error) {
	a := &domain.AreaAssessment{}
	var factorsJSON, trendsJSON, recsJSON []byte

	err := row.Scan(
		&a.City, &a.Neighborhood, &a.OverallScore, &a.RiskLevel, &a.ComplianceRate,
		&a.UnregisteredEstimate, &a.EnforcementPriority, &factorsJSON, &trendsJSON, &recsJSON, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	json.Unmarshal(factorsJSON, &a.Factors)
	json.Unmarshal(trendsJSON, &a.Trends)
	json.Unmarshal(recsJSON, &a.Recommendations)
	return a, nil
}
