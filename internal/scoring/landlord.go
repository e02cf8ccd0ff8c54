package scoring

import (
	"time"

	"compliance-intel-backend/internal/core/domain"
)

// LandlordScorer computes a deterministic LandlordRiskScore from a
// landlord's record plus bounded windows of payments, compliance
// events, and response-time samples. It reads nothing itself — all
// inputs are passed in, so ScoreLandlord is a pure function of its
// arguments (spec.md §4.1.1: "Pure function of the landlord's record
// plus the last 24 payments, all compliance events, and up to 10
// response-time samples").
type LandlordScorer struct {
	cfg Config
}

func NewLandlordScorer(cfg Config) *LandlordScorer {
	return &LandlordScorer{cfg: cfg}
}

// ScoreLandlord computes the six weighted factors and the overall
// risk score for one landlord.
func (s *LandlordScorer) ScoreLandlord(
	landlord *domain.Landlord,
	payments []*domain.TptPayment,
	events []*domain.ComplianceEvent,
	responseSamples []*domain.ResponseTimeSample,
	now time.Time,
) *domain.RiskScore {
	w := s.cfg.LandlordWeights

	factors := []domain.RiskFactor{
		{
			Name:        "payment_history",
			Weight:      w.PaymentHistory,
			Score:       paymentHistoryScore(payments, now),
			Description: "Reliability of recent transient-occupancy-tax payments",
		},
		{
			Name:        "registration_compliance",
			Weight:      w.RegistrationCompliance,
			Score:       registrationComplianceScore(landlord.RegistrationStatus),
			Description: "Current registration status",
		},
		{
			Name:        "portfolio_size",
			Weight:      w.PortfolioSize,
			Score:       portfolioSizeScore(landlord.PropertyCount),
			Description: "Number of properties under management",
		},
		{
			Name:        "account_age",
			Weight:      w.AccountAge,
			Score:       accountAgeScore(landlord.CreatedAt, now),
			Description: "Length of time registered with the system",
		},
		{
			Name:        "compliance_history",
			Weight:      w.ComplianceHistory,
			Score:       complianceHistoryScore(events),
			Description: "History of violations, warnings, and resolutions",
		},
		{
			Name:        "response_time",
			Weight:      w.ResponseTime,
			Score:       responseTimeScore(responseSamples),
			Description: "Average responsiveness to compliance requests",
		},
	}

	overall := weightedSum(factors)
	level := riskLevelFromSafeScore(overall)

	return &domain.RiskScore{
		TargetID:        landlord.ID,
		OverallScore:    overall,
		RiskLevel:       domain.RiskLevel(level),
		Factors:         factors,
		UpdatedAt:       now,
		Recommendations: landlordRecommendations(factors, level),
	}
}

func weightedSum(factors []domain.RiskFactor) float64 {
	var total float64
	for _, f := range factors {
		total += f.Weight * f.Score
	}
	return clamp(total, 0, 100)
}

// paymentHistoryScore starts at 100 and deducts per overdue/late
// payment in the provided window (caller bounds it to <=24).
func paymentHistoryScore(payments []*domain.TptPayment, now time.Time) float64 {
	if len(payments) == 0 {
		return 50
	}

	score := 100.0
	for _, p := range payments {
		switch p.Status {
		case domain.PaymentOverdue:
			days := p.DaysOverdue(now)
			switch {
			case days > 90:
				score -= 20
			case days > 60:
				score -= 15
			case days > 30:
				score -= 10
			default:
				score -= 5
			}
		case domain.PaymentLate:
			score -= 3
		}
	}

	return clamp(score, 0, 100)
}

func registrationComplianceScore(status domain.RegistrationStatus) float64 {
	switch status {
	case domain.RegistrationFullyCompliant:
		return 100
	case domain.RegistrationPartiallyCompliant:
		return 60
	case domain.RegistrationPending:
		return 40
	case domain.RegistrationNonCompliant:
		return 10
	default:
		return 50
	}
}

func portfolioSizeScore(count int) float64 {
	switch {
	case count == 0:
		return 100
	case count <= 4:
		return 85
	case count <= 9:
		return 70
	case count <= 19:
		return 55
	default:
		return 40
	}
}

func accountAgeScore(createdAt time.Time, now time.Time) float64 {
	if createdAt.IsZero() {
		return 50
	}
	days := now.Sub(createdAt).Hours() / 24
	switch {
	case days >= 730:
		return 90
	case days >= 365:
		return 80
	case days >= 180:
		return 65
	case days >= 90:
		return 50
	default:
		return 35
	}
}

func complianceHistoryScore(events []*domain.ComplianceEvent) float64 {
	if len(events) == 0 {
		return 70
	}

	score := 100.0
	for _, e := range events {
		switch e.EventType {
		case domain.EventViolation:
			score -= 15
		case domain.EventWarning:
			score -= 8
		case domain.EventLateRegistration:
			score -= 5
		case domain.EventResolvedIssue:
			score += 3
		case domain.EventAuditPassed:
			score += 5
		}
	}

	return clamp(score, 0, 100)
}

func responseTimeScore(samples []*domain.ResponseTimeSample) float64 {
	if len(samples) == 0 {
		return 70
	}

	var totalHours float64
	for _, s := range samples {
		totalHours += s.RespondedAt.Sub(s.SentAt).Hours()
	}
	meanHours := totalHours / float64(len(samples))

	switch {
	case meanHours <= 24:
		return 95
	case meanHours <= 48:
		return 85
	case meanHours <= 72:
		return 70
	case meanHours <= 168:
		return 50
	default:
		return 30
	}
}

// landlordRecommendations generates a recommendation per factor
// scoring below 50, plus generic items for a high/critical overall.
func landlordRecommendations(factors []domain.RiskFactor, level string) []string {
	var recs []string
	for _, f := range factors {
		if f.Score < 50 {
			recs = append(recs, factorRecommendation(f.Name))
		}
	}

	if level == "high" || level == "critical" {
		recs = append(recs,
			"Schedule a compliance review with this landlord",
			"Flag for enhanced monitoring in the next enforcement cycle",
		)
	}

	return recs
}

func factorRecommendation(factorName string) string {
	switch factorName {
	case "payment_history":
		return "Follow up on overdue or late tax payments"
	case "registration_compliance":
		return "Request updated registration documentation"
	case "portfolio_size":
		return "Review the full property portfolio for registration gaps"
	case "account_age":
		return "Apply standard onboarding verification for a newer account"
	case "compliance_history":
		return "Review recent compliance events for unresolved issues"
	case "response_time":
		return "Escalate outstanding requests that have gone unanswered"
	default:
		return "Review this factor further"
	}
}
