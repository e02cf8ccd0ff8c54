// Package enrichment fans an enrich/verify request out across OSINT
// provider adapters, normalises their heterogeneous results into a
// common schema, and derives a final risk verdict.
package enrichment

import (
	"math"
	"strings"

	"compliance-intel-backend/internal/core/domain"
)

// scoreEnrichment implements the enrichment risk-scoring rules of
// spec.md §4.2: base sanctions/watchlist bumps plus per-factor-string
// increments, clamped to [0,100].
func scoreEnrichment(sanctionsMatches, watchlistMatches int, riskFactors []string) (int, domain.RiskLevel) {
	score := 0

	if sanctionsMatches > 0 {
		score += 40 + 10*(sanctionsMatches-1)
	}
	if watchlistMatches > 0 {
		score += 40 + 10*(watchlistMatches-1)
	}

	for _, f := range riskFactors {
		switch {
		case strings.Contains(f, "malicious"):
			score += 25
		case strings.Contains(f, "suspicious"):
			score += 15
		case strings.Contains(f, "spam") || strings.Contains(f, "disposable"):
			score += 10
		case strings.Contains(f, "breach"):
			if n := breachCount(f); n > 0 {
				score += int(math.Min(20, float64(n*2)))
			}
		}
	}

	if score > 100 {
		score = 100
	}

	return score, enrichmentRiskLevel(score)
}

func enrichmentRiskLevel(score int) domain.RiskLevel {
	switch {
	case score >= 70:
		return domain.RiskCritical
	case score >= 50:
		return domain.RiskHigh
	case score >= 30:
		return domain.RiskMedium
	case score >= 10:
		return domain.RiskLow
	default:
		return domain.RiskClear
	}
}

// breachCount pulls the leading integer out of a "breach appeared in N
// breaches" style risk-factor string; 0 if it cannot find one.
func breachCount(factor string) int {
	n := 0
	found := false
	for _, r := range factor {
		if r >= '0' && r <= '9' {
			n = n*10 + int(r-'0')
			found = true
		} else if found {
			break
		}
	}
	return n
}

// scoreVerification implements the verification risk-scoring rules of
// spec.md §4.2.
func scoreVerification(sanctionsMatches []domain.SanctionsMatch, watchlistMatches []domain.WatchlistMatch, hasInterpol, isPEP bool) (int, domain.VerificationStatus) {
	score := 0

	if len(sanctionsMatches) > 0 {
		highest := 0.0
		for _, m := range sanctionsMatches {
			if m.Score > highest {
				highest = m.Score
			}
		}
		// Match scores are fractions in [0,1]; expressed as a percentage
		// and halved per spec.md §4.2's "highest_sanction_score/2".
		score += 50 + int(math.Round(highest*100/2))
	}

	if len(watchlistMatches) > 0 {
		score += 40 + 15*len(watchlistMatches)
		if hasInterpol {
			score += 20
		}
	}

	if isPEP {
		score += 20
	}

	status := verificationStatus(score, isPEP)
	return score, status
}

func verificationStatus(score int, isPEP bool) domain.VerificationStatus {
	switch {
	case score >= 70:
		return domain.VerificationBlocked
	case score >= 50:
		return domain.VerificationFlagged
	case isPEP:
		return domain.VerificationReview
	case score >= 20:
		return domain.VerificationReview
	default:
		return domain.VerificationClear
	}
}
