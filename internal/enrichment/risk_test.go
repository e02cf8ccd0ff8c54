package enrichment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"compliance-intel-backend/internal/core/domain"
)

func TestScoreEnrichment_NoSignalsIsClear(t *testing.T) {
	score, level := scoreEnrichment(0, 0, nil)
	assert.Equal(t, 0, score)
	assert.Equal(t, domain.RiskClear, level)
}

func TestScoreEnrichment_SanctionsAndWatchlistCombine(t *testing.T) {
	score, level := scoreEnrichment(2, 1, nil)
	// sanctions: 40 + 10*(2-1) = 50; watchlist: 40 + 10*(1-1) = 40
	assert.Equal(t, 90, score)
	assert.Equal(t, domain.RiskCritical, level)
}

func TestScoreEnrichment_FactorStringsBump(t *testing.T) {
	score, level := scoreEnrichment(0, 0, []string{"email flagged malicious"})
	assert.Equal(t, 25, score)
	assert.Equal(t, domain.RiskLow, level)
}

func TestScoreEnrichment_ScoreClampedAt100(t *testing.T) {
	score, _ := scoreEnrichment(10, 10, []string{"email flagged malicious", "email flagged suspicious"})
	assert.Equal(t, 100, score)
}

func TestScoreVerification_CleanPersonIsClear(t *testing.T) {
	score, status := scoreVerification(nil, nil, false, false)
	assert.Equal(t, 0, score)
	assert.Equal(t, domain.VerificationClear, status)
}

func TestScoreVerification_SanctionsMatchBlocks(t *testing.T) {
	matches := []domain.SanctionsMatch{{Dataset: "us_ofac_sdn", Name: "Jean Dupont", Score: 0.9}}
	score, status := scoreVerification(matches, nil, false, false)
	assert.GreaterOrEqual(t, score, 70)
	assert.Equal(t, domain.VerificationBlocked, status)
}

func TestScoreVerification_PEPOnlyIsReview(t *testing.T) {
	_, status := scoreVerification(nil, nil, false, true)
	assert.Equal(t, domain.VerificationReview, status)
}

func TestScoreVerification_InterpolWatchlistFlagsOrBlocks(t *testing.T) {
	matches := []domain.WatchlistMatch{{Source: "watchlist.interpol_red", Name: "Jean Dupont"}}
	score, status := scoreVerification(nil, matches, true, false)
	assert.GreaterOrEqual(t, score, 50)
	assert.Contains(t, []domain.VerificationStatus{domain.VerificationFlagged, domain.VerificationBlocked}, status)
}
