package enrichment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"compliance-intel-backend/internal/core/domain"
)

func TestMergeResults_NamePrecedenceInputFirst(t *testing.T) {
	results := []domain.ProviderResult{
		{
			Source: "phone.truecaller", Success: true, CheckedAt: time.Now(),
			Data: map[string]interface{}{"name": "Jean Dupont"},
		},
		{
			Source: "email.fullcontact", Success: true, CheckedAt: time.Now(),
			Data: map[string]interface{}{"full_name": "J. Dupont"},
		},
	}

	names, _, _, _, _, _, _ := mergeResults("Jean D.", results)
	assert.Equal(t, []string{"Jean D.", "Jean Dupont", "J. Dupont"}, names)
}

func TestMergeResults_EmailRepFactorsAppended(t *testing.T) {
	results := []domain.ProviderResult{
		{
			Source: "email.emailrep", Success: true, CheckedAt: time.Now(),
			Data: map[string]interface{}{"malicious": true, "disposable": true},
		},
	}

	_, _, _, _, _, _, factors := mergeResults("", results)
	assert.Contains(t, factors, "email flagged malicious")
	assert.Contains(t, factors, "email is a disposable address")
}

func TestMergeResults_BreachCountBelowThresholdNotFlagged(t *testing.T) {
	results := []domain.ProviderResult{
		{
			Source: "email.hibp", Success: true, CheckedAt: time.Now(),
			Data: map[string]interface{}{"breached": true, "breach_count": 2},
		},
	}

	_, _, _, _, _, _, factors := mergeResults("", results)
	assert.Empty(t, factors)
}

func TestCountSanctionsAndWatchlist(t *testing.T) {
	results := []domain.ProviderResult{
		{
			Source: "sanctions.opensanctions", Success: true,
			Data: map[string]interface{}{"matches": []domain.SanctionsMatch{{Name: "a"}, {Name: "b"}}},
		},
		{
			Source: "watchlist.interpol_red", Success: true,
			Data: map[string]interface{}{"items": []domain.WatchlistMatch{{Name: "c"}}},
		},
	}

	sanctions, watchlist := countSanctionsAndWatchlist(results)
	assert.Equal(t, 2, sanctions)
	assert.Equal(t, 1, watchlist)
}
