package enrichment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compliance-intel-backend/internal/core/domain"
	"compliance-intel-backend/internal/enrichment/provider"
)

// newTestOrchestrator builds an Orchestrator with adapters that never
// hit the network, so the fan-out logic can be exercised without
// external credentials.
func newTestOrchestrator() *Orchestrator {
	return &Orchestrator{
		phoneAdapters: nil,
		emailAdapters: nil,
		sanctionsAdapters: map[string]func(ctx context.Context, q provider.SanctionsQuery) domain.ProviderResult{
			"sanctions.opensanctions": func(ctx context.Context, q provider.SanctionsQuery) domain.ProviderResult {
				return domain.ProviderResult{Success: false, Source: "sanctions.opensanctions", Error: "not configured"}
			},
			"sanctions.ofac": func(ctx context.Context, q provider.SanctionsQuery) domain.ProviderResult {
				return domain.ProviderResult{Success: false, Source: "sanctions.ofac", Error: "not configured"}
			},
			"sanctions.un": func(ctx context.Context, q provider.SanctionsQuery) domain.ProviderResult {
				return domain.ProviderResult{Success: false, Source: "sanctions.un", Error: "not configured"}
			},
			"sanctions.eu": func(ctx context.Context, q provider.SanctionsQuery) domain.ProviderResult {
				return domain.ProviderResult{Success: false, Source: "sanctions.eu", Error: "not configured"}
			},
			"sanctions.pep": func(ctx context.Context, q provider.SanctionsQuery) domain.ProviderResult {
				return domain.ProviderResult{Success: false, Source: "sanctions.pep", Error: "not configured"}
			},
		},
		watchlistAdapters: map[string]func(ctx context.Context, q provider.WatchlistQuery) domain.ProviderResult{
			"watchlist.interpol_red": func(ctx context.Context, q provider.WatchlistQuery) domain.ProviderResult {
				return domain.ProviderResult{Success: false, Source: "watchlist.interpol_red", Error: "not configured"}
			},
			"watchlist.fbi": func(ctx context.Context, q provider.WatchlistQuery) domain.ProviderResult {
				return domain.ProviderResult{Success: false, Source: "watchlist.fbi", Error: "not configured"}
			},
			"watchlist.europol": func(ctx context.Context, q provider.WatchlistQuery) domain.ProviderResult {
				return domain.ProviderResult{Success: false, Source: "watchlist.europol", Error: "not configured"}
			},
		},
		timeout: time.Second,
	}
}

// TestVerify_NoAdaptersConfiguredIsClear mirrors spec.md §8 scenario 1:
// a verify call with zero adapter keys configured still returns 200
// with status=clear and a non-empty recommendation list.
func TestVerify_NoAdaptersConfiguredIsClear(t *testing.T) {
	orch := newTestOrchestrator()

	resp := orch.Verify(context.Background(), domain.VerificationRequest{
		FirstName: "Jean",
		LastName:  "Dupont",
		Options:   domain.VerificationOptions{Sanctions: true},
	})

	assert.Equal(t, domain.VerificationClear, resp.Status)
	assert.NotEmpty(t, resp.Recommendations)
	assert.Empty(t, resp.SanctionsMatches)
}

func TestVerifyBatch_SummaryBucketsAllResults(t *testing.T) {
	orch := newTestOrchestrator()

	requests := []domain.VerificationRequest{
		{FirstName: "Jean", LastName: "Dupont", Options: domain.VerificationOptions{Sanctions: true}},
		{FirstName: "Marie", LastName: "Diop", Options: domain.VerificationOptions{Sanctions: true}},
	}

	results, summary := orch.VerifyBatch(context.Background(), requests, 4)

	require.Len(t, results, 2)
	assert.Equal(t, 2, summary.Clear)
	assert.Equal(t, 0, summary.Blocked)
}
