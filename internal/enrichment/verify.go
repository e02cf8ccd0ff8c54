package enrichment

import (
	"context"
	"fmt"

	"compliance-intel-backend/internal/core/domain"
)

// verificationRecommendations builds the non-empty recommendation list
// every VerificationResponse must carry, per spec.md §4.2.
func verificationRecommendations(status domain.VerificationStatus, isPEP bool, sanctionsCount, watchlistCount int) []string {
	var recs []string

	switch status {
	case domain.VerificationBlocked:
		recs = append(recs, "Do not proceed; escalate to compliance officer for manual review")
	case domain.VerificationFlagged:
		recs = append(recs, "Hold pending manual compliance review before approval")
	case domain.VerificationReview:
		recs = append(recs, "Route to secondary review before approval")
	default:
		recs = append(recs, "No adverse findings; proceed with standard onboarding")
	}

	if sanctionsCount > 0 {
		recs = append(recs, fmt.Sprintf("%d sanctions match(es) require source verification", sanctionsCount))
	}
	if watchlistCount > 0 {
		recs = append(recs, fmt.Sprintf("%d watchlist match(es) require source verification", watchlistCount))
	}
	if isPEP {
		recs = append(recs, "Apply enhanced due diligence for politically exposed persons")
	}

	return recs
}

// BatchResult is one entry of a batch-verify response.
type BatchResult struct {
	Input    domain.VerificationRequest
	Response domain.VerificationResponse
	Err      error
}

// BatchSummary buckets a batch-verify run's outcomes into the four
// verification statuses.
type BatchSummary struct {
	Clear   int
	Review  int
	Flagged int
	Blocked int
}

// VerifyBatch runs a bounded-concurrency fan-out of independent verify
// calls, one per person, and returns per-person results plus the
// 4-bucket summary spec.md §6's batch-verify endpoint requires.
// maxConcurrency bounds in-flight verify calls, mirroring the
// bulk-risk-update backpressure policy of spec.md §5.
func (o *Orchestrator) VerifyBatch(ctx context.Context, requests []domain.VerificationRequest, maxConcurrency int) ([]BatchResult, BatchSummary) {
	results := make([]BatchResult, len(requests))
	sem := make(chan struct{}, maxConcurrency)
	done := make(chan int, len(requests))

	for i, req := range requests {
		i, req := i, req
		sem <- struct{}{}
		go func() {
			defer func() { <-sem; done <- i }()
			results[i] = BatchResult{Input: req, Response: o.Verify(ctx, req)}
		}()
	}
	for range requests {
		<-done
	}

	var summary BatchSummary
	for _, r := range results {
		switch r.Response.Status {
		case domain.VerificationClear:
			summary.Clear++
		case domain.VerificationReview:
			summary.Review++
		case domain.VerificationFlagged:
			summary.Flagged++
		case domain.VerificationBlocked:
			summary.Blocked++
		}
	}

	return results, summary
}
