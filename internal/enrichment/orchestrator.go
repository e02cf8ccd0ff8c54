package enrichment

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"compliance-intel-backend/config"
	"compliance-intel-backend/internal/core/domain"
	"compliance-intel-backend/internal/core/port"
	"compliance-intel-backend/internal/enrichment/provider"
)

// Orchestrator coordinates the OSINT adapter fan-out for enrich and
// verify requests. It holds no shared mutable state: every call
// launches its own bounded set of goroutines and merges their results
// before returning.
type Orchestrator struct {
	phoneAdapters     []port.Adapter
	emailAdapters     []port.Adapter
	sanctionsAdapters map[string]func(ctx context.Context, q provider.SanctionsQuery) domain.ProviderResult
	watchlistAdapters map[string]func(ctx context.Context, q provider.WatchlistQuery) domain.ProviderResult
	httpClient        *http.Client
	interpolBaseURL   string
	timeout           time.Duration
}

func NewOrchestrator(cfg *config.Config) *Orchestrator {
	creds := provider.Credentials{
		TruecallerKey:    cfg.Providers.TruecallerInstallationID,
		NumverifyKey:     cfg.Providers.NumverifyAPIKey,
		FullContactKey:   cfg.Providers.FullContactAPIKey,
		EmailRepKey:      cfg.Providers.EmailRepAPIKey,
		HIBPKey:          cfg.Providers.HIBPAPIKey,
		OpenSanctionsKey: cfg.Providers.OpenSanctionsAPIKey,
		InterpolBaseURL:  cfg.Providers.InterpolBaseURL,
		FBIKey:           cfg.Providers.FBIAPIKey,
	}

	return &Orchestrator{
		phoneAdapters:     provider.PhoneAdapters(creds, cfg.Scheduler.AdapterTimeout),
		emailAdapters:     provider.EmailAdapters(creds, cfg.Scheduler.AdapterTimeout),
		sanctionsAdapters: provider.SanctionsAdapters(creds, cfg.Scheduler.AdapterTimeout),
		watchlistAdapters: provider.WatchlistAdapters(creds, cfg.Scheduler.AdapterTimeout),
		httpClient:        &http.Client{Timeout: cfg.Scheduler.AdapterTimeout},
		interpolBaseURL:   cfg.Providers.InterpolBaseURL,
		timeout:           cfg.Scheduler.AdapterTimeout,
	}
}

// GetInterpolEntity proxies a single INTERPOL red notice lookup by
// entity ID, for GET /api/intelligence/interpol/:entityId.
func (o *Orchestrator) GetInterpolEntity(ctx context.Context, entityID string) domain.ProviderResult {
	callCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()
	return provider.InterpolEntityDetail(callCtx, o.httpClient, o.interpolBaseURL, entityID)
}

// Enrich fans the request out across every adapter family that has a
// matching input field set (when Options is non-zero, the sanctions and
// watchlist families run only if selected there), waits for all of
// them (each bounded by its own per-call deadline), and merges the
// results.
func (o *Orchestrator) Enrich(ctx context.Context, req domain.EnrichmentRequest) domain.EnrichmentResponse {
	var mu sync.Mutex
	var results []domain.ProviderResult

	g, gctx := errgroup.WithContext(ctx)

	runAdapter := func(name string, lookup port.LookupFunc, input string) {
		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(gctx, o.timeout)
			defer cancel()
			result := lookup(callCtx, input)
			mu.Lock()
			results = append(results, result)
			mu.Unlock()
			return nil
		})
	}

	if req.Phone != "" {
		for _, a := range o.phoneAdapters {
			runAdapter(a.Name, a.Lookup, req.Phone)
		}
	}
	if req.Email != "" {
		for _, a := range o.emailAdapters {
			runAdapter(a.Name, a.Lookup, req.Email)
		}
	}
	runEverything := req.Options == (domain.EnrichmentOptions{})

	if req.Name != "" && (req.Options.Sanctions || runEverything) {
		q := provider.SanctionsQuery{Name: req.Name, DateOfBirth: req.DateOfBirth, Nationality: req.Nationality}
		for name, fn := range o.sanctionsAdapters {
			adapterName, adapterFn := name, fn
			g.Go(func() error {
				callCtx, cancel := context.WithTimeout(gctx, o.timeout)
				defer cancel()
				result := adapterFn(callCtx, q)
				result.Source = adapterName
				mu.Lock()
				results = append(results, result)
				mu.Unlock()
				return nil
			})
		}
	}
	if req.Name != "" && (req.Options.Watchlist || runEverything) {
		q := provider.WatchlistQuery{Name: req.Name, Nationality: req.Nationality}
		for name, fn := range o.watchlistAdapters {
			adapterName, adapterFn := name, fn
			g.Go(func() error {
				callCtx, cancel := context.WithTimeout(gctx, o.timeout)
				defer cancel()
				result := adapterFn(callCtx, q)
				result.Source = adapterName
				mu.Lock()
				results = append(results, result)
				mu.Unlock()
				return nil
			})
		}
	}

	_ = g.Wait()

	return o.buildEnrichmentResponse(req.Name, results)
}

func (o *Orchestrator) buildEnrichmentResponse(inputName string, results []domain.ProviderResult) domain.EnrichmentResponse {
	names, emails, phones, photos, locations, social, riskFactors := mergeResults(inputName, results)
	sanctionsHits, watchlistHits := countSanctionsAndWatchlist(results)
	riskScore, riskLevel := scoreEnrichment(sanctionsHits, watchlistHits, riskFactors)

	var errs []domain.ProviderError
	for _, r := range results {
		if !r.Success {
			errs = append(errs, domain.ProviderError{Source: r.Source, Error: r.Error})
		}
	}

	return domain.EnrichmentResponse{
		Names:          names,
		Emails:         emails,
		Phones:         phones,
		Photos:         photos,
		Locations:      locations,
		SocialProfiles: social,
		RiskFactors:    riskFactors,
		RiskScore:      riskScore,
		RiskLevel:      riskLevel,
		Errors:         errs,
		RawResults:     results,
	}
}

// Verify fans a person-verification request out across only the
// watchlist/sanctions families the caller selected.
func (o *Orchestrator) Verify(ctx context.Context, req domain.VerificationRequest) domain.VerificationResponse {
	var mu sync.Mutex
	var sanctionsMatches []domain.SanctionsMatch
	var watchlistMatches []domain.WatchlistMatch
	var errs []domain.ProviderError
	hasInterpol := false

	g, gctx := errgroup.WithContext(ctx)
	name := req.FirstName + " " + req.LastName

	if req.Options.Sanctions {
		q := provider.SanctionsQuery{Name: name, DateOfBirth: req.DateOfBirth, Nationality: req.Nationality}
		fn := o.sanctionsAdapters["sanctions.opensanctions"]
		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(gctx, o.timeout)
			defer cancel()
			result := fn(callCtx, q)
			mu.Lock()
			defer mu.Unlock()
			if !result.Success {
				errs = append(errs, domain.ProviderError{Source: "sanctions.opensanctions", Error: result.Error})
				return nil
			}
			if matches, ok := result.Data["matches"].([]domain.SanctionsMatch); ok {
				sanctionsMatches = append(sanctionsMatches, matches...)
			}
			return nil
		})
	}

	watchlistJobs := map[string]bool{
		"watchlist.interpol_red": req.Options.Interpol,
		"watchlist.fbi":          req.Options.FBI,
		"watchlist.europol":      req.Options.Europol,
	}
	for name, enabled := range watchlistJobs {
		if !enabled {
			continue
		}
		adapterName := name
		fn := o.watchlistAdapters[adapterName]
		q := provider.WatchlistQuery{Name: req.FirstName + " " + req.LastName, Nationality: req.Nationality}
		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(gctx, o.timeout)
			defer cancel()
			result := fn(callCtx, q)
			mu.Lock()
			defer mu.Unlock()
			if !result.Success {
				errs = append(errs, domain.ProviderError{Source: adapterName, Error: result.Error})
				return nil
			}
			if items, ok := result.Data["items"].([]domain.WatchlistMatch); ok {
				watchlistMatches = append(watchlistMatches, items...)
				if adapterName == "watchlist.interpol_red" && len(items) > 0 {
					hasInterpol = true
				}
			}
			return nil
		})
	}

	_ = g.Wait()

	isPEP := false
	if req.Options.Sanctions {
		pepFn := o.sanctionsAdapters["sanctions.pep"]
		pepResult := pepFn(ctx, provider.SanctionsQuery{Name: name, Nationality: req.Nationality})
		if pepResult.Success {
			if v, ok := pepResult.Data["is_pep"].(bool); ok {
				isPEP = v
			}
		} else {
			errs = append(errs, domain.ProviderError{Source: "sanctions.pep", Error: pepResult.Error})
		}
	}

	riskScore, status := scoreVerification(sanctionsMatches, watchlistMatches, hasInterpol, isPEP)

	return domain.VerificationResponse{
		Status:           status,
		RiskScore:        riskScore,
		RiskLevel:        enrichmentRiskLevel(riskScore),
		SanctionsMatches: sanctionsMatches,
		WatchlistMatches: watchlistMatches,
		IsPEP:            isPEP,
		Recommendations:  verificationRecommendations(status, isPEP, len(sanctionsMatches), len(watchlistMatches)),
		Errors:           errs,
	}
}
