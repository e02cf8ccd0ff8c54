package provider

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"compliance-intel-backend/internal/core/domain"
)

// SanctionsQuery is the structured input every sanctions.* adapter
// takes: a name plus the optional dob/nationality opensanctions uses
// to disambiguate matches.
type SanctionsQuery struct {
	Name        string
	DateOfBirth string
	Nationality string
}

// SanctionsAdapters builds the opensanctions-backed adapter family:
// the general opensanctions query plus the three dataset-filtered
// variants (ofac/un/eu) and the PEP-topic variant.
func SanctionsAdapters(creds Credentials, timeout time.Duration) map[string]func(ctx context.Context, q SanctionsQuery) domain.ProviderResult {
	client := newHTTPClient(timeout)

	return map[string]func(ctx context.Context, q SanctionsQuery) domain.ProviderResult{
		"sanctions.opensanctions": openSanctionsQuery(client, creds.OpenSanctionsKey, "sanctions.opensanctions", "", 0.5, 3),
		"sanctions.ofac":          openSanctionsQuery(client, creds.OpenSanctionsKey, "sanctions.ofac", "us_ofac_sdn", 0.6, 0),
		"sanctions.un":            openSanctionsQuery(client, creds.OpenSanctionsKey, "sanctions.un", "un_sc_sanctions", 0.6, 0),
		"sanctions.eu":            openSanctionsQuery(client, creds.OpenSanctionsKey, "sanctions.eu", "eu_sanctions", 0.6, 0),
		"sanctions.pep":           pepQuery(client, creds.OpenSanctionsKey),
	}
}

type openSanctionsMatch struct {
	Dataset string   `json:"dataset"`
	Name    string   `json:"name"`
	Score   float64  `json:"score"`
	Topics  []string `json:"topics"`
}

// openSanctionsQuery builds one adapter that hits the opensanctions
// match endpoint, optionally scoped to one dataset, and keeps only
// matches clearing minScore — or clearing minScore OR appearing in at
// least minDatasets distinct datasets, for the unscoped general query.
func openSanctionsQuery(client *http.Client, apiKey, source, dataset string, minScore float64, minDatasets int) func(ctx context.Context, q SanctionsQuery) domain.ProviderResult {
	return func(ctx context.Context, q SanctionsQuery) domain.ProviderResult {
		if apiKey == "" {
			return notConfigured(source)
		}
		start := time.Now()

		var raw struct {
			Results []openSanctionsMatch `json:"results"`
		}

		params := url.Values{}
		params.Set("q", q.Name)
		if q.DateOfBirth != "" {
			params.Set("birth_date", q.DateOfBirth)
		}
		if q.Nationality != "" {
			params.Set("nationality", q.Nationality)
		}
		if dataset != "" {
			params.Set("dataset", dataset)
		}

		endpoint := "https://api.opensanctions.org/match/default?" + params.Encode()
		headers := map[string]string{"Authorization": "ApiKey " + apiKey}
		if err := getJSON(ctx, client, endpoint, headers, &raw); err != nil {
			return failure(source, start, err)
		}

		datasetsByName := map[string]map[string]bool{}
		for _, m := range raw.Results {
			if datasetsByName[m.Name] == nil {
				datasetsByName[m.Name] = map[string]bool{}
			}
			datasetsByName[m.Name][m.Dataset] = true
		}

		var kept []domain.SanctionsMatch
		for _, m := range raw.Results {
			qualifies := m.Score >= minScore
			if minDatasets > 0 && len(datasetsByName[m.Name]) >= minDatasets {
				qualifies = true
			}
			if !qualifies {
				continue
			}
			kept = append(kept, domain.SanctionsMatch{
				Dataset: m.Dataset,
				Name:    m.Name,
				Score:   m.Score,
				Topics:  m.Topics,
			})
		}

		return success(source, start, map[string]interface{}{"matches": kept})
	}
}

func pepQuery(client *http.Client, apiKey string) func(ctx context.Context, q SanctionsQuery) domain.ProviderResult {
	return func(ctx context.Context, q SanctionsQuery) domain.ProviderResult {
		const source = "sanctions.pep"
		if apiKey == "" {
			return notConfigured(source)
		}
		start := time.Now()

		var raw struct {
			Results []openSanctionsMatch `json:"results"`
		}

		params := url.Values{}
		params.Set("q", q.Name)
		params.Set("topic", "role.pep")
		if q.Nationality != "" {
			params.Set("nationality", q.Nationality)
		}

		endpoint := "https://api.opensanctions.org/match/default?" + params.Encode()
		headers := map[string]string{"Authorization": "ApiKey " + apiKey}
		if err := getJSON(ctx, client, endpoint, headers, &raw); err != nil {
			return failure(source, start, err)
		}

		var kept []domain.SanctionsMatch
		for _, m := range raw.Results {
			if m.Score < 0.7 {
				continue
			}
			kept = append(kept, domain.SanctionsMatch{
				Dataset: m.Dataset,
				Name:    m.Name,
				Score:   m.Score,
				Topics:  m.Topics,
			})
		}

		return success(source, start, map[string]interface{}{
			"matches": kept,
			"is_pep":  len(kept) > 0,
		})
	}
}
