package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"compliance-intel-backend/internal/core/domain"
)

// WatchlistQuery is the structured input every watchlist.* adapter
// takes.
type WatchlistQuery struct {
	Name        string
	Nationality string
	Age         int // 0 means unknown; interpol_red allows ±5 years
}

// WatchlistAdapters builds the three watchlist.* adapters.
func WatchlistAdapters(creds Credentials, timeout time.Duration) map[string]func(ctx context.Context, q WatchlistQuery) domain.ProviderResult {
	client := newHTTPClient(timeout)

	return map[string]func(ctx context.Context, q WatchlistQuery) domain.ProviderResult{
		"watchlist.interpol_red": interpolRedLookup(client, creds.InterpolBaseURL),
		"watchlist.fbi":          fbiMostWantedLookup(client, creds.FBIKey),
		"watchlist.europol":      europolLookup(client, creds.OpenSanctionsKey),
	}
}

type interpolNotice struct {
	EntityID     string   `json:"entity_id"`
	Name         string   `json:"name"`
	Charges      []string `json:"charges"`
	Nationalities []string `json:"nationalities"`
	Photo        string   `json:"photo"`
	Age          int      `json:"age"`
}

func interpolRedLookup(client *http.Client, baseURL string) func(ctx context.Context, q WatchlistQuery) domain.ProviderResult {
	return func(ctx context.Context, q WatchlistQuery) domain.ProviderResult {
		const source = "watchlist.interpol_red"
		if baseURL == "" {
			return notConfigured(source)
		}
		start := time.Now()

		var raw struct {
			Notices []interpolNotice `json:"notices"`
		}

		params := url.Values{}
		params.Set("name", q.Name)
		if q.Nationality != "" {
			params.Set("nationality", q.Nationality)
		}
		if q.Age > 0 {
			params.Set("ageMin", strconv.Itoa(q.Age-5))
			params.Set("ageMax", strconv.Itoa(q.Age+5))
		}

		endpoint := strings.TrimRight(baseURL, "/") + "/notices/v1/red?" + params.Encode()
		if err := getJSON(ctx, client, endpoint, nil, &raw); err != nil {
			return failure(source, start, err)
		}

		matches := make([]domain.WatchlistMatch, 0, len(raw.Notices))
		for _, n := range raw.Notices {
			nationality := ""
			if len(n.Nationalities) > 0 {
				nationality = n.Nationalities[0]
			}
			matches = append(matches, domain.WatchlistMatch{
				Source:      source,
				EntityID:    n.EntityID,
				Name:        n.Name,
				Nationality: nationality,
			})
		}

		return success(source, start, map[string]interface{}{"items": matches})
	}
}

func fbiMostWantedLookup(client *http.Client, apiKey string) func(ctx context.Context, q WatchlistQuery) domain.ProviderResult {
	return func(ctx context.Context, q WatchlistQuery) domain.ProviderResult {
		const source = "watchlist.fbi"
		start := time.Now()

		var raw struct {
			Items []struct {
				UID   string `json:"uid"`
				Title string `json:"title"`
			} `json:"items"`
		}

		headers := map[string]string{}
		if apiKey != "" {
			headers["Authorization"] = "Bearer " + apiKey
		}

		endpoint := "https://api.fbi.gov/wanted/v1/list?title=" + url.QueryEscape(q.Name)
		if err := getJSON(ctx, client, endpoint, headers, &raw); err != nil {
			return failure(source, start, err)
		}

		parts := nameParts(q.Name)
		var matches []domain.WatchlistMatch
		for _, item := range raw.Items {
			titleLower := strings.ToLower(item.Title)
			for _, p := range parts {
				if len(p) > 2 && strings.Contains(titleLower, strings.ToLower(p)) {
					matches = append(matches, domain.WatchlistMatch{
						Source:   source,
						EntityID: item.UID,
						Name:     item.Title,
					})
					break
				}
			}
		}

		return success(source, start, map[string]interface{}{"items": matches})
	}
}

func europolLookup(client *http.Client, apiKey string) func(ctx context.Context, q WatchlistQuery) domain.ProviderResult {
	return func(ctx context.Context, q WatchlistQuery) domain.ProviderResult {
		const source = "watchlist.europol"
		if apiKey == "" {
			return notConfigured(source)
		}
		start := time.Now()

		var raw struct {
			Results []openSanctionsMatch `json:"results"`
		}

		params := url.Values{}
		params.Set("q", q.Name)
		params.Set("dataset", "eu_most_wanted")

		endpoint := "https://api.opensanctions.org/match/default?" + params.Encode()
		headers := map[string]string{"Authorization": "ApiKey " + apiKey}
		if err := getJSON(ctx, client, endpoint, headers, &raw); err != nil {
			return failure(source, start, err)
		}

		var matches []domain.WatchlistMatch
		for _, m := range raw.Results {
			if m.Score < 0.6 {
				continue
			}
			matches = append(matches, domain.WatchlistMatch{
				Source:      source,
				EntityID:    fmt.Sprintf("%s:%s", m.Dataset, m.Name),
				Name:        m.Name,
				Nationality: q.Nationality,
			})
		}

		return success(source, start, map[string]interface{}{"items": matches})
	}
}

func nameParts(name string) []string {
	return strings.Fields(name)
}

// InterpolEntityDetail fetches a single INTERPOL red notice by entity
// ID, for the GET /api/intelligence/interpol/:entityId proxy endpoint.
func InterpolEntityDetail(ctx context.Context, client *http.Client, baseURL, entityID string) domain.ProviderResult {
	const source = "watchlist.interpol_red"
	if baseURL == "" {
		return notConfigured(source)
	}
	start := time.Now()

	var notice interpolNotice
	endpoint := strings.TrimRight(baseURL, "/") + "/notices/v1/red/" + url.PathEscape(entityID)
	if err := getJSON(ctx, client, endpoint, nil, &notice); err != nil {
		return failure(source, start, err)
	}

	return success(source, start, map[string]interface{}{
		"entity_id":     notice.EntityID,
		"name":          notice.Name,
		"charges":       notice.Charges,
		"nationalities": notice.Nationalities,
		"photo":         notice.Photo,
		"age":           notice.Age,
	})
}
