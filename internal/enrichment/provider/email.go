package provider

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"compliance-intel-backend/internal/core/domain"
	"compliance-intel-backend/internal/core/port"
)

// EmailAdapters builds the three email.* adapters.
func EmailAdapters(creds Credentials, timeout time.Duration) []port.Adapter {
	client := newHTTPClient(timeout)

	return []port.Adapter{
		{Name: "email.fullcontact", Lookup: fullContactLookup(client, creds.FullContactKey)},
		{Name: "email.emailrep", Lookup: emailRepLookup(client, creds.EmailRepKey)},
		{Name: "email.hibp", Lookup: hibpLookup(client, creds.HIBPKey)},
	}
}

func fullContactLookup(client *http.Client, apiKey string) port.LookupFunc {
	return func(ctx context.Context, email string) domain.ProviderResult {
		const source = "email.fullcontact"
		if apiKey == "" {
			return notConfigured(source)
		}
		start := time.Now()

		var raw struct {
			FullName       string   `json:"full_name"`
			Phones         []string `json:"phones"`
			Photos         []string `json:"photos"`
			Locations      []string `json:"locations"`
			Employment     []string `json:"employment"`
			SocialProfiles []string `json:"social_profiles"`
		}

		payload := map[string]string{"email": email}
		headers := map[string]string{"Authorization": "Bearer " + apiKey}
		if err := postJSON(ctx, client, "https://api.fullcontact.com/v3/person.enrich", headers, payload, &raw); err != nil {
			return failure(source, start, err)
		}

		return success(source, start, map[string]interface{}{
			"full_name":       raw.FullName,
			"phones":          raw.Phones,
			"photos":          raw.Photos,
			"locations":       raw.Locations,
			"employment":      raw.Employment,
			"social_profiles": raw.SocialProfiles,
		})
	}
}

func emailRepLookup(client *http.Client, apiKey string) port.LookupFunc {
	return func(ctx context.Context, email string) domain.ProviderResult {
		const source = "email.emailrep"
		if apiKey == "" {
			return notConfigured(source)
		}
		start := time.Now()

		var raw struct {
			Reputation    string   `json:"reputation"`
			Suspicious    bool     `json:"suspicious"`
			Malicious     bool     `json:"malicious_activity"`
			Spam          bool     `json:"spam"`
			Disposable    bool     `json:"disposable"`
			ProfilesFound []string `json:"profiles_found"`
		}

		url := fmt.Sprintf("https://emailrep.io/%s", email)
		headers := map[string]string{"Key": apiKey}
		if err := getJSON(ctx, client, url, headers, &raw); err != nil {
			return failure(source, start, err)
		}

		return success(source, start, map[string]interface{}{
			"reputation":     raw.Reputation,
			"suspicious":     raw.Suspicious,
			"malicious":      raw.Malicious,
			"spam":           raw.Spam,
			"disposable":     raw.Disposable,
			"profiles_found": raw.ProfilesFound,
		})
	}
}

func hibpLookup(client *http.Client, apiKey string) port.LookupFunc {
	return func(ctx context.Context, email string) domain.ProviderResult {
		const source = "email.hibp"
		if apiKey == "" {
			return notConfigured(source)
		}
		start := time.Now()

		var raw []struct {
			Name string `json:"Name"`
		}

		url := fmt.Sprintf("https://haveibeenpwned.com/api/v3/breachedaccount/%s", email)
		headers := map[string]string{"hibp-api-key": apiKey}
		if err := getJSON(ctx, client, url, headers, &raw); err != nil {
			return failure(source, start, err)
		}

		names := make([]string, 0, len(raw))
		for _, b := range raw {
			names = append(names, b.Name)
		}

		return success(source, start, map[string]interface{}{
			"breached":     len(names) > 0,
			"breach_count": len(names),
			"breaches":     names,
		})
	}
}
