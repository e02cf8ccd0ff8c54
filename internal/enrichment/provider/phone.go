package provider

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"compliance-intel-backend/internal/core/domain"
	"compliance-intel-backend/internal/core/port"
)

// senegalesePrefixes are the mobile-operator number ranges phone.local
// pattern-matches against, per spec.md's "Senegalese-operator pattern
// match" contract.
var senegalesePrefixes = regexp.MustCompile(`^\+221(70|75|76|77|78)\d{7}$`)

var e164 = regexp.MustCompile(`^\+[1-9]\d{7,14}$`)

// PhoneAdapters builds the three phone.* adapters. truecaller and
// numverify call out; local is pure and always available.
func PhoneAdapters(creds Credentials, timeout time.Duration) []port.Adapter {
	client := newHTTPClient(timeout)

	return []port.Adapter{
		{Name: "phone.truecaller", Lookup: truecallerLookup(client, creds.TruecallerKey)},
		{Name: "phone.numverify", Lookup: numverifyLookup(client, creds.NumverifyKey)},
		{Name: "phone.local", Lookup: phoneLocalLookup},
	}
}

func truecallerLookup(client *http.Client, apiKey string) port.LookupFunc {
	return func(ctx context.Context, phone string) domain.ProviderResult {
		const source = "phone.truecaller"
		if apiKey == "" {
			return notConfigured(source)
		}
		start := time.Now()

		var raw struct {
			Name            string   `json:"name"`
			Email           string   `json:"email"`
			Photo           string   `json:"photo"`
			Carrier         string   `json:"carrier"`
			LineType        string   `json:"line_type"`
			SpamScore       float64  `json:"spam_score"`
			Addresses       []string `json:"addresses"`
			AlternatePhones []string `json:"alternate_phones"`
		}

		url := fmt.Sprintf("https://api.truecaller.com/v1/lookup?number=%s", phone)
		headers := map[string]string{"Authorization": "Bearer " + apiKey}
		if err := getJSON(ctx, client, url, headers, &raw); err != nil {
			return failure(source, start, err)
		}

		return success(source, start, map[string]interface{}{
			"name":             raw.Name,
			"email":            raw.Email,
			"photo":            raw.Photo,
			"carrier":          raw.Carrier,
			"line_type":        raw.LineType,
			"spam_score":       raw.SpamScore,
			"addresses":        raw.Addresses,
			"alternate_phones": raw.AlternatePhones,
		})
	}
}

func numverifyLookup(client *http.Client, apiKey string) port.LookupFunc {
	return func(ctx context.Context, phone string) domain.ProviderResult {
		const source = "phone.numverify"
		if apiKey == "" {
			return notConfigured(source)
		}
		start := time.Now()

		var raw struct {
			Carrier     string `json:"carrier"`
			CountryCode string `json:"country_code"`
			LineType    string `json:"line_type"`
			Location    string `json:"location"`
		}

		url := fmt.Sprintf("http://apilayer.net/api/validate?access_key=%s&number=%s", apiKey, phone)
		if err := getJSON(ctx, client, url, nil, &raw); err != nil {
			return failure(source, start, err)
		}

		return success(source, start, map[string]interface{}{
			"carrier":      raw.Carrier,
			"country_code": raw.CountryCode,
			"line_type":    raw.LineType,
			"location":     raw.Location,
		})
	}
}

// phoneLocalLookup is pure, no I/O: it only validates E.164 shape and
// checks it against known Senegalese mobile-operator prefixes.
func phoneLocalLookup(_ context.Context, phone string) domain.ProviderResult {
	const source = "phone.local"
	start := time.Now()

	return success(source, start, map[string]interface{}{
		"valid_e164":      e164.MatchString(phone),
		"senegalese_operator": senegalesePrefixes.MatchString(phone),
	})
}
