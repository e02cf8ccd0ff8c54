package enrichment

import (
	"fmt"

	"compliance-intel-backend/internal/core/domain"
)

// mergeResults folds a set of raw provider results into the
// normalised enrich response fields, per spec.md §4.2's precedence and
// dedup rules. inputName is the caller-supplied name, included first.
func mergeResults(inputName string, results []domain.ProviderResult) (names []string, emails, phones, photos, locations, social []domain.NamedValue, riskFactors []string) {
	seenNames := map[string]bool{}
	addName := func(n string) {
		if n == "" || seenNames[n] {
			return
		}
		seenNames[n] = true
		names = append(names, n)
	}

	addName(inputName)

	byName := map[string]domain.ProviderResult{}
	for _, r := range results {
		byName[r.Source] = r
	}

	if tc, ok := byName["phone.truecaller"]; ok && tc.Success {
		if n, ok := tc.Data["name"].(string); ok {
			addName(n)
		}
		if e, ok := tc.Data["email"].(string); ok {
			emails = appendNamed(emails, e, "phone.truecaller")
		}
		if p, ok := tc.Data["photo"].(string); ok {
			photos = appendNamed(photos, p, "phone.truecaller")
		}
		if spamScore, ok := tc.Data["spam_score"].(float64); ok && spamScore > 5 {
			riskFactors = append(riskFactors, fmt.Sprintf("phone spam score %.0f exceeds threshold", spamScore))
		}
		if addrs, ok := tc.Data["addresses"].([]string); ok {
			for _, a := range addrs {
				locations = appendNamed(locations, a, "phone.truecaller")
			}
		}
	}

	if fc, ok := byName["email.fullcontact"]; ok && fc.Success {
		if n, ok := fc.Data["full_name"].(string); ok {
			addName(n)
		}
		if phoneList, ok := fc.Data["phones"].([]string); ok {
			for _, p := range phoneList {
				phones = appendNamed(phones, p, "email.fullcontact")
			}
		}
		if photoList, ok := fc.Data["photos"].([]string); ok {
			for _, p := range photoList {
				photos = appendNamed(photos, p, "email.fullcontact")
			}
		}
		if locList, ok := fc.Data["locations"].([]string); ok {
			for _, l := range locList {
				locations = appendNamed(locations, l, "email.fullcontact")
			}
		}
		if profiles, ok := fc.Data["social_profiles"].([]string); ok {
			for _, s := range profiles {
				social = appendNamed(social, s, "email.fullcontact")
			}
		}
	}

	if er, ok := byName["email.emailrep"]; ok && er.Success {
		riskFactors = append(riskFactors, emailReputationFactors(er.Data)...)
	}

	if hibp, ok := byName["email.hibp"]; ok && hibp.Success {
		if breached, ok := hibp.Data["breached"].(bool); ok && breached {
			count, _ := hibp.Data["breach_count"].(int)
			if count >= 6 {
				riskFactors = append(riskFactors, fmt.Sprintf("email appeared in %d data breaches", count))
			}
		}
	}

	for _, r := range results {
		if !r.Success {
			continue
		}
		if matches, ok := r.Data["matches"].([]domain.SanctionsMatch); ok && len(matches) > 0 {
			riskFactors = append(riskFactors, fmt.Sprintf("sanctions match via %s", r.Source))
		}
		if items, ok := r.Data["items"].([]domain.WatchlistMatch); ok && len(items) > 0 {
			riskFactors = append(riskFactors, fmt.Sprintf("watchlist match via %s", r.Source))
		}
	}

	return names, emails, phones, photos, locations, social, riskFactors
}

func emailReputationFactors(data map[string]interface{}) []string {
	var out []string
	if v, _ := data["malicious"].(bool); v {
		out = append(out, "email flagged malicious")
	}
	if v, _ := data["suspicious"].(bool); v {
		out = append(out, "email flagged suspicious")
	}
	if v, _ := data["spam"].(bool); v {
		out = append(out, "email flagged as spam source")
	}
	if v, _ := data["disposable"].(bool); v {
		out = append(out, "email is a disposable address")
	}
	return out
}

func appendNamed(list []domain.NamedValue, value, source string) []domain.NamedValue {
	if value == "" {
		return list
	}
	for _, v := range list {
		if v.Value == value {
			return list
		}
	}
	return append(list, domain.NamedValue{Value: value, Source: source})
}

// countSanctionsAndWatchlist counts the accepted sanctions/watchlist
// matches across all successful results (every match counts, not one
// per result entry), for the enrichment risk-scoring bumps.
func countSanctionsAndWatchlist(results []domain.ProviderResult) (sanctionsHits, watchlistHits int) {
	for _, r := range results {
		if !r.Success {
			continue
		}
		switch {
		case len(r.Source) >= 10 && r.Source[:10] == "sanctions.":
			if matches, ok := r.Data["matches"].([]domain.SanctionsMatch); ok {
				sanctionsHits += len(matches)
			}
		case len(r.Source) >= 10 && r.Source[:10] == "watchlist.":
			if items, ok := r.Data["items"].([]domain.WatchlistMatch); ok {
				watchlistHits += len(items)
			}
		}
	}
	return sanctionsHits, watchlistHits
}
