package scoring

import (
	"math"
	"time"

	"compliance-intel-backend/internal/core/domain"
)

// ListingScorer computes a deterministic LandlordRiskScore-shaped
// result for a single scraped listing, plus an inverted investigation
// priority (spec.md §4.1.2).
type ListingScorer struct {
	cfg Config
}

func NewListingScorer(cfg Config) *ListingScorer {
	return &ListingScorer{cfg: cfg}
}

// HostProfile summarises what is known about the listings sharing a
// host_id, as queried by the caller via port.Store.CountListingsByHost.
type HostProfile struct {
	HasHostID           bool
	ListingsByHost      int
	UnregisteredOfThose int
}

// ScoreListing computes the six weighted factors, overall score,
// investigation priority, and risk level for one listing.
func (s *ListingScorer) ScoreListing(
	listing *domain.ScrapedListing,
	areaRiskLevel domain.RiskLevel,
	host HostProfile,
	now time.Time,
) *domain.RiskScore {
	w := s.cfg.ListingWeights

	estAnnual := estimatedAnnualRevenue(listing)

	factors := []domain.RiskFactor{
		{
			Name:        "match_status",
			Weight:      w.MatchStatus,
			Score:       matchStatusScore(listing.MatchedRegistration),
			Description: "Whether the listing is matched to a registered property",
		},
		{
			Name:        "activity_level",
			Weight:      w.ActivityLevel,
			Score:       activityLevelScore(listing, now),
			Description: "Review volume relative to time active",
		},
		{
			Name:        "revenue_estimate",
			Weight:      w.RevenueEstimate,
			Score:       revenueEstimateScore(estAnnual),
			Description: "Estimated annual revenue from the listing",
		},
		{
			Name:        "listing_age",
			Weight:      w.ListingAge,
			Score:       listingAgeScore(listing.DaysActive(now)),
			Description: "Time the listing has been observed active",
		},
		{
			Name:        "host_profile",
			Weight:      w.HostProfile,
			Score:       hostProfileScore(host),
			Description: "Registration compliance of other listings by the same host",
		},
		{
			Name:        "location_risk",
			Weight:      w.LocationRisk,
			Score:       locationRiskScore(areaRiskLevel),
			Description: "Risk level of the listing's city",
		},
	}

	overall := weightedSum(factors)
	risk := clamp(100-overall, 0, 100)
	priority := clamp(math.Round(0.7*risk+math.Min(30, estAnnual/100000*30)), 0, 100)
	level := riskLevelFromRiskScore(risk)

	return &domain.RiskScore{
		TargetID:              listing.ID,
		OverallScore:           overall,
		RiskLevel:              domain.RiskLevel(level),
		Factors:                factors,
		UpdatedAt:              now,
		Recommendations:        listingRecommendations(listing, level),
		InvestigationPriority:  priority,
		EstimatedRevenue:       estAnnual,
	}
}

func matchStatusScore(matched bool) float64 {
	if matched {
		return 100
	}
	return 0
}

func activityLevelScore(listing *domain.ScrapedListing, now time.Time) float64 {
	if listing.ReviewCount == nil {
		return 90
	}
	days := listing.DaysActive(now)
	reviewsPerMonth := float64(*listing.ReviewCount) / math.Max(1, float64(days)/30)

	switch {
	case reviewsPerMonth >= 10:
		return 10
	case reviewsPerMonth >= 5:
		return 30
	case reviewsPerMonth >= 2:
		return 50
	case reviewsPerMonth >= 0.5:
		return 70
	default:
		return 90
	}
}

// estimatedAnnualRevenue: est_annual = price_per_night * min(25,
// reviews*2.5) * 12.
func estimatedAnnualRevenue(listing *domain.ScrapedListing) float64 {
	if listing.PricePerNight == nil {
		return 0
	}
	reviews := 0.0
	if listing.ReviewCount != nil {
		reviews = float64(*listing.ReviewCount)
	}
	nightsFactor := math.Min(25, reviews*2.5)
	return *listing.PricePerNight * nightsFactor * 12
}

func revenueEstimateScore(estAnnual float64) float64 {
	switch {
	case estAnnual >= 100000:
		return 5
	case estAnnual >= 50000:
		return 20
	case estAnnual >= 25000:
		return 40
	case estAnnual >= 10000:
		return 65
	default:
		return 85
	}
}

func listingAgeScore(daysActive int) float64 {
	switch {
	case daysActive >= 365:
		return 20
	case daysActive >= 180:
		return 35
	case daysActive >= 90:
		return 50
	case daysActive >= 30:
		return 70
	default:
		return 85
	}
}

func hostProfileScore(host HostProfile) float64 {
	if !host.HasHostID {
		return 30
	}
	switch {
	case host.ListingsByHost >= 5 && host.UnregisteredOfThose >= 3:
		return 10
	case host.ListingsByHost >= 3:
		return 30
	case host.ListingsByHost > 1:
		return 50
	case host.ListingsByHost == 1:
		return 70
	default:
		return 30
	}
}

func locationRiskScore(areaRiskLevel domain.RiskLevel) float64 {
	switch areaRiskLevel {
	case domain.RiskCritical:
		return 15
	case domain.RiskHigh:
		return 30
	case domain.RiskMedium:
		return 50
	default:
		return 70
	}
}

func listingRecommendations(listing *domain.ScrapedListing, level string) []string {
	var recs []string
	if !listing.MatchedRegistration {
		recs = append(recs, "Verify registration status against the property register")
	}
	if level == "critical" || level == "high" {
		recs = append(recs, "Prioritise this listing for field investigation")
	}
	return recs
}
