package domain

import "time"

// ScrapedListing is a third-party short-term-rental listing observed
// on an aggregator site. It is a read-only collaborator entity.
//
// Invariant: MatchedLandlordID != "" implies MatchedRegistration == true.
type ScrapedListing struct {
	ID                  string
	Platform            string
	SourceURL            string
	City                 string
	Neighborhood         string
	Latitude             float64
	Longitude            float64
	PricePerNight        *float64
	ReviewCount          *int
	Rating               *float64
	HostID               string
	HostName             string
	FirstScrapedAt       time.Time
	LastScrapedAt        time.Time
	MatchedRegistration  bool
	MatchedLandlordID    string
}

// DaysActive returns how many days the listing has been observed.
func (l *ScrapedListing) DaysActive(now time.Time) int {
	days := int(now.Sub(l.FirstScrapedAt).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
