package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"compliance-intel-backend/internal/core/domain"
)

func (s *store) GetListing(ctx context.Context, id string) (*domain.ScrapedListing, error) {
	query := `
		SELECT ` + listingColumns + `
		FROM scraped_listings
		WHERE id = $1`

	listing, err := scanListing(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("listing not found: %s", id)
	}
	return listing, err
}

func (s *store) ListListings(ctx context.Context, city string, limit, offset int) ([]*domain.ScrapedListing, error) {
	query := `
		SELECT ` + listingColumns + `
		FROM scraped_listings
		WHERE ($1 = '' OR city = $1)
		ORDER BY first_scraped_at ASC
		LIMIT $2 OFFSET $3`

	rows, err := s.db.QueryContext(ctx, query, city, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanListings(rows)
}

func (s *store) ListUnregisteredGeolocatedListings(ctx context.Context) ([]*domain.ScrapedListing, error) {
	query := `
		SELECT ` + listingColumns + `
		FROM scraped_listings
		WHERE matched_registration = false
		  AND latitude IS NOT NULL AND longitude IS NOT NULL`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanListings(rows)
}

func (s *store) CountListingsByHost(ctx context.Context, hostID string) (total int, unregistered int, err error) {
	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE matched_registration = false)
		FROM scraped_listings
		WHERE host_id = $1`

	err = s.db.QueryRowContext(ctx, query, hostID).Scan(&total, &unregistered)
	return total, unregistered, err
}

func (s *store) CountUnmatchedListingsSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM scraped_listings
		WHERE matched_registration = false AND first_scraped_at >= $1`, since).Scan(&count)
	return count, err
}

const listingColumns = `
	id, platform, source_url, city, neighborhood, latitude, longitude,
	price_per_night, review_count, rating, host_id, host_name,
	first_scraped_at, last_scraped_at, matched_registration, matched_landlord_id`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanListing(row rowScanner) (*domain.ScrapedListing, error) {
	l := &domain.ScrapedListing{}
	var price sql.NullFloat64
	var reviewCount sql.NullInt64
	var rating sql.NullFloat64

	err := row.Scan(
		&l.ID, &l.Platform, &l.SourceURL, &l.City, &l.Neighborhood, &l.Latitude, &l.Longitude,
		&price, &reviewCount, &rating, &l.HostID, &l.HostName,
		&l.FirstScrapedAt, &l.LastScrapedAt, &l.MatchedRegistration, &l.MatchedLandlordID,
	)
	if err != nil {
		return nil, err
	}
	if price.Valid {
		l.PricePerNight = &price.Float64
	}
	if reviewCount.Valid {
		count := int(reviewCount.Int64)
		l.ReviewCount = &count
	}
	if rating.Valid {
		l.Rating = &rating.Float64
	}
	return l, nil
}

func scanListings(rows *sql.Rows) ([]*domain.ScrapedListing, error) {
	var listings []*domain.ScrapedListing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}
