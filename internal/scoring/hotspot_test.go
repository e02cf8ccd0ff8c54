package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compliance-intel-backend/internal/core/domain"
)

// TestDetectHotspots_ClusterAndSingleton mirrors spec.md §8 scenario 3:
// three mutually-close points form a cluster of size minPts (3), and a
// fourth isolated point is rejected as a singleton.
func TestDetectHotspots_ClusterAndSingleton(t *testing.T) {
	detector := NewHotspotDetector(DefaultConfig())

	price := 80.0
	listings := []*domain.ScrapedListing{
		{ID: "a", City: "Dakar", Latitude: 14.70, Longitude: -17.45, PricePerNight: &price},
		{ID: "b", City: "Dakar", Latitude: 14.701, Longitude: -17.451, PricePerNight: &price},
		{ID: "c", City: "Dakar", Latitude: 14.702, Longitude: -17.449, PricePerNight: &price},
		{ID: "d", City: "Dakar", Latitude: 14.9, Longitude: -17.9, PricePerNight: &price},
	}

	hotspots := detector.DetectHotspots(listings)

	require.Len(t, hotspots, 1)
	assert.Equal(t, 3, hotspots[0].UnregisteredCount)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, hotspots[0].MemberListingIDs)
}

func TestDetectHotspots_EmptyInput(t *testing.T) {
	detector := NewHotspotDetector(DefaultConfig())
	hotspots := detector.DetectHotspots(nil)
	assert.Empty(t, hotspots)
}

func TestDetectHotspots_SortedByCountDescending(t *testing.T) {
	detector := NewHotspotDetector(DefaultConfig())
	price := 50.0

	var listings []*domain.ScrapedListing
	// Cluster 1: 3 members around (14.70, -17.45)
	for i := 0; i < 3; i++ {
		listings = append(listings, &domain.ScrapedListing{
			ID: "c1-" + string(rune('a'+i)), City: "Dakar",
			Latitude: 14.70 + float64(i)*0.001, Longitude: -17.45, PricePerNight: &price,
		})
	}
	// Cluster 2: 5 members around (15.0, -16.0)
	for i := 0; i < 5; i++ {
		listings = append(listings, &domain.ScrapedListing{
			ID: "c2-" + string(rune('a'+i)), City: "Saly",
			Latitude: 15.0 + float64(i)*0.001, Longitude: -16.0, PricePerNight: &price,
		})
	}

	hotspots := detector.DetectHotspots(listings)
	require.Len(t, hotspots, 2)
	assert.Equal(t, 5, hotspots[0].UnregisteredCount)
	assert.Equal(t, 3, hotspots[1].UnregisteredCount)
}
