package scoring

import (
	"math"
	"sort"

	"compliance-intel-backend/internal/core/domain"
)

// HotspotDetector finds density-based clusters of unregistered
// scraped listings. The expansion is iterative (a queue, not
// recursion) to avoid the stack-overflow risk REDESIGN FLAGS calls
// out in the source's recursive DBSCAN.
type HotspotDetector struct {
	cfg Config
}

func NewHotspotDetector(cfg Config) *HotspotDetector {
	return &HotspotDetector{cfg: cfg}
}

// DetectHotspots runs fixed-radius density clustering (epsilon in
// degrees, minPts from cfg) over every unregistered, geolocated
// listing passed in. Clusters smaller than minPts are discarded.
// minPts is enforced only at cluster-acceptance time, not during
// recursive/iterative absorption — matching the source's behaviour
// per spec.md §4.1.4.
func (d *HotspotDetector) DetectHotspots(listings []*domain.ScrapedListing) []domain.Hotspot {
	n := len(listings)
	visited := make([]bool, n)
	var hotspots []domain.Hotspot

	for i := 0; i < n; i++ {
		if visited[i] {
			continue
		}
		visited[i] = true

		members := []int{i}
		queue := []int{i}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for j := 0; j < n; j++ {
				if visited[j] {
					continue
				}
				if withinEpsilon(listings[cur], listings[j], d.cfg.HotspotEpsilon) {
					visited[j] = true
					members = append(members, j)
					queue = append(queue, j)
				}
			}
		}

		if len(members) < d.cfg.HotspotMinPts {
			continue
		}

		hotspots = append(hotspots, buildHotspot(listings, members))
	}

	sort.Slice(hotspots, func(i, j int) bool {
		return hotspots[i].UnregisteredCount > hotspots[j].UnregisteredCount
	})

	return hotspots
}

func withinEpsilon(a, b *domain.ScrapedListing, epsilon float64) bool {
	dLat := a.Latitude - b.Latitude
	dLon := a.Longitude - b.Longitude
	dist := math.Sqrt(dLat*dLat + dLon*dLon)
	return dist <= epsilon
}

func buildHotspot(listings []*domain.ScrapedListing, members []int) domain.Hotspot {
	var sumLat, sumLon, revenue float64
	cityCounts := map[string]int{}
	neighCounts := map[string]int{}
	ids := make([]string, 0, len(members))

	for _, idx := range members {
		l := listings[idx]
		sumLat += l.Latitude
		sumLon += l.Longitude
		if l.PricePerNight != nil {
			revenue += *l.PricePerNight * 365
		}
		cityCounts[l.City]++
		if l.Neighborhood != "" {
			neighCounts[l.Neighborhood]++
		}
		ids = append(ids, l.ID)
	}

	n := float64(len(members))
	centroidLat := sumLat / n
	centroidLon := sumLon / n

	countScore := hotspotCountScore(len(members))
	revenueScore := hotspotRevenueScore(revenue)
	avg := (countScore + revenueScore) / 2.0

	return domain.Hotspot{
		CentroidLat:          centroidLat,
		CentroidLon:          centroidLon,
		PrimaryCity:          mode(cityCounts),
		PrimaryNeighborhood:  mode(neighCounts),
		UnregisteredCount:    len(members),
		EstimatedLostRevenue: revenue,
		RiskLevel:            hotspotRiskLevel(avg),
		MemberListingIDs:     ids,
	}
}

func hotspotCountScore(count int) float64 {
	switch {
	case count >= 20:
		return 4
	case count >= 10:
		return 3
	case count >= 5:
		return 2
	default:
		return 1
	}
}

func hotspotRevenueScore(revenue float64) float64 {
	switch {
	case revenue >= 100000:
		return 4
	case revenue >= 50000:
		return 3
	case revenue >= 20000:
		return 2
	default:
		return 1
	}
}

func hotspotRiskLevel(avg float64) domain.RiskLevel {
	switch {
	case avg >= 3.5:
		return domain.RiskCritical
	case avg >= 2.5:
		return domain.RiskHigh
	case avg >= 1.5:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

func mode(counts map[string]int) string {
	best := ""
	bestCount := -1
	for k, c := range counts {
		if c > bestCount {
			best = k
			bestCount = c
		}
	}
	return best
}
