package handler

import (
	"net/http"
	"strconv"
	"time"

	"compliance-intel-backend/internal/core/domain"
	"compliance-intel-backend/internal/core/port"
	"compliance-intel-backend/internal/scoring"
	"compliance-intel-backend/internal/utils"
)

// AnalyticsHandler serves the /api/analytics/* surface: compliance
// velocity, revenue and its forecast, hotspot detection, and
// seasonality.
type AnalyticsHandler struct {
	store      port.Store
	forecaster *scoring.RevenueForecaster
	hotspots   *scoring.HotspotDetector
	seasonal   *scoring.SeasonalAnalyser
}

func NewAnalyticsHandler(store port.Store, cfg scoring.Config) *AnalyticsHandler {
	return &AnalyticsHandler{
		store:      store,
		forecaster: scoring.NewRevenueForecaster(cfg),
		hotspots:   scoring.NewHotspotDetector(cfg),
		seasonal:   scoring.NewSeasonalAnalyser(cfg),
	}
}

// Compliance handles GET /api/analytics/compliance?days=N, returning
// the current compliance rate, its velocity over the window, and a
// naive 30-day-ahead linear prediction.
func (h *AnalyticsHandler) Compliance(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	days := intQuery(r, "days", 30)

	total, registered, err := h.store.CountPropertiesGlobal(r.Context())
	if err != nil {
		utils.WriteEnvelopeError(w, http.StatusInternalServerError, "failed to load property counts", start)
		return
	}

	currentRate := 0.0
	if total > 0 {
		currentRate = float64(registered) / float64(total) * 100
	}

	since := time.Now().AddDate(0, 0, -days)
	newUnmatched, err := h.store.CountUnmatchedListingsSince(r.Context(), since)
	if err != nil {
		utils.WriteEnvelopeError(w, http.StatusInternalServerError, "failed to load listing velocity", start)
		return
	}

	velocityPerDay := float64(newUnmatched) / float64(days)
	predicted30d := currentRate - velocityPerDay*30/float64(total+1)*100

	utils.WriteEnvelopeSuccess(w, http.StatusOK, map[string]interface{}{
		"window_days":              days,
		"total_properties":         total,
		"registered_properties":    registered,
		"compliance_rate":          currentRate,
		"new_unregistered_per_day": velocityPerDay,
		"prediction_30d":           clampPercent(predicted30d),
	}, start)
}

// Revenue handles GET /api/analytics/revenue, returning the last 12
// months of collected TPT revenue.
func (h *AnalyticsHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	totals, err := h.store.GetGlobalMonthlyRevenueTotals(r.Context(), 12)
	if err != nil {
		utils.WriteEnvelopeError(w, http.StatusInternalServerError, "failed to load revenue history", start)
		return
	}
	utils.WriteEnvelopeSuccess(w, http.StatusOK, map[string]interface{}{"monthly_totals": totals}, start)
}

// RevenueForecast handles GET /api/analytics/revenue/forecast?months=N.
func (h *AnalyticsHandler) RevenueForecast(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	months := intQuery(r, "months", 3)

	history, err := h.store.GetGlobalMonthlyRevenueTotals(r.Context(), 24)
	if err != nil {
		utils.WriteEnvelopeError(w, http.StatusInternalServerError, "failed to load revenue history", start)
		return
	}

	results := h.forecaster.Forecast(history, months, int(time.Now().Month())-1)
	points := make([]domain.ForecastPoint, 0, len(results))
	for _, res := range results {
		points = append(points, domain.ForecastPoint{
			MonthsAhead: res.MonthsAhead,
			Predicted:   res.Predicted,
			Confidence:  res.Confidence,
			LowerBound:  res.LowerBound,
			UpperBound:  res.UpperBound,
		})
	}

	utils.WriteEnvelopeSuccess(w, http.StatusOK, map[string]interface{}{"forecast": points}, start)
}

// Hotspots handles GET /api/analytics/hotspots[?city=&limit=].
func (h *AnalyticsHandler) Hotspots(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	city := r.URL.Query().Get("city")
	limit := intQuery(r, "limit", 20)

	listings, err := h.unregisteredListings(r, city)
	if err != nil {
		utils.WriteEnvelopeError(w, http.StatusInternalServerError, "failed to load listings", start)
		return
	}

	clusters := h.hotspots.DetectHotspots(listings)
	if len(clusters) > limit {
		clusters = clusters[:limit]
	}
	utils.WriteEnvelopeSuccess(w, http.StatusOK, map[string]interface{}{"hotspots": clusters}, start)
}

// HotspotsByBounds handles GET /api/analytics/hotspots/bounds with a
// lat/lon bounding box.
func (h *AnalyticsHandler) HotspotsByBounds(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	q := r.URL.Query()
	minLat, errA := strconv.ParseFloat(q.Get("minLat"), 64)
	maxLat, errB := strconv.ParseFloat(q.Get("maxLat"), 64)
	minLon, errC := strconv.ParseFloat(q.Get("minLon"), 64)
	maxLon, errD := strconv.ParseFloat(q.Get("maxLon"), 64)
	if errA != nil || errB != nil || errC != nil || errD != nil {
		utils.WriteEnvelopeError(w, http.StatusBadRequest, "Missing required bounds parameters: minLat, maxLat, minLon, maxLon", start)
		return
	}

	listings, err := h.unregisteredListings(r, "")
	if err != nil {
		utils.WriteEnvelopeError(w, http.StatusInternalServerError, "failed to load listings", start)
		return
	}

	var inBounds []*domain.ScrapedListing
	for _, l := range listings {
		if l.Latitude >= minLat && l.Latitude <= maxLat && l.Longitude >= minLon && l.Longitude <= maxLon {
			inBounds = append(inBounds, l)
		}
	}

	clusters := h.hotspots.DetectHotspots(inBounds)
	utils.WriteEnvelopeSuccess(w, http.StatusOK, map[string]interface{}{"hotspots": clusters}, start)
}

func (h *AnalyticsHandler) unregisteredListings(r *http.Request, city string) ([]*domain.ScrapedListing, error) {
	listings, err := h.store.ListUnregisteredGeolocatedListings(r.Context())
	if err != nil || city == "" {
		return listings, err
	}
	var filtered []*domain.ScrapedListing
	for _, l := range listings {
		if l.City == city {
			filtered = append(filtered, l)
		}
	}
	return filtered, nil
}

// Seasonal handles GET /api/analytics/seasonal?years=N by aggregating
// bookings across every property, whatever its registration status, over the requested
// window and deriving a seasonality profile.
func (h *AnalyticsHandler) Seasonal(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	years := intQuery(r, "years", 2)

	properties, err := h.store.GetProperties(r.Context(), "")
	if err != nil {
		utils.WriteEnvelopeError(w, http.StatusInternalServerError, "failed to load properties", start)
		return
	}

	var aggregates [12]scoring.MonthAggregate
	for i := range aggregates {
		aggregates[i].Month = i + 1
	}
	yearsSeen := map[int]map[int]bool{}
	var thisYTD, lastYearSpan float64
	now := time.Now()

	for _, p := range properties {
		bookings, err := h.store.GetBookings(r.Context(), p.ID, years)
		if err != nil {
			continue
		}
		for _, b := range bookings {
			idx := int(b.CheckInDate.Month()) - 1
			aggregates[idx].TotalNights += b.TotalNights
			aggregates[idx].TotalBookings++
			aggregates[idx].TotalRevenue += b.Revenue

			if yearsSeen[idx] == nil {
				yearsSeen[idx] = map[int]bool{}
			}
			if !yearsSeen[idx][b.CheckInDate.Year()] {
				yearsSeen[idx][b.CheckInDate.Year()] = true
				aggregates[idx].YearsObserved++
			}

			if b.CheckInDate.Year() == now.Year() && b.CheckInDate.Before(now) {
				thisYTD += b.Revenue
			}
			if b.CheckInDate.Year() == now.Year()-1 && int(b.CheckInDate.Month()) <= int(now.Month()) {
				lastYearSpan += b.Revenue
			}
		}
	}

	pattern := h.seasonal.Analyse(aggregates, thisYTD, lastYearSpan)
	utils.WriteEnvelopeSuccess(w, http.StatusOK, pattern, start)
}

// DemandPredict handles GET /api/analytics/demand/predict?date=YYYY-MM-DD,
// returning the fixed seasonal factor for that calendar month as a
// relative demand index.
func (h *AnalyticsHandler) DemandPredict(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	dateStr := r.URL.Query().Get("date")
	target, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		utils.WriteEnvelopeError(w, http.StatusBadRequest, "date must be formatted as YYYY-MM-DD", start)
		return
	}

	factors := scoring.DefaultConfig().SeasonalFactors
	idx := int(target.Month()) - 1
	utils.WriteEnvelopeSuccess(w, http.StatusOK, map[string]interface{}{
		"date":          dateStr,
		"demand_index":  factors[idx],
		"is_high_season": factors[idx] >= 1.15,
	}, start)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func intQuery(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
