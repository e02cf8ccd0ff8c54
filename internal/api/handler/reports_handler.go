package handler

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"compliance-intel-backend/internal/core/domain"
	"compliance-intel-backend/internal/core/port"
	"compliance-intel-backend/internal/reports"
	"compliance-intel-backend/internal/scoring"
	"compliance-intel-backend/internal/utils"
)

// ReportsHandler serves the /api/reports/* surface: on-demand
// generation or last-stored retrieval of the three report kinds, plus
// enforcement targets and report history.
type ReportsHandler struct {
	store     port.Store
	generator *reports.Generator
	hotspots  *scoring.HotspotDetector
}

func NewReportsHandler(store port.Store, cfg scoring.Config) *ReportsHandler {
	return &ReportsHandler{
		store:     store,
		generator: reports.NewGenerator(store),
		hotspots:  scoring.NewHotspotDetector(cfg),
	}
}

// Report handles GET /api/reports/{weekly|monthly|enforcement}?generate=bool[&month=&year=].
func (h *ReportsHandler) Report(reportType domain.ReportType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		generate, _ := strconv.ParseBool(r.URL.Query().Get("generate"))
		now := referenceTime(r)

		if !generate {
			period := currentPeriodKey(reportType, now)
			report, err := h.store.GetReport(r.Context(), reportType, period)
			if err != nil {
				utils.WriteEnvelopeError(w, http.StatusInternalServerError, "failed to load report", start)
				return
			}
			if report == nil {
				utils.WriteEnvelopeError(w, http.StatusNotFound, "no stored report for this period; retry with generate=true", start)
				return
			}
			utils.WriteEnvelopeSuccess(w, http.StatusOK, report, start)
			return
		}

		var report *domain.Report
		var err error
		switch reportType {
		case domain.ReportWeekly:
			report, err = h.generator.GenerateWeekly(r.Context(), now)
		case domain.ReportMonthly:
			report, err = h.generator.GenerateMonthly(r.Context(), now, h.hotspots)
		case domain.ReportEnforcement:
			report, err = h.generator.GenerateEnforcement(r.Context(), now, h.hotspots)
		}
		if err != nil {
			utils.WriteEnvelopeError(w, http.StatusInternalServerError, "failed to generate report", start)
			return
		}
		utils.WriteEnvelopeSuccess(w, http.StatusOK, report, start)
	}
}

// WeeklyByID handles GET /api/reports/weekly/:id, where :id is the
// ISO week-start period key.
func (h *ReportsHandler) WeeklyByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	period := mux.Vars(r)["id"]

	report, err := h.store.GetReport(r.Context(), domain.ReportWeekly, period)
	if err != nil {
		utils.WriteEnvelopeError(w, http.StatusInternalServerError, "failed to load weekly report", start)
		return
	}
	if report == nil {
		utils.WriteEnvelopeError(w, http.StatusNotFound, "no weekly report for that period", start)
		return
	}
	utils.WriteEnvelopeSuccess(w, http.StatusOK, report, start)
}

// EnforcementTargets handles GET /api/reports/enforcement/targets?limit=&city=.
func (h *ReportsHandler) EnforcementTargets(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	limit := intQuery(r, "limit", 50)
	city := r.URL.Query().Get("city")

	report, err := h.generator.GenerateEnforcement(r.Context(), time.Now(), h.hotspots)
	if err != nil {
		utils.WriteEnvelopeError(w, http.StatusInternalServerError, "failed to generate enforcement targets", start)
		return
	}

	byCity, _ := report.Analytics["by_city"].(map[string][]domain.EnforcementTarget)
	var targets []domain.EnforcementTarget
	if city != "" {
		targets = byCity[city]
	} else {
		for _, cityTargets := range byCity {
			targets = append(targets, cityTargets...)
		}
		sort.Slice(targets, func(i, j int) bool { return targets[i].Priority > targets[j].Priority })
	}
	if len(targets) > limit {
		targets = targets[:limit]
	}

	utils.WriteEnvelopeSuccess(w, http.StatusOK, map[string]interface{}{"targets": targets}, start)
}

// History handles GET /api/reports/history?type=&limit=.
func (h *ReportsHandler) History(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	reportType := domain.ReportType(r.URL.Query().Get("type"))
	if reportType == "" {
		reportType = domain.ReportWeekly
	}
	limit := intQuery(r, "limit", 20)

	history, err := h.store.ListReportHistory(r.Context(), reportType, limit)
	if err != nil {
		utils.WriteEnvelopeError(w, http.StatusInternalServerError, "failed to load report history", start)
		return
	}
	utils.WriteEnvelopeSuccess(w, http.StatusOK, map[string]interface{}{"history": history}, start)
}

// weekStartISO mirrors the reports package's unexported helper of the
// same name, giving the handler the same natural key without requiring
// the generator package to export it.
func weekStartISO(t time.Time) string {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	monday := t.AddDate(0, 0, -(weekday - 1))
	return monday.Format("2006-01-02")
}

func referenceTime(r *http.Request) time.Time {
	q := r.URL.Query()
	year := q.Get("year")
	month := q.Get("month")
	if year == "" || month == "" {
		return time.Now()
	}
	y, errY := strconv.Atoi(year)
	m, errM := strconv.Atoi(month)
	if errY != nil || errM != nil || m < 1 || m > 12 {
		return time.Now()
	}
	return time.Date(y, time.Month(m), 15, 0, 0, 0, 0, time.UTC)
}

func currentPeriodKey(reportType domain.ReportType, now time.Time) string {
	switch reportType {
	case domain.ReportMonthly:
		return "monthly-" + now.Format("2006-01")
	case domain.ReportWeekly:
		return weekStartISO(now)
	default:
		return now.Format("2006-01-02")
	}
}
