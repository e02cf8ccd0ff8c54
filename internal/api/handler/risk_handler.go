package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"compliance-intel-backend/internal/core/domain"
	"compliance-intel-backend/internal/core/port"
	"compliance-intel-backend/internal/utils"
)

// RiskHandler serves the /api/risk/* surface: per-entity and ranked
// reads of the derived risk scores and area assessments, plus the two
// refresh-now endpoints.
type RiskHandler struct {
	store port.Store
}

func NewRiskHandler(store port.Store) *RiskHandler {
	return &RiskHandler{store: store}
}

func (h *RiskHandler) Landlord(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := mux.Vars(r)["id"]

	score, err := h.store.GetLandlordRiskScore(r.Context(), id)
	if err != nil {
		utils.WriteEnvelopeError(w, http.StatusInternalServerError, "failed to load landlord risk score", start)
		return
	}
	if score == nil {
		utils.WriteEnvelopeError(w, http.StatusNotFound, "no risk score computed for this landlord yet", start)
		return
	}
	utils.WriteEnvelopeSuccess(w, http.StatusOK, score, start)
}

func (h *RiskHandler) Landlords(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	level := domain.RiskLevel(r.URL.Query().Get("riskLevel"))
	if level == "" {
		level = domain.RiskHigh
	}
	limit := intQuery(r, "limit", 50)

	scores, err := h.store.ListLandlordRiskScores(r.Context(), level, limit)
	if err != nil {
		utils.WriteEnvelopeError(w, http.StatusInternalServerError, "failed to list landlord risk scores", start)
		return
	}
	utils.WriteEnvelopeSuccess(w, http.StatusOK, map[string]interface{}{"landlords": scores}, start)
}

func (h *RiskHandler) Listing(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := mux.Vars(r)["id"]

	score, err := h.store.GetListingRiskScore(r.Context(), id)
	if err != nil {
		utils.WriteEnvelopeError(w, http.StatusInternalServerError, "failed to load listing risk score", start)
		return
	}
	if score == nil {
		utils.WriteEnvelopeError(w, http.StatusNotFound, "no risk score computed for this listing yet", start)
		return
	}
	utils.WriteEnvelopeSuccess(w, http.StatusOK, score, start)
}

func (h *RiskHandler) ListingsPrioritized(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	limit := intQuery(r, "limit", 50)

	scores, err := h.store.ListListingRiskScoresByPriority(r.Context(), limit)
	if err != nil {
		utils.WriteEnvelopeError(w, http.StatusInternalServerError, "failed to list prioritized listings", start)
		return
	}
	utils.WriteEnvelopeSuccess(w, http.StatusOK, map[string]interface{}{"listings": scores}, start)
}

func (h *RiskHandler) Area(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	city := mux.Vars(r)["city"]
	neighborhood := r.URL.Query().Get("neighborhood")

	assessment, err := h.store.GetAreaAssessment(r.Context(), city, neighborhood)
	if err != nil {
		utils.WriteEnvelopeError(w, http.StatusInternalServerError, "failed to load area assessment", start)
		return
	}
	if assessment == nil {
		utils.WriteEnvelopeError(w, http.StatusNotFound, "no assessment computed for this area yet", start)
		return
	}
	utils.WriteEnvelopeSuccess(w, http.StatusOK, assessment, start)
}

func (h *RiskHandler) AreasRanked(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	limit := intQuery(r, "limit", 50)

	assessments, err := h.store.ListAreaAssessmentsRanked(r.Context(), limit)
	if err != nil {
		utils.WriteEnvelopeError(w, http.StatusInternalServerError, "failed to list ranked areas", start)
		return
	}
	utils.WriteEnvelopeSuccess(w, http.StatusOK, map[string]interface{}{"areas": assessments}, start)
}

// RefreshFunc triggers an immediate recompute job and returns its
// history. Routes wires this to *scheduler.Jobs' DailyRiskUpdate so
// this handler package never imports the scheduler package directly.
type RefreshFunc func(r *http.Request) *domain.JobHistory

// RefreshHandler adapts a RefreshFunc into an http.HandlerFunc for
// POST /api/risk/refresh/{landlords,listings}.
func RefreshHandler(refresh RefreshFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		history := refresh(r)
		utils.WriteEnvelopeSuccess(w, http.StatusAccepted, history, start)
	}
}
