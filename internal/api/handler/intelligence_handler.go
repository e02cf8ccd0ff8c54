package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"compliance-intel-backend/internal/core/domain"
	"compliance-intel-backend/internal/core/port"
	"compliance-intel-backend/internal/enrichment"
	"compliance-intel-backend/internal/utils"
)

const maxBatchVerifySize = 50

// IntelligenceHandler serves the /api/intelligence/* OSINT
// enrichment and verification surface.
type IntelligenceHandler struct {
	orchestrator   *enrichment.Orchestrator
	store          port.Store
	maxConcurrency int
}

func NewIntelligenceHandler(orchestrator *enrichment.Orchestrator, store port.Store, maxConcurrency int) *IntelligenceHandler {
	return &IntelligenceHandler{orchestrator: orchestrator, store: store, maxConcurrency: maxConcurrency}
}

type enrichRequestBody struct {
	Phone       string                   `json:"phone"`
	Email       string                   `json:"email"`
	Name        string                   `json:"name"`
	DateOfBirth string                   `json:"dateOfBirth"`
	Nationality string                   `json:"nationality"`
	Options     domain.EnrichmentOptions `json:"options"`
}

// Enrich handles POST /api/intelligence/enrich.
func (h *IntelligenceHandler) Enrich(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var body enrichRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteEnvelopeError(w, http.StatusBadRequest, "invalid request body", start)
		return
	}
	if body.Phone == "" && body.Email == "" && body.Name == "" {
		utils.WriteEnvelopeError(w, http.StatusBadRequest, "at least one of phone, email, name is required", start)
		return
	}

	req := domain.EnrichmentRequest{
		Phone:       body.Phone,
		Email:       body.Email,
		Name:        body.Name,
		DateOfBirth: body.DateOfBirth,
		Nationality: body.Nationality,
		Options:     body.Options,
	}
	resp := h.orchestrator.Enrich(r.Context(), req)
	_ = h.store.EnrichmentLog(r.Context(), req, &resp)
	utils.WriteEnvelopeSuccess(w, http.StatusOK, resp, start)
}

type verifyRequestBody struct {
	FirstName   string                     `json:"firstName"`
	LastName    string                     `json:"lastName"`
	DateOfBirth string                     `json:"dateOfBirth"`
	Nationality string                     `json:"nationality"`
	Options     domain.VerificationOptions `json:"options"`
}

func (b verifyRequestBody) toRequest() domain.VerificationRequest {
	return domain.VerificationRequest{
		FirstName:   b.FirstName,
		LastName:    b.LastName,
		DateOfBirth: b.DateOfBirth,
		Nationality: b.Nationality,
		Options:     b.Options,
	}
}

// Verify handles POST /api/intelligence/verify.
func (h *IntelligenceHandler) Verify(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var body verifyRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteEnvelopeError(w, http.StatusBadRequest, "invalid request body", start)
		return
	}
	if body.FirstName == "" || body.LastName == "" {
		utils.WriteEnvelopeError(w, http.StatusBadRequest, "firstName and lastName are required", start)
		return
	}

	req := body.toRequest()
	resp := h.orchestrator.Verify(r.Context(), req)
	_ = h.store.VerificationLog(r.Context(), req, &resp)
	utils.WriteEnvelopeSuccess(w, http.StatusOK, resp, start)
}

// PhoneLookup handles POST /api/intelligence/phone-lookup, body {phone}.
func (h *IntelligenceHandler) PhoneLookup(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Phone string `json:"phone"`
	}
	h.singleFieldEnrich(w, r, &body.Phone, &body, func() domain.EnrichmentRequest {
		return domain.EnrichmentRequest{Phone: body.Phone}
	})
}

// EmailLookup handles POST /api/intelligence/email-lookup, body {email}.
func (h *IntelligenceHandler) EmailLookup(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	h.singleFieldEnrich(w, r, &body.Email, &body, func() domain.EnrichmentRequest {
		return domain.EnrichmentRequest{Email: body.Email}
	})
}

// SanctionsCheck handles POST /api/intelligence/sanctions-check, body
// {name, dateOfBirth?, nationality?}.
func (h *IntelligenceHandler) SanctionsCheck(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name        string `json:"name"`
		DateOfBirth string `json:"dateOfBirth"`
		Nationality string `json:"nationality"`
	}
	h.singleFieldEnrich(w, r, &body.Name, &body, func() domain.EnrichmentRequest {
		return domain.EnrichmentRequest{
			Name:        body.Name,
			DateOfBirth: body.DateOfBirth,
			Nationality: body.Nationality,
			Options:     domain.EnrichmentOptions{Sanctions: true},
		}
	})
}

// WatchlistCheck handles POST /api/intelligence/watchlist-check, body
// {name, nationality?}.
func (h *IntelligenceHandler) WatchlistCheck(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name        string `json:"name"`
		Nationality string `json:"nationality"`
	}
	h.singleFieldEnrich(w, r, &body.Name, &body, func() domain.EnrichmentRequest {
		return domain.EnrichmentRequest{
			Name:        body.Name,
			Nationality: body.Nationality,
			Options:     domain.EnrichmentOptions{Watchlist: true},
		}
	})
}

// PepCheck handles POST /api/intelligence/pep-check, body {firstName,
// lastName, nationality?}. PEP status rides alongside the sanctions
// family, so this is a thin Verify wrapper with only Sanctions enabled.
func (h *IntelligenceHandler) PepCheck(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var body struct {
		FirstName   string `json:"firstName"`
		LastName    string `json:"lastName"`
		Nationality string `json:"nationality"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteEnvelopeError(w, http.StatusBadRequest, "invalid request body", start)
		return
	}
	if body.FirstName == "" || body.LastName == "" {
		utils.WriteEnvelopeError(w, http.StatusBadRequest, "firstName and lastName are required", start)
		return
	}

	req := domain.VerificationRequest{
		FirstName:   body.FirstName,
		LastName:    body.LastName,
		Nationality: body.Nationality,
		Options:     domain.VerificationOptions{Sanctions: true},
	}
	resp := h.orchestrator.Verify(r.Context(), req)
	_ = h.store.VerificationLog(r.Context(), req, &resp)
	utils.WriteEnvelopeSuccess(w, http.StatusOK, resp, start)
}

// singleFieldEnrich decodes body, rejects an empty required field, and
// otherwise delegates to Enrich with a request built by build.
func (h *IntelligenceHandler) singleFieldEnrich(w http.ResponseWriter, r *http.Request, required *string, body interface{}, build func() domain.EnrichmentRequest) {
	start := time.Now()
	if err := json.NewDecoder(r.Body).Decode(body); err != nil {
		utils.WriteEnvelopeError(w, http.StatusBadRequest, "invalid request body", start)
		return
	}
	if *required == "" {
		utils.WriteEnvelopeError(w, http.StatusBadRequest, "a non-empty lookup value is required", start)
		return
	}

	req := build()
	resp := h.orchestrator.Enrich(r.Context(), req)
	_ = h.store.EnrichmentLog(r.Context(), req, &resp)
	utils.WriteEnvelopeSuccess(w, http.StatusOK, resp, start)
}

// BatchVerify handles POST /api/intelligence/batch-verify, body
// {persons: [...]}, max 50 entries.
func (h *IntelligenceHandler) BatchVerify(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var body struct {
		Persons []verifyRequestBody `json:"persons"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteEnvelopeError(w, http.StatusBadRequest, "invalid request body", start)
		return
	}
	if len(body.Persons) > maxBatchVerifySize {
		utils.WriteEnvelopeError(w, http.StatusBadRequest, "Maximum 50 persons per batch request", start)
		return
	}

	requests := make([]domain.VerificationRequest, 0, len(body.Persons))
	for _, p := range body.Persons {
		requests = append(requests, p.toRequest())
	}

	results, summary := h.orchestrator.VerifyBatch(r.Context(), requests, h.maxConcurrency)
	for i, res := range results {
		_ = h.store.VerificationLog(r.Context(), requests[i], &res.Response)
	}

	utils.WriteEnvelopeSuccess(w, http.StatusOK, map[string]interface{}{
		"results": results,
		"summary": summary,
	}, start)
}

// InterpolEntity handles GET /api/intelligence/interpol/:entityId.
func (h *IntelligenceHandler) InterpolEntity(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	entityID := mux.Vars(r)["entityId"]

	result := h.orchestrator.GetInterpolEntity(r.Context(), entityID)
	if !result.Success {
		utils.WriteEnvelopeError(w, http.StatusBadGateway, result.Error, start)
		return
	}
	utils.WriteEnvelopeSuccess(w, http.StatusOK, result.Data, start)
}
