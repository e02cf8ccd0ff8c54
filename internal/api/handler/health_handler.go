package handler

import (
	"net/http"
	"time"

	"compliance-intel-backend/internal/db/postgres"
	"compliance-intel-backend/internal/utils"
)

var startTime = time.Now()

// HealthHandler serves the root health/info surface.
type HealthHandler struct {
	db *postgres.DB
}

func NewHealthHandler(db *postgres.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health handles GET /api/health, reporting service liveness plus
// database connectivity.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := "healthy"
	dbErr := ""
	dbStatus, err := h.db.HealthCheck()
	if err != nil {
		status = "degraded"
		dbErr = err.Error()
	}

	utils.WriteEnvelopeSuccess(w, http.StatusOK, map[string]interface{}{
		"status":  status,
		"service": "compliance-intel-backend",
		"version": "1.0.0",
		"uptime":  time.Since(startTime).String(),
		"database": map[string]interface{}{
			"connected":        dbStatus.Connected,
			"open_connections": dbStatus.OpenConnections,
			"in_use":           dbStatus.InUse,
			"idle":             dbStatus.Idle,
			"scored_landlords": dbStatus.ScoredLandlords,
			"scored_listings":  dbStatus.ScoredListings,
			"error":            dbErr,
		},
	}, start)
}

// Info handles GET /api/info, a static service descriptor.
func (h *HealthHandler) Info(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	utils.WriteEnvelopeSuccess(w, http.StatusOK, map[string]interface{}{
		"service":     "compliance-intel-backend",
		"description": "Compliance intelligence service: risk scoring, OSINT enrichment, and enforcement reporting",
		"version":     "1.0.0",
	}, start)
}

// Root handles GET /, a minimal landing response.
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	utils.WriteEnvelopeSuccess(w, http.StatusOK, map[string]interface{}{
		"service": "compliance-intel-backend",
		"status":  "running",
	}, start)
}
