// Package routes wires every handler onto a *mux.Router, grouped into
// path-prefixed subrouters the way the teacher's routes.go composes
// its feature areas.
package routes

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"compliance-intel-backend/internal/api/handler"
	"compliance-intel-backend/internal/api/middleware"
	"compliance-intel-backend/internal/core/domain"
	"compliance-intel-backend/internal/core/port"
	"compliance-intel-backend/internal/db/postgres"
	"compliance-intel-backend/internal/enrichment"
	"compliance-intel-backend/internal/scheduler"
	"compliance-intel-backend/internal/scoring"
)

// SetupRoutes configures every /api/* route group onto router.
func SetupRoutes(
	router *mux.Router,
	store port.Store,
	cfg scoring.Config,
	orchestrator *enrichment.Orchestrator,
	sched *scheduler.Scheduler,
	jobs *scheduler.Jobs,
	db *postgres.DB,
	requestTimeout time.Duration,
	maxBatchConcurrency int,
) *mux.Router {
	router.Use(middleware.RequestTimeout(requestTimeout))

	analyticsHandler := handler.NewAnalyticsHandler(store, cfg)
	riskHandler := handler.NewRiskHandler(store)
	reportsHandler := handler.NewReportsHandler(store, cfg)
	intelligenceHandler := handler.NewIntelligenceHandler(orchestrator, store, maxBatchConcurrency)
	jobsHandler := handler.NewJobsHandler(sched)
	healthHandler := handler.NewHealthHandler(db)

	router.HandleFunc("/", healthHandler.Root).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", healthHandler.Health).Methods("GET")
	api.HandleFunc("/info", healthHandler.Info).Methods("GET")

	risk := api.PathPrefix("/risk").Subrouter()
	risk.HandleFunc("/landlord/{id}", riskHandler.Landlord).Methods("GET")
	risk.HandleFunc("/landlords", riskHandler.Landlords).Methods("GET")
	risk.HandleFunc("/listing/{id}", riskHandler.Listing).Methods("GET")
	risk.HandleFunc("/listings/prioritized", riskHandler.ListingsPrioritized).Methods("GET")
	risk.HandleFunc("/area/{city}", riskHandler.Area).Methods("GET")
	risk.HandleFunc("/areas/ranked", riskHandler.AreasRanked).Methods("GET")
	risk.HandleFunc("/refresh/landlords", handler.RefreshHandler(func(r *http.Request) *domain.JobHistory {
		return jobs.DailyRiskUpdate(r.Context())
	})).Methods("POST")
	risk.HandleFunc("/refresh/listings", handler.RefreshHandler(func(r *http.Request) *domain.JobHistory {
		return jobs.DailyRiskUpdate(r.Context())
	})).Methods("POST")

	analytics := api.PathPrefix("/analytics").Subrouter()
	analytics.HandleFunc("/compliance", analyticsHandler.Compliance).Methods("GET")
	analytics.HandleFunc("/revenue", analyticsHandler.Revenue).Methods("GET")
	analytics.HandleFunc("/revenue/forecast", analyticsHandler.RevenueForecast).Methods("GET")
	analytics.HandleFunc("/hotspots", analyticsHandler.Hotspots).Methods("GET")
	analytics.HandleFunc("/hotspots/bounds", analyticsHandler.HotspotsByBounds).Methods("GET")
	analytics.HandleFunc("/seasonal", analyticsHandler.Seasonal).Methods("GET")
	analytics.HandleFunc("/demand/predict", analyticsHandler.DemandPredict).Methods("GET")

	reports := api.PathPrefix("/reports").Subrouter()
	reports.HandleFunc("/weekly", reportsHandler.Report(domain.ReportWeekly)).Methods("GET")
	reports.HandleFunc("/weekly/{id}", reportsHandler.WeeklyByID).Methods("GET")
	reports.HandleFunc("/monthly", reportsHandler.Report(domain.ReportMonthly)).Methods("GET")
	reports.HandleFunc("/enforcement", reportsHandler.Report(domain.ReportEnforcement)).Methods("GET")
	reports.HandleFunc("/enforcement/targets", reportsHandler.EnforcementTargets).Methods("GET")
	reports.HandleFunc("/history", reportsHandler.History).Methods("GET")

	intelligence := api.PathPrefix("/intelligence").Subrouter()
	intelligence.HandleFunc("/enrich", intelligenceHandler.Enrich).Methods("POST")
	intelligence.HandleFunc("/verify", intelligenceHandler.Verify).Methods("POST")
	intelligence.HandleFunc("/phone-lookup", intelligenceHandler.PhoneLookup).Methods("POST")
	intelligence.HandleFunc("/email-lookup", intelligenceHandler.EmailLookup).Methods("POST")
	intelligence.HandleFunc("/sanctions-check", intelligenceHandler.SanctionsCheck).Methods("POST")
	intelligence.HandleFunc("/watchlist-check", intelligenceHandler.WatchlistCheck).Methods("POST")
	intelligence.HandleFunc("/pep-check", intelligenceHandler.PepCheck).Methods("POST")
	intelligence.HandleFunc("/batch-verify", intelligenceHandler.BatchVerify).Methods("POST")
	intelligence.HandleFunc("/interpol/{entityId}", intelligenceHandler.InterpolEntity).Methods("GET")

	// Job management is mounted directly on the root router, not under
	// /api, matching the spec's documented surface.
	jobsRoutes := router.PathPrefix("/jobs").Subrouter()
	jobsRoutes.HandleFunc("", jobsHandler.List).Methods("GET")
	jobsRoutes.HandleFunc("/{name}/trigger", jobsHandler.Trigger).Methods("POST")
	jobsRoutes.HandleFunc("/{name}/start", jobsHandler.Start).Methods("POST")
	jobsRoutes.HandleFunc("/{name}/stop", jobsHandler.Stop).Methods("POST")

	return router
}
