package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"compliance-intel-backend/config"
	"compliance-intel-backend/internal/api/routes"
	"compliance-intel-backend/internal/db/postgres"
	"compliance-intel-backend/internal/enrichment"
	"compliance-intel-backend/internal/scheduler"
	"compliance-intel-backend/internal/scoring"
)

func main() {
	cfg := config.Load()
	log.Printf("Starting Compliance Intelligence Service in %s mode", cfg.App.Environment)

	db, err := postgres.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Database connection established successfully")

	if migrationFile := "internal/db/migration/schema.sql"; fileExists(migrationFile) {
		log.Println("Running database migration...")
		migrationSQL, err := os.ReadFile(migrationFile)
		if err != nil {
			log.Printf("Warning: failed to read migration file: %v", err)
		} else if err := db.RunMigration(string(migrationSQL)); err != nil {
			log.Printf("Warning: failed to run migration: %v", err)
		}
	}

	store := postgres.NewStore(db)
	scoringCfg := scoring.DefaultConfig()
	orchestrator := enrichment.NewOrchestrator(cfg)

	sched := scheduler.New(store)
	jobs := scheduler.NewJobs(store, scoringCfg, cfg.Scheduler.MaxConcurrentScorings)

	// A bad cron expression only disables that one job; it must never
	// take down the rest of the service.
	registerJob := func(name, expr string, fn scheduler.JobFunc) {
		if err := sched.Register(name, expr, fn); err != nil {
			log.Printf("Warning: job %s not scheduled, invalid cron expression %q: %v", name, expr, err)
		}
	}
	registerJob("daily-risk-update", cfg.Scheduler.DailyRiskUpdateSchedule, jobs.DailyRiskUpdate)
	registerJob("weekly-report", cfg.Scheduler.WeeklyReportSchedule, jobs.WeeklyReport)
	registerJob("monthly-trend-analysis", cfg.Scheduler.MonthlyTrendAnalysisSchedule, jobs.MonthlyTrendAnalysis)

	if cfg.Scheduler.Enabled {
		sched.StartAll()
		log.Println("Scheduled jobs started")
	} else {
		log.Println("Scheduled jobs disabled by configuration")
	}

	router := mux.NewRouter()
	routes.SetupRoutes(router, store, scoringCfg, orchestrator, sched, jobs, db, 30*time.Second, cfg.Scheduler.MaxConcurrentScorings)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-CSRF-Token",
		},
		ExposedHeaders: []string{
			"Link",
		},
		AllowCredentials: true,
		MaxAge:           300,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      corsHandler.Handler(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
