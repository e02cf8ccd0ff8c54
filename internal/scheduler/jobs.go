package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"compliance-intel-backend/internal/core/domain"
	"compliance-intel-backend/internal/core/port"
	"compliance-intel-backend/internal/reports"
	"compliance-intel-backend/internal/scoring"
)

const listPageSize = 200

// Jobs wires the three named jobs of spec.md §4.4 to a store, the
// scoring engine, and the report generators.
type Jobs struct {
	store            port.Store
	landlordScorer   *scoring.LandlordScorer
	listingScorer    *scoring.ListingScorer
	areaScorer       *scoring.AreaScorer
	hotspotDetector  *scoring.HotspotDetector
	seasonalAnalyser *scoring.SeasonalAnalyser
	generator        *reports.Generator
	maxConcurrency   int
}

func NewJobs(store port.Store, cfg scoring.Config, maxConcurrency int) *Jobs {
	return &Jobs{
		store:            store,
		landlordScorer:   scoring.NewLandlordScorer(cfg),
		listingScorer:    scoring.NewListingScorer(cfg),
		areaScorer:       scoring.NewAreaScorer(cfg),
		hotspotDetector:  scoring.NewHotspotDetector(cfg),
		seasonalAnalyser: scoring.NewSeasonalAnalyser(cfg),
		generator:        reports.NewGenerator(store),
		maxConcurrency:   maxConcurrency,
	}
}

// DailyRiskUpdate recomputes every landlord's and listing's risk score
// and upserts the result, per spec.md §4.4. Entities are scored with
// bounded concurrency; a single entity's failure increments the
// history's error count without aborting the job.
func (j *Jobs) DailyRiskUpdate(ctx context.Context) *domain.JobHistory {
	start := time.Now()
	history := newHistory("daily-risk-update")

	var mu sync.Mutex
	recordErr := func(errContext, msg string) {
		mu.Lock()
		history.Errors = append(history.Errors, domain.JobError{Timestamp: time.Now(), Context: errContext, Message: msg})
		mu.Unlock()
	}
	recordProcessed := func() {
		mu.Lock()
		history.RecordsProcessed++
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(j.maxConcurrency)

	for offset := 0; ; offset += listPageSize {
		landlords, err := j.store.ListLandlords(ctx, listPageSize, offset)
		if err != nil {
			recordErr("list_landlords", err.Error())
			break
		}
		if len(landlords) == 0 {
			break
		}
		for _, landlord := range landlords {
			landlord := landlord
			g.Go(func() error {
				if err := j.scoreOneLandlord(gctx, landlord); err != nil {
					recordErr("landlord:"+landlord.ID, err.Error())
					return nil
				}
				recordProcessed()
				return nil
			})
		}
		if len(landlords) < listPageSize {
			break
		}
	}

	for offset := 0; ; offset += listPageSize {
		listings, err := j.store.ListListings(ctx, "", listPageSize, offset)
		if err != nil {
			recordErr("list_listings", err.Error())
			break
		}
		if len(listings) == 0 {
			break
		}
		for _, listing := range listings {
			listing := listing
			g.Go(func() error {
				if err := j.scoreOneListing(gctx, listing); err != nil {
					recordErr("listing:"+listing.ID, err.Error())
					return nil
				}
				recordProcessed()
				return nil
			})
		}
		if len(listings) < listPageSize {
			break
		}
	}

	_ = g.Wait()

	finishHistory(history, start)
	return history
}

func (j *Jobs) scoreOneLandlord(ctx context.Context, landlord *domain.Landlord) error {
	payments, err := j.store.GetRecentPayments(ctx, landlord.ID, 24)
	if err != nil {
		return fmt.Errorf("payments: %w", err)
	}
	events, err := j.store.GetComplianceEvents(ctx, landlord.ID)
	if err != nil {
		return fmt.Errorf("compliance events: %w", err)
	}
	samples, err := j.store.GetResponseTimeSamples(ctx, landlord.ID, 10)
	if err != nil {
		return fmt.Errorf("response samples: %w", err)
	}

	score := j.landlordScorer.ScoreLandlord(landlord, payments, events, samples, time.Now())
	if err := j.store.UpsertLandlordRiskScore(ctx, score); err != nil {
		return fmt.Errorf("upsert: %w", err)
	}
	return nil
}

func (j *Jobs) scoreOneListing(ctx context.Context, listing *domain.ScrapedListing) error {
	areaLevel := domain.RiskMedium
	if area, err := j.store.GetAreaAssessment(ctx, listing.City, ""); err == nil && area != nil {
		areaLevel = area.RiskLevel
	}

	host := scoring.HostProfile{}
	if listing.HostID != "" {
		total, unregistered, err := j.store.CountListingsByHost(ctx, listing.HostID)
		if err == nil {
			host = scoring.HostProfile{HasHostID: true, ListingsByHost: total, UnregisteredOfThose: unregistered}
		}
	}

	score := j.listingScorer.ScoreListing(listing, areaLevel, host, time.Now())
	if err := j.store.UpsertListingRiskScore(ctx, score); err != nil {
		return fmt.Errorf("upsert: %w", err)
	}
	return nil
}

// WeeklyReport generates the weekly and enforcement reports and
// enqueues a notification for every critical alert the weekly report
// carries, per spec.md §4.4.
func (j *Jobs) WeeklyReport(ctx context.Context) *domain.JobHistory {
	start := time.Now()
	history := newHistory("weekly-report")
	now := time.Now()

	weekly, err := j.generator.GenerateWeekly(ctx, now)
	if err != nil {
		history.Errors = append(history.Errors, domain.JobError{Timestamp: time.Now(), Context: "weekly_report", Message: err.Error()})
	} else {
		history.RecordsProcessed++
		for _, alert := range weekly.Alerts {
			if alert.Severity != "critical" {
				continue
			}
			notification := port.Notification{Type: "weekly_report_critical_alert", Message: alert.Message, CreatedAt: now}
			if err := j.store.AppendNotification(ctx, notification); err != nil {
				history.Errors = append(history.Errors, domain.JobError{Timestamp: time.Now(), Context: "notification", Message: err.Error()})
			}
		}
	}

	if _, err := j.generator.GenerateEnforcement(ctx, now, j.hotspotDetector); err != nil {
		history.Errors = append(history.Errors, domain.JobError{Timestamp: time.Now(), Context: "enforcement_report", Message: err.Error()})
	} else {
		history.RecordsProcessed++
	}

	finishHistory(history, start)
	return history
}

// MonthlyTrendAnalysis generates the monthly report and recomputes the
// assessment of every ranked area, per spec.md §4.4. It does not
// recompute or store seasonal patterns.
func (j *Jobs) MonthlyTrendAnalysis(ctx context.Context) *domain.JobHistory {
	start := time.Now()
	history := newHistory("monthly-trend-analysis")
	now := time.Now()

	if _, err := j.generator.GenerateMonthly(ctx, now, j.hotspotDetector); err != nil {
		history.Errors = append(history.Errors, domain.JobError{Timestamp: time.Now(), Context: "monthly_report", Message: err.Error()})
	} else {
		history.RecordsProcessed++
	}

	areas, err := j.store.ListAreaAssessmentsRanked(ctx, 1000)
	if err != nil {
		history.Errors = append(history.Errors, domain.JobError{Timestamp: time.Now(), Context: "list_areas", Message: err.Error()})
	}
	for _, area := range areas {
		if err := j.recomputeArea(ctx, area.City, area.Neighborhood, now); err != nil {
			history.Errors = append(history.Errors, domain.JobError{Timestamp: time.Now(), Context: "area:" + area.City, Message: err.Error()})
			continue
		}
		history.RecordsProcessed++
	}

	finishHistory(history, start)
	return history
}

func (j *Jobs) recomputeArea(ctx context.Context, city, neighborhood string, now time.Time) error {
	total, registered, err := j.store.CountProperties(ctx, city)
	if err != nil {
		return err
	}
	listings, err := j.store.ListListings(ctx, city, 10000, 0)
	if err != nil {
		return err
	}
	actions, err := j.store.GetEnforcementActions(ctx, city)
	if err != nil {
		return err
	}

	unregistered, unmatched := 0, 0
	var lostRevenue float64
	for _, l := range listings {
		if !l.MatchedRegistration {
			unregistered++
			unmatched++
			if l.PricePerNight != nil {
				lostRevenue += *l.PricePerNight * 365
			}
		}
	}

	threeMoAgo, err := j.store.CountUnregisteredListingsAsOf(ctx, city, now.AddDate(0, -3, 0))
	if err != nil {
		return err
	}
	trends, err := j.store.MonthlyComplianceRateHistory(ctx, city, 6)
	if err != nil {
		return err
	}

	assessment := j.areaScorer.ScoreArea(scoring.AreaInput{
		City:                   city,
		Neighborhood:           neighborhood,
		TotalProperties:        total,
		RegisteredProperties:   registered,
		UnregisteredListings:   unregistered,
		UnmatchedListings:      unmatched,
		EstimatedLostRevenue:   lostRevenue,
		EnforcementActions:     len(actions),
		UnregisteredNow:        unregistered,
		UnregisteredThreeMoAgo: threeMoAgo,
		MonthlyComplianceRates: trends,
	}, now)

	return j.store.UpsertAreaAssessment(ctx, assessment)
}

func newHistory(name string) *domain.JobHistory {
	return &domain.JobHistory{
		JobID:     uuid.NewString(),
		JobName:   name,
		StartTime: time.Now(),
	}
}

func finishHistory(history *domain.JobHistory, start time.Time) {
	history.EndTime = time.Now()
	history.DurationMs = time.Since(start).Milliseconds()
	switch {
	case len(history.Errors) == 0:
		history.Status = domain.JobSuccess
	case history.RecordsProcessed > 0:
		history.Status = domain.JobPartial
	default:
		history.Status = domain.JobFailed
	}
}
