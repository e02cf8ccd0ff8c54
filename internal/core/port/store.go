// Package port defines the narrow interfaces the rest of the service
// programs against: the persistent-store query layer and the OSINT
// provider adapter contract. Concrete implementations live in
// internal/db/postgres and internal/enrichment/provider respectively.
package port

import (
	"context"
	"time"

	"compliance-intel-backend/internal/core/domain"
)

// Store is the query-layer abstraction over the shared relational
// store. Reads return read-only collaborator entities; the Upsert*
// methods write the derived entities this service owns.
//
// Every method takes a context so callers can thread deadlines and
// cancellation down to the underlying query (§5 suspension points).
type Store interface {
	// Read-only collaborator entities.
	GetLandlord(ctx context.Context, id string) (*domain.Landlord, error)
	ListLandlords(ctx context.Context, limit, offset int) ([]*domain.Landlord, error)
	GetRecentPayments(ctx context.Context, landlordID string, limit int) ([]*domain.TptPayment, error)
	GetComplianceEvents(ctx context.Context, landlordID string) ([]*domain.ComplianceEvent, error)
	GetResponseTimeSamples(ctx context.Context, landlordID string, limit int) ([]*domain.ResponseTimeSample, error)

	GetListing(ctx context.Context, id string) (*domain.ScrapedListing, error)
	ListListings(ctx context.Context, city string, limit, offset int) ([]*domain.ScrapedListing, error)
	ListUnregisteredGeolocatedListings(ctx context.Context) ([]*domain.ScrapedListing, error)
	CountListingsByHost(ctx context.Context, hostID string) (total int, unregistered int, err error)

	GetProperties(ctx context.Context, city string) ([]*domain.Property, error)
	CountProperties(ctx context.Context, city string) (total int, registered int, err error)
	CountPropertiesGlobal(ctx context.Context) (total int, registered int, err error)

	GetEnforcementActions(ctx context.Context, city string) ([]*domain.EnforcementAction, error)
	CountUnregisteredListingsAsOf(ctx context.Context, city string, asOf time.Time) (int, error)
	MonthlyComplianceRateHistory(ctx context.Context, city string, months int) ([]domain.AreaTrend, error)

	GetMonthlyPaymentTotals(ctx context.Context, landlordID string, months int) ([]float64, error)
	GetGlobalMonthlyRevenueTotals(ctx context.Context, months int) ([]float64, error)
	GetPaymentTotalsForPeriod(ctx context.Context, since, until time.Time) (collected, outstanding float64, err error)
	CountUnmatchedListingsSince(ctx context.Context, since time.Time) (int, error)
	GetBookings(ctx context.Context, propertyID string, years int) ([]*domain.Booking, error)

	// Derived, owned entities: upserts by natural key.
	UpsertLandlordRiskScore(ctx context.Context, score *domain.RiskScore) error
	UpsertListingRiskScore(ctx context.Context, score *domain.RiskScore) error
	UpsertAreaAssessment(ctx context.Context, assessment *domain.AreaAssessment) error
	GetLandlordRiskScore(ctx context.Context, landlordID string) (*domain.RiskScore, error)
	GetListingRiskScore(ctx context.Context, listingID string) (*domain.RiskScore, error)
	ListLandlordRiskScores(ctx context.Context, riskLevel domain.RiskLevel, limit int) ([]*domain.RiskScore, error)
	ListListingRiskScoresByPriority(ctx context.Context, limit int) ([]*domain.RiskScore, error)
	GetAreaAssessment(ctx context.Context, city, neighborhood string) (*domain.AreaAssessment, error)
	ListAreaAssessmentsRanked(ctx context.Context, limit int) ([]*domain.AreaAssessment, error)

	UpsertReport(ctx context.Context, report *domain.Report) error
	GetReport(ctx context.Context, reportType domain.ReportType, period string) (*domain.Report, error)
	ListReportHistory(ctx context.Context, reportType domain.ReportType, limit int) ([]*domain.Report, error)

	UpsertSeasonalPattern(ctx context.Context, pattern *domain.SeasonalPattern) error
	AppendJobHistory(ctx context.Context, history *domain.JobHistory) error
	AppendNotification(ctx context.Context, notification Notification) error

	EnrichmentLog(ctx context.Context, req domain.EnrichmentRequest, resp *domain.EnrichmentResponse) error
	VerificationLog(ctx context.Context, req domain.VerificationRequest, resp *domain.VerificationResponse) error
}

// Notification is a row enqueued by the weekly-report job when a
// critical alert fires.
type Notification struct {
	Type      string
	Message   string
	CreatedAt time.Time
}
