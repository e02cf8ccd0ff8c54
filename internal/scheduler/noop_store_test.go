package scheduler

import (
	"context"
	"time"

	"compliance-intel-backend/internal/core/domain"
	"compliance-intel-backend/internal/core/port"
)

// noopStore implements every port.Store method with a zero-value
// response. Embedded alongside recordingStore in tests that only care
// about one or two methods, so fullStore satisfies port.Store without
// repeating all thirty-odd methods per test file.
type noopStore struct{}

func (noopStore) GetLandlord(ctx context.Context, id string) (*domain.Landlord, error) { return nil, nil }
func (noopStore) ListLandlords(ctx context.Context, limit, offset int) ([]*domain.Landlord, error) {
	return nil, nil
}
func (noopStore) GetRecentPayments(ctx context.Context, landlordID string, limit int) ([]*domain.TptPayment, error) {
	return nil, nil
}
func (noopStore) GetComplianceEvents(ctx context.Context, landlordID string) ([]*domain.ComplianceEvent, error) {
	return nil, nil
}
func (noopStore) GetResponseTimeSamples(ctx context.Context, landlordID string, limit int) ([]*domain.ResponseTimeSample, error) {
	return nil, nil
}
func (noopStore) GetListing(ctx context.Context, id string) (*domain.ScrapedListing, error) {
	return nil, nil
}
func (noopStore) ListListings(ctx context.Context, city string, limit, offset int) ([]*domain.ScrapedListing, error) {
	return nil, nil
}
func (noopStore) ListUnregisteredGeolocatedListings(ctx context.Context) ([]*domain.ScrapedListing, error) {
	return nil, nil
}
func (noopStore) CountListingsByHost(ctx context.Context, hostID string) (int, int, error) {
	return 0, 0, nil
}
func (noopStore) GetProperties(ctx context.Context, city string) ([]*domain.Property, error) {
	return nil, nil
}
func (noopStore) CountProperties(ctx context.Context, city string) (int, int, error) { return 0, 0, nil }
func (noopStore) CountPropertiesGlobal(ctx context.Context) (int, int, error)        { return 0, 0, nil }
func (noopStore) GetEnforcementActions(ctx context.Context, city string) ([]*domain.EnforcementAction, error) {
	return nil, nil
}
func (noopStore) CountUnregisteredListingsAsOf(ctx context.Context, city string, asOf time.Time) (int, error) {
	return 0, nil
}
func (noopStore) MonthlyComplianceRateHistory(ctx context.Context, city string, months int) ([]domain.AreaTrend, error) {
	return nil, nil
}
func (noopStore) GetMonthlyPaymentTotals(ctx context.Context, landlordID string, months int) ([]float64, error) {
	return nil, nil
}
func (noopStore) GetGlobalMonthlyRevenueTotals(ctx context.Context, months int) ([]float64, error) {
	return nil, nil
}
func (noopStore) GetPaymentTotalsForPeriod(ctx context.Context, since, until time.Time) (float64, float64, error) {
	return 0, 0, nil
}
func (noopStore) CountUnmatchedListingsSince(ctx context.Context, since time.Time) (int, error) {
	return 0, nil
}
func (noopStore) GetBookings(ctx context.Context, propertyID string, years int) ([]*domain.Booking, error) {
	return nil, nil
}
func (noopStore) UpsertLandlordRiskScore(ctx context.Context, score *domain.RiskScore) error {
	return nil
}
func (noopStore) UpsertListingRiskScore(ctx context.Context, score *domain.RiskScore) error {
	return nil
}
func (noopStore) UpsertAreaAssessment(ctx context.Context, assessment *domain.AreaAssessment) error {
	return nil
}
func (noopStore) GetLandlordRiskScore(ctx context.Context, landlordID string) (*domain.RiskScore, error) {
	return nil, nil
}
func (noopStore) GetListingRiskScore(ctx context.Context, listingID string) (*domain.RiskScore, error) {
	return nil, nil
}
func (noopStore) ListLandlordRiskScores(ctx context.Context, riskLevel domain.RiskLevel, limit int) ([]*domain.RiskScore, error) {
	return nil, nil
}
func (noopStore) ListListingRiskScoresByPriority(ctx context.Context, limit int) ([]*domain.RiskScore, error) {
	return nil, nil
}
func (noopStore) GetAreaAssessment(ctx context.Context, city, neighborhood string) (*domain.AreaAssessment, error) {
	return nil, nil
}
func (noopStore) ListAreaAssessmentsRanked(ctx context.Context, limit int) ([]*domain.AreaAssessment, error) {
	return nil, nil
}
func (noopStore) UpsertReport(ctx context.Context, report *domain.Report) error { return nil }
func (noopStore) GetReport(ctx context.Context, reportType domain.ReportType, period string) (*domain.Report, error) {
	return nil, nil
}
func (noopStore) ListReportHistory(ctx context.Context, reportType domain.ReportType, limit int) ([]*domain.Report, error) {
	return nil, nil
}
func (noopStore) UpsertSeasonalPattern(ctx context.Context, pattern *domain.SeasonalPattern) error {
	return nil
}
func (noopStore) AppendJobHistory(ctx context.Context, history *domain.JobHistory) error { return nil }
func (noopStore) AppendNotification(ctx context.Context, notification port.Notification) error {
	return nil
}
func (noopStore) EnrichmentLog(ctx context.Context, req domain.EnrichmentRequest, resp *domain.EnrichmentResponse) error {
	return nil
}
func (noopStore) VerificationLog(ctx context.Context, req domain.VerificationRequest, resp *domain.VerificationResponse) error {
	return nil
}

var _ port.Store = noopStore{}
