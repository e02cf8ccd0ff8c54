package reports

import (
	"context"
	"time"

	"compliance-intel-backend/internal/core/domain"
	"compliance-intel-backend/internal/core/port"
)

// fakeStore is a minimal in-memory port.Store stand-in for report
// generator tests. Only the fields generators actually read are
// populated per test; everything else returns zero values.
type fakeStore struct {
	totalProperties      int
	registeredProperties int
	collected            float64
	outstanding          float64
	newUnmatchedListings int
	monthlyRevenue       []float64
	unregisteredListings []*domain.ScrapedListing
	highLandlords        []*domain.RiskScore
	criticalLandlords    []*domain.RiskScore
	priorityListings     []*domain.RiskScore
	rankedAreas          []*domain.AreaAssessment

	upsertedReports []*domain.Report
}

func (f *fakeStore) GetLandlord(ctx context.Context, id string) (*domain.Landlord, error) { return nil, nil }
func (f *fakeStore) ListLandlords(ctx context.Context, limit, offset int) ([]*domain.Landlord, error) {
	return nil, nil
}
func (f *fakeStore) GetRecentPayments(ctx context.Context, landlordID string, limit int) ([]*domain.TptPayment, error) {
	return nil, nil
}
func (f *fakeStore) GetComplianceEvents(ctx context.Context, landlordID string) ([]*domain.ComplianceEvent, error) {
	return nil, nil
}
func (f *fakeStore) GetResponseTimeSamples(ctx context.Context, landlordID string, limit int) ([]*domain.ResponseTimeSample, error) {
	return nil, nil
}
func (f *fakeStore) GetListing(ctx context.Context, id string) (*domain.ScrapedListing, error) {
	return nil, nil
}
func (f *fakeStore) ListListings(ctx context.Context, city string, limit, offset int) ([]*domain.ScrapedListing, error) {
	return nil, nil
}
func (f *fakeStore) ListUnregisteredGeolocatedListings(ctx context.Context) ([]*domain.ScrapedListing, error) {
	return f.unregisteredListings, nil
}
func (f *fakeStore) CountListingsByHost(ctx context.Context, hostID string) (int, int, error) {
	return 0, 0, nil
}
func (f *fakeStore) GetProperties(ctx context.Context, city string) ([]*domain.Property, error) {
	return nil, nil
}
func (f *fakeStore) CountProperties(ctx context.Context, city string) (int, int, error) {
	return 0, 0, nil
}
func (f *fakeStore) CountPropertiesGlobal(ctx context.Context) (int, int, error) {
	return f.totalProperties, f.registeredProperties, nil
}
func (f *fakeStore) GetEnforcementActions(ctx context.Context, city string) ([]*domain.EnforcementAction, error) {
	return nil, nil
}
func (f *fakeStore) CountUnregisteredListingsAsOf(ctx context.Context, city string, asOf time.Time) (int, error) {
	return 0, nil
}
func (f *fakeStore) MonthlyComplianceRateHistory(ctx context.Context, city string, months int) ([]domain.AreaTrend, error) {
	return nil, nil
}
func (f *fakeStore) GetMonthlyPaymentTotals(ctx context.Context, landlordID string, months int) ([]float64, error) {
	return nil, nil
}
func (f *fakeStore) GetGlobalMonthlyRevenueTotals(ctx context.Context, months int) ([]float64, error) {
	return f.monthlyRevenue, nil
}
func (f *fakeStore) GetPaymentTotalsForPeriod(ctx context.Context, since, until time.Time) (float64, float64, error) {
	return f.collected, f.outstanding, nil
}
func (f *fakeStore) CountUnmatchedListingsSince(ctx context.Context, since time.Time) (int, error) {
	return f.newUnmatchedListings, nil
}
func (f *fakeStore) GetBookings(ctx context.Context, propertyID string, years int) ([]*domain.Booking, error) {
	return nil, nil
}
func (f *fakeStore) UpsertLandlordRiskScore(ctx context.Context, score *domain.RiskScore) error {
	return nil
}
func (f *fakeStore) UpsertListingRiskScore(ctx context.Context, score *domain.RiskScore) error {
	return nil
}
func (f *fakeStore) UpsertAreaAssessment(ctx context.Context, assessment *domain.AreaAssessment) error {
	return nil
}
func (f *fakeStore) GetLandlordRiskScore(ctx context.Context, landlordID string) (*domain.RiskScore, error) {
	return nil, nil
}
func (f *fakeStore) GetListingRiskScore(ctx context.Context, listingID string) (*domain.RiskScore, error) {
	return nil, nil
}
func (f *fakeStore) ListLandlordRiskScores(ctx context.Context, riskLevel domain.RiskLevel, limit int) ([]*domain.RiskScore, error) {
	switch riskLevel {
	case domain.RiskHigh:
		return f.highLandlords, nil
	case domain.RiskCritical:
		return f.criticalLandlords, nil
	default:
		return nil, nil
	}
}
func (f *fakeStore) ListListingRiskScoresByPriority(ctx context.Context, limit int) ([]*domain.RiskScore, error) {
	return f.priorityListings, nil
}
func (f *fakeStore) GetAreaAssessment(ctx context.Context, city, neighborhood string) (*domain.AreaAssessment, error) {
	return nil, nil
}
func (f *fakeStore) ListAreaAssessmentsRanked(ctx context.Context, limit int) ([]*domain.AreaAssessment, error) {
	return f.rankedAreas, nil
}
func (f *fakeStore) UpsertReport(ctx context.Context, report *domain.Report) error {
	f.upsertedReports = append(f.upsertedReports, report)
	return nil
}
func (f *fakeStore) GetReport(ctx context.Context, reportType domain.ReportType, period string) (*domain.Report, error) {
	return nil, nil
}
func (f *fakeStore) ListReportHistory(ctx context.Context, reportType domain.ReportType, limit int) ([]*domain.Report, error) {
	return nil, nil
}
func (f *fakeStore) UpsertSeasonalPattern(ctx context.Context, pattern *domain.SeasonalPattern) error {
	return nil
}
func (f *fakeStore) AppendJobHistory(ctx context.Context, history *domain.JobHistory) error {
	return nil
}
func (f *fakeStore) AppendNotification(ctx context.Context, notification port.Notification) error {
	return nil
}
func (f *fakeStore) EnrichmentLog(ctx context.Context, req domain.EnrichmentRequest, resp *domain.EnrichmentResponse) error {
	return nil
}
func (f *fakeStore) VerificationLog(ctx context.Context, req domain.VerificationRequest, resp *domain.VerificationResponse) error {
	return nil
}

var _ port.Store = (*fakeStore)(nil)
