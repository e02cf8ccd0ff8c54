package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compliance-intel-backend/internal/core/domain"
)

func TestGenerateWeekly_CriticalAlertsOnLowCompliance(t *testing.T) {
	store := &fakeStore{
		totalProperties:      100,
		registeredProperties: 50, // 50% compliance, below 70 threshold
		collected:            1000,
		outstanding:          2000, // outstanding > collected
		newUnmatchedListings: 5,
		monthlyRevenue:       []float64{10000, 9000},
	}
	gen := NewGenerator(store)

	report, err := gen.GenerateWeekly(context.Background(), time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, domain.ReportWeekly, report.Type)
	assert.True(t, hasCritical(report.Alerts))
	assert.Len(t, store.upsertedReports, 1)
}

func TestGenerateWeekly_HealthyMetricsNoAlerts(t *testing.T) {
	store := &fakeStore{
		totalProperties:      100,
		registeredProperties: 95,
		collected:            9500,
		outstanding:          500,
		newUnmatchedListings: 2,
		monthlyRevenue:       []float64{10000, 10500},
	}
	gen := NewGenerator(store)

	report, err := gen.GenerateWeekly(context.Background(), time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, report.Alerts)
}

func TestWeekStartISO_MondayAnchored(t *testing.T) {
	thursday := time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC) // a Thursday
	assert.Equal(t, "2026-07-27", weekStartISO(thursday))
}
