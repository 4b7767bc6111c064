package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ppc-guardrail-lab/internal/domain"
	"ppc-guardrail-lab/internal/storage"
)

func testPerformanceSnapshot(asin string, tacos float64) *domain.PerformanceSnapshot {
	return &domain.PerformanceSnapshot{
		ASIN:             asin,
		CurrentTacos:     tacos,
		OrangeZoneMonths: 2,
		RedZoneMonths:    0,
		Growth: domain.GrowthAssessmentData{
			OrganicGrowthRate: 0.08,
			Rating:            4.2,
			OrganicSales:      120000,
			AdSales:           80000,
			AdDependencyRatio: 0.4,
			BSRTrend:          -1.5,
		},
		Competition: domain.CompetitionData{
			CompetitorMedianRating: 4.0,
		},
		Performance: domain.PromotionPerformanceData{
			DaysSinceFirstImpression: 95,
			Impressions:              50000,
			Clicks:                   1200,
			Orders:                   150,
			Clicks30d:                400,
			Orders30d:                50,
			NewCustomers:             90,
			RepeatOrders:             60,
			AdSpend:                  30000,
			AdSales:                  80000,
			TotalSales:               200000,
		},
		CapturedAt: time.Date(2026, 8, 1, 6, 0, 0, 0, time.UTC),
	}
}

func TestPerformanceSnapshotStore_UpsertAndGet(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewPerformanceSnapshotStore(pool)
	ctx := context.Background()

	snap := testPerformanceSnapshot("B001SNAP", 0.25)
	err := store.Upsert(ctx, snap)
	require.NoError(t, err)

	retrieved, err := store.GetLatestByASIN(ctx, "B001SNAP")
	require.NoError(t, err)

	assert.Equal(t, snap.ASIN, retrieved.ASIN)
	assert.Equal(t, snap.CurrentTacos, retrieved.CurrentTacos)
	assert.Equal(t, snap.OrangeZoneMonths, retrieved.OrangeZoneMonths)
	assert.Equal(t, snap.Growth.OrganicGrowthRate, retrieved.Growth.OrganicGrowthRate)
	assert.Equal(t, snap.Growth.BSRTrend, retrieved.Growth.BSRTrend)
	assert.Equal(t, snap.Competition.CompetitorMedianRating, retrieved.Competition.CompetitorMedianRating)
	assert.Equal(t, snap.Performance.NewCustomers, retrieved.Performance.NewCustomers)
	assert.Equal(t, snap.Performance.TotalSales, retrieved.Performance.TotalSales)
	assert.True(t, snap.CapturedAt.Equal(retrieved.CapturedAt))
}

func TestPerformanceSnapshotStore_UpsertReplaces(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewPerformanceSnapshotStore(pool)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, testPerformanceSnapshot("B001SNAP", 0.25)))
	require.NoError(t, store.Upsert(ctx, testPerformanceSnapshot("B001SNAP", 0.40)))

	retrieved, err := store.GetLatestByASIN(ctx, "B001SNAP")
	require.NoError(t, err)
	assert.Equal(t, 0.40, retrieved.CurrentTacos)
}

func TestPerformanceSnapshotStore_NotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewPerformanceSnapshotStore(pool)
	ctx := context.Background()

	_, err := store.GetLatestByASIN(ctx, "nonexistent")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
