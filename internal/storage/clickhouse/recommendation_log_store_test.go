package clickhouse

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ppc-guardrail-lab/internal/domain"
	"ppc-guardrail-lab/internal/storage"
)

func testAuditRecord(runID, asin string, at time.Time) *domain.RecommendationRecord {
	return &domain.RecommendationRecord{
		RunID:            runID,
		ASIN:             asin,
		GeneratedAt:      at,
		LifecycleState:   domain.LifecycleGrow,
		RecommendedState: domain.LifecycleGrow,
		TacosZone:        domain.ZoneOrange,
		CurrentTacos:     0.32,
		TacosMax:         0.65,
		BaseTargetAcos:   0.60,
		FinalTargetAcos:  0.42,
		BidMultiplier:    0.9,
		Stop:             false,
		TighteningRatio:  0.08,
		RiskLevel:        domain.RiskMedium,
		GrowthScore:      55,
		Reasons:          []string{"orange zone tolerated", "warning issued"},
	}
}

func TestRecommendationLogStore_AppendAndGetByASIN(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewRecommendationLogStore(conn)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 6, 0, 0, 0, time.UTC)
	records := []*domain.RecommendationRecord{
		testAuditRecord("run-1", "B001", base.Add(time.Hour)),
		testAuditRecord("run-0", "B001", base),
		testAuditRecord("run-1", "B002", base.Add(time.Hour)),
	}

	err := store.Append(ctx, records)
	require.NoError(t, err)

	got, err := store.GetByASIN(ctx, "B001")
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Ascending by generated_at
	assert.Equal(t, "run-0", got[0].RunID)
	assert.Equal(t, "run-1", got[1].RunID)

	assert.Equal(t, domain.LifecycleGrow, got[0].LifecycleState)
	assert.Equal(t, domain.ZoneOrange, got[0].TacosZone)
	assert.Equal(t, domain.RiskMedium, got[0].RiskLevel)
	assert.Equal(t, 0.42, got[0].FinalTargetAcos)
	assert.False(t, got[0].Stop)
	assert.Equal(t, []string{"orange zone tolerated", "warning issued"}, got[0].Reasons)
}

func TestRecommendationLogStore_GetByTimeRange(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewRecommendationLogStore(conn)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	var records []*domain.RecommendationRecord
	for i := 0; i < 4; i++ {
		records = append(records, testAuditRecord("run-1", "B001", base.Add(time.Duration(i)*time.Hour)))
	}
	require.NoError(t, store.Append(ctx, records))

	// Inclusive on both ends
	got, err := store.GetByTimeRange(ctx, base.Add(time.Hour), base.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestRecommendationLogStore_StopRoundTrip(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewRecommendationLogStore(conn)
	ctx := context.Background()

	rec := testAuditRecord("run-stop", "B003", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	rec.Stop = true
	rec.RecommendedState = domain.LifecycleHarvest
	require.NoError(t, store.Append(ctx, []*domain.RecommendationRecord{rec}))

	got, err := store.GetByASIN(ctx, "B003")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Stop)
	assert.Equal(t, domain.LifecycleHarvest, got[0].RecommendedState)
}

func TestRecommendationLogStore_AppendEmpty(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewRecommendationLogStore(conn)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, nil))
}

func TestRecommendationLogStore_InvalidInput(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewRecommendationLogStore(conn)
	ctx := context.Background()

	err := store.Append(ctx, []*domain.RecommendationRecord{{ASIN: ""}})
	assert.ErrorIs(t, err, storage.ErrInvalidInput)
}
