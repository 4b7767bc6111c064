package postgres

import (
	"context"
	"fmt"

	"ppc-guardrail-lab/internal/domain"
	"ppc-guardrail-lab/internal/storage"
)

// PerformanceSnapshotStore implements storage.PerformanceSnapshotStore using
// PostgreSQL. One row per ASIN, replaced on every capture.
type PerformanceSnapshotStore struct {
	pool *Pool
}

// NewPerformanceSnapshotStore creates a new PerformanceSnapshotStore.
func NewPerformanceSnapshotStore(pool *Pool) *PerformanceSnapshotStore {
	return &PerformanceSnapshotStore{pool: pool}
}

// Compile-time interface check.
var _ storage.PerformanceSnapshotStore = (*PerformanceSnapshotStore)(nil)

// Upsert stores the snapshot, replacing any previous one for the ASIN.
func (s *PerformanceSnapshotStore) Upsert(ctx context.Context, snap *domain.PerformanceSnapshot) error {
	if snap == nil || snap.ASIN == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO performance_snapshots (
			asin, current_tacos, orange_zone_months, red_zone_months,
			organic_growth_rate, rating, organic_sales, growth_ad_sales,
			ad_dependency_ratio, bsr_trend, competitor_median_rating,
			days_since_first_impression, impressions, clicks, orders,
			clicks_30d, orders_30d, new_customers, repeat_orders,
			ad_spend, ad_sales, total_sales, captured_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8,
			$9, $10, $11,
			$12, $13, $14, $15,
			$16, $17, $18, $19,
			$20, $21, $22, $23
		)
		ON CONFLICT (asin) DO UPDATE SET
			current_tacos = EXCLUDED.current_tacos,
			orange_zone_months = EXCLUDED.orange_zone_months,
			red_zone_months = EXCLUDED.red_zone_months,
			organic_growth_rate = EXCLUDED.organic_growth_rate,
			rating = EXCLUDED.rating,
			organic_sales = EXCLUDED.organic_sales,
			growth_ad_sales = EXCLUDED.growth_ad_sales,
			ad_dependency_ratio = EXCLUDED.ad_dependency_ratio,
			bsr_trend = EXCLUDED.bsr_trend,
			competitor_median_rating = EXCLUDED.competitor_median_rating,
			days_since_first_impression = EXCLUDED.days_since_first_impression,
			impressions = EXCLUDED.impressions,
			clicks = EXCLUDED.clicks,
			orders = EXCLUDED.orders,
			clicks_30d = EXCLUDED.clicks_30d,
			orders_30d = EXCLUDED.orders_30d,
			new_customers = EXCLUDED.new_customers,
			repeat_orders = EXCLUDED.repeat_orders,
			ad_spend = EXCLUDED.ad_spend,
			ad_sales = EXCLUDED.ad_sales,
			total_sales = EXCLUDED.total_sales,
			captured_at = EXCLUDED.captured_at
	`

	_, err := s.pool.Exec(ctx, query,
		snap.ASIN, snap.CurrentTacos, snap.OrangeZoneMonths, snap.RedZoneMonths,
		snap.Growth.OrganicGrowthRate, snap.Growth.Rating, snap.Growth.OrganicSales, snap.Growth.AdSales,
		snap.Growth.AdDependencyRatio, snap.Growth.BSRTrend, snap.Competition.CompetitorMedianRating,
		snap.Performance.DaysSinceFirstImpression, snap.Performance.Impressions, snap.Performance.Clicks, snap.Performance.Orders,
		snap.Performance.Clicks30d, snap.Performance.Orders30d, snap.Performance.NewCustomers, snap.Performance.RepeatOrders,
		snap.Performance.AdSpend, snap.Performance.AdSales, snap.Performance.TotalSales, snap.CapturedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert performance snapshot: %w", err)
	}
	return nil
}

// GetLatestByASIN retrieves the current snapshot. Returns ErrNotFound if none.
func (s *PerformanceSnapshotStore) GetLatestByASIN(ctx context.Context, asin string) (*domain.PerformanceSnapshot, error) {
	query := `
		SELECT
			asin, current_tacos, orange_zone_months, red_zone_months,
			organic_growth_rate, rating, organic_sales, growth_ad_sales,
			ad_dependency_ratio, bsr_trend, competitor_median_rating,
			days_since_first_impression, impressions, clicks, orders,
			clicks_30d, orders_30d, new_customers, repeat_orders,
			ad_spend, ad_sales, total_sales, captured_at
		FROM performance_snapshots
		WHERE asin = $1
	`

	var snap domain.PerformanceSnapshot
	err := s.pool.QueryRow(ctx, query, asin).Scan(
		&snap.ASIN, &snap.CurrentTacos, &snap.OrangeZoneMonths, &snap.RedZoneMonths,
		&snap.Growth.OrganicGrowthRate, &snap.Growth.Rating, &snap.Growth.OrganicSales, &snap.Growth.AdSales,
		&snap.Growth.AdDependencyRatio, &snap.Growth.BSRTrend, &snap.Competition.CompetitorMedianRating,
		&snap.Performance.DaysSinceFirstImpression, &snap.Performance.Impressions, &snap.Performance.Clicks, &snap.Performance.Orders,
		&snap.Performance.Clicks30d, &snap.Performance.Orders30d, &snap.Performance.NewCustomers, &snap.Performance.RepeatOrders,
		&snap.Performance.AdSpend, &snap.Performance.AdSales, &snap.Performance.TotalSales, &snap.CapturedAt,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get performance snapshot by asin: %w", err)
	}
	return &snap, nil
}
