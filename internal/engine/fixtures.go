package engine

import (
	"context"
	"time"

	"ppc-guardrail-lab/internal/domain"
	"ppc-guardrail-lab/internal/storage"
)

// LoadFixtures populates stores with sample data for local runs without a
// database. Deterministic content; safe to call once per fresh store.
func LoadFixtures(ctx context.Context, configStore storage.ProductConfigStore, snapshotStore storage.PerformanceSnapshotStore) error {
	if err := loadConfigs(ctx, configStore); err != nil {
		return err
	}
	return loadSnapshots(ctx, snapshotStore)
}

func loadConfigs(ctx context.Context, store storage.ProductConfigStore) error {
	configs := []*domain.ProductConfig{
		{
			// Healthy supplement in launch, still on priors
			ASIN:                        "B0FIXTURE1",
			ProfileID:                   "profile-highltv-1",
			RevenueModel:                domain.RevenueModelLTV,
			LifecycleState:              domain.LifecycleLaunchHard,
			ProductProfileType:          domain.ProfileSupplementHighLTV,
			MarginRateNormal:            0.55,
			MarginRateBlended:           0.50,
			Price:                       5000,
			LtvMode:                     domain.LtvModeAssumed,
			ExpectedRepeatOrdersAssumed: 1.7,
			SafetyFactorAssumed:         0.7,
			IsNewProduct:                true,
			MinBidMultiplier:            0.5,
			MaxBidMultiplier:            2.0,
		},
		{
			// Mature grower with some accumulated loss
			ASIN:                        "B0FIXTURE2",
			ProfileID:                   "profile-standard-1",
			RevenueModel:                domain.RevenueModelLTV,
			LifecycleState:              domain.LifecycleGrow,
			ProductProfileType:          domain.ProfileSupplementStandard,
			MarginRateNormal:            0.45,
			MarginRateBlended:           0.42,
			Price:                       3200,
			LtvMode:                     domain.LtvModeAssumed,
			ExpectedRepeatOrdersAssumed: 1.3,
			SafetyFactorAssumed:         0.75,
			CumulativeLoss:              1800,
			ConsecutiveLossMonths:       2,
			MinBidMultiplier:            0.5,
			MaxBidMultiplier:            1.5,
		},
		{
			// Single-purchase product deep in harvest
			ASIN:                        "B0FIXTURE3",
			ProfileID:                   "profile-single-1",
			RevenueModel:                domain.RevenueModelSinglePurchase,
			LifecycleState:              domain.LifecycleHarvest,
			ProductProfileType:          domain.ProfileSinglePurchase,
			MarginRateNormal:            0.35,
			Price:                       1500,
			LtvMode:                     domain.LtvModeAssumed,
			ExpectedRepeatOrdersAssumed: 1.0,
			SafetyFactorAssumed:         1.0,
			MinBidMultiplier:            0.3,
			MaxBidMultiplier:            1.2,
		},
	}

	for _, cfg := range configs {
		if err := store.Insert(ctx, cfg); err != nil {
			return err
		}
	}
	return nil
}

func loadSnapshots(ctx context.Context, store storage.PerformanceSnapshotStore) error {
	capturedAt := time.Date(2026, 8, 1, 6, 0, 0, 0, time.UTC)

	snapshots := []*domain.PerformanceSnapshot{
		{
			ASIN:         "B0FIXTURE1",
			CurrentTacos: 0.30,
			Growth: domain.GrowthAssessmentData{
				OrganicGrowthRate: 0.12,
				Rating:            4.4,
				OrganicSales:      40000,
				AdSales:           45000,
				AdDependencyRatio: 0.53,
				BSRTrend:          -2.0,
			},
			Competition: domain.CompetitionData{CompetitorMedianRating: 4.1},
			Performance: domain.PromotionPerformanceData{
				DaysSinceFirstImpression: 45,
				Impressions:              30000,
				Clicks:                   800,
				Orders:                   60,
				Clicks30d:                520,
				Orders30d:                40,
				NewCustomers:             55,
				RepeatOrders:             12,
				AdSpend:                  25000,
				AdSales:                  45000,
				TotalSales:               85000,
			},
			CapturedAt: capturedAt,
		},
		{
			ASIN:             "B0FIXTURE2",
			CurrentTacos:     0.24,
			OrangeZoneMonths: 2,
			Growth: domain.GrowthAssessmentData{
				OrganicGrowthRate: 0.06,
				Rating:            4.1,
				OrganicSales:      90000,
				AdSales:           60000,
				AdDependencyRatio: 0.4,
				BSRTrend:          0.5,
			},
			Competition: domain.CompetitionData{CompetitorMedianRating: 4.2},
			Performance: domain.PromotionPerformanceData{
				DaysSinceFirstImpression: 410,
				Impressions:              220000,
				Clicks:                   6200,
				Orders:                   700,
				Clicks30d:                480,
				Orders30d:                55,
				NewCustomers:             420,
				RepeatOrders:             310,
				AdSpend:                  140000,
				AdSales:                  380000,
				TotalSales:               950000,
			},
			CapturedAt: capturedAt,
		},
		{
			ASIN:          "B0FIXTURE3",
			CurrentTacos:  0.09,
			RedZoneMonths: 0,
			Growth: domain.GrowthAssessmentData{
				OrganicGrowthRate: 0.01,
				Rating:            3.9,
				OrganicSales:      50000,
				AdSales:           5000,
				AdDependencyRatio: 0.09,
				BSRTrend:          1.2,
			},
			Competition: domain.CompetitionData{CompetitorMedianRating: 4.0},
			Performance: domain.PromotionPerformanceData{
				DaysSinceFirstImpression: 800,
				Impressions:              500000,
				Clicks:                   9000,
				Orders:                   1200,
				Clicks30d:                120,
				Orders30d:                20,
				NewCustomers:             1100,
				RepeatOrders:             90,
				AdSpend:                  60000,
				AdSales:                  150000,
				TotalSales:               600000,
			},
			CapturedAt: capturedAt,
		},
	}

	for _, s := range snapshots {
		if err := store.Upsert(ctx, s); err != nil {
			return err
		}
	}
	return nil
}
