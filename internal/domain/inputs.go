package domain

import "time"

// PromotionPerformanceData is the 90-day performance aggregate supplied by
// the analytics collaborator for promotion/reestimation.
type PromotionPerformanceData struct {
	DaysSinceFirstImpression int

	Impressions int
	Clicks      int
	Orders      int

	Clicks30d int
	Orders30d int

	NewCustomers int
	RepeatOrders int

	AdSpend    float64
	AdSales    float64
	TotalSales float64
}

// GrowthAssessmentData feeds the organic-growth candidate assessor.
type GrowthAssessmentData struct {
	// OrganicGrowthRate is the month-over-month organic sales growth (0.05 = 5%).
	OrganicGrowthRate float64

	Rating float64

	OrganicSales float64
	AdSales      float64

	// AdDependencyRatio is ad sales over total sales.
	AdDependencyRatio float64

	// BSRTrend is the best-seller-rank slope; negative means rank improving.
	BSRTrend float64
}

// CompetitionData carries competitor signals for the growth assessor.
type CompetitionData struct {
	CompetitorMedianRating float64
}

// PerformanceSnapshot is the latest live aggregate for one product, captured
// by the analytics collaborator and read by recommendation runs.
type PerformanceSnapshot struct {
	ASIN string

	CurrentTacos     float64
	OrangeZoneMonths int
	RedZoneMonths    int

	Growth      GrowthAssessmentData
	Competition CompetitionData
	Performance PromotionPerformanceData

	CapturedAt time.Time
}
