// Package promotion re-derives LTV parameters for new products once they
// accumulate enough performance data.
package promotion

import (
	"fmt"

	"ppc-guardrail-lab/internal/domain"
)

// Data-volume thresholds for a MEASURED estimation basis.
const (
	MeasuredMinNewCustomers = 30
	MeasuredMinRepeatOrders = 50
)

// Promotion eligibility thresholds.
const (
	PromotionMinDays      = 30
	PromotionMinClicks30d = 100
	PromotionMinOrders30d = 20
)

// Repeat-order estimate bounds and update gating.
const (
	RepeatEstimateMin = 1.0
	RepeatEstimateMax = 10.0

	// thinDataWeight blends a thin-data estimate toward the prior.
	thinDataWeight = 0.8

	MinConfidenceForUpdate = 0.5
)

// Confidence scale denominators.
const (
	confidenceClicksScale       = 500
	confidenceOrdersScale       = 100
	confidenceNewCustomersScale = 50
)

// Rates are the performance ratios derived from 90-day aggregates.
type Rates struct {
	CVR   float64
	CTR   float64
	ACOS  float64
	TACOS float64
}

// DeriveRates computes CVR/CTR/ACOS/TACOS directly from the aggregate ratios.
func DeriveRates(d domain.PromotionPerformanceData) Rates {
	var r Rates
	if d.Clicks > 0 {
		r.CVR = float64(d.Orders) / float64(d.Clicks)
	}
	if d.Impressions > 0 {
		r.CTR = float64(d.Clicks) / float64(d.Impressions)
	}
	if d.AdSales > 0 {
		r.ACOS = d.AdSpend / d.AdSales
	}
	if d.TotalSales > 0 {
		r.TACOS = d.AdSpend / d.TotalSales
	}
	return r
}

// EstimateRepeatOrders estimates the expected repeat-order count as
// 1 + repeatOrders/newCustomers. Full weight once the MEASURED data-volume
// thresholds clear; 80% weight toward the raw estimate when data is thinner
// but present; else the prior survives. Clamped to [1, 10].
func EstimateRepeatOrders(d domain.PromotionPerformanceData, prior float64) (float64, domain.LtvMode) {
	if d.NewCustomers <= 0 || d.RepeatOrders <= 0 {
		return clampRepeat(prior), domain.LtvModeAssumed
	}

	raw := 1 + float64(d.RepeatOrders)/float64(d.NewCustomers)

	if d.NewCustomers >= MeasuredMinNewCustomers && d.RepeatOrders >= MeasuredMinRepeatOrders {
		return clampRepeat(raw), domain.LtvModeMeasured
	}

	blended := prior + thinDataWeight*(raw-prior)
	return clampRepeat(blended), domain.LtvModeAssumed
}

// ConfidenceScore is the mean of three capped ratios over clicks, orders and
// new customers.
func ConfidenceScore(d domain.PromotionPerformanceData) float64 {
	c := cap1(float64(d.Clicks) / confidenceClicksScale)
	o := cap1(float64(d.Orders) / confidenceOrdersScale)
	n := cap1(float64(d.NewCustomers) / confidenceNewCustomersScale)
	return (c + o + n) / 3
}

// CanPromoteFromNewProduct requires all three eligibility thresholds.
func CanPromoteFromNewProduct(d domain.PromotionPerformanceData) bool {
	return d.DaysSinceFirstImpression >= PromotionMinDays &&
		d.Clicks30d >= PromotionMinClicks30d &&
		d.Orders30d >= PromotionMinOrders30d
}

// MeasuredSafetyFactor derives the safety factor recorded alongside a
// measured repeat estimate; confidence tempers how far it relaxes.
func MeasuredSafetyFactor(confidence float64) float64 {
	f := 0.5 + 0.4*cap1(confidence)
	if f > 1 {
		f = 1
	}
	return f
}

// ExecutePromotion runs the promotion gate and, when it passes, builds the
// config diff. Measured fields are written only when the estimation basis is
// MEASURED and confidence clears the update threshold; the engine never
// mutates the config itself.
func ExecutePromotion(cfg *domain.ProductConfig, d domain.PromotionPerformanceData) *domain.PromotionResult {
	result := &domain.PromotionResult{Basis: domain.LtvModeAssumed}

	if !cfg.IsNewProduct {
		result.Reasons = append(result.Reasons, "product is not in the new-product phase")
		return result
	}

	if !CanPromoteFromNewProduct(d) {
		result.Reasons = append(result.Reasons,
			fmt.Sprintf("promotion thresholds not met (days=%d clicks30d=%d orders30d=%d)",
				d.DaysSinceFirstImpression, d.Clicks30d, d.Orders30d))
		return result
	}

	estimate, basis := EstimateRepeatOrders(d, cfg.ExpectedRepeatOrdersAssumed)
	confidence := ConfidenceScore(d)

	result.Promoted = true
	result.Basis = basis
	result.EstimatedRepeatOrders = estimate
	result.Confidence = confidence

	notNew := false
	updates := &domain.ConfigUpdates{IsNewProduct: &notNew}

	if confidence >= MinConfidenceForUpdate && basis == domain.LtvModeMeasured {
		repeat := estimate
		safety := MeasuredSafetyFactor(confidence)
		mode := domain.LtvModeMeasured
		updates.ExpectedRepeatOrdersMeasured = &repeat
		updates.SafetyFactorMeasured = &safety
		updates.LtvMode = &mode
		result.Reasons = append(result.Reasons,
			fmt.Sprintf("measured repeat estimate %.2f written at confidence %.2f", repeat, confidence))
	} else {
		result.Reasons = append(result.Reasons,
			fmt.Sprintf("estimate %.2f retained as %s basis (confidence %.2f), config priors kept",
				estimate, basis, confidence))
	}

	result.ConfigUpdates = updates
	return result
}

func clampRepeat(v float64) float64 {
	if v < RepeatEstimateMin {
		return RepeatEstimateMin
	}
	if v > RepeatEstimateMax {
		return RepeatEstimateMax
	}
	return v
}

func cap1(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
