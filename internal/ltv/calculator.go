// Package ltv converts product economics into target ACOS values.
// All functions are pure over ProductConfig; no I/O, no shared state.
package ltv

import "ppc-guardrail-lab/internal/domain"

// Target ACOS bounds and per-stage coefficients.
const (
	MinTargetAcos = 0.03
	MaxTargetAcos = 0.80

	// SinglePurchaseSafetyFactor discounts the margin for products with no
	// repeat economics.
	SinglePurchaseSafetyFactor = 0.8

	HarvestMarginMultiplier = 0.5
	HarvestAcosCap          = 0.15

	LaunchHardAcosCap = 0.60

	LaunchSoftCoefficient = 0.85
	LaunchSoftAcosCap     = 0.50

	GrowCoefficient = 0.70
	GrowAcosCap     = 0.35
)

// BaseTargetAcos computes the economically-justified base target ACOS.
//
// SINGLE_PURCHASE: marginRateNormal * SinglePurchaseSafetyFactor.
// LTV: marginRateNormal * expectedRepeatOrders * safetyFactor, using measured
// values when LtvMode is MEASURED and a measured repeat count exists, else the
// assumed values. Result is clamped to [MinTargetAcos, MaxTargetAcos].
func BaseTargetAcos(cfg *domain.ProductConfig) float64 {
	var base float64

	switch cfg.RevenueModel {
	case domain.RevenueModelSinglePurchase:
		base = cfg.MarginRateNormal * SinglePurchaseSafetyFactor
	default:
		repeat := cfg.ExpectedRepeatOrdersAssumed
		safety := cfg.SafetyFactorAssumed
		if cfg.LtvMode == domain.LtvModeMeasured && cfg.ExpectedRepeatOrdersMeasured != nil {
			repeat = *cfg.ExpectedRepeatOrdersMeasured
			if cfg.SafetyFactorMeasured != nil {
				safety = *cfg.SafetyFactorMeasured
			}
		}
		base = cfg.MarginRateNormal * repeat * safety
	}

	return clamp(base, MinTargetAcos, MaxTargetAcos)
}

// FinalTargetAcos applies the lifecycle-stage multiplier and cap to the base
// target ACOS.
func FinalTargetAcos(cfg *domain.ProductConfig) float64 {
	base := BaseTargetAcos(cfg)

	switch cfg.LifecycleState {
	case domain.LifecycleHarvest:
		harvest := cfg.MarginRateNormal * HarvestMarginMultiplier
		return clamp(harvest, MinTargetAcos, HarvestAcosCap)
	case domain.LifecycleLaunchHard:
		return clamp(base, MinTargetAcos, LaunchHardAcosCap)
	case domain.LifecycleLaunchSoft:
		return clamp(base*LaunchSoftCoefficient, MinTargetAcos, LaunchSoftAcosCap)
	case domain.LifecycleGrow:
		return clamp(base*GrowCoefficient, MinTargetAcos, GrowAcosCap)
	}

	return base
}

// ExpectedLtvGrossProfit is the expected lifetime gross profit per new
// customer: price * marginRate * (1 + expectedRepeatOrders).
func ExpectedLtvGrossProfit(price, marginRate, expectedRepeatOrders float64) float64 {
	return price * marginRate * (1 + expectedRepeatOrders)
}

// ProductCumulativeLossLimit derives the cumulative-loss allowance as a
// multiple of expected LTV gross profit.
func ProductCumulativeLossLimit(grossProfit, lossBudgetMultiple float64) float64 {
	return grossProfit * lossBudgetMultiple
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
