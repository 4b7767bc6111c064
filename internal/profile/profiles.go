// Package profile holds the compiled-in product profile templates and the
// stage TACOS control parameter tables, with an explicit fallback rule to the
// DEFAULT profile so lookups never fail on unknown keys.
package profile

import "ppc-guardrail-lab/internal/domain"

// Predefined profile templates. Immutable after init; read-only thereafter.
var (
	Default = domain.ProductProfile{
		Type:                      domain.ProfileDefault,
		DefaultMarginRate:         0.35,
		PriorExpectedRepeatOrders: 1.5,
		PriorSafetyFactor:         0.7,
		LossBudgetMultipleInitial: 0.6,
		LossBudgetMultipleMature:  0.3,
		StageControls: map[domain.LifecycleState]domain.StageTacosControlParams{
			domain.LifecycleLaunchHard: {
				MinTacos: 0.15, MaxTacos: 0.35,
				MidFactor: 0.70, TacosAcuity: 0.5,
				StageAcosMin: 0.10, StageAcosMax: 0.60,
				TacosPenaltyFactorRed:    0.90,
				MaxConsecutiveLossMonths: 6,
			},
			domain.LifecycleLaunchSoft: {
				MinTacos: 0.12, MaxTacos: 0.28,
				MidFactor: 0.65, TacosAcuity: 0.5,
				StageAcosMin: 0.08, StageAcosMax: 0.45,
				TacosPenaltyFactorRed:    0.85,
				MaxConsecutiveLossMonths: 4,
			},
			domain.LifecycleGrow: {
				MinTacos: 0.08, MaxTacos: 0.20,
				MidFactor: 0.60, TacosAcuity: 0.6,
				StageAcosMin: 0.06, StageAcosMax: 0.35,
				TacosPenaltyFactorRed:    0.80,
				MaxConsecutiveLossMonths: 3,
			},
			domain.LifecycleHarvest: {
				MinTacos: 0.03, MaxTacos: 0.12,
				MidFactor: 0.50, TacosAcuity: 0.7,
				StageAcosMin: 0.03, StageAcosMax: 0.20,
				TacosPenaltyFactorRed:    0.75,
				MaxConsecutiveLossMonths: 2,
			},
		},
		ZoneTolerances: map[domain.LifecycleState]domain.LifecycleTacosZoneTolerance{
			domain.LifecycleLaunchHard: {OrangeToleranceMonths: 3, RedToleranceMonthsForGrowth: 2},
			domain.LifecycleLaunchSoft: {OrangeToleranceMonths: 2, RedToleranceMonthsForGrowth: 1},
			domain.LifecycleGrow:       {OrangeToleranceMonths: 2, RedToleranceMonthsForGrowth: 1},
			domain.LifecycleHarvest:    {OrangeToleranceMonths: 1, RedToleranceMonthsForGrowth: 0},
		},
	}

	SupplementHighLTV = domain.ProductProfile{
		Type:                      domain.ProfileSupplementHighLTV,
		DefaultMarginRate:         0.55,
		PriorExpectedRepeatOrders: 1.7,
		PriorSafetyFactor:         0.7,
		LossBudgetMultipleInitial: 0.8,
		LossBudgetMultipleMature:  0.4,
		StageControls: map[domain.LifecycleState]domain.StageTacosControlParams{
			domain.LifecycleLaunchHard: {
				MinTacos: 0.25, MaxTacos: 0.55,
				MidFactor: 0.70, TacosAcuity: 0.4,
				StageAcosMin: 0.15, StageAcosMax: 0.70,
				TacosPenaltyFactorRed:    0.90,
				MaxConsecutiveLossMonths: 8,
			},
			domain.LifecycleLaunchSoft: {
				MinTacos: 0.20, MaxTacos: 0.45,
				MidFactor: 0.65, TacosAcuity: 0.45,
				StageAcosMin: 0.12, StageAcosMax: 0.55,
				TacosPenaltyFactorRed:    0.85,
				MaxConsecutiveLossMonths: 6,
			},
			domain.LifecycleGrow: {
				MinTacos: 0.12, MaxTacos: 0.30,
				MidFactor: 0.60, TacosAcuity: 0.5,
				StageAcosMin: 0.08, StageAcosMax: 0.40,
				TacosPenaltyFactorRed:    0.80,
				MaxConsecutiveLossMonths: 4,
			},
			domain.LifecycleHarvest: {
				MinTacos: 0.05, MaxTacos: 0.18,
				MidFactor: 0.50, TacosAcuity: 0.6,
				StageAcosMin: 0.04, StageAcosMax: 0.25,
				TacosPenaltyFactorRed:    0.75,
				MaxConsecutiveLossMonths: 3,
			},
		},
		ZoneTolerances: map[domain.LifecycleState]domain.LifecycleTacosZoneTolerance{
			domain.LifecycleLaunchHard: {OrangeToleranceMonths: 4, RedToleranceMonthsForGrowth: 3},
			domain.LifecycleLaunchSoft: {OrangeToleranceMonths: 3, RedToleranceMonthsForGrowth: 2},
			domain.LifecycleGrow:       {OrangeToleranceMonths: 2, RedToleranceMonthsForGrowth: 1},
			domain.LifecycleHarvest:    {OrangeToleranceMonths: 1, RedToleranceMonthsForGrowth: 0},
		},
	}

	SupplementStandard = domain.ProductProfile{
		Type:                      domain.ProfileSupplementStandard,
		DefaultMarginRate:         0.45,
		PriorExpectedRepeatOrders: 1.3,
		PriorSafetyFactor:         0.75,
		LossBudgetMultipleInitial: 0.6,
		LossBudgetMultipleMature:  0.3,
		StageControls: map[domain.LifecycleState]domain.StageTacosControlParams{
			domain.LifecycleLaunchHard: {
				MinTacos: 0.20, MaxTacos: 0.45,
				MidFactor: 0.70, TacosAcuity: 0.45,
				StageAcosMin: 0.12, StageAcosMax: 0.60,
				TacosPenaltyFactorRed:    0.90,
				MaxConsecutiveLossMonths: 6,
			},
			domain.LifecycleLaunchSoft: {
				MinTacos: 0.15, MaxTacos: 0.35,
				MidFactor: 0.65, TacosAcuity: 0.5,
				StageAcosMin: 0.10, StageAcosMax: 0.50,
				TacosPenaltyFactorRed:    0.85,
				MaxConsecutiveLossMonths: 5,
			},
			domain.LifecycleGrow: {
				MinTacos: 0.10, MaxTacos: 0.25,
				MidFactor: 0.60, TacosAcuity: 0.55,
				StageAcosMin: 0.07, StageAcosMax: 0.38,
				TacosPenaltyFactorRed:    0.80,
				MaxConsecutiveLossMonths: 3,
			},
			domain.LifecycleHarvest: {
				MinTacos: 0.04, MaxTacos: 0.15,
				MidFactor: 0.50, TacosAcuity: 0.65,
				StageAcosMin: 0.03, StageAcosMax: 0.22,
				TacosPenaltyFactorRed:    0.75,
				MaxConsecutiveLossMonths: 2,
			},
		},
		ZoneTolerances: map[domain.LifecycleState]domain.LifecycleTacosZoneTolerance{
			domain.LifecycleLaunchHard: {OrangeToleranceMonths: 3, RedToleranceMonthsForGrowth: 2},
			domain.LifecycleLaunchSoft: {OrangeToleranceMonths: 2, RedToleranceMonthsForGrowth: 1},
			domain.LifecycleGrow:       {OrangeToleranceMonths: 2, RedToleranceMonthsForGrowth: 1},
			domain.LifecycleHarvest:    {OrangeToleranceMonths: 1, RedToleranceMonthsForGrowth: 0},
		},
	}

	SinglePurchase = domain.ProductProfile{
		Type:                      domain.ProfileSinglePurchase,
		DefaultMarginRate:         0.35,
		PriorExpectedRepeatOrders: 1.0,
		PriorSafetyFactor:         1.0,
		LossBudgetMultipleInitial: 0.4,
		LossBudgetMultipleMature:  0.2,
		StageControls: map[domain.LifecycleState]domain.StageTacosControlParams{
			domain.LifecycleLaunchHard: {
				MinTacos: 0.10, MaxTacos: 0.25,
				MidFactor: 0.70, TacosAcuity: 0.6,
				StageAcosMin: 0.08, StageAcosMax: 0.40,
				TacosPenaltyFactorRed:    0.90,
				MaxConsecutiveLossMonths: 4,
			},
			domain.LifecycleLaunchSoft: {
				MinTacos: 0.08, MaxTacos: 0.20,
				MidFactor: 0.65, TacosAcuity: 0.6,
				StageAcosMin: 0.06, StageAcosMax: 0.32,
				TacosPenaltyFactorRed:    0.85,
				MaxConsecutiveLossMonths: 3,
			},
			domain.LifecycleGrow: {
				MinTacos: 0.06, MaxTacos: 0.15,
				MidFactor: 0.60, TacosAcuity: 0.7,
				StageAcosMin: 0.05, StageAcosMax: 0.28,
				TacosPenaltyFactorRed:    0.80,
				MaxConsecutiveLossMonths: 2,
			},
			domain.LifecycleHarvest: {
				MinTacos: 0.02, MaxTacos: 0.10,
				MidFactor: 0.50, TacosAcuity: 0.8,
				StageAcosMin: 0.02, StageAcosMax: 0.18,
				TacosPenaltyFactorRed:    0.75,
				MaxConsecutiveLossMonths: 1,
			},
		},
		ZoneTolerances: map[domain.LifecycleState]domain.LifecycleTacosZoneTolerance{
			domain.LifecycleLaunchHard: {OrangeToleranceMonths: 2, RedToleranceMonthsForGrowth: 1},
			domain.LifecycleLaunchSoft: {OrangeToleranceMonths: 2, RedToleranceMonthsForGrowth: 1},
			domain.LifecycleGrow:       {OrangeToleranceMonths: 1, RedToleranceMonthsForGrowth: 0},
			domain.LifecycleHarvest:    {OrangeToleranceMonths: 1, RedToleranceMonthsForGrowth: 0},
		},
	}
)

var profiles = map[domain.ProductProfileType]domain.ProductProfile{
	domain.ProfileDefault:            Default,
	domain.ProfileSupplementHighLTV:  SupplementHighLTV,
	domain.ProfileSupplementStandard: SupplementStandard,
	domain.ProfileSinglePurchase:     SinglePurchase,
}

// Get returns the profile template for the given type.
// Unknown types fall back to the DEFAULT profile rather than erroring.
func Get(t domain.ProductProfileType) domain.ProductProfile {
	if p, ok := profiles[t]; ok {
		return p
	}
	return Default
}

// StageControlFor resolves the stage control parameters for a
// (profileType, lifecycleState) pair. Misses fall back first to the DEFAULT
// profile's table, then to its GROW row, so the lookup never fails.
func StageControlFor(t domain.ProductProfileType, state domain.LifecycleState) domain.StageTacosControlParams {
	p := Get(t)
	if params, ok := p.StageControls[state]; ok {
		return params
	}
	if params, ok := Default.StageControls[state]; ok {
		return params
	}
	return Default.StageControls[domain.LifecycleGrow]
}

// ZoneToleranceFor resolves the zone dwell tolerance for a
// (profileType, lifecycleState) pair with the same fallback rule.
func ZoneToleranceFor(t domain.ProductProfileType, state domain.LifecycleState) domain.LifecycleTacosZoneTolerance {
	p := Get(t)
	if tol, ok := p.ZoneTolerances[state]; ok {
		return tol
	}
	if tol, ok := Default.ZoneTolerances[state]; ok {
		return tol
	}
	return Default.ZoneTolerances[domain.LifecycleGrow]
}
