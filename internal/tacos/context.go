// Package tacos derives the theoretical TACOS ceiling and the zone-based
// control context for a product, and adjusts the target ACOS within it.
package tacos

import (
	"ppc-guardrail-lab/internal/domain"
	"ppc-guardrail-lab/internal/profile"
)

const (
	// DefaultTmaxCap is the global cap on the theoretical max TACOS.
	DefaultTmaxCap = 0.7

	// DefaultEpsilon floors divisions when deriving the TACOS delta.
	DefaultEpsilon = 0.01
)

// ZoneHistory carries the caller-supplied live state for one evaluation.
// The engine never persists zone dwell counters itself.
type ZoneHistory struct {
	CurrentTacos       float64
	IsGrowingCandidate bool
	OrangeZoneMonths   int
	RedZoneMonths      int
}

// ContextBuilder derives TacosControlContext values. The zero value is not
// usable; construct with NewContextBuilder.
type ContextBuilder struct {
	TmaxCap float64
	Epsilon float64
}

// NewContextBuilder creates a builder with the default cap and epsilon.
func NewContextBuilder() *ContextBuilder {
	return &ContextBuilder{
		TmaxCap: DefaultTmaxCap,
		Epsilon: DefaultEpsilon,
	}
}

// resolveLtvParams picks repeat orders and safety factor from the profile
// priors while the product is new, else from the config's assumed values.
func resolveLtvParams(cfg *domain.ProductConfig) (repeat, safety float64) {
	if cfg.IsNewProduct {
		p := profile.Get(cfg.ProductProfileType)
		return p.PriorExpectedRepeatOrders, p.PriorSafetyFactor
	}
	return cfg.ExpectedRepeatOrdersAssumed, cfg.SafetyFactorAssumed
}

// TheoreticalMaxTacos is marginRateNormal * (1 + expectedRepeatOrders) * safetyFactor.
func TheoreticalMaxTacos(cfg *domain.ProductConfig) float64 {
	repeat, safety := resolveLtvParams(cfg)
	return cfg.MarginRateNormal * (1 + repeat) * safety
}

// TheoreticalMaxTacosCapped applies the global cap to the theoretical ceiling.
func (b *ContextBuilder) TheoreticalMaxTacosCapped(cfg *domain.ProductConfig) float64 {
	tmax := TheoreticalMaxTacos(cfg)
	if tmax > b.TmaxCap {
		return b.TmaxCap
	}
	return tmax
}

// MaxAdSpendPerUser is the per-customer ad spend ceiling:
// price * marginRateNormal * (1 + expectedRepeatOrders) * safetyFactor.
func MaxAdSpendPerUser(cfg *domain.ProductConfig) float64 {
	repeat, safety := resolveLtvParams(cfg)
	return cfg.Price * cfg.MarginRateNormal * (1 + repeat) * safety
}

// DetermineZone classifies current TACOS:
// GREEN if current <= targetMid, ORANGE if targetMid < current <= max, RED otherwise.
func DetermineZone(current, targetMid, max float64) domain.TacosZone {
	switch {
	case current <= targetMid:
		return domain.ZoneGreen
	case current <= max:
		return domain.ZoneOrange
	default:
		return domain.ZoneRed
	}
}

// Build derives a fresh control context for one (config, live state) pair.
// Stage parameters resolve through the profile tables with DEFAULT fallback.
func (b *ContextBuilder) Build(cfg *domain.ProductConfig, live ZoneHistory) *domain.TacosControlContext {
	stage := profile.StageControlFor(cfg.ProductProfileType, cfg.LifecycleState)

	tacosMax := b.TheoreticalMaxTacosCapped(cfg)
	targetMid := tacosMax * stage.MidFactor

	denom := targetMid
	if denom < b.Epsilon {
		denom = b.Epsilon
	}

	return &domain.TacosControlContext{
		TacosMax:           tacosMax,
		TacosTargetMid:     targetMid,
		CurrentTacos:       live.CurrentTacos,
		TacosZone:          DetermineZone(live.CurrentTacos, targetMid, tacosMax),
		TacosDelta:         (targetMid - live.CurrentTacos) / denom,
		Stage:              stage,
		IsGrowingCandidate: live.IsGrowingCandidate,
		OrangeZoneMonths:   live.OrangeZoneMonths,
		RedZoneMonths:      live.RedZoneMonths,
	}
}
