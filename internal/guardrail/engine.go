// Package guardrail derives the permitted-action matrix and thresholds for a
// keyword from its role, lifecycle stage, sale phase and loss-budget state.
package guardrail

import "ppc-guardrail-lab/internal/domain"

// Base click-count thresholds per action.
const (
	BaseClicksDown       = 30
	BaseClicksStrongDown = 50
	BaseClicksStop       = 80
)

// Overspend-ratio bands (spend over expected spend).
const (
	OverspendSmall = 1.1
	OverspendMed   = 1.3
	OverspendHeavy = 1.6
)

// Experiment role runs on 0.7x the base click constants.
const experimentClickScale = 0.7

// simplifiedStage collapses LAUNCH_HARD/LAUNCH_SOFT for guardrail purposes.
type simplifiedStage int

const (
	stageLaunch simplifiedStage = iota
	stageGrow
	stageHarvest
)

func simplify(state domain.LifecycleState) simplifiedStage {
	switch state {
	case domain.LifecycleLaunchHard, domain.LifecycleLaunchSoft:
		return stageLaunch
	case domain.LifecycleHarvest:
		return stageHarvest
	default:
		return stageGrow
	}
}

// GetRoleLifecycleGuardrails dispatches on role to the role-specific base
// rails, then applies the cross-cutting PRE_SALE/HOLD_BACK and CRITICAL
// corrections. CORE is short-circuited past both corrections: its tables
// already encode those conditions, and applying them again would
// double-tighten.
func GetRoleLifecycleGuardrails(ctx domain.GuardrailContext) domain.RoleLifecycleGuardrails {
	stage := simplify(ctx.LifecycleState)

	var rails domain.RoleLifecycleGuardrails
	switch ctx.Role {
	case domain.RoleCore:
		rails = coreRails(stage, ctx)
		return rails
	case domain.RoleExperiment:
		rails = experimentRails(stage, ctx)
	default:
		rails = supportRails(stage, ctx)
	}

	applyCrossCorrections(&rails, ctx)
	return rails
}

// coreRails is the most protective rail set. CORE launch keywords can never
// be stopped, negated or strongly reduced.
func coreRails(stage simplifiedStage, ctx domain.GuardrailContext) domain.RoleLifecycleGuardrails {
	switch stage {
	case stageLaunch:
		return domain.RoleLifecycleGuardrails{
			AllowStop:       false,
			AllowNegative:   false,
			AllowStrongDown: false,

			MinClicksDown:       3 * BaseClicksDown,
			MinClicksStrongDown: 3 * BaseClicksStrongDown,
			MinClicksStop:       3 * BaseClicksStop,

			OverspendThresholdDown:       OverspendMed,
			OverspendThresholdStrongDown: OverspendHeavy,
			OverspendThresholdStop:       OverspendHeavy,

			MaxDownStepRatio: 0.10,
			Reason:           "CORE/LAUNCH: launch investment protected, only cautious mild reductions",
		}

	case stageGrow:
		critical := ctx.LossBudgetState == domain.LossBudgetCritical
		holdBack := ctx.SalePhase == domain.SalePhasePreSale && ctx.PresaleType == domain.PresaleHoldBack
		return domain.RoleLifecycleGuardrails{
			AllowStop:       critical,
			AllowNegative:   critical,
			AllowStrongDown: !holdBack,

			MinClicksDown:       2 * BaseClicksDown,
			MinClicksStrongDown: 2 * BaseClicksStrongDown,
			MinClicksStop:       2 * BaseClicksStop,

			OverspendThresholdDown:       OverspendSmall,
			OverspendThresholdStrongDown: OverspendMed,
			OverspendThresholdStop:       OverspendHeavy,

			MaxDownStepRatio: 0.15,
			Reason:           "CORE/GROW: stop and negative reserved for critical loss budget",
		}

	default: // stageHarvest: CORE follows the SUPPORT posture with a tighter negative rule
		return domain.RoleLifecycleGuardrails{
			AllowStop:       ctx.LossBudgetState != domain.LossBudgetSafe,
			AllowNegative:   ctx.LossBudgetState == domain.LossBudgetCritical,
			AllowStrongDown: true,

			MinClicksDown:       BaseClicksDown,
			MinClicksStrongDown: BaseClicksStrongDown,
			MinClicksStop:       BaseClicksStop,

			OverspendThresholdDown:       OverspendSmall,
			OverspendThresholdStrongDown: OverspendMed,
			OverspendThresholdStop:       OverspendMed,

			MaxDownStepRatio: 0.20,
			Reason:           "CORE/HARVEST: support posture, stop once loss budget leaves SAFE",
		}
	}
}

// supportRails is the main adjustment target.
func supportRails(stage simplifiedStage, ctx domain.GuardrailContext) domain.RoleLifecycleGuardrails {
	switch stage {
	case stageLaunch:
		return domain.RoleLifecycleGuardrails{
			AllowStop:       ctx.LossBudgetState == domain.LossBudgetCritical,
			AllowNegative:   false,
			AllowStrongDown: true,

			MinClicksDown:       BaseClicksDown,
			MinClicksStrongDown: BaseClicksStrongDown,
			MinClicksStop:       BaseClicksStop,

			OverspendThresholdDown:       OverspendSmall,
			OverspendThresholdStrongDown: OverspendMed,
			OverspendThresholdStop:       OverspendHeavy,

			MaxDownStepRatio: 0.15,
			Reason:           "SUPPORT/LAUNCH: stop only at critical loss budget, never negate",
		}

	case stageGrow:
		return domain.RoleLifecycleGuardrails{
			AllowStop:       true,
			AllowNegative:   ctx.LossBudgetState != domain.LossBudgetSafe,
			AllowStrongDown: true,

			MinClicksDown:       BaseClicksDown,
			MinClicksStrongDown: BaseClicksStrongDown,
			MinClicksStop:       BaseClicksStop,

			OverspendThresholdDown:       OverspendSmall,
			OverspendThresholdStrongDown: OverspendMed,
			OverspendThresholdStop:       OverspendHeavy,

			MaxDownStepRatio: 0.20,
			Reason:           "SUPPORT/GROW: full adjustment range, negatives once budget leaves SAFE",
		}

	default: // stageHarvest
		return domain.RoleLifecycleGuardrails{
			AllowStop:       true,
			AllowNegative:   true,
			AllowStrongDown: true,

			MinClicksDown:       BaseClicksDown,
			MinClicksStrongDown: BaseClicksStrongDown,
			MinClicksStop:       BaseClicksStop,

			OverspendThresholdDown:       OverspendSmall,
			OverspendThresholdStrongDown: 1.2,
			OverspendThresholdStop:       OverspendMed,

			MaxDownStepRatio: 0.25,
			Reason:           "SUPPORT/HARVEST: aggressive cost control, all actions available",
		}
	}
}

// experimentRails is uniformly permissive; experiments are cheap to cut.
func experimentRails(_ simplifiedStage, _ domain.GuardrailContext) domain.RoleLifecycleGuardrails {
	return domain.RoleLifecycleGuardrails{
		AllowStop:       true,
		AllowNegative:   true,
		AllowStrongDown: true,

		MinClicksDown:       scaleClicks(BaseClicksDown),
		MinClicksStrongDown: scaleClicks(BaseClicksStrongDown),
		MinClicksStop:       scaleClicks(BaseClicksStop),

		OverspendThresholdDown:       OverspendSmall,
		OverspendThresholdStrongDown: OverspendMed,
		OverspendThresholdStop:       OverspendHeavy,

		MaxDownStepRatio: 0.30,
		Reason:           "EXPERIMENT: permissive across all stages, fast feedback loop",
	}
}

func scaleClicks(base int) int {
	return int(float64(base) * experimentClickScale)
}

// applyCrossCorrections applies the two ordered corrections for non-CORE
// roles: pre-sale hold-back first, then the critical loss-budget override.
func applyCrossCorrections(rails *domain.RoleLifecycleGuardrails, ctx domain.GuardrailContext) {
	if ctx.SalePhase == domain.SalePhasePreSale && ctx.PresaleType == domain.PresaleHoldBack {
		rails.AllowStrongDown = false
		if rails.OverspendThresholdStop < OverspendHeavy {
			rails.OverspendThresholdStop = OverspendHeavy
		}
		if rails.MinClicksStop < 2*BaseClicksStop {
			rails.MinClicksStop = 2 * BaseClicksStop
		}
		rails.Reason += "; pre-sale hold-back: strong reductions suppressed"
	}

	if ctx.LossBudgetState == domain.LossBudgetCritical {
		rails.AllowStop = true
		rails.AllowNegative = true
		if rails.OverspendThresholdStop > OverspendMed {
			rails.OverspendThresholdStop = OverspendMed
		}
		rails.Reason += "; critical loss budget: stop and negative force-enabled"
	}
}
