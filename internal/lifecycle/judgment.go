// Package lifecycle holds the stage-transition state machine and the bid
// control action determiner. Deterministic, side-effect-free decision
// functions; the caller persists any recommended stage change.
package lifecycle

import (
	"fmt"

	"ppc-guardrail-lab/internal/domain"
)

// nextState maps each stage to its one-step demotion target.
// LAUNCH_HARD -> LAUNCH_SOFT -> GROW -> HARVEST; HARVEST is terminal.
var nextState = map[domain.LifecycleState]domain.LifecycleState{
	domain.LifecycleLaunchHard: domain.LifecycleLaunchSoft,
	domain.LifecycleLaunchSoft: domain.LifecycleGrow,
	domain.LifecycleGrow:       domain.LifecycleHarvest,
}

// Judge evaluates the transition rule for one product from its zone, growth
// candidacy and zone dwell history against the stage's tolerance.
func Judge(state domain.LifecycleState, ctx *domain.TacosControlContext, tol domain.LifecycleTacosZoneTolerance) *domain.TacosLifecycleJudgment {
	j := &domain.TacosLifecycleJudgment{
		CurrentState:     state,
		RecommendedState: state,
	}

	switch ctx.TacosZone {
	case domain.ZoneGreen:
		j.Reasons = append(j.Reasons, "TACOS within target zone")

	case domain.ZoneOrange:
		judgeOrange(j, state, ctx, tol)

	case domain.ZoneRed:
		judgeRed(j, state, ctx, tol)
	}

	j.StateChanged = j.RecommendedState != j.CurrentState
	return j
}

func judgeOrange(j *domain.TacosLifecycleJudgment, state domain.LifecycleState, ctx *domain.TacosControlContext, tol domain.LifecycleTacosZoneTolerance) {
	if ctx.OrangeZoneMonths <= tol.OrangeToleranceMonths {
		j.Warnings = append(j.Warnings,
			fmt.Sprintf("TACOS above target mid for %d month(s), tolerated up to %d",
				ctx.OrangeZoneMonths, tol.OrangeToleranceMonths))
		return
	}

	j.TargetAcosTighteningRecommended = true
	j.Reasons = append(j.Reasons,
		fmt.Sprintf("ORANGE zone exceeded tolerance (%d > %d months)",
			ctx.OrangeZoneMonths, tol.OrangeToleranceMonths))

	if state == domain.LifecycleHarvest {
		j.BidReductionRecommended = true
		j.Reasons = append(j.Reasons, "HARVEST has no demotion target, recommending bid reduction")
		return
	}

	j.RecommendedState = nextState[state]
	j.Reasons = append(j.Reasons,
		fmt.Sprintf("recommending demotion %s -> %s", state, j.RecommendedState))
}

func judgeRed(j *domain.TacosLifecycleJudgment, state domain.LifecycleState, ctx *domain.TacosControlContext, tol domain.LifecycleTacosZoneTolerance) {
	switch state {
	case domain.LifecycleLaunchHard:
		if ctx.IsGrowingCandidate && ctx.RedZoneMonths <= tol.RedToleranceMonthsForGrowth {
			j.Warnings = append(j.Warnings,
				fmt.Sprintf("RED zone tolerated for growing candidate (%d/%d months)",
					ctx.RedZoneMonths, tol.RedToleranceMonthsForGrowth))
			return
		}
		j.RecommendedState = domain.LifecycleLaunchSoft
		j.Reasons = append(j.Reasons, "RED zone in LAUNCH_HARD, demoting to LAUNCH_SOFT")

	case domain.LifecycleLaunchSoft:
		j.RecommendedState = domain.LifecycleGrow
		j.BidReductionRecommended = true
		j.Reasons = append(j.Reasons, "RED zone in LAUNCH_SOFT, demoting to GROW with bid reduction")

	case domain.LifecycleGrow:
		j.RecommendedState = domain.LifecycleHarvest
		j.BidReductionRecommended = true
		j.Reasons = append(j.Reasons, "RED zone in GROW, recommending demotion to HARVEST with bid reduction")

	case domain.LifecycleHarvest:
		j.BidStopRecommended = true
		j.Reasons = append(j.Reasons, "RED zone in HARVEST, recommending bid stop")
	}
}
