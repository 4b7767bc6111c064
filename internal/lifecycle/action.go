package lifecycle

import (
	"fmt"
	"math"

	"ppc-guardrail-lab/internal/domain"
)

// Bid control constants.
const (
	reductionRed    = 0.20
	reductionOrange = 0.10

	tighteningScale = 0.5
	tighteningMin   = 0.05
	tighteningMax   = 0.20
)

// DetermineBidControlAction converts a judgment into a bid multiplier and an
// ACOS tightening ratio. A recommended stop zeroes the multiplier; reductions
// are -20% in RED and -10% in ORANGE; tightening is proportional to overspend
// severity, bounded to [5%, 20%].
func DetermineBidControlAction(j *domain.TacosLifecycleJudgment, ctx *domain.TacosControlContext) *domain.BidControlAction {
	action := &domain.BidControlAction{BidMultiplier: 1.0}

	if j.BidStopRecommended {
		action.BidMultiplier = 0
		action.Stop = true
		action.Reasons = append(action.Reasons, "bid stop recommended by lifecycle judgment")
		return action
	}

	if j.BidReductionRecommended {
		switch ctx.TacosZone {
		case domain.ZoneRed:
			action.BidMultiplier = 1 - reductionRed
		default:
			action.BidMultiplier = 1 - reductionOrange
		}
		action.Reasons = append(action.Reasons,
			fmt.Sprintf("bid reduction in %s zone, multiplier %.2f", ctx.TacosZone, action.BidMultiplier))
	}

	if j.TargetAcosTighteningRecommended {
		ratio := math.Min(math.Abs(ctx.TacosDelta)*tighteningScale, tighteningMax)
		if ratio < tighteningMin {
			ratio = tighteningMin
		}
		action.TighteningRatio = ratio
		action.Reasons = append(action.Reasons,
			fmt.Sprintf("tightening target ACOS by %.0f%%", ratio*100))
	}

	return action
}
