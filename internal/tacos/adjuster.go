package tacos

import "ppc-guardrail-lab/internal/domain"

// AdjustTargetAcos maps zone deviation into a clamped target ACOS.
//
// adjustmentFactor = 1 + tacosAcuity * tacosDelta; the raw target is clamped
// to the stage band, then additionally capped at tacosMax*penaltyFactor in
// RED. RedPenaltyApplied is set only if that second clamp actually lowered
// the value. The stage floor always holds, so the final target stays within
// [StageAcosMin, StageAcosMax].
func AdjustTargetAcos(baseLtvAcos float64, ctx *domain.TacosControlContext) *domain.TargetAcosAdjustmentResult {
	stage := ctx.Stage

	factor := 1 + stage.TacosAcuity*ctx.TacosDelta
	raw := baseLtvAcos * factor

	result := &domain.TargetAcosAdjustmentResult{
		Zone:             ctx.TacosZone,
		BaseAcos:         baseLtvAcos,
		AdjustmentFactor: factor,
		RawTargetAcos:    raw,
	}

	final := raw
	if final < stage.StageAcosMin {
		final = stage.StageAcosMin
		result.StageMinClampApplied = true
	}
	if final > stage.StageAcosMax {
		final = stage.StageAcosMax
		result.StageMaxClampApplied = true
	}

	if ctx.TacosZone == domain.ZoneRed {
		redCap := ctx.TacosMax * stage.TacosPenaltyFactorRed
		if redCap < stage.StageAcosMin {
			redCap = stage.StageAcosMin
		}
		if redCap < final {
			final = redCap
			result.RedPenaltyApplied = true
		}
	}

	result.FinalTargetAcos = final
	return result
}
