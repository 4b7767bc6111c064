package tacos

import (
	"testing"

	"ppc-guardrail-lab/internal/domain"
)

func growStage() domain.StageTacosControlParams {
	return domain.StageTacosControlParams{
		MinTacos: 0.08, MaxTacos: 0.20,
		MidFactor: 0.60, TacosAcuity: 0.6,
		StageAcosMin: 0.06, StageAcosMax: 0.35,
		TacosPenaltyFactorRed: 0.80,
	}
}

func TestAdjustTargetAcos_WithinBand(t *testing.T) {
	ctx := &domain.TacosControlContext{
		TacosMax:     0.5,
		TacosZone:    domain.ZoneGreen,
		TacosDelta:   0.2,
		Stage:        growStage(),
	}

	result := AdjustTargetAcos(0.20, ctx)

	wantFactor := 1 + 0.6*0.2
	if !almostEqual(result.AdjustmentFactor, wantFactor) {
		t.Errorf("AdjustmentFactor = %v, want %v", result.AdjustmentFactor, wantFactor)
	}
	if !almostEqual(result.FinalTargetAcos, 0.20*wantFactor) {
		t.Errorf("FinalTargetAcos = %v, want %v", result.FinalTargetAcos, 0.20*wantFactor)
	}
	if result.StageMinClampApplied || result.StageMaxClampApplied || result.RedPenaltyApplied {
		t.Errorf("no clamps expected, got %+v", result)
	}
}

func TestAdjustTargetAcos_AlwaysWithinStageBand(t *testing.T) {
	stage := growStage()

	cases := []struct {
		name  string
		base  float64
		delta float64
		zone  domain.TacosZone
	}{
		{"deep overspend", 0.30, -3.0, domain.ZoneRed},
		{"huge headroom", 0.30, 2.0, domain.ZoneGreen},
		{"tiny base", 0.01, 0.0, domain.ZoneGreen},
		{"orange mild overspend", 0.20, -0.4, domain.ZoneOrange},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := &domain.TacosControlContext{
				TacosMax:   0.5,
				TacosZone:  tc.zone,
				TacosDelta: tc.delta,
				Stage:      stage,
			}
			result := AdjustTargetAcos(tc.base, ctx)
			if result.FinalTargetAcos < stage.StageAcosMin-1e-12 ||
				result.FinalTargetAcos > stage.StageAcosMax+1e-12 {
				t.Errorf("FinalTargetAcos %v outside [%v, %v]",
					result.FinalTargetAcos, stage.StageAcosMin, stage.StageAcosMax)
			}
		})
	}
}

func TestAdjustTargetAcos_MinClamp(t *testing.T) {
	ctx := &domain.TacosControlContext{
		TacosMax:   0.5,
		TacosZone:  domain.ZoneGreen,
		TacosDelta: -1.5,
		Stage:      growStage(),
	}

	result := AdjustTargetAcos(0.10, ctx)
	if !result.StageMinClampApplied {
		t.Error("expected stage min clamp")
	}
	if !almostEqual(result.FinalTargetAcos, 0.06) {
		t.Errorf("FinalTargetAcos = %v, want 0.06", result.FinalTargetAcos)
	}
}

func TestAdjustTargetAcos_RedPenalty(t *testing.T) {
	stage := growStage()
	ctx := &domain.TacosControlContext{
		TacosMax:   0.25,
		TacosZone:  domain.ZoneRed,
		TacosDelta: -0.1,
		Stage:      stage,
	}

	result := AdjustTargetAcos(0.30, ctx)

	// raw = 0.30*0.94 = 0.282; redCap = 0.25*0.80 = 0.20 lowers it further.
	if !result.RedPenaltyApplied {
		t.Error("expected red penalty to fire")
	}
	if !almostEqual(result.FinalTargetAcos, 0.20) {
		t.Errorf("FinalTargetAcos = %v, want 0.20", result.FinalTargetAcos)
	}
}

func TestAdjustTargetAcos_RedPenaltyNotRecordedWhenNoEffect(t *testing.T) {
	stage := growStage()
	ctx := &domain.TacosControlContext{
		TacosMax:   0.60, // redCap 0.48, above any reachable target
		TacosZone:  domain.ZoneRed,
		TacosDelta: -0.5,
		Stage:      stage,
	}

	result := AdjustTargetAcos(0.10, ctx)
	if result.RedPenaltyApplied {
		t.Error("red penalty flag set although the clamp did not lower the value")
	}
}
