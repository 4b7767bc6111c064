package guardrail

import (
	"testing"

	"ppc-guardrail-lab/internal/domain"
)

var allStates = []domain.LifecycleState{
	domain.LifecycleLaunchHard,
	domain.LifecycleLaunchSoft,
	domain.LifecycleGrow,
	domain.LifecycleHarvest,
}

var allBudgetStates = []domain.LossBudgetState{
	domain.LossBudgetSafe,
	domain.LossBudgetWarning,
	domain.LossBudgetCritical,
}

func TestCoreLaunch_NeverAllowsProtectiveActions(t *testing.T) {
	for _, state := range []domain.LifecycleState{domain.LifecycleLaunchHard, domain.LifecycleLaunchSoft} {
		for _, budget := range allBudgetStates {
			ctx := domain.GuardrailContext{
				Role:            domain.RoleCore,
				LifecycleState:  state,
				SalePhase:       domain.SalePhaseNormal,
				PresaleType:     domain.PresaleNone,
				LossBudgetState: budget,
			}
			rails := GetRoleLifecycleGuardrails(ctx)
			if rails.AllowStop || rails.AllowNegative || rails.AllowStrongDown {
				t.Errorf("CORE/%s/%s: protective actions must all be forbidden, got %+v", state, budget, rails)
			}
		}
	}
}

func TestCoreLaunch_HighClickRequirements(t *testing.T) {
	ctx := domain.GuardrailContext{
		Role:            domain.RoleCore,
		LifecycleState:  domain.LifecycleLaunchHard,
		SalePhase:       domain.SalePhaseNormal,
		LossBudgetState: domain.LossBudgetSafe,
	}
	rails := GetRoleLifecycleGuardrails(ctx)
	if rails.MinClicksDown != 3*BaseClicksDown {
		t.Errorf("MinClicksDown = %d, want %d", rails.MinClicksDown, 3*BaseClicksDown)
	}
	if rails.MaxDownStepRatio != 0.10 {
		t.Errorf("MaxDownStepRatio = %v, want 0.10", rails.MaxDownStepRatio)
	}
}

func TestCoreGrow_StopOnlyAtCritical(t *testing.T) {
	for _, budget := range allBudgetStates {
		ctx := domain.GuardrailContext{
			Role:            domain.RoleCore,
			LifecycleState:  domain.LifecycleGrow,
			SalePhase:       domain.SalePhaseNormal,
			LossBudgetState: budget,
		}
		rails := GetRoleLifecycleGuardrails(ctx)

		wantStop := budget == domain.LossBudgetCritical
		if rails.AllowStop != wantStop || rails.AllowNegative != wantStop {
			t.Errorf("CORE/GROW/%s: AllowStop=%t AllowNegative=%t, want both %t",
				budget, rails.AllowStop, rails.AllowNegative, wantStop)
		}
	}
}

func TestCoreGrow_StrongDownForbiddenOnlyDuringHoldBack(t *testing.T) {
	base := domain.GuardrailContext{
		Role:            domain.RoleCore,
		LifecycleState:  domain.LifecycleGrow,
		SalePhase:       domain.SalePhaseNormal,
		PresaleType:     domain.PresaleNone,
		LossBudgetState: domain.LossBudgetSafe,
	}
	if rails := GetRoleLifecycleGuardrails(base); !rails.AllowStrongDown {
		t.Error("CORE/GROW outside hold-back must allow STRONG_DOWN")
	}

	holdBack := base
	holdBack.SalePhase = domain.SalePhasePreSale
	holdBack.PresaleType = domain.PresaleHoldBack
	if rails := GetRoleLifecycleGuardrails(holdBack); rails.AllowStrongDown {
		t.Error("CORE/GROW during PRE_SALE hold-back must forbid STRONG_DOWN")
	}
}

func TestCoreHarvest_SupportPosture(t *testing.T) {
	cases := []struct {
		budget       domain.LossBudgetState
		wantStop     bool
		wantNegative bool
	}{
		{domain.LossBudgetSafe, false, false},
		{domain.LossBudgetWarning, true, false},
		{domain.LossBudgetCritical, true, true},
	}

	for _, tc := range cases {
		ctx := domain.GuardrailContext{
			Role:            domain.RoleCore,
			LifecycleState:  domain.LifecycleHarvest,
			SalePhase:       domain.SalePhaseNormal,
			LossBudgetState: tc.budget,
		}
		rails := GetRoleLifecycleGuardrails(ctx)
		if rails.AllowStop != tc.wantStop || rails.AllowNegative != tc.wantNegative {
			t.Errorf("CORE/HARVEST/%s: stop=%t negative=%t, want %t/%t",
				tc.budget, rails.AllowStop, rails.AllowNegative, tc.wantStop, tc.wantNegative)
		}
	}
}

func TestSupportLaunch(t *testing.T) {
	ctx := domain.GuardrailContext{
		Role:            domain.RoleSupport,
		LifecycleState:  domain.LifecycleLaunchHard,
		SalePhase:       domain.SalePhaseNormal,
		LossBudgetState: domain.LossBudgetSafe,
	}
	rails := GetRoleLifecycleGuardrails(ctx)
	if rails.AllowStop {
		t.Error("SUPPORT/LAUNCH at SAFE must not allow STOP")
	}
	if rails.AllowNegative {
		t.Error("SUPPORT/LAUNCH must never allow NEGATIVE without the critical override")
	}
}

func TestSupportGrow_NegativeOncePastSafe(t *testing.T) {
	ctx := domain.GuardrailContext{
		Role:            domain.RoleSupport,
		LifecycleState:  domain.LifecycleGrow,
		SalePhase:       domain.SalePhaseNormal,
		LossBudgetState: domain.LossBudgetWarning,
	}
	rails := GetRoleLifecycleGuardrails(ctx)
	if !rails.AllowStop || !rails.AllowNegative {
		t.Errorf("SUPPORT/GROW at WARNING: stop=%t negative=%t, want both true",
			rails.AllowStop, rails.AllowNegative)
	}

	ctx.LossBudgetState = domain.LossBudgetSafe
	rails = GetRoleLifecycleGuardrails(ctx)
	if rails.AllowNegative {
		t.Error("SUPPORT/GROW at SAFE must not allow NEGATIVE")
	}
	if !rails.AllowStop {
		t.Error("SUPPORT/GROW always allows STOP")
	}
}

func TestSupportHarvest_LooserThresholds(t *testing.T) {
	ctx := domain.GuardrailContext{
		Role:            domain.RoleSupport,
		LifecycleState:  domain.LifecycleHarvest,
		SalePhase:       domain.SalePhaseNormal,
		LossBudgetState: domain.LossBudgetSafe,
	}
	rails := GetRoleLifecycleGuardrails(ctx)
	if !rails.AllowStop || !rails.AllowNegative || !rails.AllowStrongDown {
		t.Errorf("SUPPORT/HARVEST must allow all actions, got %+v", rails)
	}
	if rails.OverspendThresholdStop > OverspendMed {
		t.Errorf("SUPPORT/HARVEST stop threshold = %v, want <= %v", rails.OverspendThresholdStop, OverspendMed)
	}
	if rails.MaxDownStepRatio != 0.25 {
		t.Errorf("MaxDownStepRatio = %v, want 0.25", rails.MaxDownStepRatio)
	}
}

func TestExperiment_ScaledClicks(t *testing.T) {
	for _, state := range allStates {
		ctx := domain.GuardrailContext{
			Role:            domain.RoleExperiment,
			LifecycleState:  state,
			SalePhase:       domain.SalePhaseNormal,
			LossBudgetState: domain.LossBudgetSafe,
		}
		rails := GetRoleLifecycleGuardrails(ctx)
		if !rails.AllowStop || !rails.AllowNegative || !rails.AllowStrongDown {
			t.Errorf("EXPERIMENT/%s must allow everything", state)
		}
		if rails.MinClicksDown != 21 || rails.MinClicksStrongDown != 35 || rails.MinClicksStop != 56 {
			t.Errorf("EXPERIMENT/%s clicks = %d/%d/%d, want 21/35/56",
				state, rails.MinClicksDown, rails.MinClicksStrongDown, rails.MinClicksStop)
		}
		if rails.MaxDownStepRatio != 0.30 {
			t.Errorf("EXPERIMENT/%s MaxDownStepRatio = %v, want 0.30", state, rails.MaxDownStepRatio)
		}
	}
}

func TestCriticalOverride_ForcesStopAndNegative(t *testing.T) {
	for _, role := range []domain.KeywordRole{domain.RoleSupport, domain.RoleExperiment} {
		for _, state := range allStates {
			ctx := domain.GuardrailContext{
				Role:            role,
				LifecycleState:  state,
				SalePhase:       domain.SalePhaseNormal,
				PresaleType:     domain.PresaleNone,
				LossBudgetState: domain.LossBudgetCritical,
			}
			rails := GetRoleLifecycleGuardrails(ctx)
			if !rails.AllowStop || !rails.AllowNegative {
				t.Errorf("%s/%s at CRITICAL: stop=%t negative=%t, want both true",
					role, state, rails.AllowStop, rails.AllowNegative)
			}
			if rails.OverspendThresholdStop > OverspendMed {
				t.Errorf("%s/%s at CRITICAL: stop threshold = %v, want <= %v",
					role, state, rails.OverspendThresholdStop, OverspendMed)
			}
		}
	}
}

func TestHoldBack_SuppressesStrongDownForNonCore(t *testing.T) {
	for _, role := range []domain.KeywordRole{domain.RoleSupport, domain.RoleExperiment} {
		for _, state := range allStates {
			ctx := domain.GuardrailContext{
				Role:            role,
				LifecycleState:  state,
				SalePhase:       domain.SalePhasePreSale,
				PresaleType:     domain.PresaleHoldBack,
				LossBudgetState: domain.LossBudgetSafe,
			}
			rails := GetRoleLifecycleGuardrails(ctx)
			if rails.AllowStrongDown {
				t.Errorf("%s/%s during hold-back must forbid STRONG_DOWN", role, state)
			}
			if rails.OverspendThresholdStop < OverspendHeavy {
				t.Errorf("%s/%s during hold-back: stop threshold = %v, want >= %v",
					role, state, rails.OverspendThresholdStop, OverspendHeavy)
			}
			if rails.MinClicksStop < 2*BaseClicksStop {
				t.Errorf("%s/%s during hold-back: MinClicksStop = %d, want >= %d",
					role, state, rails.MinClicksStop, 2*BaseClicksStop)
			}
		}
	}
}

func TestHoldBackThenCritical_OrderOfCorrections(t *testing.T) {
	// Both corrections fire; the critical override still enables STOP and
	// lowers its overspend threshold after hold-back raised it.
	ctx := domain.GuardrailContext{
		Role:            domain.RoleSupport,
		LifecycleState:  domain.LifecycleLaunchHard,
		SalePhase:       domain.SalePhasePreSale,
		PresaleType:     domain.PresaleHoldBack,
		LossBudgetState: domain.LossBudgetCritical,
	}
	rails := GetRoleLifecycleGuardrails(ctx)
	if !rails.AllowStop || !rails.AllowNegative {
		t.Errorf("critical must win on stop/negative: %+v", rails)
	}
	if rails.AllowStrongDown {
		t.Error("hold-back still suppresses STRONG_DOWN")
	}
	if rails.OverspendThresholdStop > OverspendMed {
		t.Errorf("stop threshold = %v, critical lowers it to at most %v",
			rails.OverspendThresholdStop, OverspendMed)
	}
}

func TestGetRoleLifecycleGuardrails_Idempotent(t *testing.T) {
	ctx := domain.GuardrailContext{
		Role:            domain.RoleSupport,
		LifecycleState:  domain.LifecycleGrow,
		SalePhase:       domain.SalePhasePreSale,
		PresaleType:     domain.PresaleHoldBack,
		LossBudgetState: domain.LossBudgetWarning,
	}

	first := GetRoleLifecycleGuardrails(ctx)
	second := GetRoleLifecycleGuardrails(ctx)
	if first != second {
		t.Errorf("not idempotent: %+v vs %+v", first, second)
	}
}
