package guardrail

import "ppc-guardrail-lab/internal/domain"

// IsActionAllowed reads the permission flags. Mild reductions and keeping
// the bid are always permitted.
func IsActionAllowed(action domain.BidAction, rails domain.RoleLifecycleGuardrails) bool {
	switch action {
	case domain.ActionStop:
		return rails.AllowStop
	case domain.ActionNegative:
		return rails.AllowNegative
	case domain.ActionStrongDown:
		return rails.AllowStrongDown
	default:
		return true
	}
}

// MeetsActionThreshold checks that both the click count and the overspend
// ratio reach the action's thresholds. NEGATIVE shares the STOP thresholds.
func MeetsActionThreshold(action domain.BidAction, clicks int, overspendRatio float64, rails domain.RoleLifecycleGuardrails) bool {
	var minClicks int
	var minOverspend float64

	switch action {
	case domain.ActionStop, domain.ActionNegative:
		minClicks = rails.MinClicksStop
		minOverspend = rails.OverspendThresholdStop
	case domain.ActionStrongDown:
		minClicks = rails.MinClicksStrongDown
		minOverspend = rails.OverspendThresholdStrongDown
	case domain.ActionMildDown:
		minClicks = rails.MinClicksDown
		minOverspend = rails.OverspendThresholdDown
	default:
		return true
	}

	return clicks >= minClicks && overspendRatio >= minOverspend
}

// ClipDownRatio clamps a requested down-step to the rail's maximum.
func ClipDownRatio(requested float64, rails domain.RoleLifecycleGuardrails) float64 {
	if requested < 0 {
		return 0
	}
	if requested > rails.MaxDownStepRatio {
		return rails.MaxDownStepRatio
	}
	return requested
}

// fallbackChains is the role x disallowed-action substitution table.
// CORE redirects protective actions to KEEP; other roles step down through
// STRONG_DOWN to MILD_DOWN.
var fallbackChains = map[domain.KeywordRole]map[domain.BidAction][]domain.BidAction{
	domain.RoleCore: {
		domain.ActionStop:       {domain.ActionKeep},
		domain.ActionNegative:   {domain.ActionKeep},
		domain.ActionStrongDown: {domain.ActionMildDown},
	},
	domain.RoleSupport: {
		domain.ActionStop:       {domain.ActionStrongDown, domain.ActionMildDown},
		domain.ActionNegative:   {domain.ActionStrongDown, domain.ActionMildDown},
		domain.ActionStrongDown: {domain.ActionMildDown},
	},
	domain.RoleExperiment: {
		domain.ActionStop:       {domain.ActionStrongDown, domain.ActionMildDown},
		domain.ActionNegative:   {domain.ActionStrongDown, domain.ActionMildDown},
		domain.ActionStrongDown: {domain.ActionMildDown},
	},
}

// FallbackAction substitutes a disallowed action per the decision table,
// walking the chain until a permitted action is found. Allowed actions pass
// through unchanged.
func FallbackAction(role domain.KeywordRole, action domain.BidAction, rails domain.RoleLifecycleGuardrails) domain.BidAction {
	if IsActionAllowed(action, rails) {
		return action
	}

	chain, ok := fallbackChains[role]
	if !ok {
		chain = fallbackChains[domain.RoleSupport]
	}

	for _, substitute := range chain[action] {
		if IsActionAllowed(substitute, rails) {
			return substitute
		}
	}
	return domain.ActionKeep
}
