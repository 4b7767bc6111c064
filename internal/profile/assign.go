package profile

import "ppc-guardrail-lab/internal/domain"

// High-LTV assignment cutoffs.
const (
	highLTVMarginCutoff = 0.50
	highLTVRepeatCutoff = 1.5
)

// Assign picks a profile template for a product from its revenue model and
// economic shape. Single-purchase products always get the SINGLE_PURCHASE
// template; LTV products split on margin and expected repeat orders.
func Assign(model domain.RevenueModel, marginRateNormal, expectedRepeatOrders float64) domain.ProfileAssignmentResult {
	if model == domain.RevenueModelSinglePurchase {
		return domain.ProfileAssignmentResult{
			Type:   domain.ProfileSinglePurchase,
			Reason: "single-purchase revenue model",
		}
	}

	if marginRateNormal >= highLTVMarginCutoff && expectedRepeatOrders >= highLTVRepeatCutoff {
		return domain.ProfileAssignmentResult{
			Type:   domain.ProfileSupplementHighLTV,
			Reason: "LTV model with high margin and repeat-order expectations",
		}
	}

	if model == domain.RevenueModelLTV {
		return domain.ProfileAssignmentResult{
			Type:   domain.ProfileSupplementStandard,
			Reason: "LTV model with standard margin profile",
		}
	}

	return domain.ProfileAssignmentResult{
		Type:   domain.ProfileDefault,
		Reason: "unrecognized revenue model, default template",
	}
}
