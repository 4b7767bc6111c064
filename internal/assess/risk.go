// Package assess grades cumulative-loss risk and organic-growth candidacy.
package assess

import (
	"fmt"

	"ppc-guardrail-lab/internal/domain"
)

// Risk band cutoffs on the loss ratios.
const (
	riskHighRatio   = 0.8
	riskMediumRatio = 0.5

	ratioEpsilon = 0.01
)

// RiskInput is the point-in-time loss state for one product.
type RiskInput struct {
	CumulativeLoss           float64
	LossLimit                float64
	ConsecutiveLossMonths    int
	MaxConsecutiveLossMonths int
}

// AssessProductRisk grades cumulative-loss risk. CRITICAL when either hard
// limit is exceeded; HIGH when either ratio reaches 0.8; MEDIUM at 0.5; else LOW.
func AssessProductRisk(in RiskInput) *domain.RiskAssessment {
	lossLimit := in.LossLimit
	if lossLimit < ratioEpsilon {
		lossLimit = ratioEpsilon
	}
	maxMonths := in.MaxConsecutiveLossMonths
	if maxMonths < 1 {
		maxMonths = 1
	}

	lossRatio := in.CumulativeLoss / lossLimit
	monthsRatio := float64(in.ConsecutiveLossMonths) / float64(maxMonths)

	a := &domain.RiskAssessment{
		CumulativeLoss:             in.CumulativeLoss,
		LossLimit:                  in.LossLimit,
		CumulativeLossRatio:        lossRatio,
		ConsecutiveLossMonths:      in.ConsecutiveLossMonths,
		MaxConsecutiveLossMonths:   in.MaxConsecutiveLossMonths,
		ConsecutiveLossMonthsRatio: monthsRatio,
	}

	switch {
	case in.CumulativeLoss > in.LossLimit || in.ConsecutiveLossMonths > in.MaxConsecutiveLossMonths:
		a.RiskLevel = domain.RiskCritical
		if in.CumulativeLoss > in.LossLimit {
			a.Reasons = append(a.Reasons,
				fmt.Sprintf("cumulative loss %.2f exceeds limit %.2f", in.CumulativeLoss, in.LossLimit))
		}
		if in.ConsecutiveLossMonths > in.MaxConsecutiveLossMonths {
			a.Reasons = append(a.Reasons,
				fmt.Sprintf("%d consecutive loss months exceeds tolerance %d",
					in.ConsecutiveLossMonths, in.MaxConsecutiveLossMonths))
		}
	case lossRatio >= riskHighRatio || monthsRatio >= riskHighRatio:
		a.RiskLevel = domain.RiskHigh
		a.Reasons = append(a.Reasons,
			fmt.Sprintf("loss budget usage high (loss %.0f%%, months %.0f%%)", lossRatio*100, monthsRatio*100))
	case lossRatio >= riskMediumRatio || monthsRatio >= riskMediumRatio:
		a.RiskLevel = domain.RiskMedium
		a.Reasons = append(a.Reasons,
			fmt.Sprintf("loss budget usage moderate (loss %.0f%%, months %.0f%%)", lossRatio*100, monthsRatio*100))
	default:
		a.RiskLevel = domain.RiskLow
		a.Reasons = append(a.Reasons, "loss budget usage within comfortable range")
	}

	return a
}

// LossBudgetStateFor coarsens a risk level into the guardrail loss-budget state.
func LossBudgetStateFor(level domain.RiskLevel) domain.LossBudgetState {
	switch level {
	case domain.RiskCritical:
		return domain.LossBudgetCritical
	case domain.RiskHigh:
		return domain.LossBudgetWarning
	default:
		return domain.LossBudgetSafe
	}
}
