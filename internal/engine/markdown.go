package engine

import (
	"fmt"
	"strings"
)

// RenderMarkdown renders a Recommendation as a Markdown report section.
func RenderMarkdown(rec *Recommendation) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Bid Recommendation: %s\n\n", rec.ASIN))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", rec.GeneratedAt.Format("2006-01-02 15:04:05 UTC")))

	// TACOS control
	sb.WriteString("## TACOS Control\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Profile | %s |\n", rec.ProfileType))
	sb.WriteString(fmt.Sprintf("| Zone | %s |\n", rec.Context.TacosZone))
	sb.WriteString(fmt.Sprintf("| Current TACOS | %.4f |\n", rec.Context.CurrentTacos))
	sb.WriteString(fmt.Sprintf("| Target mid | %.4f |\n", rec.Context.TacosTargetMid))
	sb.WriteString(fmt.Sprintf("| Ceiling | %.4f |\n", rec.Context.TacosMax))
	sb.WriteString(fmt.Sprintf("| Base target ACOS | %.4f |\n", rec.BaseTargetAcos))
	sb.WriteString(fmt.Sprintf("| Final target ACOS | %.4f |\n", rec.Adjustment.FinalTargetAcos))
	sb.WriteString("\n")

	// Lifecycle
	sb.WriteString("## Lifecycle\n\n")
	if rec.Judgment.StateChanged {
		sb.WriteString(fmt.Sprintf("State: %s -> **%s**\n\n",
			rec.Judgment.CurrentState, rec.Judgment.RecommendedState))
	} else {
		sb.WriteString(fmt.Sprintf("State: %s (unchanged)\n\n", rec.Judgment.CurrentState))
	}
	if rec.Action.Stop {
		sb.WriteString("Bid action: **STOP**\n")
	} else {
		sb.WriteString(fmt.Sprintf("Bid multiplier: %.2f\n", rec.Action.BidMultiplier))
	}
	if rec.Action.TighteningRatio > 0 {
		sb.WriteString(fmt.Sprintf("ACOS tightening: %.0f%%\n", rec.Action.TighteningRatio*100))
	}
	sb.WriteString("\n")

	// Risk
	sb.WriteString("## Loss Budget\n\n")
	sb.WriteString(fmt.Sprintf("Risk: %s (loss %.2f of limit %.2f, %d loss months of %d tolerated)\n\n",
		rec.Risk.RiskLevel, rec.Risk.CumulativeLoss, rec.Risk.LossLimit,
		rec.Risk.ConsecutiveLossMonths, rec.Risk.MaxConsecutiveLossMonths))

	// Growth
	sb.WriteString("## Growth\n\n")
	candidacy := "no"
	if rec.Growth.IsGrowingCandidate {
		candidacy = "yes"
	}
	sb.WriteString(fmt.Sprintf("Growing candidate: %s, score %.0f/100, suggested stage %s\n\n",
		candidacy, rec.Growth.GrowthScore, rec.Growth.RecommendedState))

	// Keywords
	if len(rec.Keywords) > 0 {
		sb.WriteString("## Keyword Actions\n\n")
		sb.WriteString("| Keyword | Role | Requested | Final | Downgraded |\n")
		sb.WriteString("|---------|------|-----------|-------|------------|\n")
		for _, kw := range rec.Keywords {
			downgraded := ""
			if kw.Downgraded {
				downgraded = "yes"
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
				kw.KeywordID, kw.Role, kw.RequestedAction, kw.FinalAction, downgraded))
		}
		sb.WriteString("\n")
	}

	// Promotion
	if rec.Promotion != nil {
		sb.WriteString("## Promotion\n\n")
		if rec.Promotion.Promoted {
			sb.WriteString(fmt.Sprintf("Promoted (basis %s, repeat estimate %.2f, confidence %.2f)\n",
				rec.Promotion.Basis, rec.Promotion.EstimatedRepeatOrders, rec.Promotion.Confidence))
		} else {
			sb.WriteString("Not promoted\n")
		}
		for _, r := range rec.Promotion.Reasons {
			sb.WriteString(fmt.Sprintf("- %s\n", r))
		}
		sb.WriteString("\n")
	}

	// Reasons
	reasons := append([]string(nil), rec.Judgment.Reasons...)
	reasons = append(reasons, rec.Judgment.Warnings...)
	reasons = append(reasons, rec.Action.Reasons...)
	reasons = append(reasons, rec.Risk.Reasons...)
	if len(reasons) > 0 {
		sb.WriteString("## Reasons\n\n")
		for _, r := range reasons {
			sb.WriteString(fmt.Sprintf("- %s\n", r))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
