package assess

import (
	"fmt"
	"math"

	"ppc-guardrail-lab/internal/domain"
)

// Growth candidacy conditions.
const (
	organicGrowthCutoff = 0.05
	ratingFloor         = 3.8
	ratingCompetitorGap = 0.3
	organicToAdCutoff   = 0.8
	adDependencyCeiling = 0.7
)

// Growth score weights and bands.
const (
	organicGrowthFullScale = 0.20 // 20% monthly organic growth earns full points

	scoreAggressive = 80.0
	scoreGrow       = 60.0
	scoreHold       = 40.0
)

// AssessGrowthCandidate combines three independent conditions by AND into
// candidacy and derives a weighted 0-100 growth score that maps to a
// recommended lifecycle stage. currentState is returned for the hold band.
func AssessGrowthCandidate(currentState domain.LifecycleState, data domain.GrowthAssessmentData, comp domain.CompetitionData) *domain.GrowthCandidateResult {
	r := &domain.GrowthCandidateResult{}

	r.OrganicGrowthOK = data.OrganicGrowthRate >= organicGrowthCutoff
	r.RatingOK = data.Rating >= ratingFloor &&
		comp.CompetitorMedianRating-data.Rating <= ratingCompetitorGap

	adSales := data.AdSales
	if adSales < ratioEpsilon {
		adSales = ratioEpsilon
	}
	organicToAd := data.OrganicSales / adSales
	r.ConversionOK = organicToAd >= organicToAdCutoff && data.AdDependencyRatio <= adDependencyCeiling

	r.IsGrowingCandidate = r.OrganicGrowthOK && r.RatingOK && r.ConversionOK

	// Weighted score: 40pts organic growth, 30pts rating headroom,
	// 30pts conversion quality, bonus for an improving BSR trend.
	score := 40 * clamp01(data.OrganicGrowthRate/organicGrowthFullScale)
	score += 30 * clamp01((data.Rating-3.0)/2.0)
	score += 30 * clamp01(organicToAd/2.0)
	if data.BSRTrend < 0 {
		score += 10
	}
	r.GrowthScore = math.Min(score, 100)

	switch {
	case r.GrowthScore >= scoreAggressive:
		r.RecommendedState = domain.LifecycleLaunchHard
		r.Reasons = append(r.Reasons, "strong growth signals, aggressive investment recommended")
	case r.GrowthScore >= scoreGrow:
		r.RecommendedState = domain.LifecycleGrow
		r.Reasons = append(r.Reasons, "healthy growth signals, GROW stage recommended")
	case r.GrowthScore >= scoreHold:
		r.RecommendedState = currentState
		r.Reasons = append(r.Reasons, "mixed growth signals, holding current stage")
	default:
		r.RecommendedState = domain.LifecycleHarvest
		r.Reasons = append(r.Reasons, "weak growth signals, HARVEST recommended")
	}

	r.Reasons = append(r.Reasons,
		fmt.Sprintf("growth score %.1f (organic=%t rating=%t conversion=%t)",
			r.GrowthScore, r.OrganicGrowthOK, r.RatingOK, r.ConversionOK))

	return r
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
