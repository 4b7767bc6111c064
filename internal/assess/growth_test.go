package assess

import (
	"testing"

	"ppc-guardrail-lab/internal/domain"
)

func strongGrowthData() (domain.GrowthAssessmentData, domain.CompetitionData) {
	return domain.GrowthAssessmentData{
			OrganicGrowthRate: 0.18,
			Rating:            4.4,
			OrganicSales:      12000,
			AdSales:           6000,
			AdDependencyRatio: 0.33,
			BSRTrend:          -5,
		}, domain.CompetitionData{
			CompetitorMedianRating: 4.3,
		}
}

func TestAssessGrowthCandidate_AllConditionsMet(t *testing.T) {
	data, comp := strongGrowthData()

	r := AssessGrowthCandidate(domain.LifecycleGrow, data, comp)
	if !r.IsGrowingCandidate {
		t.Errorf("expected growing candidate, got %+v", r)
	}
	if !r.OrganicGrowthOK || !r.RatingOK || !r.ConversionOK {
		t.Errorf("all conditions should hold, got %+v", r)
	}
	if r.GrowthScore < scoreAggressive {
		t.Errorf("GrowthScore = %v, want >= %v", r.GrowthScore, scoreAggressive)
	}
	if r.RecommendedState != domain.LifecycleLaunchHard {
		t.Errorf("RecommendedState = %s, want LAUNCH_HARD", r.RecommendedState)
	}
}

func TestAssessGrowthCandidate_ANDSemantics(t *testing.T) {
	base, comp := strongGrowthData()

	// Each broken condition alone defeats candidacy.
	low := base
	low.OrganicGrowthRate = 0.02
	if r := AssessGrowthCandidate(domain.LifecycleGrow, low, comp); r.IsGrowingCandidate {
		t.Error("low organic growth must defeat candidacy")
	}

	rated := base
	rated.Rating = 3.5
	if r := AssessGrowthCandidate(domain.LifecycleGrow, rated, comp); r.IsGrowingCandidate {
		t.Error("low rating must defeat candidacy")
	}

	behind := base
	behindComp := domain.CompetitionData{CompetitorMedianRating: 4.9}
	if r := AssessGrowthCandidate(domain.LifecycleGrow, behind, behindComp); r.IsGrowingCandidate {
		t.Error("rating too far behind competitor median must defeat candidacy")
	}

	dependent := base
	dependent.AdDependencyRatio = 0.9
	if r := AssessGrowthCandidate(domain.LifecycleGrow, dependent, comp); r.IsGrowingCandidate {
		t.Error("high ad dependency must defeat candidacy")
	}

	weakOrganic := base
	weakOrganic.OrganicSales = 1000
	if r := AssessGrowthCandidate(domain.LifecycleGrow, weakOrganic, comp); r.IsGrowingCandidate {
		t.Error("weak organic-to-ad ratio must defeat candidacy")
	}
}

func TestAssessGrowthCandidate_ScoreBands(t *testing.T) {
	// Weak all around lands in HARVEST.
	weak := domain.GrowthAssessmentData{
		OrganicGrowthRate: 0.0,
		Rating:            3.0,
		OrganicSales:      100,
		AdSales:           5000,
		AdDependencyRatio: 0.95,
		BSRTrend:          10,
	}
	r := AssessGrowthCandidate(domain.LifecycleGrow, weak, domain.CompetitionData{CompetitorMedianRating: 4.5})
	if r.RecommendedState != domain.LifecycleHarvest {
		t.Errorf("weak signals: RecommendedState = %s, want HARVEST (score %v)", r.RecommendedState, r.GrowthScore)
	}

	// Middling signals hold the current stage.
	// 40*(0.08/0.20) + 30*((4.2-3.0)/2) + 30*((5000/5000)/2) = 16+18+15 = 49.
	mid := domain.GrowthAssessmentData{
		OrganicGrowthRate: 0.08,
		Rating:            4.2,
		OrganicSales:      5000,
		AdSales:           5000,
		AdDependencyRatio: 0.55,
		BSRTrend:          1,
	}
	r = AssessGrowthCandidate(domain.LifecycleLaunchSoft, mid, domain.CompetitionData{CompetitorMedianRating: 4.0})
	if r.GrowthScore >= scoreGrow || r.GrowthScore < scoreHold {
		t.Fatalf("fixture drifted out of the hold band: score %v", r.GrowthScore)
	}
	if r.RecommendedState != domain.LifecycleLaunchSoft {
		t.Errorf("hold band must keep current stage, got %s", r.RecommendedState)
	}
}

func TestAssessGrowthCandidate_ScoreCappedAt100(t *testing.T) {
	data, comp := strongGrowthData()
	data.OrganicGrowthRate = 0.9
	data.Rating = 5.0
	data.OrganicSales = 100000
	data.AdSales = 1000

	r := AssessGrowthCandidate(domain.LifecycleGrow, data, comp)
	if r.GrowthScore > 100 {
		t.Errorf("GrowthScore = %v, must not exceed 100", r.GrowthScore)
	}
}

func TestAssessGrowthCandidate_ZeroAdSalesGuarded(t *testing.T) {
	data, comp := strongGrowthData()
	data.AdSales = 0

	r := AssessGrowthCandidate(domain.LifecycleGrow, data, comp)
	if r.GrowthScore < 0 || r.GrowthScore > 100 {
		t.Errorf("score out of range with zero ad sales: %v", r.GrowthScore)
	}
}
